package engine

import "sort"

// Penalty values per contract.
const (
	kingOfHeartsPenalty = -75
	queenPenalty        = -25
	diamondPenalty      = -10
	collectionPenalty   = -15
)

// trexPlacementScores rewards the finish order under trex in descending
// 50-point bands: first out +200, then +150, +100, +50.
var trexPlacementScores = [NumPositions]int{200, 150, 100, 50}

// calculateRoundScores applies the active contract's rule to every seat's
// round delta and cumulative score. Called exactly once per round.
func (e *Engine) calculateRoundScores() {
	switch e.contract {
	case ContractKingOfHearts:
		penalty := kingOfHeartsPenalty
		if e.kingDoubled {
			penalty *= 2
		}
		for _, p := range e.players {
			if p.CapturedKingOfHearts {
				p.RoundScore = penalty
			}
		}

	case ContractQueens:
		for _, p := range e.players {
			p.RoundScore = queenPenalty * p.CapturedQueens
		}

	case ContractDiamonds:
		for _, p := range e.players {
			p.RoundScore = diamondPenalty * p.CapturedDiamonds
		}

	case ContractCollections:
		for _, p := range e.players {
			p.RoundScore = collectionPenalty * p.TricksWon
		}

	case ContractTrex:
		for i, pos := range e.finishOrder {
			e.players[pos].RoundScore = trexPlacementScores[i]
		}
	}

	for _, p := range e.players {
		p.TotalScore += p.RoundScore
	}
}

// Standing is one row of the final ranking.
type Standing struct {
	Rank  int
	Pos   Position
	Name  string
	Score int
}

// Standings ranks the seats by cumulative score, descending. Ties are
// broken by seating order from north, deterministically.
func (e *Engine) Standings() []Standing {
	out := make([]Standing, 0, NumPositions)
	for _, pos := range Positions() {
		p := e.players[pos]
		out = append(out, Standing{Pos: pos, Name: p.Name, Score: p.TotalScore})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
