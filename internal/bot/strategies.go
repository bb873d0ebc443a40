package bot

import (
	"errors"
	"math/rand/v2"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/card"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/engine"
)

var errNoLegalCard = errors.New("no legal card to play")

// randomStrategy (easy): uniformly random legal choices.
type randomStrategy struct{}

func (s *randomStrategy) SelectContract(view *engine.TableView, _ engine.Position) (engine.Contract, error) {
	if len(view.Unused) == 0 {
		return 0, errors.New("no contract available")
	}
	return view.Unused[rand.IntN(len(view.Unused))], nil
}

func (s *randomStrategy) SelectCard(view *engine.TableView, _ engine.Position) (card.Card, error) {
	if len(view.Legal) == 0 {
		return card.Card{}, errNoLegalCard
	}
	return view.Legal[rand.IntN(len(view.Legal))], nil
}

// lowballStrategy (medium): always sheds the lowest legal card and picks
// contracts in a fixed preference order, trex first.
type lowballStrategy struct{}

var contractPreference = []engine.Contract{
	engine.ContractTrex,
	engine.ContractDiamonds,
	engine.ContractQueens,
	engine.ContractCollections,
	engine.ContractKingOfHearts,
}

func (s *lowballStrategy) SelectContract(view *engine.TableView, _ engine.Position) (engine.Contract, error) {
	for _, c := range contractPreference {
		for _, unused := range view.Unused {
			if c == unused {
				return c, nil
			}
		}
	}
	return 0, errors.New("no contract available")
}

func (s *lowballStrategy) SelectCard(view *engine.TableView, _ engine.Position) (card.Card, error) {
	if len(view.Legal) == 0 {
		return card.Card{}, errNoLegalCard
	}
	return lowest(view.Legal), nil
}

// duckingStrategy (hard/elite): plays under the current trick winner when
// following, dumps the most dangerous card when void, and under trex
// prefers plays that unblock its own remaining cards. With leadAware set
// (elite) it also leads from suits that carry no penalty exposure.
type duckingStrategy struct {
	leadAware bool
}

func (s *duckingStrategy) SelectContract(view *engine.TableView, _ engine.Position) (engine.Contract, error) {
	// Pick the contract with the least exposure given our own hand.
	bestScore := -1 << 30
	var best engine.Contract
	found := false
	for _, c := range view.Unused {
		score := contractComfort(c, view.Hand)
		if score > bestScore {
			bestScore = score
			best = c
			found = true
		}
	}
	if !found {
		return 0, errors.New("no contract available")
	}
	return best, nil
}

// contractComfort estimates how safe a contract is for this hand; higher is
// better.
func contractComfort(c engine.Contract, hand []card.Card) int {
	switch c {
	case engine.ContractKingOfHearts:
		for _, held := range hand {
			if held == card.KingOfHearts {
				return -80
			}
		}
		return 20
	case engine.ContractQueens:
		n := 0
		for _, held := range hand {
			if held.Rank == card.RankQ {
				n++
			}
		}
		return 10 - 25*n
	case engine.ContractDiamonds:
		n := 0
		for _, held := range hand {
			if held.Suit == card.Diamonds {
				n++
			}
		}
		return 10 - 5*n
	case engine.ContractCollections:
		high := 0
		for _, held := range hand {
			if held.Rank >= card.RankQ {
				high++
			}
		}
		return 10 - 8*high
	case engine.ContractTrex:
		// Jacks and mid ranks flow out early.
		score := 0
		for _, held := range hand {
			if held.Rank == card.RankJ {
				score += 15
			}
		}
		return 25 + score
	}
	return 0
}

func (s *duckingStrategy) SelectCard(view *engine.TableView, pos engine.Position) (card.Card, error) {
	if len(view.Legal) == 0 {
		return card.Card{}, errNoLegalCard
	}
	if view.HasContract && view.Contract == engine.ContractTrex {
		return s.trexCard(view), nil
	}
	if len(view.TrickPlays) == 0 {
		return s.leadCard(view), nil
	}
	return s.followCard(view), nil
}

// leadCard opens a trick.
func (s *duckingStrategy) leadCard(view *engine.TableView) card.Card {
	if !s.leadAware {
		return lowest(view.Legal)
	}
	// Lead low from the suit where we hold the least penalty exposure.
	best := view.Legal[0]
	bestDanger := 1 << 30
	for _, c := range view.Legal {
		d := cardDanger(view.Contract, c) + int(c.Rank)
		if d < bestDanger {
			bestDanger = d
			best = c
		}
	}
	return best
}

// followCard ducks when possible, otherwise dumps the most dangerous card.
func (s *duckingStrategy) followCard(view *engine.TableView) card.Card {
	leadCard, ok := view.TrickPlays[view.TrickLead]
	if !ok {
		return lowest(view.Legal)
	}
	leadSuit := leadCard.Suit

	// Highest rank currently winning the trick.
	winning := card.Rank(0)
	for _, c := range view.TrickPlays {
		if c.Suit == leadSuit && c.Rank > winning {
			winning = c.Rank
		}
	}

	following := view.Legal[0].Suit == leadSuit
	if following {
		// Highest card that still loses the trick; fall back to lowest.
		var duck *card.Card
		for i := range view.Legal {
			c := view.Legal[i]
			if c.Rank < winning && (duck == nil || c.Rank > duck.Rank) {
				duck = &view.Legal[i]
			}
		}
		if duck != nil {
			return *duck
		}
		return lowest(view.Legal)
	}

	// Void in the lead suit: dump the most dangerous card we hold.
	best := view.Legal[0]
	bestDanger := -1
	for _, c := range view.Legal {
		d := cardDanger(view.Contract, c)*16 + int(c.Rank)
		if d > bestDanger {
			bestDanger = d
			best = c
		}
	}
	return best
}

// trexCard prefers the playable card whose neighbor we also hold, keeping
// our own run unblocked.
func (s *duckingStrategy) trexCard(view *engine.TableView) card.Card {
	for _, c := range view.Legal {
		for _, held := range view.Hand {
			if held.Suit == c.Suit && (held.Rank == c.Rank+1 || held.Rank == c.Rank-1) {
				return c
			}
		}
	}
	return view.Legal[0]
}

// cardDanger scores how much a card threatens to cost under the contract.
func cardDanger(contract engine.Contract, c card.Card) int {
	switch contract {
	case engine.ContractKingOfHearts:
		if c == card.KingOfHearts {
			return 100
		}
		if c.Suit == card.Hearts && c.Rank > card.RankK {
			return 40
		}
	case engine.ContractQueens:
		if c.Rank == card.RankQ {
			return 50
		}
		if c.Rank > card.RankQ {
			return 20
		}
	case engine.ContractDiamonds:
		if c.Suit == card.Diamonds {
			return 30
		}
	case engine.ContractCollections:
		return int(c.Rank)
	}
	return 0
}

func lowest(cards []card.Card) card.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < best.Rank || (c.Rank == best.Rank && c.Suit < best.Suit) {
			best = c
		}
	}
	return best
}
