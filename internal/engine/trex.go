package engine

import (
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/card"
)

// suitRun tracks the placed span of one suit on the trex layout. A suit
// opens with its jack, then grows one rank at a time in both directions.
type suitRun struct {
	Started bool
	Low     card.Rank
	High    card.Rank
}

// TrexLayout is the shared discard layout for the trex contract. There are
// no tricks: players race to empty their hands onto the layout.
type TrexLayout struct {
	runs map[card.Suit]*suitRun
}

// NewTrexLayout builds an empty layout.
func NewTrexLayout() *TrexLayout {
	runs := make(map[card.Suit]*suitRun, 4)
	for s := card.Hearts; s <= card.Spades; s++ {
		runs[s] = &suitRun{}
	}
	return &TrexLayout{runs: runs}
}

// Playable reports whether c can currently go onto the layout: the jack of
// an unopened suit, or the rank adjacent to the suit's placed span.
func (l *TrexLayout) Playable(c card.Card) bool {
	run := l.runs[c.Suit]
	if !run.Started {
		return c.Rank == card.RankJ
	}
	return c.Rank == run.High+1 || c.Rank == run.Low-1
}

// Place puts c onto the layout. Callers must check Playable first.
func (l *TrexLayout) Place(c card.Card) {
	run := l.runs[c.Suit]
	if !run.Started {
		run.Started = true
		run.Low = c.Rank
		run.High = c.Rank
		return
	}
	if c.Rank > run.High {
		run.High = c.Rank
	}
	if c.Rank < run.Low {
		run.Low = c.Rank
	}
}

// AnyPlayable reports whether at least one card in hand fits the layout.
func (l *TrexLayout) AnyPlayable(hand []card.Card) bool {
	for _, c := range hand {
		if l.Playable(c) {
			return true
		}
	}
	return false
}

// PlayableCards filters hand down to the cards that fit the layout.
func (l *TrexLayout) PlayableCards(hand []card.Card) []card.Card {
	var out []card.Card
	for _, c := range hand {
		if l.Playable(c) {
			out = append(out, c)
		}
	}
	return out
}

// Run returns the placed span for a suit.
func (l *TrexLayout) Run(s card.Suit) (started bool, low, high card.Rank) {
	run := l.runs[s]
	return run.Started, run.Low, run.High
}
