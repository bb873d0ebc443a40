package engine

import (
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/card"
)

// Trick is one lead-to-resolution cycle: exactly one card from each seat.
// A resolved trick is terminal; the next cycle starts a fresh Trick.
type Trick struct {
	Lead   Position
	Plays  map[Position]card.Card
	Winner Position
	done   bool
}

// NewTrick opens a trick with the given leader.
func NewTrick(lead Position) *Trick {
	return &Trick{
		Lead:  lead,
		Plays: make(map[Position]card.Card, NumPositions),
	}
}

// LeadSuit returns the suit of the lead card. Only meaningful once the
// leader has played.
func (t *Trick) LeadSuit() (card.Suit, bool) {
	c, ok := t.Plays[t.Lead]
	return c.Suit, ok
}

// Add records pos playing c. Returns true when the trick is complete.
func (t *Trick) Add(pos Position, c card.Card) bool {
	t.Plays[pos] = c
	if len(t.Plays) == NumPositions {
		t.Winner = t.resolve()
		t.done = true
	}
	return t.done
}

// Complete reports whether all four seats have played.
func (t *Trick) Complete() bool {
	return t.done
}

// resolve picks the winner: the highest rank among cards matching the lead
// suit. An off-suit card never wins, there is no trump.
func (t *Trick) resolve() Position {
	leadSuit := t.Plays[t.Lead].Suit
	winner := t.Lead
	best := t.Plays[t.Lead]
	for pos, c := range t.Plays {
		if c.Suit == leadSuit && c.Rank > best.Rank {
			winner = pos
			best = c
		}
	}
	return winner
}

// Cards returns the played cards in seating order starting from the leader.
func (t *Trick) Cards() []card.Card {
	out := make([]card.Card, 0, len(t.Plays))
	pos := t.Lead
	for i := 0; i < NumPositions; i++ {
		if c, ok := t.Plays[pos]; ok {
			out = append(out, c)
		}
		pos = pos.Next()
	}
	return out
}
