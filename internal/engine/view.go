package engine

import (
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/card"
)

// SeatView is the public projection of one seat. Concealed hands appear
// only as a count.
type SeatView struct {
	Pos        Position
	Name       string
	IsAI       bool
	HandCount  int
	TricksWon  int
	RoundScore int
	TotalScore int
}

// SuitRunView is the placed span of one suit on the trex layout.
type SuitRunView struct {
	Suit    card.Suit
	Started bool
	Low     card.Rank
	High    card.Rank
}

// TableView is an immutable, position-scoped snapshot of the match handed
// to move providers and serialized to clients. Only Self's hand is present;
// every other seat is represented by a count. Constructing a view never
// leaks another seat's concealed cards.
type TableView struct {
	Self  Position
	Phase Phase

	Hand  []card.Card
	Legal []card.Card

	Contract    Contract
	HasContract bool
	Unused      []Contract

	King    Position
	Current Position
	Round   int
	Kingdom int

	KingDoubled bool

	TrickLead  Position
	TrickPlays map[Position]card.Card

	Layout []SuitRunView

	Seats [NumPositions]SeatView
}

// ViewFor builds the snapshot for one seat. The returned view shares no
// mutable state with the engine.
func (e *Engine) ViewFor(self Position) *TableView {
	v := &TableView{
		Self:        self,
		Phase:       e.phase,
		Contract:    e.contract,
		HasContract: e.hasContract,
		Unused:      e.UnusedContracts(),
		King:        e.king,
		Current:     e.current,
		Round:       e.round,
		Kingdom:     e.kingdom,
		KingDoubled: e.kingDoubled,
	}

	own := e.players[self]
	v.Hand = append([]card.Card(nil), own.Hand...)
	v.Legal = append([]card.Card(nil), e.LegalCards(self)...)

	if e.trick != nil {
		v.TrickLead = e.trick.Lead
		v.TrickPlays = make(map[Position]card.Card, len(e.trick.Plays))
		for pos, c := range e.trick.Plays {
			v.TrickPlays[pos] = c
		}
	}

	if e.layout != nil {
		for s := card.Hearts; s <= card.Spades; s++ {
			started, low, high := e.layout.Run(s)
			v.Layout = append(v.Layout, SuitRunView{Suit: s, Started: started, Low: low, High: high})
		}
	}

	for _, pos := range Positions() {
		p := e.players[pos]
		v.Seats[pos] = SeatView{
			Pos:        pos,
			Name:       p.Name,
			IsAI:       p.IsAI,
			HandCount:  len(p.Hand),
			TricksWon:  p.TricksWon,
			RoundScore: p.RoundScore,
			TotalScore: p.TotalScore,
		}
	}
	return v
}
