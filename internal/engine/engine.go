package engine

import (
	"sort"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/apperrors"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/card"
)

// Phase is the engine's state-machine phase. Progression is strict: no
// phase is reachable except through the documented transitions.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseContractSelection
	PhasePlaying
	PhaseTrickComplete
	PhaseRoundEnd
	PhaseKingdomEnd
	PhaseGameEnd
)

var phaseNames = map[Phase]string{
	PhaseInit:              "init",
	PhaseContractSelection: "contract_selection",
	PhasePlaying:           "playing",
	PhaseTrickComplete:     "trick_complete",
	PhaseRoundEnd:          "round_end",
	PhaseKingdomEnd:        "kingdom_end",
	PhaseGameEnd:           "game_end",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// RoundsPerKingdom is the number of rounds each king plays, one per contract.
const RoundsPerKingdom = NumContracts

// KingdomsPerGame rotates the king role through all four seats.
const KingdomsPerGame = NumPositions

// HandSize is the deal size: 52 cards over 4 seats.
const HandSize = 13

// Player is one seat's match-scoped state. Owned exclusively by the engine;
// exposed outside only through read-only projections.
type Player struct {
	ID   string
	Name string
	Pos  Position
	IsAI bool

	Hand                 []card.Card
	TricksWon            int
	RoundScore           int
	TotalScore           int
	CapturedQueens       int
	CapturedDiamonds     int
	CapturedKingOfHearts bool
}

// PlayerSeed describes one seat when constructing an engine.
type PlayerSeed struct {
	ID   string
	Name string
	IsAI bool
}

// PlayResult describes what a single applied move did to the match.
type PlayResult struct {
	Pos        Position
	Card       card.Card
	AutoPlayed bool // move was substituted by the engine (timeout skip)

	TrickDone   bool
	TrickWinner Position
	TrickCards  []card.Card

	HandEmptied bool       // trex: this play emptied the hand
	Passed      []Position // trex: seats auto-passed while advancing

	RoundDone bool
}

// Engine is the authoritative state machine for one Trix match. It is not
// safe for concurrent use; the owning room serializes all calls.
type Engine struct {
	phase   Phase
	players [NumPositions]*Player

	king    Position
	current Position
	round   int
	kingdom int

	contract    Contract
	hasContract bool
	used        map[Contract]bool

	kingHolder  Position // seat dealt the king of hearts this round
	kingDoubled bool

	trick     *Trick
	lastTrick *Trick

	layout      *TrexLayout
	finishOrder []Position
	finished    [NumPositions]bool
}

// New builds an engine with the four seats and the opening king. The match
// starts in PhaseInit; call Deal to begin the first round.
func New(seeds [NumPositions]PlayerSeed, openingKing Position) *Engine {
	e := &Engine{
		phase:   PhaseInit,
		king:    openingKing,
		round:   1,
		kingdom: 1,
		used:    make(map[Contract]bool, NumContracts),
	}
	for _, pos := range Positions() {
		e.players[pos] = &Player{
			ID:   seeds[pos].ID,
			Name: seeds[pos].Name,
			Pos:  pos,
			IsAI: seeds[pos].IsAI,
		}
	}
	return e
}

// --- accessors ---

func (e *Engine) Phase() Phase            { return e.phase }
func (e *Engine) CurrentPlayer() Position { return e.current }
func (e *Engine) King() Position          { return e.king }
func (e *Engine) Round() int              { return e.round }
func (e *Engine) Kingdom() int            { return e.kingdom }
func (e *Engine) KingDoubled() bool       { return e.kingDoubled }
func (e *Engine) ActiveTrick() *Trick     { return e.trick }
func (e *Engine) LastTrick() *Trick       { return e.lastTrick }
func (e *Engine) Layout() *TrexLayout     { return e.layout }

// Contract returns the active contract, valid only while one is set.
func (e *Engine) Contract() (Contract, bool) {
	return e.contract, e.hasContract
}

// PlayerAt returns the seat's state. Callers must treat it as read-only.
func (e *Engine) PlayerAt(pos Position) *Player {
	return e.players[pos]
}

// SetSeatAI flips a seat between human and substitute control. Hand and
// scores are untouched; the match continues uninterrupted.
func (e *Engine) SetSeatAI(pos Position, isAI bool) {
	e.players[pos].IsAI = isAI
}

// UsedContracts lists the contracts the current king has already played.
func (e *Engine) UsedContracts() []Contract {
	var out []Contract
	for _, c := range Contracts() {
		if e.used[c] {
			out = append(out, c)
		}
	}
	return out
}

// UnusedContracts lists the contracts still open to the current king.
func (e *Engine) UnusedContracts() []Contract {
	var out []Contract
	for _, c := range Contracts() {
		if !e.used[c] {
			out = append(out, c)
		}
	}
	return out
}

// --- operations ---

// Deal starts the first round of a fresh match.
func (e *Engine) Deal() error {
	if e.phase != PhaseInit {
		return apperrors.ErrInvalidPhase
	}
	e.deal()
	return nil
}

// deal shuffles a fresh deck, gives each seat 13 cards round-robin, locates
// the king of hearts and resets all per-round collections.
func (e *Engine) deal() {
	deck := card.NewDeck()
	deck.Shuffle()

	for _, p := range e.players {
		p.Hand = p.Hand[:0]
		p.TricksWon = 0
		p.RoundScore = 0
		p.CapturedQueens = 0
		p.CapturedDiamonds = 0
		p.CapturedKingOfHearts = false
	}

	pos := North
	for _, c := range deck {
		p := e.players[pos]
		p.Hand = append(p.Hand, c)
		if c == card.KingOfHearts {
			e.kingHolder = pos
		}
		pos = pos.Next()
	}
	for _, p := range e.players {
		sortHand(p.Hand)
	}

	e.kingDoubled = false
	e.hasContract = false
	e.trick = nil
	e.lastTrick = nil
	e.layout = nil
	e.finishOrder = nil
	e.finished = [NumPositions]bool{}

	e.phase = PhaseContractSelection
	e.current = e.king
}

// sortHand orders a hand by suit then descending rank, for stable views.
func sortHand(hand []card.Card) {
	sort.Slice(hand, func(i, j int) bool {
		if hand[i].Suit != hand[j].Suit {
			return hand[i].Suit < hand[j].Suit
		}
		return hand[i].Rank > hand[j].Rank
	})
}

// SelectContract lets the king pick the round's contract. Each contract is
// playable once per kingdom.
func (e *Engine) SelectContract(pos Position, c Contract) error {
	if e.phase != PhaseContractSelection {
		return apperrors.ErrInvalidPhase
	}
	if pos != e.king {
		return apperrors.ErrNotYourTurn
	}
	if !c.Valid() {
		return apperrors.ErrIllegalMove
	}
	if e.used[c] {
		return apperrors.ErrContractAlreadyUsed
	}

	e.contract = c
	e.hasContract = true
	e.used[c] = true
	e.phase = PhasePlaying
	e.current = e.king

	if c == ContractTrex {
		e.layout = NewTrexLayout()
		// The king leads only if able; otherwise play passes on.
		if !e.layout.AnyPlayable(e.players[e.king].Hand) {
			e.advanceTrex(nil)
		}
	} else {
		e.trick = NewTrick(e.king)
	}
	return nil
}

// DoubleKing lets the seat dealt the king of hearts double the stakes
// before the contract is chosen. Only effective if the king then picks the
// king-of-hearts contract.
func (e *Engine) DoubleKing(pos Position) error {
	if e.phase != PhaseContractSelection {
		return apperrors.ErrInvalidPhase
	}
	if pos != e.kingHolder {
		return apperrors.ErrIllegalMove
	}
	e.kingDoubled = true
	return nil
}

// PlayCard applies one card play for pos. Rejections leave state untouched.
func (e *Engine) PlayCard(pos Position, c card.Card) (*PlayResult, error) {
	if e.phase != PhasePlaying {
		return nil, apperrors.ErrInvalidPhase
	}
	if pos != e.current {
		return nil, apperrors.ErrNotYourTurn
	}
	p := e.players[pos]
	if !handContains(p.Hand, c) {
		return nil, apperrors.ErrCardNotInHand
	}
	if !e.isLegal(pos, c) {
		return nil, apperrors.ErrIllegalMove
	}
	return e.apply(pos, c, false), nil
}

// SkipCurrentPlayer advances a timed-out turn. To preserve the four-cards-
// per-trick invariant a skip auto-plays the lowest legal card; under trex a
// seat with no playable card is passed instead.
func (e *Engine) SkipCurrentPlayer() (*PlayResult, error) {
	if e.phase != PhasePlaying {
		return nil, apperrors.ErrInvalidPhase
	}
	pos := e.current
	legal := e.LegalCards(pos)
	if len(legal) == 0 {
		// Only reachable under trex: a blocked seat passes.
		res := &PlayResult{Pos: pos, AutoPlayed: true}
		e.advanceTrex(res)
		return res, nil
	}
	lowest := lowestCard(legal)
	res := e.apply(pos, lowest, true)
	return res, nil
}

// apply mutates state for a validated play.
func (e *Engine) apply(pos Position, c card.Card, auto bool) *PlayResult {
	p := e.players[pos]
	p.Hand = removeCard(p.Hand, c)

	res := &PlayResult{Pos: pos, Card: c, AutoPlayed: auto}

	if e.contract.TrickBased() {
		if e.trick == nil {
			e.trick = NewTrick(pos)
		}
		if e.trick.Add(pos, c) {
			e.completeTrick(res)
		} else {
			e.current = e.current.Next()
		}
		return res
	}

	// Trex: the card goes onto the shared layout.
	e.layout.Place(c)
	if len(p.Hand) == 0 {
		res.HandEmptied = true
		e.finished[pos] = true
		e.finishOrder = append(e.finishOrder, pos)
	}
	if e.trexRemaining() <= 1 {
		e.completeRound()
		res.RoundDone = true
		return res
	}
	e.advanceTrex(res)
	return res
}

// completeTrick credits the winner, harvests penalty cards and either hands
// the lead to the winner (via Advance) or ends the round.
func (e *Engine) completeTrick(res *PlayResult) {
	t := e.trick
	winner := t.Winner
	w := e.players[winner]
	w.TricksWon++

	for _, c := range t.Plays {
		if c.Rank == card.RankQ {
			w.CapturedQueens++
		}
		if c.Suit == card.Diamonds {
			w.CapturedDiamonds++
		}
		if c == card.KingOfHearts {
			w.CapturedKingOfHearts = true
			e.kingHolder = winner
		}
	}

	e.lastTrick = t
	e.trick = nil
	e.phase = PhaseTrickComplete
	e.current = winner

	res.TrickDone = true
	res.TrickWinner = winner
	res.TrickCards = t.Cards()
}

// Advance drives the transient phases forward: trick-complete into the next
// trick or round end, round-end into the next round, kingdom or game end,
// kingdom-end into the next kingdom.
func (e *Engine) Advance() error {
	switch e.phase {
	case PhaseTrickComplete:
		if e.allHandsEmpty() {
			e.completeRound()
			return nil
		}
		e.phase = PhasePlaying
		e.trick = NewTrick(e.current)
		return nil

	case PhaseRoundEnd:
		if e.round < RoundsPerKingdom {
			e.round++
			e.deal()
			return nil
		}
		if e.kingdom >= KingdomsPerGame {
			e.phase = PhaseGameEnd
			return nil
		}
		e.phase = PhaseKingdomEnd
		return nil

	case PhaseKingdomEnd:
		e.kingdom++
		e.round = 1
		e.king = e.king.Next()
		e.used = make(map[Contract]bool, NumContracts)
		e.deal()
		return nil

	default:
		return apperrors.ErrInvalidPhase
	}
}

// completeRound applies the contract scoring and moves to PhaseRoundEnd.
func (e *Engine) completeRound() {
	if e.contract == ContractTrex {
		// Seats still holding cards finish in seating order from the king.
		pos := e.king
		for i := 0; i < NumPositions; i++ {
			if !e.finished[pos] {
				e.finished[pos] = true
				e.finishOrder = append(e.finishOrder, pos)
			}
			pos = pos.Next()
		}
	}
	e.calculateRoundScores()
	e.phase = PhaseRoundEnd
}

// --- legality ---

// isLegal applies the follow-suit rule, or the layout rule under trex.
func (e *Engine) isLegal(pos Position, c card.Card) bool {
	if !e.contract.TrickBased() {
		return e.layout.Playable(c)
	}
	if e.trick == nil || len(e.trick.Plays) == 0 {
		return true
	}
	leadSuit, ok := e.trick.LeadSuit()
	if !ok {
		return true
	}
	if c.Suit == leadSuit {
		return true
	}
	// Off-suit is legal only when void in the lead suit.
	for _, held := range e.players[pos].Hand {
		if held.Suit == leadSuit {
			return false
		}
	}
	return true
}

// LegalCards lists every card pos may play right now.
func (e *Engine) LegalCards(pos Position) []card.Card {
	if e.phase != PhasePlaying {
		return nil
	}
	p := e.players[pos]
	var out []card.Card
	for _, c := range p.Hand {
		if e.isLegal(pos, c) {
			out = append(out, c)
		}
	}
	return out
}

// --- helpers ---

// advanceTrex moves the turn to the next unfinished seat able to play,
// auto-passing blocked seats. If a full cycle finds nobody able to play the
// round is ended defensively.
func (e *Engine) advanceTrex(res *PlayResult) {
	pos := e.current.Next()
	for i := 0; i < NumPositions; i++ {
		if !e.finished[pos] {
			if e.layout.AnyPlayable(e.players[pos].Hand) {
				e.current = pos
				return
			}
			if res != nil {
				res.Passed = append(res.Passed, pos)
			}
		}
		pos = pos.Next()
	}
	e.completeRound()
	if res != nil {
		res.RoundDone = true
	}
}

func (e *Engine) trexRemaining() int {
	n := 0
	for _, pos := range Positions() {
		if !e.finished[pos] {
			n++
		}
	}
	return n
}

func (e *Engine) allHandsEmpty() bool {
	for _, p := range e.players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

func handContains(hand []card.Card, c card.Card) bool {
	for _, held := range hand {
		if held == c {
			return true
		}
	}
	return false
}

func removeCard(hand []card.Card, c card.Card) []card.Card {
	for i, held := range hand {
		if held == c {
			return append(hand[:i], hand[i+1:]...)
		}
	}
	return hand
}

// lowestCard picks the deterministic safe default: lowest rank, suit order
// breaking ties.
func lowestCard(cards []card.Card) card.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < best.Rank || (c.Rank == best.Rank && c.Suit < best.Suit) {
			best = c
		}
	}
	return best
}
