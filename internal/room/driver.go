package room

import (
	"log"
	"time"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/apperrors"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/card"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/engine"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/logger"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/protocol"
)

// --- inbound game commands ---

// HandleSelectContract applies the king's contract pick.
func (r *Room) HandleSelectContract(clientID, contractName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.recoverAbortLocked()

	occ, err := r.playingOccupantLocked(clientID)
	if err != nil {
		return err
	}
	c, err := engine.ContractFromString(contractName)
	if err != nil {
		return apperrors.ErrIllegalMove
	}
	if err := r.eng.SelectContract(occ.Pos, c); err != nil {
		return err
	}
	r.noteTurnLocked(false)
	r.broadcastContractLocked(c)
	r.broadcastStateLocked()
	r.runAIChainLocked()
	return nil
}

// HandlePlayCard applies one human card play.
func (r *Room) HandlePlayCard(clientID, cardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.recoverAbortLocked()

	occ, err := r.playingOccupantLocked(clientID)
	if err != nil {
		return err
	}
	c, err := card.FromID(cardID)
	if err != nil {
		return apperrors.ErrCardNotInHand
	}
	res, err := r.eng.PlayCard(occ.Pos, c)
	if err != nil {
		return err
	}
	r.noteTurnLocked(false)
	r.afterMoveLocked(res, protocol.MsgCardPlayed)
	r.runAIChainLocked()
	return nil
}

// HandleDoubleKing lets the king-of-hearts holder double the stakes.
func (r *Room) HandleDoubleKing(clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	occ, err := r.playingOccupantLocked(clientID)
	if err != nil {
		return err
	}
	if err := r.eng.DoubleKing(occ.Pos); err != nil {
		return err
	}
	r.broadcastStateLocked()
	return nil
}

// SendState sends the requester their personalized game state snapshot.
func (r *Room) SendState(clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.eng == nil {
		return apperrors.ErrGameNotStarted
	}
	if occ, ok := r.occupants[clientID]; ok {
		if occ.Client != nil {
			occ.Client.SendMessage(protocol.MustNewMessage(protocol.MsgGameState, r.statePayloadLocked(occ.Pos, true)))
		}
		return nil
	}
	if spec, ok := r.spectators[clientID]; ok {
		spec.SendMessage(protocol.MustNewMessage(protocol.MsgGameState, r.spectatorStateLocked()))
		return nil
	}
	return apperrors.ErrNotInRoom
}

// playingOccupantLocked resolves a command to a seated occupant of an
// active match.
func (r *Room) playingOccupantLocked(clientID string) (*Occupant, error) {
	if r.status != StatusPlaying || r.eng == nil {
		return nil, apperrors.ErrGameNotStarted
	}
	occ, ok := r.occupants[clientID]
	if !ok {
		return nil, apperrors.ErrNotInRoom
	}
	return occ, nil
}

// --- turn timer ---

// armTurnTimerLocked schedules the single-shot timeout for the current
// player. Bumping the generation invalidates any in-flight expiry.
func (r *Room) armTurnTimerLocked() {
	r.timerGen++
	if r.turnTimer != nil {
		r.turnTimer.Stop()
	}
	if r.status != StatusPlaying {
		return
	}
	phase := r.eng.Phase()
	if phase != engine.PhaseContractSelection && phase != engine.PhasePlaying {
		return
	}
	gen := r.timerGen
	r.turnStart = time.Now()
	r.turnTimer = time.AfterFunc(r.timing.TurnTimeout, func() {
		r.handleTurnTimeout(gen)
	})
}

// stopTimerLocked cancels the turn timer for good (game end, abort).
func (r *Room) stopTimerLocked() {
	r.timerGen++
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
}

// handleTurnTimeout fires on turn expiry. A stale generation means a move
// committed while the timer was in flight; that expiry must do nothing.
func (r *Room) handleTurnTimeout(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.recoverAbortLocked()

	if gen != r.timerGen || r.status != StatusPlaying {
		return
	}

	switch r.eng.Phase() {
	case engine.PhaseContractSelection:
		// The king ran out of time: deterministic safe default.
		unused := r.eng.UnusedContracts()
		if len(unused) == 0 {
			return
		}
		if err := r.eng.SelectContract(r.eng.King(), unused[0]); err != nil {
			logger.LogError("room %s: timeout contract select: %v", r.ID, err)
			return
		}
		log.Printf("⏰ room %s: king timed out, contract defaults to %s", r.ID, unused[0])
		r.noteTurnLocked(false)
		r.broadcastContractLocked(unused[0])
		r.broadcastStateLocked()

	case engine.PhasePlaying:
		pos := r.eng.CurrentPlayer()
		res, err := r.eng.SkipCurrentPlayer()
		if err != nil {
			logger.LogError("room %s: timeout skip: %v", r.ID, err)
			return
		}
		log.Printf("⏰ room %s: %s timed out, auto-playing", r.ID, pos)
		r.noteTurnLocked(false)
		r.afterMoveLocked(res, protocol.MsgCardPlayed)

	default:
		return
	}

	r.runAIChainLocked()
}

// --- AI move chain ---

// runAIChainLocked drives the match forward: transient phases are advanced
// and, while the current player is AI-controlled, moves are requested,
// validated and applied — bounded by a wall-clock budget so the room always
// makes forward progress. The chain ends by re-arming the turn timer for a
// human, or finishing the game.
func (r *Room) runAIChainLocked() {
	deadline := time.Now().Add(r.timing.AIChainBudget)

	for {
		if r.status != StatusPlaying {
			return
		}

		switch r.eng.Phase() {
		case engine.PhaseTrickComplete:
			if err := r.eng.Advance(); err != nil {
				logger.LogError("room %s: advance: %v", r.ID, err)
				r.abortLocked()
				return
			}
			if r.eng.Phase() == engine.PhaseRoundEnd {
				r.broadcastRoundResultLocked()
			} else {
				r.broadcastStateLocked()
			}
			continue

		case engine.PhaseRoundEnd:
			if err := r.eng.Advance(); err != nil {
				logger.LogError("room %s: advance: %v", r.ID, err)
				r.abortLocked()
				return
			}
			if r.eng.Phase() == engine.PhaseContractSelection {
				// New deal of the same kingdom.
				r.broadcastStateLocked()
			}
			continue

		case engine.PhaseKingdomEnd:
			if err := r.eng.Advance(); err != nil {
				logger.LogError("room %s: advance: %v", r.ID, err)
				r.abortLocked()
				return
			}
			log.Printf("👑 room %s: kingdom %d, king rotates to %s", r.ID, r.eng.Kingdom(), r.eng.King())
			r.broadcastStateLocked()
			continue

		case engine.PhaseGameEnd:
			r.finishGameLocked()
			return

		case engine.PhaseContractSelection:
			if !r.aiOnTurnLocked(r.eng.King()) {
				r.armTurnTimerLocked()
				return
			}
			if time.Now().After(deadline) {
				// Liveness backstop: let the turn timer pick it up.
				r.armTurnTimerLocked()
				return
			}
			r.aiSelectContractLocked()

		case engine.PhasePlaying:
			if !r.aiOnTurnLocked(r.eng.CurrentPlayer()) {
				r.armTurnTimerLocked()
				return
			}
			if time.Now().After(deadline) {
				r.armTurnTimerLocked()
				return
			}
			r.aiPlayCardLocked()
		}

		time.Sleep(r.timing.AIPacing)
	}
}

func (r *Room) aiOnTurnLocked(pos engine.Position) bool {
	occ := r.seats[pos]
	return occ != nil && occ.IsAI
}

// aiSelectContractLocked asks the king's agent for a contract, falling
// back to the first unused one on any misbehavior. Misbehavior is logged,
// never surfaced to clients.
func (r *Room) aiSelectContractLocked() {
	king := r.eng.King()
	view := r.eng.ViewFor(king)

	var choice engine.Contract
	agent := r.agents[king]
	if agent != nil {
		c, err := agent.SelectContract(view, king)
		if err == nil {
			choice = c
		} else {
			logger.LogError("room %s: AI at %s contract error: %v", r.ID, king, err)
			choice = engine.Contract(-1)
		}
	} else {
		choice = engine.Contract(-1)
	}

	if err := r.eng.SelectContract(king, choice); err != nil {
		// Illegal return: substitute the deterministic safe default.
		unused := r.eng.UnusedContracts()
		if len(unused) == 0 {
			r.abortLocked()
			return
		}
		logger.LogError("room %s: AI at %s picked illegal contract %v, using %s", r.ID, king, choice, unused[0])
		if err := r.eng.SelectContract(king, unused[0]); err != nil {
			r.abortLocked()
			return
		}
		choice = unused[0]
	}

	r.noteTurnLocked(true)
	r.broadcastContractLocked(choice)
	r.broadcastStateLocked()
}

// aiPlayCardLocked asks the current AI seat for a card, substituting the
// lowest legal card when the agent returns an illegal or failed move.
func (r *Room) aiPlayCardLocked() {
	pos := r.eng.CurrentPlayer()
	view := r.eng.ViewFor(pos)

	var res *engine.PlayResult
	agent := r.agents[pos]
	if agent != nil {
		c, err := agent.SelectCard(view, pos)
		if err == nil {
			res, err = r.eng.PlayCard(pos, c)
			if err != nil {
				logger.LogError("room %s: AI at %s played illegal %s: %v", r.ID, pos, c.ID(), err)
				res = nil
			}
		} else {
			logger.LogError("room %s: AI at %s move error: %v", r.ID, pos, err)
		}
	}
	if res == nil {
		// Safe default keeps the match alive.
		var err error
		res, err = r.eng.SkipCurrentPlayer()
		if err != nil {
			logger.LogError("room %s: AI fallback failed: %v", r.ID, err)
			r.abortLocked()
			return
		}
	}

	r.noteTurnLocked(true)
	r.afterMoveLocked(res, protocol.MsgAICardPlayed)
}

// --- event emission ---

// afterMoveLocked broadcasts the consequences of one applied move.
func (r *Room) afterMoveLocked(res *engine.PlayResult, msgType protocol.MessageType) {
	payload := protocol.CardPlayedPayload{
		Position: res.Pos.String(),
		CardID:   res.Card.ID(),
		Auto:     res.AutoPlayed,
		Next:     r.eng.CurrentPlayer().String(),
	}
	for _, p := range res.Passed {
		payload.Passed = append(payload.Passed, p.String())
	}
	r.broadcastLocked(protocol.MustNewMessage(msgType, payload))

	if res.TrickDone {
		r.history = append(r.history, TrickRecord{
			Kingdom: r.eng.Kingdom(),
			Round:   r.eng.Round(),
			Winner:  res.TrickWinner,
			Cards:   cardIDs(res.TrickCards),
		})
		r.broadcastLocked(protocol.MustNewMessage(protocol.MsgTrickComplete, protocol.TrickCompletePayload{
			Winner: res.TrickWinner.String(),
			Cards:  cardIDs(res.TrickCards),
		}))
	}
	if res.RoundDone {
		// Trex rounds end without a final trick.
		r.broadcastRoundResultLocked()
	}
}

func (r *Room) broadcastContractLocked(c engine.Contract) {
	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgContractSelected, protocol.ContractSelectedPayload{
		Contract: c.String(),
		King:     r.eng.King().String(),
		Round:    r.eng.Round(),
		Kingdom:  r.eng.Kingdom(),
	}))
}

func (r *Room) broadcastRoundResultLocked() {
	contract, _ := r.eng.Contract()
	payload := protocol.RoundResultPayload{
		Round:    r.eng.Round(),
		Kingdom:  r.eng.Kingdom(),
		Contract: contract.String(),
	}
	for _, pos := range engine.Positions() {
		p := r.eng.PlayerAt(pos)
		payload.Scores = append(payload.Scores, protocol.SeatScore{
			Position:   pos.String(),
			Name:       p.Name,
			RoundScore: p.RoundScore,
			TotalScore: p.TotalScore,
		})
	}
	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgRoundResult, payload))
}

// finishGameLocked ends the match: timer cancelled, final ranking out.
func (r *Room) finishGameLocked() {
	r.stopTimerLocked()
	r.status = StatusFinished

	payload := protocol.GameOverPayload{}
	for _, s := range r.eng.Standings() {
		payload.Standings = append(payload.Standings, protocol.StandingInfo{
			Rank:     s.Rank,
			Position: s.Pos.String(),
			Name:     s.Name,
			Score:    s.Score,
		})
	}
	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgGameOver, payload))

	m := r.metrics
	log.Printf("🏁 room %s finished: %d turns (%d AI), avg latency %v",
		r.ID, m.Turns, m.AITurns, m.AvgTurnLatency.Round(time.Millisecond))
}

// abortLocked isolates an internal invariant violation to this room: the
// match ends as aborted instead of taking the process down.
func (r *Room) abortLocked() {
	if r.status != StatusPlaying {
		return
	}
	logger.LogError("room %s: match aborted", r.ID)
	r.stopTimerLocked()
	r.status = StatusFinished
	r.broadcastLocked(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "match aborted"))
}

// recoverAbortLocked converts a panic inside room logic into an aborted
// match. Must run with mu held.
func (r *Room) recoverAbortLocked() {
	if rec := recover(); rec != nil {
		logger.LogPanic(rec)
		r.abortLocked()
	}
}

// --- metrics ---

// noteTurnLocked records one applied move in the running counters.
func (r *Room) noteTurnLocked(ai bool) {
	r.metrics.Turns++
	if ai {
		r.metrics.AITurns++
	}
	if !r.turnStart.IsZero() {
		lat := time.Since(r.turnStart)
		r.metrics.AvgTurnLatency += (lat - r.metrics.AvgTurnLatency) / time.Duration(r.metrics.Turns)
	}
	r.turnStart = time.Now()
}

// --- broadcasting ---

func (r *Room) broadcastLocked(msg *protocol.Message) {
	for _, occ := range r.occupants {
		if occ.Client != nil {
			occ.Client.SendMessage(msg)
		}
	}
	for _, spec := range r.spectators {
		spec.SendMessage(msg)
	}
}

func (r *Room) broadcastExceptLocked(exceptID string, msg *protocol.Message) {
	for id, occ := range r.occupants {
		if id != exceptID && occ.Client != nil {
			occ.Client.SendMessage(msg)
		}
	}
	for id, spec := range r.spectators {
		if id != exceptID {
			spec.SendMessage(msg)
		}
	}
}

func (r *Room) broadcastRoomUpdateLocked() {
	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
		Room: r.infoLocked(),
	}))
}

// broadcastStateLocked sends every connected occupant their personalized
// snapshot and spectators the concealed one. A snapshot is only ever built
// from the committed engine state.
func (r *Room) broadcastStateLocked() {
	for _, occ := range r.occupants {
		if occ.Client == nil {
			continue
		}
		occ.Client.SendMessage(protocol.MustNewMessage(protocol.MsgGameState, r.statePayloadLocked(occ.Pos, true)))
	}
	if len(r.spectators) > 0 {
		msg := protocol.MustNewMessage(protocol.MsgGameState, r.spectatorStateLocked())
		for _, spec := range r.spectators {
			spec.SendMessage(msg)
		}
	}
}

// statePayloadLocked converts a position-scoped view to the wire form.
func (r *Room) statePayloadLocked(self engine.Position, includeHand bool) protocol.GameStatePayload {
	view := r.eng.ViewFor(self)

	payload := protocol.GameStatePayload{
		Phase:       view.Phase.String(),
		King:        view.King.String(),
		Current:     view.Current.String(),
		Round:       view.Round,
		Kingdom:     view.Kingdom,
		KingDoubled: view.KingDoubled,
	}
	if view.HasContract {
		payload.Contract = view.Contract.String()
	}
	if includeHand {
		payload.Self = view.Self.String()
		payload.Hand = cardIDs(view.Hand)
		payload.Legal = cardIDs(view.Legal)
	}
	for _, c := range r.eng.UsedContracts() {
		payload.UsedContracts = append(payload.UsedContracts, c.String())
	}
	if view.TrickPlays != nil {
		payload.TrickLead = view.TrickLead.String()
		payload.TrickPlays = make(map[string]string, len(view.TrickPlays))
		for pos, c := range view.TrickPlays {
			payload.TrickPlays[pos.String()] = c.ID()
		}
	}
	for _, run := range view.Layout {
		info := protocol.SuitRunInfo{Suit: run.Suit.Letter(), Started: run.Started}
		if run.Started {
			info.Low = run.Low.String()
			info.High = run.High.String()
		}
		payload.Layout = append(payload.Layout, info)
	}
	for _, seat := range view.Seats {
		payload.Seats = append(payload.Seats, protocol.SeatInfo{
			Position:   seat.Pos.String(),
			Name:       seat.Name,
			IsAI:       seat.IsAI,
			HandCount:  seat.HandCount,
			TricksWon:  seat.TricksWon,
			RoundScore: seat.RoundScore,
			TotalScore: seat.TotalScore,
		})
	}
	return payload
}

// spectatorStateLocked is the snapshot with every hand concealed.
func (r *Room) spectatorStateLocked() protocol.GameStatePayload {
	return r.statePayloadLocked(engine.North, false)
}

func cardIDs(cards []card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID())
	}
	return out
}
