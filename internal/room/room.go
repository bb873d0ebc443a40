package room

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/apperrors"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/bot"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/engine"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/protocol"
)

// hostPosition is the fixed anchor seat for the room host.
const hostPosition = engine.North

// Timing are the room's scaled gameplay delays.
type Timing struct {
	TurnTimeout   time.Duration
	AIPacing      time.Duration
	AIChainBudget time.Duration
}

// Room binds one engine to a set of human/AI occupants and drives turns
// forward under a timeout. All state is guarded by mu: one logical thread
// of control per room.
type Room struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	status       Status
	settings     Settings
	timing       Timing
	hostID       string
	occupants    map[string]*Occupant
	seats        [engine.NumPositions]*Occupant
	spectators   map[string]Client
	eng          *engine.Engine
	agents       map[engine.Position]bot.MoveProvider
	metrics      Metrics
	history      []TrickRecord
	lastActivity time.Time

	// Turn timer. The generation counter invalidates stale expiries: a
	// move committing just as the old timer fires must not double-advance.
	turnTimer *time.Timer
	timerGen  uint64
	turnStart time.Time
}

// New creates a waiting room with the given host client.
func New(id string, host Client, settings Settings) *Room {
	if settings.MaxPlayers == 0 {
		settings.MaxPlayers = engine.NumPositions
	}
	r := &Room{
		ID:           id,
		CreatedAt:    time.Now(),
		status:       StatusWaiting,
		settings:     settings,
		occupants:    make(map[string]*Occupant),
		spectators:   make(map[string]Client),
		agents:       make(map[engine.Position]bot.MoveProvider),
		lastActivity: time.Now(),
	}
	occ := &Occupant{
		ID:        host.GetID(),
		Name:      host.GetName(),
		Pos:       hostPosition,
		IsHost:    true,
		Connected: true,
		Client:    host,
	}
	r.hostID = occ.ID
	r.occupants[occ.ID] = occ
	r.seats[hostPosition] = occ
	host.SetRoom(id)
	return r
}

// SetTiming installs the scaled delays. Called once by the manager before
// the room is exposed.
func (r *Room) SetTiming(t Timing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timing = Timing{
		TurnTimeout:   r.settings.Speed.Scale(t.TurnTimeout),
		AIPacing:      r.settings.Speed.Scale(t.AIPacing),
		AIChainBudget: t.AIChainBudget,
	}
}

// Close shuts the room down: timer cancelled, any active match marked
// finished. Called by the manager when the room leaves the registry.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimerLocked()
	if r.status == StatusPlaying {
		r.status = StatusFinished
	}
}

// --- snapshots ---

// Status returns the lifecycle state.
func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// HostID returns the current host occupant id.
func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

// OccupantCount returns the number of seated occupants (human and AI).
func (r *Room) OccupantCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.occupants)
}

// ConnectedHumans counts seated occupants with a live connection.
func (r *Room) ConnectedHumans() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connectedHumansLocked()
}

func (r *Room) connectedHumansLocked() int {
	n := 0
	for _, occ := range r.occupants {
		if !occ.IsAI && occ.Connected {
			n++
		}
	}
	return n
}

// LastActivity returns the time of the last membership-affecting operation.
func (r *Room) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivity
}

// MetricsSnapshot returns a copy of the room's counters.
func (r *Room) MetricsSnapshot() Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metrics
}

// History returns the resolved-trick log.
func (r *Room) History() []TrickRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TrickRecord, len(r.history))
	copy(out, r.history)
	return out
}

// Info builds the membership/settings snapshot for the wire.
func (r *Room) Info() protocol.RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.infoLocked()
}

func (r *Room) infoLocked() protocol.RoomInfo {
	info := protocol.RoomInfo{
		RoomID:     r.ID,
		Host:       r.hostID,
		Status:     r.status.String(),
		Settings:   r.settings.ToPayload(),
		Spectators: len(r.spectators),
	}
	for _, pos := range engine.Positions() {
		occ := r.seats[pos]
		if occ == nil {
			continue
		}
		info.Occupants = append(info.Occupants, protocol.OccupantInfo{
			ID:        occ.ID,
			Name:      occ.Name,
			Position:  occ.Pos.String(),
			IsAI:      occ.IsAI,
			IsHost:    occ.IsHost,
			Connected: occ.Connected,
		})
	}
	return info
}

// --- membership ---

// Join seats a new human occupant, or registers a spectator. The host's
// own join happened at creation; everyone else takes the first free
// non-anchor seat.
func (r *Room) Join(client Client, spectator bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if spectator {
		if !r.settings.SpectatorsAllowed {
			return apperrors.ErrSpectatorsDisabled
		}
		r.spectators[client.GetID()] = client
		client.SetRoom(r.ID)
		r.touchLocked()
		return nil
	}

	if r.status != StatusWaiting {
		return apperrors.ErrGameInProgress
	}
	pos, ok := r.freeSeatLocked()
	if !ok {
		return apperrors.ErrRoomFull
	}

	occ := &Occupant{
		ID:        client.GetID(),
		Name:      client.GetName(),
		Pos:       pos,
		Connected: true,
		Client:    client,
	}
	r.occupants[occ.ID] = occ
	r.seats[pos] = occ
	client.SetRoom(r.ID)
	r.touchLocked()

	r.broadcastExceptLocked(occ.ID, protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: protocol.OccupantInfo{
			ID:        occ.ID,
			Name:      occ.Name,
			Position:  occ.Pos.String(),
			Connected: true,
		},
	}))

	log.Printf("👤 player %s joined room %s (seat %s)", occ.Name, r.ID, pos)
	return nil
}

// Leave removes an occupant or spectator. During active play the seat is
// taken over by a freshly built AI agent — hand and score untouched — so
// the match continues without a restart.
func (r *Room) Leave(clientID string) {
	r.mu.Lock()

	if spec, ok := r.spectators[clientID]; ok {
		delete(r.spectators, clientID)
		spec.SetRoom("")
		r.touchLocked()
		r.mu.Unlock()
		return
	}

	occ, ok := r.occupants[clientID]
	if !ok {
		r.mu.Unlock()
		return
	}

	if r.status == StatusPlaying {
		r.substituteAILocked(occ)
		r.touchLocked()
		r.broadcastLocked(protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
			PlayerID:    clientID,
			PlayerName:  occ.Name,
			Substituted: true,
		}))
		r.broadcastRoomUpdateLocked()
		// The substitute may already be on turn.
		r.runAIChainLocked()
		r.mu.Unlock()
		return
	}

	r.removeOccupantLocked(occ)
	r.touchLocked()
	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   clientID,
		PlayerName: occ.Name,
	}))
	r.broadcastRoomUpdateLocked()
	r.mu.Unlock()
}

// Kick removes an occupant on the host's behalf: substitution during play,
// outright removal while waiting.
func (r *Room) Kick(requesterID, targetID string) error {
	r.mu.Lock()
	if requesterID != r.hostID {
		r.mu.Unlock()
		return apperrors.ErrNotHost
	}
	occ, ok := r.occupants[targetID]
	if !ok || targetID == requesterID {
		r.mu.Unlock()
		return apperrors.ErrNotInRoom
	}
	client := occ.Client
	r.mu.Unlock()

	log.Printf("🥾 host kicked %s from room %s", occ.Name, r.ID)
	r.Leave(targetID)
	if client != nil {
		client.SetRoom("")
	}
	return nil
}

// AddAI seats an AI occupant on the next free seat (host only).
func (r *Room) AddAI(requesterID string, difficulty bot.Difficulty) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requesterID != r.hostID {
		return apperrors.ErrNotHost
	}
	if r.status != StatusWaiting {
		return apperrors.ErrGameInProgress
	}
	pos, ok := r.freeSeatLocked()
	if !ok {
		return apperrors.ErrRoomFull
	}

	agent, err := bot.New(difficulty)
	if err != nil {
		return err
	}

	occ := &Occupant{
		ID:        "ai-" + uuid.New().String()[:8],
		Name:      aiName(pos),
		Pos:       pos,
		IsAI:      true,
		Connected: true,
	}
	r.occupants[occ.ID] = occ
	r.seats[pos] = occ
	r.agents[pos] = agent
	r.touchLocked()
	r.broadcastRoomUpdateLocked()

	log.Printf("🤖 AI %s (%s) seated in room %s at %s", occ.Name, difficulty, r.ID, pos)
	return nil
}

// RemoveAI frees an AI-occupied seat while waiting (host only).
func (r *Room) RemoveAI(requesterID string, pos engine.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requesterID != r.hostID {
		return apperrors.ErrNotHost
	}
	if r.status != StatusWaiting {
		return apperrors.ErrGameInProgress
	}
	occ := r.seats[pos]
	if occ == nil || !occ.IsAI {
		return apperrors.ErrNotInRoom
	}

	delete(r.occupants, occ.ID)
	r.seats[pos] = nil
	delete(r.agents, pos)
	r.touchLocked()
	r.broadcastRoomUpdateLocked()
	return nil
}

// substituteAILocked converts a seat to AI control in place.
func (r *Room) substituteAILocked(occ *Occupant) {
	agent, err := bot.New(r.settings.Difficulty)
	if err != nil {
		// Difficulty values are validated at the boundary; fall back hard.
		agent, _ = bot.New(bot.Medium)
	}
	if occ.Client != nil {
		occ.Client.SetRoom("")
	}
	occ.IsAI = true
	occ.Connected = true
	occ.Client = nil
	occ.Name = occ.Name + " (AI)"
	r.agents[occ.Pos] = agent
	if r.eng != nil {
		r.eng.SetSeatAI(occ.Pos, true)
	}
	if occ.IsHost {
		occ.IsHost = false
		r.transferHostLocked()
	}
	log.Printf("🤖 seat %s in room %s taken over by AI", occ.Pos, r.ID)
}

// removeOccupantLocked fully removes an occupant (waiting rooms only).
func (r *Room) removeOccupantLocked(occ *Occupant) {
	delete(r.occupants, occ.ID)
	r.seats[occ.Pos] = nil
	delete(r.agents, occ.Pos)
	if occ.Client != nil {
		occ.Client.SetRoom("")
	}
	if occ.IsHost {
		r.transferHostLocked()
	}
	log.Printf("👋 player %s left room %s (seat %s)", occ.Name, r.ID, occ.Pos)
}

// transferHostLocked hands the host role to the first remaining human in
// seating order.
func (r *Room) transferHostLocked() {
	r.hostID = ""
	for _, pos := range engine.Positions() {
		occ := r.seats[pos]
		if occ != nil && !occ.IsAI {
			occ.IsHost = true
			r.hostID = occ.ID
			log.Printf("👑 host of room %s is now %s", r.ID, occ.Name)
			return
		}
	}
}

// freeSeatLocked finds the first unoccupied non-anchor seat, falling back
// to the anchor when the host is gone.
func (r *Room) freeSeatLocked() (engine.Position, bool) {
	if len(r.occupants) >= r.settings.MaxPlayers {
		return 0, false
	}
	for _, pos := range engine.Positions() {
		if r.seats[pos] == nil {
			return pos, true
		}
	}
	return 0, false
}

func (r *Room) touchLocked() {
	r.lastActivity = time.Now()
}

// aiName labels AI occupants by seat.
func aiName(pos engine.Position) string {
	return "Bot " + pos.String()
}

// --- start of game ---

// CanStart reports whether the start gate is open: all seats filled and
// still waiting.
func (r *Room) CanStart() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canStartLocked()
}

func (r *Room) canStartLocked() bool {
	return r.status == StatusWaiting && len(r.occupants) == r.settings.MaxPlayers
}

// Start builds the match from the occupants, deals the first round and
// arms the turn timer. The host's seat is the opening king.
func (r *Room) Start(requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requesterID != r.hostID {
		return apperrors.ErrNotHost
	}
	if !r.canStartLocked() {
		if r.status != StatusWaiting {
			return apperrors.ErrGameInProgress
		}
		return apperrors.ErrInsufficientPlayers
	}

	var seeds [engine.NumPositions]engine.PlayerSeed
	var openingKing engine.Position
	for _, pos := range engine.Positions() {
		occ := r.seats[pos]
		seeds[pos] = engine.PlayerSeed{ID: occ.ID, Name: occ.Name, IsAI: occ.IsAI}
		if occ.IsHost {
			openingKing = pos
		}
	}

	r.eng = engine.New(seeds, openingKing)
	if err := r.eng.Deal(); err != nil {
		return err
	}
	r.status = StatusPlaying
	r.history = nil
	r.metrics = Metrics{}
	r.touchLocked()

	log.Printf("🎮 room %s started, king is %s", r.ID, openingKing)

	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
		RoomID: r.ID,
		King:   openingKing.String(),
	}))
	r.broadcastStateLocked()
	r.armTurnTimerLocked()
	// The opening king may be an AI.
	r.runAIChainLocked()
	return nil
}
