package room

import (
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/apperrors"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/config"
)

const (
	roomIDLength = 6
	roomIDChars  = "0123456789"

	reclaimInterval = 1 * time.Minute
)

// Manager is the registry of live rooms plus the connection→room index. A
// connection occupies at most one room at a time.
type Manager struct {
	cfg *config.Config

	mu     sync.RWMutex
	rooms  map[string]*Room
	byConn map[string]string

	stop chan struct{}
}

// NewManager builds the registry and starts the idle-room reclamation loop.
func NewManager(cfg *config.Config) *Manager {
	m := &Manager{
		cfg:    cfg,
		rooms:  make(map[string]*Room),
		byConn: make(map[string]string),
		stop:   make(chan struct{}),
	}
	go m.reclaimLoop()
	return m
}

// Stop ends the reclamation loop.
func (m *Manager) Stop() {
	close(m.stop)
}

// timing derives the baseline room timing from config.
func (m *Manager) timing() Timing {
	return Timing{
		TurnTimeout:   m.cfg.Game.TurnTimeoutDuration(),
		AIPacing:      m.cfg.Game.AIPacingDuration(),
		AIChainBudget: m.cfg.Game.AIChainBudgetDuration(),
	}
}

// Create builds a new room hosted by client. The client must not already
// occupy a room.
func (m *Manager) Create(client Client, settings Settings) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byConn[client.GetID()]; ok {
		return nil, apperrors.ErrGameInProgress
	}

	id := m.generateRoomID()
	r := New(id, client, settings)
	r.SetTiming(m.timing())
	m.rooms[id] = r
	m.byConn[client.GetID()] = id

	log.Printf("🏠 room %s created by %s", id, client.GetName())
	return r, nil
}

// Join moves client into the identified room as a player or spectator.
func (m *Manager) Join(client Client, roomID string, spectator bool) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byConn[client.GetID()]; ok {
		return nil, apperrors.ErrGameInProgress
	}
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	if err := r.Join(client, spectator); err != nil {
		return nil, err
	}
	m.byConn[client.GetID()] = roomID
	return r, nil
}

// Leave removes client from whatever room it occupies. Rooms abandoned by
// everyone are released immediately rather than waiting for reclamation.
func (m *Manager) Leave(client Client) {
	m.mu.Lock()
	roomID, ok := m.byConn[client.GetID()]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.byConn, client.GetID())
	r := m.rooms[roomID]
	m.mu.Unlock()

	if r == nil {
		return
	}
	r.Leave(client.GetID())

	if r.ConnectedHumans() == 0 && r.Status() != StatusPlaying {
		m.remove(roomID)
	}
}

// RoomFor resolves the room a connection currently occupies.
func (m *Manager) RoomFor(connID string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	roomID, ok := m.byConn[connID]
	if !ok {
		return nil, false
	}
	r, ok := m.rooms[roomID]
	return r, ok
}

// Get looks up a room by id.
func (m *Manager) Get(roomID string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	return r, ok
}

// RoomCount returns the number of live rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// Unregister drops a kicked connection's index entry without touching the
// room (the room already removed the occupant).
func (m *Manager) Unregister(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byConn, connID)
}

func (m *Manager) remove(roomID string) {
	m.mu.Lock()
	r := m.rooms[roomID]
	delete(m.rooms, roomID)
	for conn, id := range m.byConn {
		if id == roomID {
			delete(m.byConn, conn)
		}
	}
	m.mu.Unlock()

	if r != nil {
		r.Close()
	}
	log.Printf("🏠 room %s released", roomID)
}

// generateRoomID produces an unused numeric room code. Caller holds mu.
func (m *Manager) generateRoomID() string {
	for {
		code := make([]byte, roomIDLength)
		for i := range code {
			code[i] = roomIDChars[rand.IntN(len(roomIDChars))]
		}
		if _, exists := m.rooms[string(code)]; !exists {
			return string(code)
		}
	}
}

// reclaimLoop periodically sweeps for dead rooms.
func (m *Manager) reclaimLoop() {
	ticker := time.NewTicker(reclaimInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Reclaim()
		case <-m.stop:
			return
		}
	}
}

// Reclaim removes rooms that are empty and not playing, or idle beyond the
// configured window. A room with an active match and connected humans is
// never reclaimed.
func (m *Manager) Reclaim() {
	idle := m.cfg.Game.RoomIdleDuration()
	now := time.Now()

	m.mu.RLock()
	var victims []string
	for id, r := range m.rooms {
		status := r.Status()
		humans := r.ConnectedHumans()
		if status == StatusPlaying && humans > 0 {
			continue
		}
		if humans == 0 && status != StatusPlaying {
			victims = append(victims, id)
			continue
		}
		if now.Sub(r.LastActivity()) > idle {
			victims = append(victims, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range victims {
		log.Printf("🧹 reclaiming idle room %s", id)
		m.remove(id)
	}
}
