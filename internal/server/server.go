package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/config"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/protocol"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/room"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/server/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server owns the websocket boundary: it accepts connections, decodes
// commands and routes them to the room registry.
type Server struct {
	config      *config.Config
	roomManager *room.Manager
	store       *storage.RedisStore
	handler     *Handler

	clients   map[string]*Client
	clientsMu sync.RWMutex
}

// NewServer builds the server. Redis is optional; without it, room
// snapshots are simply not persisted.
func NewServer(cfg *config.Config) (*Server, error) {
	s := &Server{
		config:      cfg,
		roomManager: room.NewManager(cfg),
		clients:     make(map[string]*Client),
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis connect: %w", err)
		}
		s.store = storage.NewRedisStore(rdb)
	}

	s.handler = NewHandler(s)
	return s, nil
}

// Start serves websocket and health endpoints until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	log.Printf("🚀 trix server listening on ws://%s/ws", addr)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}

// handleWebSocket upgrades a connection and starts its pumps.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(s, conn)
	s.registerClient(client)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   client.ID,
		PlayerName: client.GetName(),
	}))

	log.Printf("✅ player %s (%s) connected", client.GetName(), client.ID)

	go client.ReadPump()
	go client.WritePump()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, client.ID)
}

// handleDisconnect runs when a connection's read pump exits. Leaving a
// room mid-game substitutes an AI for the seat.
func (s *Server) handleDisconnect(client *Client) {
	roomID := client.GetRoom()
	s.roomManager.Leave(client)
	s.unregisterClient(client)
	client.Close()
	s.snapshotRoom(roomID)
	log.Printf("📴 player %s disconnected", client.GetName())
}

// Shutdown stops the room registry and closes every connection.
func (s *Server) Shutdown() {
	s.roomManager.Stop()

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for _, client := range s.clients {
		client.Close()
	}
}

// OnlineCount returns the number of live connections.
func (s *Server) OnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// snapshotRoom persists a room's membership snapshot when Redis is wired.
func (s *Server) snapshotRoom(roomID string) {
	if s.store == nil || roomID == "" {
		return
	}
	r, ok := s.roomManager.Get(roomID)
	if !ok {
		return
	}
	info := r.Info()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.store.SaveRoom(ctx, info); err != nil {
			log.Printf("room snapshot failed: %v", err)
		}
	}()
}

// dropRoomSnapshot removes a released room's snapshot.
func (s *Server) dropRoomSnapshot(roomID string) {
	if s.store == nil || roomID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.store.DeleteRoom(ctx, roomID)
	}()
}
