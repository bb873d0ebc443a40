package room

import (
	"time"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/bot"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/engine"
	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/protocol"
)

// Client is the transport-side handle for one connection. Satisfied by the
// server's websocket client and by test doubles.
type Client interface {
	GetID() string
	GetName() string
	GetRoom() string
	SetRoom(roomID string)
	SendMessage(msg *protocol.Message)
}

// Status is the room lifecycle state.
type Status int

const (
	StatusWaiting Status = iota
	StatusPlaying
	StatusFinished
)

var statusNames = map[Status]string{
	StatusWaiting:  "waiting",
	StatusPlaying:  "playing",
	StatusFinished: "finished",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Speed scales the room's turn timeout and AI pacing delay.
type Speed int

const (
	SpeedSlow Speed = iota
	SpeedNormal
	SpeedFast
)

var speedNames = map[Speed]string{
	SpeedSlow:   "slow",
	SpeedNormal: "normal",
	SpeedFast:   "fast",
}

func (s Speed) String() string {
	if name, ok := speedNames[s]; ok {
		return name
	}
	return "normal"
}

// Scale returns the timing multiplier for the profile.
func (s Speed) Scale(d time.Duration) time.Duration {
	switch s {
	case SpeedSlow:
		return d * 3 / 2
	case SpeedFast:
		return d / 2
	default:
		return d
	}
}

// SpeedFromString parses a speed profile name, defaulting to normal.
func SpeedFromString(s string) Speed {
	for sp, name := range speedNames {
		if name == s {
			return sp
		}
	}
	return SpeedNormal
}

// Settings is the declared configuration of a room. MaxPlayers is fixed at
// four; it is carried so the invariant has one source of truth.
type Settings struct {
	MaxPlayers        int
	Difficulty        bot.Difficulty
	SpectatorsAllowed bool
	Speed             Speed
}

// DefaultSettings returns the settings used when a creator leaves fields
// unset.
func DefaultSettings() Settings {
	return Settings{
		MaxPlayers:        engine.NumPositions,
		Difficulty:        bot.Medium,
		SpectatorsAllowed: true,
		Speed:             SpeedNormal,
	}
}

// SettingsFromPayload builds room settings from the wire surface.
func SettingsFromPayload(p protocol.RoomSettings) Settings {
	s := DefaultSettings()
	if p.AIDifficulty != "" {
		s.Difficulty = bot.DifficultyFromString(p.AIDifficulty)
	}
	s.SpectatorsAllowed = p.SpectatorsAllowed
	if p.Speed != "" {
		s.Speed = SpeedFromString(p.Speed)
	}
	return s
}

// ToPayload converts settings back to the wire surface.
func (s Settings) ToPayload() protocol.RoomSettings {
	return protocol.RoomSettings{
		AIDifficulty:      s.Difficulty.String(),
		SpectatorsAllowed: s.SpectatorsAllowed,
		Speed:             s.Speed.String(),
	}
}

// Occupant is one member of a room. AI occupants have no client.
type Occupant struct {
	ID        string
	Name      string
	Pos       engine.Position
	IsAI      bool
	IsHost    bool
	Connected bool
	Client    Client
}

// Metrics are the room's running observational counters. They never affect
// gameplay.
type Metrics struct {
	Turns          int
	AITurns        int
	AvgTurnLatency time.Duration
}

// TrickRecord is one resolved trick in the room's history log.
type TrickRecord struct {
	Kingdom int
	Round   int
	Winner  engine.Position
	Cards   []string
}
