package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig configures the WebSocket listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig configures the room snapshot store. Leave Addr empty to run
// without Redis.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig holds the gameplay timing knobs. Values are the baseline for
// the "normal" speed profile; rooms scale them per their own setting.
type GameConfig struct {
	TurnTimeout   int `yaml:"turn_timeout"`    // seconds per turn
	AIPacing      int `yaml:"ai_pacing"`       // milliseconds between chained AI moves
	AIChainBudget int `yaml:"ai_chain_budget"` // seconds of wall clock per AI chain
	RoomIdle      int `yaml:"room_idle"`       // minutes before an idle room is reclaimed
}

// TurnTimeoutDuration returns the baseline per-turn timeout.
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// AIPacingDuration returns the baseline delay between chained AI moves.
func (c *GameConfig) AIPacingDuration() time.Duration {
	return time.Duration(c.AIPacing) * time.Millisecond
}

// AIChainBudgetDuration returns the wall-clock budget for one AI chain.
func (c *GameConfig) AIChainBudgetDuration() time.Duration {
	return time.Duration(c.AIChainBudget) * time.Second
}

// RoomIdleDuration returns how long an idle room survives.
func (c *GameConfig) RoomIdleDuration() time.Duration {
	return time.Duration(c.RoomIdle) * time.Minute
}

// Load reads a YAML config file, filling in defaults for missing values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 4880
	}
	if c.Game.TurnTimeout == 0 {
		c.Game.TurnTimeout = 30
	}
	if c.Game.AIPacing == 0 {
		c.Game.AIPacing = 600
	}
	if c.Game.AIChainBudget == 0 {
		c.Game.AIChainBudget = 5
	}
	if c.Game.RoomIdle == 0 {
		c.Game.RoomIdle = 30
	}
}
