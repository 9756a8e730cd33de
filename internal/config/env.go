package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server is the process configuration read from the environment.
type Server struct {
	Address       string        `env:"DUNGEON_ADDR"           envDefault:":8080"`
	DatabasePath  string        `env:"DUNGEON_DB"             envDefault:"./data/dungeon.db"`
	ContentPath   string        `env:"DUNGEON_CONTENT"        envDefault:"./dungeon_content.yaml"`
	SeatSecret    string        `env:"DUNGEON_SEAT_SECRET"`
	SeatTTL       time.Duration `env:"DUNGEON_SEAT_TTL"       envDefault:"12h"`
	LogLevel      string        `env:"DUNGEON_LOG_LEVEL"      envDefault:"info"`
	ActionTimeout time.Duration `env:"DUNGEON_ACTION_TIMEOUT" envDefault:"0s"`
}

// LoadServer parses the environment into a Server config.
func LoadServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// TimerEnabled reports whether idle players are auto-submitted.
func (s Server) TimerEnabled() bool { return s.ActionTimeout > 0 }
