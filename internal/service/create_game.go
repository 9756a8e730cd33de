package service

import (
	"encoding/binary"
	"errors"

	"github.com/oklog/ulid/v2"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/logging"
	"github.com/ericogr/dungeon-party/internal/storage"
)

var ErrTooManyPlayers = errors.New("a party holds at most four heroes")

const MaxPartySize = 4

type CreateGameRequest struct {
	Mode game.Mode `json:"mode"`
	// Seed makes the run reproducible; zero picks one from the game id.
	Seed  uint64        `json:"seed,omitempty"`
	Seats []engine.Seat `json:"seats"`
}

// CreateGame sets up a new game, persists it and starts its table.
func (m *Manager) CreateGame(req CreateGameRequest) (*game.State, error) {
	if len(req.Seats) > MaxPartySize {
		return nil, ErrTooManyPlayers
	}
	if req.Mode == "" {
		req.Mode = game.ModeSequential
	}
	id := ulid.Make()
	seed := req.Seed
	if seed == 0 {
		seed = binary.BigEndian.Uint64(id.Entropy()[:8])
	}
	s, _, err := m.engine.NewGame(engine.Setup{
		ID:    id.String(),
		Mode:  req.Mode,
		Seed:  seed,
		Seats: req.Seats,
	})
	if err != nil {
		return nil, err
	}

	t := NewTable(s, m.engine, m.repo, m.pub, m.timeout)
	if err := m.repo.CreateGame(&storage.GameRecord{State: s, ActionDeadline: t.deadline}); err != nil {
		logging.Error("failed to store new game", err, logging.Fields{constants.LogFieldGameID: s.ID})
		return nil, err
	}
	m.start(t)
	logging.Info("game created", logging.Fields{
		constants.LogFieldGameID: s.ID,
		"mode":                   string(s.Mode),
		"players":                len(s.Players),
		"seed":                   seed,
	})
	return s.Clone(), nil
}
