package service

import (
	"time"

	"github.com/ericogr/dungeon-party/internal/game"
)

const defaultListLimit = 50

// GameSummary is the lobby view of a stored game. It carries no hands or
// selections.
type GameSummary struct {
	ID        string      `json:"id"`
	Mode      game.Mode   `json:"mode"`
	Status    game.Status `json:"status"`
	Phase     game.Phase  `json:"phase"`
	Round     int         `json:"round"`
	Turn      int         `json:"turn"`
	Players   []string    `json:"players"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ListGames returns the most recently updated games, optionally filtered
// by status.
func (m *Manager) ListGames(status game.Status, limit int) ([]GameSummary, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	recs, err := m.repo.ListGames(string(status), limit)
	if err != nil {
		return nil, err
	}
	out := make([]GameSummary, 0, len(recs))
	for _, rec := range recs {
		sum := GameSummary{
			ID:        rec.ID,
			Mode:      rec.Mode,
			Status:    rec.Status,
			Phase:     rec.Phase,
			Round:     rec.Round,
			Turn:      rec.Turn,
			UpdatedAt: rec.UpdatedAt,
		}
		if rec.State != nil {
			for _, p := range rec.State.Players {
				sum.Players = append(sum.Players, p.Name)
			}
		}
		out = append(out, sum)
	}
	return out, nil
}
