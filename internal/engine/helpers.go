package engine

import "github.com/ericogr/dungeon-party/internal/game"

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// playerIndex resolves a player id or fails with ErrUnknownPlayer.
func playerIndex(s *game.State, id string) (int, error) {
	i := s.PlayerIndex(id)
	if i < 0 {
		return -1, ErrUnknownPlayer
	}
	return i, nil
}

// nextLivingPlayer returns the first living player index at or after from.
func nextLivingPlayer(s *game.State, from int) int {
	for i := from; i < len(s.Players); i++ {
		if s.Players[i].IsAlive() {
			return i
		}
	}
	return -1
}

func combatantName(s *game.State, id string) string {
	if i := s.PlayerIndex(id); i >= 0 {
		return s.Players[i].Name
	}
	if i := s.MonsterIndex(id); i >= 0 {
		return s.Monsters[i].Name
	}
	return id
}
