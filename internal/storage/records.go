package storage

import (
	"time"

	"github.com/ericogr/dungeon-party/internal/game"
)

// GameRecord is one persisted game. The full state is kept as a JSON
// snapshot; the scalar columns mirror it for listing and the timeout scan.
type GameRecord struct {
	ID             string      `gorm:"primaryKey;size:26" json:"id"`
	Mode           game.Mode   `gorm:"size:16" json:"mode"`
	Status         game.Status `gorm:"size:16;index" json:"status"`
	Phase          game.Phase  `gorm:"size:32" json:"phase"`
	Round          int         `json:"round"`
	Turn           int         `json:"turn"`
	Seed           uint64      `json:"seed"`
	State          *game.State `gorm:"serializer:json" json:"state"`
	ActionDeadline *time.Time  `gorm:"index" json:"action_deadline,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (GameRecord) TableName() string { return "games" }

// Sync copies the listing columns from the snapshot.
func (r *GameRecord) Sync() {
	if r.State == nil {
		return
	}
	r.ID = r.State.ID
	r.Mode = r.State.Mode
	r.Status = r.State.Status
	r.Phase = r.State.Phase
	r.Round = r.State.Round
	r.Turn = r.State.Turn
	r.Seed = r.State.RNG.Seed
}

type GrantKind string

const (
	GrantXP   GrantKind = "xp"
	GrantGold GrantKind = "gold"
)

// Grant is one ledger line for the meta-progression collaborator. XP is
// keyed by champion; gold by the player seat and, when bound, its champion.
type Grant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GameID     string    `gorm:"size:26;index" json:"game_id"`
	PlayerID   string    `gorm:"size:64" json:"player_id,omitempty"`
	ChampionID string    `gorm:"size:64;index" json:"champion_id,omitempty"`
	Kind       GrantKind `gorm:"size:8" json:"kind"`
	Amount     int       `json:"amount"`
	Turn       int       `json:"turn"`
	CreatedAt  time.Time `json:"created_at"`
}

// Totals sums a champion's ledger.
type Totals struct {
	ChampionID string `json:"champion_id"`
	XP         int    `json:"xp"`
	Gold       int    `json:"gold"`
}

// GrantsFromEvents extracts ledger lines from one transition's events.
func GrantsFromEvents(s *game.State, events []game.Event) []Grant {
	var out []Grant
	for _, ev := range events {
		switch {
		case ev.Kind == game.EventXPGrant && ev.XP != nil:
			out = append(out, Grant{GameID: s.ID, ChampionID: ev.XP.ChampionID, Kind: GrantXP, Amount: ev.XP.Amount, Turn: s.Turn})
		case ev.Kind == game.EventGoldDelta && ev.Gold != nil:
			g := Grant{GameID: s.ID, PlayerID: ev.Gold.PlayerID, Kind: GrantGold, Amount: ev.Gold.Amount, Turn: s.Turn}
			if i := s.PlayerIndex(ev.Gold.PlayerID); i >= 0 {
				g.ChampionID = s.Players[i].ChampionID
			}
			out = append(out, g)
		}
	}
	return out
}
