package storage

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: game not found")

type Repository interface {
	CreateGame(rec *GameRecord) error
	GetGame(id string) (*GameRecord, error)
	// SaveGame stores the snapshot and appends the grants in one transaction.
	SaveGame(rec *GameRecord, grants []Grant) error
	ListGames(status string, limit int) ([]GameRecord, error)
	// FindTimedOutGames returns in-progress games whose action deadline is
	// at or before now.
	FindTimedOutGames(now time.Time) ([]GameRecord, error)
	GrantsForChampion(championID string) ([]Grant, error)
	ChampionTotals(championID string) (*Totals, error)
}
