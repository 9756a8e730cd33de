package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ericogr/dungeon-party/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateGame(rec *GameRecord) error {
	rec.Sync()
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetGame(id string) (*GameRecord, error) {
	var rec GameRecord
	if err := r.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) SaveGame(rec *GameRecord, grants []Grant) error {
	rec.Sync()
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "phase", "round", "turn", "state", "action_deadline", "updated_at"}),
		}).Create(rec).Error
		if err != nil {
			return err
		}
		if len(grants) == 0 {
			return nil
		}
		return tx.Create(&grants).Error
	})
}

func (r *sqliteRepository) ListGames(status string, limit int) ([]GameRecord, error) {
	var recs []GameRecord
	q := r.db.Order("updated_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) FindTimedOutGames(now time.Time) ([]GameRecord, error) {
	var recs []GameRecord
	err := r.db.
		Where("status = ? AND action_deadline IS NOT NULL AND action_deadline <= ?", game.StatusInProgress, now).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) GrantsForChampion(championID string) ([]Grant, error) {
	var grants []Grant
	if err := r.db.Where("champion_id = ?", championID).Order("id").Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *sqliteRepository) ChampionTotals(championID string) (*Totals, error) {
	var rows []struct {
		Kind  GrantKind
		Total int
	}
	err := r.db.Model(&Grant{}).
		Select("kind, SUM(amount) AS total").
		Where("champion_id = ?", championID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	t := &Totals{ChampionID: championID}
	for _, row := range rows {
		switch row.Kind {
		case GrantXP:
			t.XP = row.Total
		case GrantGold:
			t.Gold = row.Total
		}
	}
	return t, nil
}
