package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/dedupe"
	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/logging"
	"github.com/ericogr/dungeon-party/internal/storage"
)

// Manager owns the running tables. Tables are started on first use and
// live until the manager's context ends.
type Manager struct {
	ctx     context.Context
	engine  *engine.Engine
	repo    storage.Repository
	pub     Publisher
	timeout time.Duration

	mu     sync.Mutex
	tables map[string]*Table
	wg     sync.WaitGroup
}

func NewManager(ctx context.Context, eng *engine.Engine, repo storage.Repository, pub Publisher, actionTimeout time.Duration) *Manager {
	return &Manager{
		ctx:     ctx,
		engine:  eng,
		repo:    repo,
		pub:     pub,
		timeout: actionTimeout,
		tables:  map[string]*Table{},
	}
}

func (m *Manager) Engine() *engine.Engine { return m.engine }

func (m *Manager) start(t *Table) *Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.tables[t.id]; ok {
		return existing
	}
	m.tables[t.id] = t
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		t.Run(m.ctx)
	}()
	return t
}

// Table returns the running table for id, loading it from storage when it
// is not in memory yet.
func (m *Manager) Table(id string) (*Table, error) {
	m.mu.Lock()
	t, ok := m.tables[id]
	m.mu.Unlock()
	if ok {
		return t, nil
	}
	return dedupe.Do(&dedupe.TableGroup, id, func() (*Table, error) {
		rec, err := m.repo.GetGame(id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrGameNotFound
			}
			return nil, err
		}
		if rec.State == nil {
			return nil, ErrGameNotFound
		}
		t := NewTable(rec.State, m.engine, m.repo, m.pub, m.timeout)
		t.deadline = rec.ActionDeadline
		logging.Info("table loaded from storage", logging.Fields{
			constants.LogFieldGameID: id,
			constants.LogFieldTurn:   rec.State.Turn,
		})
		return m.start(t), nil
	})
}

func (m *Manager) Submit(ctx context.Context, gameID string, cmd Command) (Result, error) {
	t, err := m.Table(gameID)
	if err != nil {
		return Result{}, err
	}
	return t.Submit(ctx, cmd)
}

func (m *Manager) Snapshot(ctx context.Context, gameID string) (*game.State, error) {
	t, err := m.Table(gameID)
	if err != nil {
		return nil, err
	}
	return t.Snapshot(ctx)
}

// ScanTimeouts applies HandleTimedOutTable to every game whose action
// window has passed.
func (m *Manager) ScanTimeouts(ctx context.Context, now time.Time) {
	recs, err := m.repo.FindTimedOutGames(now)
	if err != nil {
		logging.Error("timeout scan failed", err, nil)
		return
	}
	for _, rec := range recs {
		t, err := m.Table(rec.ID)
		if err != nil {
			logging.Error("failed to load timed out game", err, logging.Fields{constants.LogFieldGameID: rec.ID})
			continue
		}
		if err := HandleTimedOutTable(ctx, t); err != nil {
			logging.Error("failed to resolve timed out game", err, logging.Fields{constants.LogFieldGameID: rec.ID})
		}
	}
}

// RunTimeoutScanner polls for timed out games until ctx ends.
func (m *Manager) RunTimeoutScanner(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.ScanTimeouts(ctx, now)
		}
	}
}

// ChampionTotals sums a champion's XP and gold ledger.
func (m *Manager) ChampionTotals(championID string) (*storage.Totals, error) {
	return dedupe.Do(&dedupe.TotalsGroup, championID, func() (*storage.Totals, error) {
		return m.repo.ChampionTotals(championID)
	})
}

func (m *Manager) ChampionGrants(championID string) ([]storage.Grant, error) {
	return m.repo.GrantsForChampion(championID)
}

// Wait blocks until every table goroutine has returned.
func (m *Manager) Wait() { m.wg.Wait() }
