package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ericogr/dungeon-party/internal/config"
	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/storage"
)

type mockRepo struct {
	mu      sync.Mutex
	games   map[string]*storage.GameRecord
	grants  []storage.Grant
	saves   int
	failing bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{games: map[string]*storage.GameRecord{}}
}

func (m *mockRepo) CreateGame(rec *storage.GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.Sync()
	cp := *rec
	m.games[rec.ID] = &cp
	return nil
}

func (m *mockRepo) GetGame(id string) (*storage.GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.games[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *rec
	cp.State = rec.State.Clone()
	return &cp, nil
}

func (m *mockRepo) SaveGame(rec *storage.GameRecord, grants []storage.Grant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("disk full")
	}
	rec.Sync()
	cp := *rec
	m.games[rec.ID] = &cp
	m.grants = append(m.grants, grants...)
	m.saves++
	return nil
}

func (m *mockRepo) ListGames(status string, limit int) ([]storage.GameRecord, error) {
	return nil, nil
}

func (m *mockRepo) FindTimedOutGames(now time.Time) ([]storage.GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.GameRecord
	for _, rec := range m.games {
		if rec.Status == game.StatusInProgress && rec.ActionDeadline != nil && !rec.ActionDeadline.After(now) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *mockRepo) GrantsForChampion(championID string) ([]storage.Grant, error) {
	return nil, nil
}

func (m *mockRepo) ChampionTotals(championID string) (*storage.Totals, error) {
	return &storage.Totals{ChampionID: championID}, nil
}

func (m *mockRepo) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

type mockPublisher struct {
	mu     sync.Mutex
	states []*game.State
	closed []string
}

func (p *mockPublisher) Publish(gameID string, s *game.State, events []game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states = append(p.states, s)
}

func (p *mockPublisher) CloseGame(gameID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = append(p.closed, gameID)
}

func (p *mockPublisher) closedGames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.closed...)
}

func (p *mockPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.states)
}

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	loaded, err := config.LoadContent("../../dungeon_content.yaml")
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	return engine.New(&loaded.Content, loaded.DirectiveErrors)
}

func seats(classes ...game.Class) []engine.Seat {
	out := make([]engine.Seat, 0, len(classes))
	for i, cl := range classes {
		id := []string{"p1", "p2", "p3", "p4"}[i]
		out = append(out, engine.Seat{ID: id, Name: id, Class: cl, ChampionID: "champ-" + id})
	}
	return out
}
