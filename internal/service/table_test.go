package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/storage"
)

func newManager(t *testing.T, timeout time.Duration) (*Manager, *mockRepo, *mockPublisher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	repo, pub := newMockRepo(), &mockPublisher{}
	m := NewManager(ctx, testEngine(t), repo, pub, timeout)
	t.Cleanup(func() {
		cancel()
		m.Wait()
	})
	return m, repo, pub
}

func pick(t *testing.T, s *game.State, playerID string) Command {
	t.Helper()
	cmd, ok := defaultSelection(s, playerID)
	require.True(t, ok)
	return cmd
}

func TestSequentialCommandsArePublished(t *testing.T) {
	m, repo, pub := newManager(t, 0)
	s, err := m.CreateGame(CreateGameRequest{Mode: game.ModeSequential, Seed: 3, Seats: seats("warrior")})
	require.NoError(t, err)
	require.Equal(t, game.PhaseSelect, s.Phase)

	card := s.Players[0].Hand[0]
	res, err := m.Submit(context.Background(), s.ID, Command{Kind: CmdSelectCard, PlayerID: "p1", CardID: card.ID})
	require.NoError(t, err)
	assert.False(t, res.Resolved)
	assert.Equal(t, card.ID, res.State.SelectedCardID)
	assert.Equal(t, 1, pub.count())
	assert.Equal(t, 1, repo.saveCount())

	_, err = m.Submit(context.Background(), s.ID, Command{Kind: CmdRollAggro, PlayerID: "p2"})
	assert.ErrorIs(t, err, engine.ErrUnknownPlayer)
	assert.Equal(t, 1, repo.saveCount(), "rejected commands are not persisted")

	_, err = m.Submit(context.Background(), s.ID, Command{Kind: "dance", PlayerID: "p1"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestBarrierResolvesWhenLastPlayerIsReady(t *testing.T) {
	m, repo, pub := newManager(t, 0)
	ctx := context.Background()
	s, err := m.CreateGame(CreateGameRequest{Mode: game.ModeSimultaneous, Seed: 9, Seats: seats("warrior", "rogue")})
	require.NoError(t, err)
	require.Equal(t, game.PhaseSimultaneousSelect, s.Phase)

	_, err = m.Submit(ctx, s.ID, pick(t, s, "p1"))
	require.NoError(t, err)
	res, err := m.Submit(ctx, s.ID, Command{Kind: CmdReady, PlayerID: "p1", Ready: true})
	require.NoError(t, err)
	assert.False(t, res.Resolved)
	assert.Equal(t, 0, pub.count(), "selections stay private until the batch resolves")

	_, err = m.Submit(ctx, s.ID, pick(t, s, "p2"))
	require.NoError(t, err)
	res, err = m.Submit(ctx, s.ID, Command{Kind: CmdReady, PlayerID: "p2", Ready: true})
	require.NoError(t, err)
	require.True(t, res.Resolved)
	assert.Equal(t, 2, res.State.Turn)
	assert.Equal(t, 1, pub.count())
	assert.Equal(t, 4, repo.saveCount())

	stored, err := repo.GetGame(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Turn)
}

func TestSimultaneousEnhanceStaysPrivate(t *testing.T) {
	m, _, pub := newManager(t, 0)
	ctx := context.Background()
	s, err := m.CreateGame(CreateGameRequest{Mode: game.ModeSimultaneous, Seed: 9, Seats: seats("warrior", "rogue")})
	require.NoError(t, err)

	_, err = m.Submit(ctx, s.ID, pick(t, s, "p1"))
	require.NoError(t, err)
	res, err := m.Submit(ctx, s.ID, Command{Kind: CmdEnhanceMode, PlayerID: "p2", Enhance: true})
	require.NoError(t, err)
	assert.True(t, res.State.PlayerSelections[1].EnhanceMode)
	assert.Equal(t, 0, pub.count(), "an enhance toggle must not leak p1's pending card")
}

func TestUnreadyAmongThreeKeepsBatchOpen(t *testing.T) {
	m, _, pub := newManager(t, 0)
	ctx := context.Background()
	s, err := m.CreateGame(CreateGameRequest{Mode: game.ModeSimultaneous, Seed: 4, Seats: seats("warrior", "rogue", "mage")})
	require.NoError(t, err)

	for _, id := range []string{"p1", "p2"} {
		_, err = m.Submit(ctx, s.ID, pick(t, s, id))
		require.NoError(t, err)
		_, err = m.Submit(ctx, s.ID, Command{Kind: CmdReady, PlayerID: id, Ready: true})
		require.NoError(t, err)
	}
	res, err := m.Submit(ctx, s.ID, Command{Kind: CmdReady, PlayerID: "p2", Ready: false})
	require.NoError(t, err)
	assert.False(t, res.Resolved)

	_, err = m.Submit(ctx, s.ID, pick(t, s, "p3"))
	require.NoError(t, err)
	res, err = m.Submit(ctx, s.ID, Command{Kind: CmdReady, PlayerID: "p3", Ready: true})
	require.NoError(t, err)
	assert.False(t, res.Resolved)
	assert.Equal(t, 1, res.State.Turn)
	assert.Equal(t, game.PhaseSimultaneousSelect, res.State.Phase)
	assert.Equal(t, 0, pub.count())
}

func TestFinishedGameClosesMirrors(t *testing.T) {
	m, _, pub := newManager(t, 0)
	ctx := context.Background()
	s, err := m.CreateGame(CreateGameRequest{Mode: game.ModeSequential, Seed: 11, Seats: seats("warrior", "rogue")})
	require.NoError(t, err)

	for step := 0; step < 5000 && !s.Finished(); step++ {
		assert.Empty(t, pub.closedGames())
		cmd, ok := NextAutoCommand(s)
		require.True(t, ok, "step %d in phase %s", step, s.Phase)
		res, err := m.Submit(ctx, s.ID, cmd)
		require.NoError(t, err)
		s = res.State
	}
	require.True(t, s.Finished())
	assert.Equal(t, []string{s.ID}, pub.closedGames())
}

func TestConcurrentReadyResolvesExactlyOnce(t *testing.T) {
	m, _, _ := newManager(t, 0)
	ctx := context.Background()
	s, err := m.CreateGame(CreateGameRequest{Mode: game.ModeSimultaneous, Seed: 11, Seats: seats("warrior", "rogue", "mage")})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	resolved := 0
	for _, p := range s.Players {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := m.Submit(ctx, s.ID, pick(t, s, id)); err != nil {
				t.Errorf("selection %s: %v", id, err)
				return
			}
			res, err := m.Submit(ctx, s.ID, Command{Kind: CmdReady, PlayerID: id, Ready: true})
			if err != nil {
				t.Errorf("ready %s: %v", id, err)
				return
			}
			if res.Resolved {
				mu.Lock()
				resolved++
				mu.Unlock()
			}
		}(p.ID)
	}
	wg.Wait()
	assert.Equal(t, 1, resolved)

	after, err := m.Snapshot(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Turn)
}

func TestFailedSaveKeepsPreviousState(t *testing.T) {
	m, repo, _ := newManager(t, 0)
	ctx := context.Background()
	s, err := m.CreateGame(CreateGameRequest{Mode: game.ModeSequential, Seed: 1, Seats: seats("warrior")})
	require.NoError(t, err)

	repo.mu.Lock()
	repo.failing = true
	repo.mu.Unlock()
	_, err = m.Submit(ctx, s.ID, Command{Kind: CmdSelectCard, PlayerID: "p1", CardID: s.Players[0].Hand[0].ID})
	require.Error(t, err)

	after, err := m.Snapshot(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, game.PhaseSelect, after.Phase)
	assert.Empty(t, after.SelectedCardID)
}

func TestTableLoadsFromStorage(t *testing.T) {
	m, repo, _ := newManager(t, 0)
	st, _, err := m.Engine().NewGame(engine.Setup{ID: "stored", Mode: game.ModeSequential, Seed: 5, Seats: seats("cleric")})
	require.NoError(t, err)
	require.NoError(t, repo.CreateGame(&storage.GameRecord{State: st}))

	got, err := m.Snapshot(context.Background(), "stored")
	require.NoError(t, err)
	assert.Equal(t, st.Players[0].Hand, got.Players[0].Hand)

	_, err = m.Snapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestStoppedTableRejectsCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := newMockRepo()
	m := NewManager(ctx, testEngine(t), repo, nil, 0)
	s, err := m.CreateGame(CreateGameRequest{Mode: game.ModeSequential, Seats: seats("warrior")})
	require.NoError(t, err)
	cancel()
	m.Wait()

	_, err = m.Submit(context.Background(), s.ID, Command{Kind: CmdEnhanceMode, PlayerID: "p1", Enhance: true})
	assert.True(t, errors.Is(err, ErrTableStopped))
}

func TestHiddenCommandsDependOnMode(t *testing.T) {
	for _, kind := range []CommandKind{CmdSelection, CmdReady, CmdSpecial, CmdEnhanceMode} {
		assert.True(t, Command{Kind: kind}.hidden(game.ModeSimultaneous), "%s", kind)
	}
	assert.False(t, Command{Kind: CmdSpecial}.hidden(game.ModeSequential))
	assert.False(t, Command{Kind: CmdEnhanceMode}.hidden(game.ModeSequential))
	assert.False(t, Command{Kind: CmdRollAggro}.hidden(game.ModeSimultaneous))
}
