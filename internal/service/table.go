package service

import (
	"context"
	"time"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/logging"
	"github.com/ericogr/dungeon-party/internal/storage"
)

// Publisher receives every transition observers may see, and is told when
// a game is over.
type Publisher interface {
	Publish(gameID string, s *game.State, events []game.Event)
	CloseGame(gameID string)
}

// GameRepo is the slice of storage a table needs.
type GameRepo interface {
	SaveGame(rec *storage.GameRecord, grants []storage.Grant) error
}

type request struct {
	cmd      Command
	snapshot bool
	reply    chan reply
}

type reply struct {
	res Result
	err error
}

// Table is the host authority for one game. Run owns the state; every
// command and snapshot read goes through its mailbox, so commands are
// applied one at a time in arrival order.
type Table struct {
	id      string
	engine  *engine.Engine
	repo    GameRepo
	pub     Publisher
	timeout time.Duration
	now     func() time.Time

	inbox   chan request
	stopped chan struct{}

	state    *game.State
	deadline *time.Time
}

func NewTable(s *game.State, eng *engine.Engine, repo GameRepo, pub Publisher, actionTimeout time.Duration) *Table {
	t := &Table{
		id:      s.ID,
		engine:  eng,
		repo:    repo,
		pub:     pub,
		timeout: actionTimeout,
		now:     time.Now,
		inbox:   make(chan request),
		stopped: make(chan struct{}),
		state:   s,
	}
	t.deadline = t.nextDeadline(nil, s)
	return t
}

func (t *Table) ID() string { return t.id }

// Run serves the mailbox until ctx is cancelled.
func (t *Table) Run(ctx context.Context) {
	defer close(t.stopped)
	logging.Debug("table started", logging.Fields{constants.LogFieldGameID: t.id})
	for {
		select {
		case <-ctx.Done():
			logging.Debug("table stopped", logging.Fields{constants.LogFieldGameID: t.id})
			return
		case req := <-t.inbox:
			if req.snapshot {
				req.reply <- reply{res: Result{State: t.state.Clone()}}
				continue
			}
			res, err := t.handle(req.cmd)
			req.reply <- reply{res: res, err: err}
		}
	}
}

// Submit sends cmd to the actor and waits for its outcome.
func (t *Table) Submit(ctx context.Context, cmd Command) (Result, error) {
	return t.call(ctx, request{cmd: cmd})
}

// Snapshot returns a copy of the current state.
func (t *Table) Snapshot(ctx context.Context) (*game.State, error) {
	res, err := t.call(ctx, request{snapshot: true})
	return res.State, err
}

func (t *Table) call(ctx context.Context, req request) (Result, error) {
	req.reply = make(chan reply, 1)
	select {
	case t.inbox <- req:
	case <-t.stopped:
		return Result{}, ErrTableStopped
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	select {
	case r := <-req.reply:
		return r.res, r.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// handle runs inside the actor. The all-ready check happens here after
// every message, so the batch resolves as soon as the last player is ready.
func (t *Table) handle(cmd Command) (Result, error) {
	fields := logging.Fields{
		constants.LogFieldGameID:   t.id,
		constants.LogFieldPlayerID: cmd.PlayerID,
		constants.LogFieldCommand:  string(cmd.Kind),
	}
	res, err := SubmitAction(t.engine, t.state, cmd)
	if err != nil {
		logging.Debug("command rejected", logging.Fields{
			constants.LogFieldGameID:  t.id,
			constants.LogFieldCommand: string(cmd.Kind),
			"error":                   err.Error(),
		})
		return Result{}, err
	}

	deadline := t.nextDeadline(t.state, res.State)
	rec := &storage.GameRecord{State: res.State, ActionDeadline: deadline}
	if err := t.repo.SaveGame(rec, storage.GrantsFromEvents(res.State, res.Events)); err != nil {
		logging.Error("failed to persist game", err, fields)
		return Result{}, err
	}
	prev := t.state
	t.state = res.State
	t.deadline = deadline

	if res.Resolved {
		fields[constants.LogFieldTurn] = res.State.Turn
		logging.Info("simultaneous batch resolved", fields)
	}
	if res.State.Round != prev.Round || (res.State.Finished() && !prev.Finished()) {
		logging.Info("encounter progressed", logging.Fields{
			constants.LogFieldGameID: t.id,
			constants.LogFieldRound:  res.State.Round,
			constants.LogFieldPhase:  string(res.State.Phase),
			"status":                 string(res.State.Status),
		})
	}
	if t.pub != nil {
		if res.Resolved || !cmd.hidden(prev.Mode) {
			t.pub.Publish(t.id, res.State, res.Events)
		}
		if res.State.Finished() && !prev.Finished() {
			t.pub.CloseGame(t.id)
		}
	}
	return Result{State: res.State.Clone(), Events: res.Events, Resolved: res.Resolved}, nil
}

// nextDeadline opens a fresh action window whenever a simultaneous select
// phase starts and clears it outside that phase.
func (t *Table) nextDeadline(prev, next *game.State) *time.Time {
	if t.timeout <= 0 || next.Finished() || next.Phase != game.PhaseSimultaneousSelect {
		return nil
	}
	if prev != nil && prev.Phase == next.Phase && prev.Turn == next.Turn && prev.Round == next.Round && t.deadline != nil {
		return t.deadline
	}
	d := t.now().Add(t.timeout)
	return &d
}
