package engine

import (
	"github.com/ericogr/dungeon-party/internal/game"
)

// --- Transition context ------------------------------------------------
// turnContext owns a private copy of the state for the length of one
// inbound operation and collects the events it produces.
type turnContext struct {
	e      *Engine
	s      *game.State
	events []game.Event
}

func (e *Engine) begin(s *game.State) *turnContext {
	return &turnContext{e: e, s: s.Clone(), events: make([]game.Event, 0, 16)}
}

func (tc *turnContext) done() (*game.State, []game.Event) { return tc.s, tc.events }

func (tc *turnContext) entry(msg string, typ game.LogType, sub bool) {
	le := game.LogEntry{Turn: tc.s.Turn, Phase: tc.s.Phase, Message: msg, Type: typ, IsSubEntry: sub}
	tc.s.Log = append(tc.s.Log, le)
	tc.events = append(tc.events, game.Event{Kind: game.EventLog, Log: &le})
}

func (tc *turnContext) add(msg string, typ game.LogType)    { tc.entry(msg, typ, false) }
func (tc *turnContext) addSub(msg string, typ game.LogType) { tc.entry(msg, typ, true) }

// toast emits a short-lived action message that is not kept in the log.
func (tc *turnContext) toast(msg string) {
	tc.events = append(tc.events, game.Event{Kind: game.EventActionMessage, Message: msg})
}

func (tc *turnContext) setPhase(p game.Phase) {
	if tc.s.Phase == p {
		return
	}
	tc.s.Phase = p
	tc.events = append(tc.events, game.Event{Kind: game.EventPhase, Phase: p})
}

func (tc *turnContext) animate(entityID, kind string) {
	tc.events = append(tc.events, game.Event{Kind: game.EventAnimationStart, Animation: &game.Animation{EntityID: entityID, Kind: kind}})
}

func (tc *turnContext) clearAnimation(entityID, kind string) {
	tc.events = append(tc.events, game.Event{Kind: game.EventAnimationClear, Animation: &game.Animation{EntityID: entityID, Kind: kind}})
}

// merge adopts the outcome of one applicator call.
func (tc *turnContext) merge(res ApplyResult) {
	tc.s.Players = res.Players
	tc.s.Monsters = res.Monsters
	tc.s.Log = append(tc.s.Log, res.Logs...)
	tc.events = append(tc.events, res.Events...)
}

// apply runs one effect through the applicator against the current state.
func (tc *turnContext) apply(eff game.Effect, actorID, targetID string) (ApplyResult, error) {
	res, err := Apply(ApplyInput{
		Effect:           eff,
		ActorID:          actorID,
		Players:          tc.s.Players,
		Monsters:         tc.s.Monsters,
		Turn:             tc.s.Turn,
		Phase:            tc.s.Phase,
		ExplicitTargetID: targetID,
		Environment:      tc.s.Environment,
	})
	if err != nil {
		return res, err
	}
	tc.merge(res)
	return res, nil
}
