package engine

import (
	"fmt"
	"math"

	"github.com/ericogr/dungeon-party/internal/game"
)

// ApplyInput is everything one effect application may read.
type ApplyInput struct {
	Effect           game.Effect
	ActorID          string
	Players          []game.Player
	Monsters         []game.Monster
	Turn             int
	Phase            game.Phase
	ExplicitTargetID string
	Environment      game.Environment
}

// ApplyResult carries the next combatant slices and everything the
// application produced. XP and Gold are also present in Events.
type ApplyResult struct {
	Players      []game.Player
	Monsters     []game.Monster
	Logs         []game.LogEntry
	Events       []game.Event
	XP           []game.XPGrant
	Gold         []game.GoldDelta
	DamageDealt  int
	HealingDone  int
	ShieldGained int
}

// Apply resolves one effect. The input slices are not modified.
func Apply(in ApplyInput) (ApplyResult, error) {
	a := &applier{
		players:  game.ClonePlayers(in.Players),
		monsters: game.CloneMonsters(in.Monsters),
		turn:     in.Turn,
		phase:    in.Phase,
		env:      in.Environment,
	}
	actor, actorIsMonster := a.combatant(in.ActorID)
	if actor == nil {
		return ApplyResult{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, in.ActorID)
	}
	targets, err := a.resolveTargets(in.Effect, actor, actorIsMonster, in.ExplicitTargetID)
	if err != nil {
		return ApplyResult{}, err
	}

	eff := in.Effect
	for _, id := range targets {
		t, _ := a.combatant(id)
		switch {
		case eff.Type == game.EffectDamage:
			amount := eff.Value + actor.StatusValue(game.EffectStrength) - actor.StatusValue(game.EffectWeakness)
			if amount < 0 {
				amount = 0
			}
			a.damage(actor.Name, id, amount, false, game.NumberDamage)
		case eff.Type == game.EffectHeal:
			a.heal(actor.Name, t, eff.Value)
		case eff.Type == game.EffectShield:
			t.Shield += eff.Value
			a.shieldGained += eff.Value
			a.number(t.ID, eff.Value, game.NumberShield)
			a.log(fmt.Sprintf("%s gains %d shield", t.Name, eff.Value), game.LogShield, true)
		case eff.Type == game.EffectCleanse:
			if n := t.Cleanse(); n > 0 {
				a.log(fmt.Sprintf("%s is cleansed of %d debuff(s)", t.Name, n), game.LogBuff, true)
			}
		case eff.Type.IsStatus():
			t.AddStatus(game.StatusEffect{
				Type:     eff.Type,
				Value:    eff.Value,
				Duration: eff.Duration,
				Source:   actor.ID,
				Tracking: eff.Type.DefaultTracking(),
			})
			typ := game.LogBuff
			if eff.Type.IsDebuff() {
				typ = game.LogDebuff
			}
			a.log(fmt.Sprintf("%s gains %s %d for %d", t.Name, eff.Type, eff.Value, eff.Duration), typ, true)
		}
	}
	return a.result(), nil
}

// --- applier -----------------------------------------------------------
// applier mutates its own copies of the combatant slices.
type applier struct {
	players  []game.Player
	monsters []game.Monster
	turn     int
	phase    game.Phase
	env      game.Environment

	logs   []game.LogEntry
	events []game.Event
	xp     []game.XPGrant
	gold   []game.GoldDelta

	damageDealt  int
	healingDone  int
	shieldGained int
}

func (a *applier) result() ApplyResult {
	return ApplyResult{
		Players:      a.players,
		Monsters:     a.monsters,
		Logs:         a.logs,
		Events:       a.events,
		XP:           a.xp,
		Gold:         a.gold,
		DamageDealt:  a.damageDealt,
		HealingDone:  a.healingDone,
		ShieldGained: a.shieldGained,
	}
}

func (a *applier) log(msg string, typ game.LogType, sub bool) {
	le := game.LogEntry{Turn: a.turn, Phase: a.phase, Message: msg, Type: typ, IsSubEntry: sub}
	a.logs = append(a.logs, le)
	a.events = append(a.events, game.Event{Kind: game.EventLog, Log: &le})
}

func (a *applier) number(targetID string, v int, kind string) {
	a.events = append(a.events, game.Event{Kind: game.EventDamageNumber, Number: &game.DamageNumber{TargetID: targetID, Value: v, Type: kind}})
}

func (a *applier) combatant(id string) (*game.Combatant, bool) {
	for i := range a.players {
		if a.players[i].ID == id {
			return &a.players[i].Combatant, false
		}
	}
	for i := range a.monsters {
		if a.monsters[i].ID == id {
			return &a.monsters[i].Combatant, true
		}
	}
	return nil, false
}

func (a *applier) livingPlayers() []string {
	ids := make([]string, 0, len(a.players))
	for i := range a.players {
		if a.players[i].IsAlive() {
			ids = append(ids, a.players[i].ID)
		}
	}
	return ids
}

func (a *applier) livingMonsters() []string {
	ids := make([]string, 0, len(a.monsters))
	for i := range a.monsters {
		if a.monsters[i].IsAlive() {
			ids = append(ids, a.monsters[i].ID)
		}
	}
	return ids
}

// withoutStealthed drops stealthed ids unless that would leave none.
func (a *applier) withoutStealthed(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if c, _ := a.combatant(id); c != nil && !c.Stealthed() {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return ids
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// resolveTargets maps an actor-relative target kind onto concrete ids.
func (a *applier) resolveTargets(eff game.Effect, actor *game.Combatant, actorIsMonster bool, explicit string) ([]string, error) {
	own, opponents := a.livingPlayers, a.livingMonsters
	allyKind, opponentKind, allOpponents := game.TargetAlly, game.TargetMonster, game.TargetAllMonsters
	if actorIsMonster {
		own, opponents = a.livingMonsters, a.livingPlayers
		opponentKind, allOpponents = game.TargetPlayer, game.TargetAllPlayers
	}

	switch eff.Target {
	case game.TargetSelf:
		return []string{actor.ID}, nil
	case allyKind, opponentKind:
		if explicit == "" {
			return nil, ErrTargetRequired
		}
		pool := own()
		if eff.Target == opponentKind {
			pool = opponents()
		}
		if !contains(pool, explicit) {
			return nil, fmt.Errorf("%w: %s", ErrIllegalTarget, explicit)
		}
		return []string{explicit}, nil
	case game.TargetAllAllies:
		return own(), nil
	case allOpponents:
		ids := opponents()
		if eff.Type.Hostile() {
			ids = a.withoutStealthed(ids)
		}
		return ids, nil
	}
	return nil, fmt.Errorf("%w: %s cannot use target %s", ErrIllegalTarget, actor.ID, eff.Target)
}

// damage removes amount from the target. Shield absorbs first unless
// bypassShield is set; survive-lethal intercepts a fatal remainder.
func (a *applier) damage(source, targetID string, amount int, bypassShield bool, kind string) {
	t, isMonster := a.combatant(targetID)
	if t == nil || !t.IsAlive() {
		return
	}
	absorbed := 0
	if !bypassShield {
		absorbed = minInt(t.Shield, amount)
		t.Shield -= absorbed
	}
	rest := amount - absorbed
	if rest >= t.HP && t.HasStatus(game.EffectSurviveLethal) {
		rest = t.HP - 1
		t.RemoveStatus(game.EffectSurviveLethal)
		a.log(fmt.Sprintf("%s refuses to fall and survives with 1 HP", t.Name), game.LogBuff, true)
	}
	if rest > t.HP {
		rest = t.HP
	}
	t.HP -= rest
	a.damageDealt += absorbed + rest
	a.number(t.ID, amount, kind)

	msg := fmt.Sprintf("%s deals %d damage to %s", source, amount, t.Name)
	if absorbed > 0 {
		msg += fmt.Sprintf(" (%d absorbed by shield)", absorbed)
	}
	a.log(msg, game.LogDamage, true)

	if t.HP > 0 {
		return
	}
	if isMonster {
		a.monsterDied(targetID)
		return
	}
	a.log(fmt.Sprintf("%s has fallen", t.Name), game.LogDeath, false)
}

func (a *applier) heal(source string, t *game.Combatant, amount int) {
	if !t.IsAlive() {
		return
	}
	healed := minInt(amount, t.MaxHP-t.HP)
	if healed < 0 {
		healed = 0
	}
	t.HP += healed
	a.healingDone += healed
	a.number(t.ID, healed, game.NumberHeal)
	a.log(fmt.Sprintf("%s heals %s for %d", source, t.Name, healed), game.LogHeal, true)
}

// monsterDied splits the gold reward across living players (the first
// gold%n players get one extra) and credits XP to every bound champion,
// fallen players included.
func (a *applier) monsterDied(id string) {
	var m *game.Monster
	for i := range a.monsters {
		if a.monsters[i].ID == id {
			m = &a.monsters[i]
		}
	}
	if m == nil {
		return
	}
	m.HP = 0
	m.Intent = ""
	a.log(fmt.Sprintf("%s is slain", m.Name), game.LogDeath, false)

	if m.XPReward > 0 {
		for i := range a.players {
			p := &a.players[i]
			if p.ChampionID == "" {
				continue
			}
			g := game.XPGrant{ChampionID: p.ChampionID, Amount: m.XPReward}
			a.xp = append(a.xp, g)
			a.events = append(a.events, game.Event{Kind: game.EventXPGrant, XP: &g})
		}
	}

	living := make([]int, 0, len(a.players))
	for i := range a.players {
		if a.players[i].IsAlive() {
			living = append(living, i)
		}
	}
	if len(living) == 0 || m.GoldReward <= 0 {
		return
	}
	share, rem := m.GoldReward/len(living), m.GoldReward%len(living)
	for n, i := range living {
		amount := share
		if n < rem {
			amount++
		}
		if amount == 0 {
			continue
		}
		p := &a.players[i]
		p.Gold += amount
		gd := game.GoldDelta{PlayerID: p.ID, Amount: amount}
		a.gold = append(a.gold, gd)
		a.events = append(a.events, game.Event{Kind: game.EventGoldDelta, Gold: &gd})
	}
	a.log(fmt.Sprintf("The party loots %d gold", m.GoldReward), game.LogReward, true)
}

// tickDot deals one damage-over-time tick scaled by the environment. DoT
// ignores shield.
func (a *applier) tickDot(targetID string, st game.StatusEffect) {
	amount := int(math.Floor(float64(st.Value) * a.env.DotMultiplier(st.Type)))
	if amount <= 0 {
		return
	}
	a.damage(string(st.Type), targetID, amount, true, game.NumberDot)
}
