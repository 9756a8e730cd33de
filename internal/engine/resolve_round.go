package engine

import (
	"fmt"

	"github.com/ericogr/dungeon-party/internal/game"
)

// resolveDebuffs is the end-of-turn sweep: damage over time, regeneration,
// elite upkeep, then one decrement of every turn-tracked status.
func (tc *turnContext) resolveDebuffs() bool {
	tc.setPhase(game.PhaseDebuffResolution)
	a := &applier{
		players:  tc.s.Players,
		monsters: tc.s.Monsters,
		turn:     tc.s.Turn,
		phase:    tc.s.Phase,
		env:      tc.s.Environment,
	}
	tick := func(c *game.Combatant) {
		if !c.IsAlive() {
			return
		}
		for _, st := range append([]game.StatusEffect(nil), c.Debuffs...) {
			if st.Type.IsDoT() {
				a.tickDot(c.ID, st)
			}
		}
		if c.IsAlive() {
			if st, ok := c.Status(game.EffectRegeneration); ok {
				a.heal(string(game.EffectRegeneration), c, st.Value)
			}
		}
	}
	for i := range tc.s.Players {
		tick(&tc.s.Players[i].Combatant)
	}
	for i := range tc.s.Monsters {
		tick(&tc.s.Monsters[i].Combatant)
	}
	tc.s.Log = append(tc.s.Log, a.logs...)
	tc.events = append(tc.events, a.events...)

	for i := range tc.s.Monsters {
		tc.eliteUpkeep(i)
	}
	for i := range tc.s.Players {
		if tc.s.Players[i].IsAlive() {
			tc.s.Players[i].TickTurnTracked()
		}
	}
	for i := range tc.s.Monsters {
		if tc.s.Monsters[i].IsAlive() {
			tc.s.Monsters[i].TickTurnTracked()
		}
	}
	return tc.checkTerminal()
}

// checkTerminal moves to the reward/shop/victory path once every monster is
// dead and to defeat once every player is dead.
func (tc *turnContext) checkTerminal() bool {
	switch {
	case tc.s.AllPlayersDead():
		tc.s.Status = game.StatusDefeat
		tc.s.PlayerSelections = nil
		tc.setPhase(game.PhaseDefeat)
		tc.add("The party has been defeated", game.LogPhase)
		return true
	case tc.s.AllMonstersDead():
		tc.s.PlayerSelections = nil
		tc.s.SelectedCardID, tc.s.SelectedTargetID = "", ""
		rules := tc.e.content.Rules
		if tc.s.Round >= rules.FinalRound {
			tc.s.Status = game.StatusVictory
			tc.setPhase(game.PhaseVictory)
			tc.add("Victory! The dungeon is cleared", game.LogPhase)
			return true
		}
		if rules.IsShopRound(tc.s.Round) {
			tc.setPhase(game.PhaseShop)
		} else {
			tc.setPhase(game.PhaseReward)
		}
		tc.add(fmt.Sprintf("Round %d cleared", tc.s.Round), game.LogReward)
		return true
	}
	return false
}

// startTurn begins a new cycle: intents first, then either the first
// player's draw or the simultaneous draw.
func (tc *turnContext) startTurn() {
	tc.s.Turn++
	tc.setPhase(game.PhaseDraw)
	tc.add(fmt.Sprintf("Turn %d", tc.s.Turn), game.LogPhase)
	tc.planIntents()
	if tc.s.Mode == game.ModeSimultaneous {
		tc.beginSimultaneousTurn()
		return
	}
	tc.beginPlayerTurn(0)
}

// beginPlayerTurn hands the turn to the first living player at or after
// from. Stunned players lose the opportunity and their stun advances once.
// With nobody left the monsters act and the turn closes.
func (tc *turnContext) beginPlayerTurn(from int) {
	for i := nextLivingPlayer(tc.s, from); i >= 0; i = nextLivingPlayer(tc.s, i+1) {
		p := &tc.s.Players[i]
		tc.s.CurrentPlayerIndex = i
		if p.Stunned() {
			tc.setPhase(game.PhaseDraw)
			tc.add(fmt.Sprintf("%s is stunned and skips the turn", p.Name), game.LogDebuff)
			p.TickActionTracked()
			continue
		}
		tc.setPhase(game.PhaseDraw)
		tc.drawUpTo(i)
		tc.setPhase(game.PhaseSelect)
		return
	}
	tc.finishTurn()
}

// finishTurn runs the monster phase and the debuff sweep, then the next
// turn if the encounter goes on.
func (tc *turnContext) finishTurn() {
	tc.s.SelectedCardID, tc.s.SelectedTargetID = "", ""
	if tc.runMonsterPhase() {
		return
	}
	if tc.resolveDebuffs() {
		return
	}
	tc.startTurn()
}
