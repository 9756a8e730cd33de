package engine

import (
	"fmt"

	"github.com/ericogr/dungeon-party/internal/game"
)

// runMonsterPhase lets every living monster use its slot in order. It
// returns true when the game reached a terminal state.
func (tc *turnContext) runMonsterPhase() bool {
	tc.setPhase(game.PhaseMonsterAction)
	for mi := range tc.s.Monsters {
		m := &tc.s.Monsters[mi]
		if !m.IsAlive() {
			continue
		}
		if m.Stunned() {
			tc.add(fmt.Sprintf("%s is stunned and loses its action", m.Name), game.LogDebuff)
			m.Intent = ""
			m.TickActionTracked()
			continue
		}
		for n := 0; n < actionsFor(m); n++ {
			m = &tc.s.Monsters[mi]
			if !m.IsAlive() || tc.s.AllPlayersDead() {
				break
			}
			ability, ok := m.Ability(m.Intent)
			if n > 0 || !ok {
				ability = chooseAbility(m, &tc.s.RNG)
			}
			tc.monsterAct(mi, ability)
			if tc.checkTerminal() {
				return true
			}
		}
		m = &tc.s.Monsters[mi]
		m.Intent = ""
		m.TickActionTracked()
	}
	return false
}

// monsterAct resolves one ability. The player target is the aggro winner
// at the moment the ability fires.
func (tc *turnContext) monsterAct(mi int, ability game.MonsterAbility) {
	m := &tc.s.Monsters[mi]
	actorID := m.ID
	tc.add(fmt.Sprintf("%s uses %s", m.Name, ability.Name), game.LogInfo)
	tc.toast(fmt.Sprintf("%s: %s", m.Name, ability.Name))
	tc.animate(actorID, game.AnimationAttack)

	playerTarget, hasPlayer := MonsterTarget(tc.s.Players)
	for _, eff := range ability.Effects {
		eff = tc.enrage(&tc.s.Monsters[mi], eff)
		target := ""
		switch eff.Target {
		case game.TargetPlayer:
			if !hasPlayer || tc.fallen(playerTarget) {
				continue
			}
			target = playerTarget
		case game.TargetAlly:
			target = allyTarget(tc.s.Monsters)
			if target == "" {
				continue
			}
		}
		if _, err := tc.apply(eff, actorID, target); err != nil {
			tc.addSub(fmt.Sprintf("%s could not resolve %s: %v", tc.s.Monsters[mi].Name, eff.Type, err), game.LogWarning)
		}
	}
	tc.clearAnimation(actorID, game.AnimationAttack)
}
