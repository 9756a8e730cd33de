package engine

import (
	"fmt"
	"math"

	"github.com/ericogr/dungeon-party/internal/game"
)

// actionsFor returns how many actions an elite takes in its slot.
func actionsFor(m *game.Monster) int {
	if m.Elite == game.EliteFast {
		return 2
	}
	return 1
}

// enrage scales an outgoing damage effect before strength, weakness and
// shield are considered.
func (tc *turnContext) enrage(m *game.Monster, eff game.Effect) game.Effect {
	if m.Elite != game.EliteEnraged || eff.Type != game.EffectDamage {
		return eff
	}
	eff.Value = int(math.Floor(float64(eff.Value) * tc.e.content.Rules.EnragedMultiplier))
	return eff
}

// eliteUpkeep runs during debuff resolution for living monsters.
func (tc *turnContext) eliteUpkeep(mi int) {
	m := &tc.s.Monsters[mi]
	if !m.IsAlive() {
		return
	}
	rules := tc.e.content.Rules
	switch m.Elite {
	case game.EliteRegenerating:
		healed := minInt(rules.RegeneratingAmount, m.MaxHP-m.HP)
		if healed > 0 {
			m.HP += healed
			tc.addSub(fmt.Sprintf("%s regenerates %d HP", m.Name, healed), game.LogHeal)
			tc.events = append(tc.events, game.Event{Kind: game.EventDamageNumber, Number: &game.DamageNumber{TargetID: m.ID, Value: healed, Type: game.NumberHeal}})
		}
	case game.EliteShielded:
		limit := int(math.Floor(float64(m.MaxHP) * rules.ShieldedCap))
		if m.Shield < limit {
			gain := minInt(rules.ShieldedStep, limit-m.Shield)
			m.Shield += gain
			tc.addSub(fmt.Sprintf("%s restores %d shield", m.Name, gain), game.LogShield)
		}
	}
}
