package engine

import (
	"fmt"

	"github.com/ericogr/dungeon-party/internal/dice"
	"github.com/ericogr/dungeon-party/internal/game"
)

// chooseAbility rolls a d6 against the ability table. No match falls back
// to the first ability.
func chooseAbility(m *game.Monster, r *dice.Roller) game.MonsterAbility {
	face := r.D6()
	for _, a := range m.Abilities {
		for _, f := range a.Roll {
			if f == face {
				return a
			}
		}
	}
	return m.Abilities[0]
}

// planIntents pre-commits the first action of every living monster so
// clients can show it during the players' phase.
func (tc *turnContext) planIntents() {
	for i := range tc.s.Monsters {
		m := &tc.s.Monsters[i]
		if !m.IsAlive() || len(m.Abilities) == 0 {
			m.Intent = ""
			continue
		}
		m.Intent = chooseAbility(m, &tc.s.RNG).Name
		tc.addSub(fmt.Sprintf("%s prepares %s", m.Name, m.Intent), game.LogInfo)
	}
}

// allyTarget picks the most wounded living monster, first on ties.
func allyTarget(monsters []game.Monster) string {
	best := -1
	for i := range monsters {
		m := &monsters[i]
		if !m.IsAlive() {
			continue
		}
		if best < 0 || m.MaxHP-m.HP > monsters[best].MaxHP-monsters[best].HP {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return monsters[best].ID
}
