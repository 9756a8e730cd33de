package engine

import (
	"fmt"

	"github.com/ericogr/dungeon-party/internal/dice"
	"github.com/ericogr/dungeon-party/internal/game"
)

// rollAggro commits a card's weight: base aggro accumulates across the
// encounter and the d20 is re-rolled for every committed card.
func rollAggro(p *game.Player, card game.Card, r *dice.Roller) {
	p.BaseAggro += card.Aggro
	p.DiceAggro = r.D20()
}

// MonsterTarget picks the player a monster's single-target effects hit:
// a taunting player first, then the strict highest base+dice aggro with
// ties going to the earlier player. Stealthed players are skipped unless
// every living player is stealthed.
func MonsterTarget(players []game.Player) (string, bool) {
	for i := range players {
		p := &players[i]
		if p.IsAlive() && !p.Stealthed() && p.HasStatus(game.EffectTaunt) {
			return p.ID, true
		}
	}
	best := -1
	for i := range players {
		p := &players[i]
		if !p.IsAlive() || p.Stealthed() {
			continue
		}
		if best < 0 || p.TotalAggro() > players[best].TotalAggro() {
			best = i
		}
	}
	if best >= 0 {
		return players[best].ID, true
	}
	for i := range players {
		if players[i].IsAlive() {
			return players[i].ID, true
		}
	}
	return "", false
}

// LegalTargets lists the ids a player may pick for the card's single
// target, in definition order. Cards without a single target return nil.
func LegalTargets(s *game.State, card game.Card) []string {
	kind, ok := card.TargetKind()
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(s.Players)+len(s.Monsters))
	switch kind {
	case game.TargetAlly:
		for i := range s.Players {
			if s.Players[i].IsAlive() {
				ids = append(ids, s.Players[i].ID)
			}
		}
	case game.TargetMonster:
		visible := make([]string, 0, len(s.Monsters))
		for i := range s.Monsters {
			m := &s.Monsters[i]
			if !m.IsAlive() {
				continue
			}
			ids = append(ids, m.ID)
			if !m.Stealthed() {
				visible = append(visible, m.ID)
			}
		}
		if len(visible) > 0 {
			ids = visible
		}
	}
	return ids
}

// NormalizeTarget returns targetID when it is still legal, otherwise the
// first legal target of the same kind. ok is false when the card needs a
// target and none is left.
func NormalizeTarget(s *game.State, card game.Card, targetID string) (string, bool) {
	if _, needs := card.TargetKind(); !needs {
		return "", true
	}
	legal := LegalTargets(s, card)
	if len(legal) == 0 {
		return "", false
	}
	if contains(legal, targetID) {
		return targetID, true
	}
	return legal[0], true
}

func (tc *turnContext) rollAggro(pi int, card game.Card) {
	p := &tc.s.Players[pi]
	rollAggro(p, card, &tc.s.RNG)
	tc.add(fmt.Sprintf("%s rolls %d for aggro (total %d)", p.Name, p.DiceAggro, p.TotalAggro()), game.LogInfo)
}
