package engine

import (
	"fmt"
	"math"

	"github.com/ericogr/dungeon-party/internal/game"
)

// playCard runs the card pipeline for one player: enhancement, scaling,
// effect dispatch, resource accounting, then hand to discard and the
// player's action-tracked tick.
func (tc *turnContext) playCard(pi int, cardID, targetID string, enhance bool) error {
	p := &tc.s.Players[pi]
	hi := p.HandIndex(cardID)
	if hi < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, cardID)
	}
	card := p.Hand[hi]
	if _, needs := card.TargetKind(); needs && targetID == "" {
		return ErrTargetRequired
	}
	actorID := p.ID

	tc.add(fmt.Sprintf("%s plays %s", p.Name, card.Name), game.LogInfo)
	tc.toast(fmt.Sprintf("%s: %s", p.Name, card.Name))
	tc.animate(actorID, game.AnimationCast)

	prepared := tc.prepareCard(pi, card, enhance)
	dealt, healed := 0, 0
	for _, eff := range prepared.effects {
		if eff.Target.Single() && tc.fallen(targetID) {
			tc.addSub(fmt.Sprintf("%s fizzles: target is gone", eff.Type), game.LogInfo)
			continue
		}
		res, err := tc.apply(eff, actorID, targetID)
		if err != nil {
			return err
		}
		dealt += res.DamageDealt
		healed += res.HealingDone
	}
	tc.clearAnimation(actorID, game.AnimationCast)

	p = &tc.s.Players[pi]
	cl := tc.e.content.Classes[p.Class]
	if !prepared.enhanced {
		gain := 0
		switch cl.Gain.Mode {
		case game.ResourceFromDamage:
			gain = int(math.Floor(float64(dealt) * cl.Gain.Ratio))
		case game.ResourceFixed:
			gain = cl.Gain.Amount
		case game.ResourceFromHealing:
			gain = int(math.Floor(float64(healed) * cl.Gain.Ratio))
		}
		p.Resource = clamp(p.Resource+gain, 0, p.MaxResource)
	}
	if cl.Gauge != game.GaugeNone {
		p.Mana = clamp(p.Mana+cl.GaugePerCard, 0, p.MaxMana)
	}

	discard(p, p.HandIndex(cardID))
	p.TickActionTracked()
	return nil
}

// fallen reports a known combatant that is no longer alive. Unknown ids are
// left for the applicator to reject.
func (tc *turnContext) fallen(id string) bool {
	if i := tc.s.PlayerIndex(id); i >= 0 {
		return !tc.s.Players[i].IsAlive()
	}
	if i := tc.s.MonsterIndex(id); i >= 0 {
		return !tc.s.Monsters[i].IsAlive()
	}
	return false
}
