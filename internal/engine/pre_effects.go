package engine

import (
	"fmt"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/logging"
)

// preparedCard is a card after enhancement and class scaling, ready to be
// dispatched effect by effect.
type preparedCard struct {
	effects  []game.Effect
	enhanced bool
	tier     game.Tier
}

// tierFor maps a gauge fill onto a scaling tier. Faith: below half is base,
// half up to full is mid, full is top. Mana: below half is depowered.
func tierFor(gauge game.Gauge, value, limit int) game.Tier {
	if limit <= 0 {
		return game.TierBase
	}
	pct := value * 100 / limit
	switch gauge {
	case game.GaugeFaith:
		switch {
		case pct >= 100:
			return game.TierTop
		case pct >= 50:
			return game.TierMid
		}
		return game.TierBase
	case game.GaugeMana:
		if pct >= 50 {
			return game.TierEmpowered
		}
		return game.TierDepowered
	}
	return game.TierBase
}

// prepareCard applies enhancement and then class scaling. Enhancement
// bonuses only touch the card's own effects; tier bonuses are appended.
func (tc *turnContext) prepareCard(pi int, card game.Card, enhance bool) preparedCard {
	p := &tc.s.Players[pi]
	cl := tc.e.content.Classes[p.Class]
	out := preparedCard{effects: make([]game.Effect, len(card.Effects)), tier: game.TierBase}
	copy(out.effects, card.Effects)

	if enhance && p.MaxResource > 0 && p.Resource == p.MaxResource {
		p.Resource = 0
		out.enhanced = true
		for i := range out.effects {
			switch out.effects[i].Type {
			case game.EffectDamage:
				out.effects[i].Value += cl.Enhancement.DamageBonus
			case game.EffectHeal:
				out.effects[i].Value += cl.Enhancement.HealBonus
			case game.EffectShield:
				out.effects[i].Value += cl.Enhancement.ShieldBonus
			}
		}
		tc.addSub(fmt.Sprintf("%s empties the gauge to enhance %s", p.Name, card.Name), game.LogBuff)
	}

	if msg, broken := tc.e.directiveErrors[card.ID]; broken {
		logging.Warn("playing card with unparsable scaling note", logging.Fields{
			constants.LogFieldGameID: tc.s.ID,
			constants.LogFieldCardID: card.ID,
			"error":                  msg,
		})
		tc.addSub(fmt.Sprintf("%s has an unreadable scaling note; no bonus applied", card.Name), game.LogWarning)
		return out
	}

	scaling, ok := tc.e.content.Scaling[card.ID]
	if !ok || scaling.Gauge == game.GaugeNone {
		return out
	}
	out.tier = tierFor(scaling.Gauge, p.Mana, p.MaxMana)
	bonus := scaling.Tiers[out.tier]
	if len(bonus) == 0 {
		return out
	}
	out.effects = append(out.effects, bonus...)
	tc.addSub(fmt.Sprintf("%s channels %s (%s tier)", p.Name, scaling.Gauge, out.tier), game.LogBuff)

	if (out.tier == game.TierTop || out.tier == game.TierEmpowered) && cl.TopTierCost > 0 {
		p.Mana = clamp(p.Mana-cl.TopTierCost, 0, p.MaxMana)
	}
	return out
}
