package directive

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ericogr/dungeon-party/internal/game"
)

var (
	ErrUnknownTier   = errors.New("directive: unknown tier")
	ErrUnknownEffect = errors.New("directive: unknown effect type")
	ErrUnknownTarget = errors.New("directive: unknown target")
	ErrMixedGauges   = errors.New("directive: clauses use more than one gauge")
)

var bracketed = regexp.MustCompile(`\[((?:Faith|Mana)\b[^\]]*)\]`)

// Extract returns the bracketed scaling note of a description, if any.
func Extract(description string) (string, bool) {
	m := bracketed.FindStringSubmatch(description)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Parse parses the body of a scaling note.
func Parse(text string) (*Directive, error) {
	return parser.ParseString("", text)
}

// Resolve turns a parsed note into typed scaling for card. A bonus without
// an explicit target inherits the target of the card's first effect of the
// same type, falling back to the card's first effect.
func Resolve(card game.Card, d *Directive) (game.Scaling, error) {
	out := game.Scaling{Tiers: map[game.Tier][]game.Effect{}}
	for _, c := range d.Clauses {
		gauge := game.Gauge(strings.ToLower(c.Gauge))
		if out.Gauge != game.GaugeNone && out.Gauge != gauge {
			return game.Scaling{}, ErrMixedGauges
		}
		out.Gauge = gauge
		tier, err := tierFor(gauge, c.Tier)
		if err != nil {
			return game.Scaling{}, err
		}
		for _, b := range c.Bonuses {
			eff, err := bonusEffect(card, b)
			if err != nil {
				return game.Scaling{}, err
			}
			out.Tiers[tier] = append(out.Tiers[tier], eff)
		}
	}
	return out, nil
}

// FromDescription extracts, parses and resolves the note of card. ok is
// false when the description carries no note at all.
func FromDescription(card game.Card) (s game.Scaling, ok bool, err error) {
	text, found := Extract(card.Description)
	if !found {
		return game.Scaling{}, false, nil
	}
	d, err := Parse(text)
	if err != nil {
		return game.Scaling{}, true, fmt.Errorf("card %s: %w", card.ID, err)
	}
	s, err = Resolve(card, d)
	if err != nil {
		return game.Scaling{}, true, fmt.Errorf("card %s: %w", card.ID, err)
	}
	return s, true, nil
}

func tierFor(gauge game.Gauge, raw string) (game.Tier, error) {
	switch gauge {
	case game.GaugeFaith:
		switch raw {
		case "50%":
			return game.TierMid, nil
		case "100%":
			return game.TierTop, nil
		}
	case game.GaugeMana:
		switch strings.ToLower(raw) {
		case "empowered":
			return game.TierEmpowered, nil
		case "depowered":
			return game.TierDepowered, nil
		}
	}
	return "", fmt.Errorf("%w: %s %s", ErrUnknownTier, gauge, raw)
}

func bonusEffect(card game.Card, b *Bonus) (game.Effect, error) {
	typ := game.EffectType(strings.ToLower(b.Type))
	if !typ.Valid() {
		return game.Effect{}, fmt.Errorf("%w: %s", ErrUnknownEffect, b.Type)
	}
	eff := game.Effect{Type: typ, Value: b.Value, Duration: b.Duration}
	if b.Target != "" {
		eff.Target = game.TargetKind(b.Target)
		if !playerTarget(eff.Target) {
			return game.Effect{}, fmt.Errorf("%w: %s", ErrUnknownTarget, b.Target)
		}
		return eff, nil
	}
	eff.Target = game.TargetSelf
	for _, e := range card.Effects {
		if e.Type == typ {
			eff.Target = e.Target
			return eff, nil
		}
	}
	if len(card.Effects) > 0 {
		eff.Target = card.Effects[0].Target
	}
	return eff, nil
}

func playerTarget(k game.TargetKind) bool {
	switch k {
	case game.TargetSelf, game.TargetAlly, game.TargetMonster, game.TargetAllAllies, game.TargetAllMonsters:
		return true
	}
	return false
}
