package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/directive"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/keys"
	"github.com/ericogr/dungeon-party/internal/logging"
)

type rawContent struct {
	Rules        game.Rules              `yaml:"rules"`
	Classes      []game.ClassDef         `yaml:"classes"`
	Cards        []game.Card             `yaml:"cards"`
	Scaling      map[string]game.Scaling `yaml:"scaling"`
	Monsters     []game.MonsterDef       `yaml:"monsters"`
	Encounters   []game.EncounterDef     `yaml:"encounters"`
	Environments []game.Environment      `yaml:"environments"`
}

// Loaded is the validated content plus the cards whose scaling note could
// not be parsed. Those cards play with no bonus and the engine reports the
// problem in the game log.
type Loaded struct {
	game.Content
	DirectiveErrors map[string]string
}

// applyDefaults fills rule values the file left out.
func applyDefaults(r *game.Rules) {
	if r.HandSize == 0 {
		r.HandSize = 5
	}
	if r.FinalRound == 0 {
		r.FinalRound = 3
	}
	if r.EnragedMultiplier == 0 {
		r.EnragedMultiplier = 1.5
	}
	if r.RegeneratingAmount == 0 {
		r.RegeneratingAmount = 5
	}
	if r.ShieldedStep == 0 {
		r.ShieldedStep = 5
	}
	if r.ShieldedCap == 0 {
		r.ShieldedCap = 0.25
	}
}

// LoadContent reads and validates the content file at path.
func LoadContent(path string) (*Loaded, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	l, err := ParseContent(b)
	if err != nil {
		return nil, fmt.Errorf("content file %s: %w", path, err)
	}
	return l, nil
}

// ParseContent validates raw YAML content. Cross-entry references (decks,
// encounters, environments) are checked here so the engine can trust them.
func ParseContent(b []byte) (*Loaded, error) {
	var rc rawContent
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	applyDefaults(&rc.Rules)
	if rc.Rules.HandSize < 1 {
		return nil, fmt.Errorf("rules.hand_size must be positive")
	}

	out := &Loaded{
		Content: game.Content{
			Rules:        rc.Rules,
			Classes:      make(map[game.Class]game.ClassDef, len(rc.Classes)),
			Cards:        make(map[string]game.Card, len(rc.Cards)),
			Scaling:      make(map[string]game.Scaling),
			Monsters:     make(map[string]game.MonsterDef, len(rc.Monsters)),
			Encounters:   make(map[int]game.EncounterDef, len(rc.Encounters)),
			Environments: make(map[string]game.Environment, len(rc.Environments)),
		},
		DirectiveErrors: map[string]string{},
	}

	for _, env := range rc.Environments {
		if env.Name == "" {
			return nil, fmt.Errorf("environment entry missing 'name'")
		}
		if _, dup := out.Environments[env.Name]; dup {
			return nil, fmt.Errorf("duplicate environment '%s'", env.Name)
		}
		for t, m := range env.DotModifiers {
			if !t.IsDoT() {
				return nil, fmt.Errorf("environment '%s': '%s' is not a damage-over-time type", env.Name, t)
			}
			if m < 0 {
				return nil, fmt.Errorf("environment '%s': negative modifier for '%s'", env.Name, t)
			}
		}
		out.Environments[env.Name] = env
	}

	for _, c := range rc.Cards {
		c.ID = keys.Fill(c.ID, c.Name)
		if err := validateCard(c); err != nil {
			return nil, err
		}
		if _, dup := out.Cards[c.ID]; dup {
			return nil, fmt.Errorf("duplicate card id '%s'", c.ID)
		}
		out.Cards[c.ID] = c
	}

	for _, cl := range rc.Classes {
		if err := validateClass(cl, out.Cards); err != nil {
			return nil, err
		}
		if _, dup := out.Classes[cl.Name]; dup {
			return nil, fmt.Errorf("duplicate class '%s'", cl.Name)
		}
		out.Classes[cl.Name] = cl
	}
	for _, c := range out.Cards {
		if _, ok := out.Classes[c.Class]; !ok {
			return nil, fmt.Errorf("card '%s': unknown class '%s'", c.ID, c.Class)
		}
	}

	if err := buildScaling(out, rc.Scaling); err != nil {
		return nil, err
	}

	for _, m := range rc.Monsters {
		m.ID = keys.Fill(m.ID, m.Name)
		if err := validateMonster(m); err != nil {
			return nil, err
		}
		if _, dup := out.Monsters[m.ID]; dup {
			return nil, fmt.Errorf("duplicate monster id '%s'", m.ID)
		}
		out.Monsters[m.ID] = m
	}

	for _, e := range rc.Encounters {
		if e.Round < 1 || e.Round > rc.Rules.FinalRound {
			return nil, fmt.Errorf("encounter round %d outside 1..%d", e.Round, rc.Rules.FinalRound)
		}
		if _, dup := out.Encounters[e.Round]; dup {
			return nil, fmt.Errorf("duplicate encounter for round %d", e.Round)
		}
		if len(e.Monsters) == 0 {
			return nil, fmt.Errorf("encounter round %d has no monsters", e.Round)
		}
		for _, em := range e.Monsters {
			if _, ok := out.Monsters[em.Monster]; !ok {
				return nil, fmt.Errorf("encounter round %d: unknown monster '%s'", e.Round, em.Monster)
			}
			if !em.Elite.Valid() {
				return nil, fmt.Errorf("encounter round %d: unknown elite modifier '%s'", e.Round, em.Elite)
			}
		}
		if e.Environment != "" {
			if _, ok := out.Environments[e.Environment]; !ok {
				return nil, fmt.Errorf("encounter round %d: unknown environment '%s'", e.Round, e.Environment)
			}
		}
		out.Encounters[e.Round] = e
	}
	for r := 1; r <= rc.Rules.FinalRound; r++ {
		if _, ok := out.Encounters[r]; !ok {
			return nil, fmt.Errorf("missing encounter for round %d", r)
		}
	}

	return out, nil
}

// buildScaling fills the side-table. Structured entries win; cards without
// one fall back to the note in their description, parsed once here.
func buildScaling(out *Loaded, structured map[string]game.Scaling) error {
	for id, s := range structured {
		c, ok := out.Cards[id]
		if !ok {
			return fmt.Errorf("scaling for unknown card '%s'", id)
		}
		if err := validateScaling(c, s, out.Classes[c.Class]); err != nil {
			return err
		}
		out.Scaling[id] = s
		if _, hasNote := directive.Extract(c.Description); !hasNote {
			c.Description = strings.TrimSpace(c.Description + " " + directive.Render(s))
			out.Cards[id] = c
		}
	}
	for id, c := range out.Cards {
		if _, ok := out.Scaling[id]; ok {
			continue
		}
		s, found, err := directive.FromDescription(c)
		if !found {
			continue
		}
		if err == nil {
			err = validateScaling(c, s, out.Classes[c.Class])
		}
		if err != nil {
			out.DirectiveErrors[id] = err.Error()
			logging.Warn("card scaling note could not be parsed; no bonus will apply", logging.Fields{
				constants.LogFieldCardID: id,
				"error":                  err.Error(),
			})
			continue
		}
		out.Scaling[id] = s
	}
	return nil
}

func validateScaling(c game.Card, s game.Scaling, cl game.ClassDef) error {
	if s.Gauge != cl.Gauge {
		return fmt.Errorf("card '%s': scaling gauge '%s' does not match class gauge '%s'", c.ID, s.Gauge, cl.Gauge)
	}
	allowed := map[game.Tier]bool{}
	switch s.Gauge {
	case game.GaugeFaith:
		allowed[game.TierMid], allowed[game.TierTop] = true, true
	case game.GaugeMana:
		allowed[game.TierDepowered], allowed[game.TierEmpowered] = true, true
	}
	for tier, effects := range s.Tiers {
		if !allowed[tier] {
			return fmt.Errorf("card '%s': tier '%s' not valid for gauge '%s'", c.ID, tier, s.Gauge)
		}
		for _, e := range effects {
			if err := validateEffect(e, playerTargets); err != nil {
				return fmt.Errorf("card '%s' tier '%s': %w", c.ID, tier, err)
			}
			if kind, ok := c.TargetKind(); e.Target.Single() && (!ok || kind != e.Target) {
				return fmt.Errorf("card '%s' tier '%s': bonus target '%s' differs from the card's target", c.ID, tier, e.Target)
			}
		}
	}
	return nil
}

var playerTargets = map[game.TargetKind]bool{
	game.TargetSelf:        true,
	game.TargetAlly:        true,
	game.TargetMonster:     true,
	game.TargetAllAllies:   true,
	game.TargetAllMonsters: true,
}

var monsterTargets = map[game.TargetKind]bool{
	game.TargetSelf:       true,
	game.TargetAlly:       true,
	game.TargetAllAllies:  true,
	game.TargetPlayer:     true,
	game.TargetAllPlayers: true,
}

func validateEffect(e game.Effect, targets map[game.TargetKind]bool) error {
	if !e.Type.Valid() {
		return fmt.Errorf("unknown effect type '%s'", e.Type)
	}
	if !targets[e.Target] {
		return fmt.Errorf("effect '%s': target '%s' not allowed", e.Type, e.Target)
	}
	if e.Value < 0 {
		return fmt.Errorf("effect '%s': negative value", e.Type)
	}
	if e.Type.IsStatus() && e.Duration <= 0 {
		return fmt.Errorf("effect '%s': status effects need a positive duration", e.Type)
	}
	return nil
}

func validateCard(c game.Card) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("card entry missing 'id' and 'name'")
	}
	if c.Rarity.Rank() == 0 {
		return fmt.Errorf("card '%s': unknown rarity '%s'", c.ID, c.Rarity)
	}
	if len(c.Effects) == 0 {
		return fmt.Errorf("card '%s': no effects", c.ID)
	}
	var single game.TargetKind
	for _, e := range c.Effects {
		if err := validateEffect(e, playerTargets); err != nil {
			return fmt.Errorf("card '%s': %w", c.ID, err)
		}
		if e.Target.Single() {
			if single != "" && single != e.Target {
				return fmt.Errorf("card '%s': mixes '%s' and '%s' single targets", c.ID, single, e.Target)
			}
			single = e.Target
		}
	}
	return nil
}

func validateClass(cl game.ClassDef, cards map[string]game.Card) error {
	if cl.Name == "" {
		return fmt.Errorf("class entry missing 'name'")
	}
	if cl.MaxHP <= 0 {
		return fmt.Errorf("class '%s': max_hp must be positive", cl.Name)
	}
	if cl.MaxResource <= 0 {
		return fmt.Errorf("class '%s': max_resource must be positive", cl.Name)
	}
	switch cl.Gain.Mode {
	case game.ResourceFromDamage, game.ResourceFromHealing, game.ResourceFixed:
	default:
		return fmt.Errorf("class '%s': unknown resource_gain mode '%s'", cl.Name, cl.Gain.Mode)
	}
	switch cl.Gauge {
	case game.GaugeNone:
	case game.GaugeFaith, game.GaugeMana:
		if cl.MaxMana <= 0 {
			return fmt.Errorf("class '%s': gauge '%s' needs max_mana", cl.Name, cl.Gauge)
		}
	default:
		return fmt.Errorf("class '%s': unknown gauge '%s'", cl.Name, cl.Gauge)
	}
	for _, e := range cl.Special.Effects {
		if err := validateEffect(e, playerTargets); err != nil {
			return fmt.Errorf("class '%s' special: %w", cl.Name, err)
		}
		if e.Target.Single() {
			return fmt.Errorf("class '%s' special: single targets are not supported", cl.Name)
		}
	}
	if len(cl.Deck) == 0 {
		return fmt.Errorf("class '%s': empty deck", cl.Name)
	}
	for _, id := range cl.Deck {
		c, ok := cards[id]
		if !ok {
			return fmt.Errorf("class '%s': deck references unknown card '%s'", cl.Name, id)
		}
		if c.Class != cl.Name {
			return fmt.Errorf("class '%s': deck card '%s' belongs to '%s'", cl.Name, id, c.Class)
		}
	}
	return nil
}

func validateMonster(m game.MonsterDef) error {
	if m.ID == "" {
		return fmt.Errorf("monster entry missing 'id' and 'name'")
	}
	if m.MaxHP <= 0 {
		return fmt.Errorf("monster '%s': max_hp must be positive", m.ID)
	}
	if len(m.Abilities) == 0 {
		return fmt.Errorf("monster '%s': no abilities", m.ID)
	}
	for _, a := range m.Abilities {
		for _, face := range a.Roll {
			if face < 1 || face > 6 {
				return fmt.Errorf("monster '%s' ability '%s': roll face %d outside 1..6", m.ID, a.Name, face)
			}
		}
		for _, e := range a.Effects {
			if err := validateEffect(e, monsterTargets); err != nil {
				return fmt.Errorf("monster '%s' ability '%s': %w", m.ID, a.Name, err)
			}
		}
	}
	return nil
}
