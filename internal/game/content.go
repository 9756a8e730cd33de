package game

// Gauge names the secondary pool a class scales its cards with.
type Gauge string

const (
	GaugeNone  Gauge = ""
	GaugeFaith Gauge = "faith"
	GaugeMana  Gauge = "mana"
)

// Tier is a scaling band of a gauge.
type Tier string

const (
	TierBase      Tier = "base"
	TierMid       Tier = "mid"
	TierTop       Tier = "top"
	TierDepowered Tier = "depowered"
	TierEmpowered Tier = "empowered"
)

// Scaling holds the bonus effects a card gains per tier. Bonuses are added
// to the card's base effects, never substituted for them.
type Scaling struct {
	Gauge Gauge             `json:"gauge" yaml:"gauge"`
	Tiers map[Tier][]Effect `json:"tiers" yaml:"tiers"`
}

// ResourceMode picks the formula for special-resource gain per card.
type ResourceMode string

const (
	ResourceFromDamage  ResourceMode = "damage"
	ResourceFixed       ResourceMode = "fixed"
	ResourceFromHealing ResourceMode = "heal"
)

type ResourceGain struct {
	Mode   ResourceMode `yaml:"mode"`
	Ratio  float64      `yaml:"ratio"`
	Amount int          `yaml:"amount"`
}

// Enhancement is the flat bonus a full resource gauge buys for one card.
type Enhancement struct {
	DamageBonus int `yaml:"damage_bonus"`
	HealBonus   int `yaml:"heal_bonus"`
	ShieldBonus int `yaml:"shield_bonus"`
}

type Special struct {
	Name    string   `yaml:"name"`
	Effects []Effect `yaml:"effects"`
}

type ClassDef struct {
	Name         Class        `yaml:"name"`
	MaxHP        int          `yaml:"max_hp"`
	MaxResource  int          `yaml:"max_resource"`
	Gain         ResourceGain `yaml:"resource_gain"`
	Enhancement  Enhancement  `yaml:"enhancement"`
	Special      Special      `yaml:"special"`
	Gauge        Gauge        `yaml:"gauge"`
	MaxMana      int          `yaml:"max_mana"`
	StartMana    int          `yaml:"start_mana"`
	GaugePerCard int          `yaml:"gauge_per_card"`
	// TopTierCost is spent from the gauge when the top Faith tier or the
	// Empowered Mana tier fires.
	TopTierCost int      `yaml:"top_tier_cost"`
	Deck        []string `yaml:"deck"`
}

type MonsterDef struct {
	ID         string           `yaml:"id"`
	Name       string           `yaml:"name"`
	MaxHP      int              `yaml:"max_hp"`
	Shield     int              `yaml:"shield"`
	Abilities  []MonsterAbility `yaml:"abilities"`
	GoldReward int              `yaml:"gold_reward"`
	XPReward   int              `yaml:"xp_reward"`
}

type EncounterMonster struct {
	Monster string        `yaml:"monster"`
	Elite   EliteModifier `yaml:"elite"`
}

// EncounterDef describes the monster wave of one round.
type EncounterDef struct {
	Round       int                `yaml:"round"`
	Monsters    []EncounterMonster `yaml:"monsters"`
	Environment string             `yaml:"environment"`
}

type Rules struct {
	HandSize           int     `yaml:"hand_size"`
	FinalRound         int     `yaml:"final_round"`
	ShopEvery          int     `yaml:"shop_every"`
	EnragedMultiplier  float64 `yaml:"enraged_multiplier"`
	RegeneratingAmount int     `yaml:"regenerating_amount"`
	ShieldedStep       int     `yaml:"shielded_step"`
	ShieldedCap        float64 `yaml:"shielded_cap"`
}

// Content is the validated, immutable catalogue a game is played with.
type Content struct {
	Rules        Rules
	Classes      map[Class]ClassDef
	Cards        map[string]Card
	Scaling      map[string]Scaling
	Monsters     map[string]MonsterDef
	Encounters   map[int]EncounterDef
	Environments map[string]Environment
}

// Encounter returns the wave configured for round.
func (c *Content) Encounter(round int) (EncounterDef, bool) {
	e, ok := c.Encounters[round]
	return e, ok
}

// IsShopRound reports whether clearing round leads to the shop instead of
// the reward screen.
func (r Rules) IsShopRound(round int) bool {
	return r.ShopEvery > 0 && round%r.ShopEvery == 0
}
