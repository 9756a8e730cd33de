package game

import "github.com/ericogr/dungeon-party/internal/dice"

// Class names a hero class. Classes are defined in the content file, so the
// engine never switches on concrete class names.
type Class string

// Rarity ranks card power: common < uncommon < rare < legendary.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Rank returns the ordinal of a rarity (0 for unknown values).
func (r Rarity) Rank() int {
	switch r {
	case RarityCommon:
		return 1
	case RarityUncommon:
		return 2
	case RarityRare:
		return 3
	case RarityLegendary:
		return 4
	}
	return 0
}

// EffectType is the closed vocabulary of card and ability effects.
type EffectType string

const (
	EffectDamage  EffectType = "damage"
	EffectHeal    EffectType = "heal"
	EffectShield  EffectType = "shield"
	EffectCleanse EffectType = "cleanse"

	// Buffs
	EffectStrength      EffectType = "strength"
	EffectTaunt         EffectType = "taunt"
	EffectStealth       EffectType = "stealth"
	EffectRegeneration  EffectType = "regeneration"
	EffectSurviveLethal EffectType = "survive_lethal"

	// Debuffs
	EffectPoison   EffectType = "poison"
	EffectBurn     EffectType = "burn"
	EffectIce      EffectType = "ice"
	EffectWeakness EffectType = "weakness"
	EffectStun     EffectType = "stun"
)

var buffTypes = map[EffectType]bool{
	EffectStrength:      true,
	EffectTaunt:         true,
	EffectStealth:       true,
	EffectRegeneration:  true,
	EffectSurviveLethal: true,
}

var debuffTypes = map[EffectType]bool{
	EffectPoison:   true,
	EffectBurn:     true,
	EffectIce:      true,
	EffectWeakness: true,
	EffectStun:     true,
}

func (t EffectType) IsBuff() bool   { return buffTypes[t] }
func (t EffectType) IsDebuff() bool { return debuffTypes[t] }
func (t EffectType) IsStatus() bool { return t.IsBuff() || t.IsDebuff() }

// IsDoT reports whether the status deals damage at debuff resolution.
func (t EffectType) IsDoT() bool {
	return t == EffectPoison || t == EffectBurn || t == EffectIce
}

// Hostile reports whether the effect harms its target. Stealth hides
// combatants only from hostile area effects.
func (t EffectType) Hostile() bool {
	return t == EffectDamage || t.IsDebuff()
}

// Valid reports whether t belongs to the effect vocabulary.
func (t EffectType) Valid() bool {
	switch t {
	case EffectDamage, EffectHeal, EffectShield, EffectCleanse:
		return true
	}
	return t.IsStatus()
}

// Tracking selects which sweep decrements a status effect.
type Tracking string

const (
	// TrackTurn effects are decremented once by the end-of-turn debuff sweep.
	TrackTurn Tracking = "turn"
	// TrackAction effects are decremented once per owner action opportunity.
	TrackAction Tracking = "action"
)

// DefaultTracking returns the tracking kind a freshly applied status uses.
func (t EffectType) DefaultTracking() Tracking {
	if t == EffectStun {
		return TrackAction
	}
	return TrackTurn
}

// TargetKind is relative to the acting combatant's side.
type TargetKind string

const (
	TargetSelf        TargetKind = "self"
	TargetAlly        TargetKind = "ally"
	TargetMonster     TargetKind = "monster"
	TargetAllAllies   TargetKind = "allAllies"
	TargetAllMonsters TargetKind = "allMonsters"

	// Monster-ability targets. A single "player" target is chosen by aggro.
	TargetPlayer     TargetKind = "player"
	TargetAllPlayers TargetKind = "allPlayers"
)

// Single reports whether the kind needs one explicit target id.
func (k TargetKind) Single() bool {
	return k == TargetAlly || k == TargetMonster || k == TargetPlayer
}

// Effect is one entry of a card or ability.
type Effect struct {
	Type     EffectType `json:"type" yaml:"type"`
	Value    int        `json:"value" yaml:"value"`
	Target   TargetKind `json:"target" yaml:"target"`
	Duration int        `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// StatusEffect is a timed buff or debuff carried by a combatant.
type StatusEffect struct {
	Type     EffectType `json:"type"`
	Value    int        `json:"value"`
	Duration int        `json:"duration"`
	Source   string     `json:"source"`
	Tracking Tracking   `json:"tracking"`
}

// UseActionTracking reports whether the owner's action opportunities drive
// the duration instead of the end-of-turn sweep.
func (s StatusEffect) UseActionTracking() bool { return s.Tracking == TrackAction }

// Card is an immutable template. Hands, decks and discards hold copies.
type Card struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Class       Class    `json:"class" yaml:"class"`
	Rarity      Rarity   `json:"rarity" yaml:"rarity"`
	Aggro       int      `json:"aggro" yaml:"aggro"`
	Effects     []Effect `json:"effects" yaml:"effects"`
	Description string   `json:"description" yaml:"description"`
}

// TargetKind returns the single-target kind the card needs, if any.
func (c Card) TargetKind() (TargetKind, bool) {
	for _, e := range c.Effects {
		if e.Target.Single() {
			return e.Target, true
		}
	}
	return "", false
}

// Combatant is the capability surface shared by players and monsters.
type Combatant struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	HP      int            `json:"hp"`
	MaxHP   int            `json:"max_hp"`
	Shield  int            `json:"shield"`
	Buffs   []StatusEffect `json:"buffs"`
	Debuffs []StatusEffect `json:"debuffs"`
}

func (c *Combatant) IsAlive() bool { return c.HP > 0 }

type Player struct {
	Combatant
	Class       Class  `json:"class"`
	Resource    int    `json:"resource"`
	MaxResource int    `json:"max_resource"`
	Mana        int    `json:"mana"`
	MaxMana     int    `json:"max_mana"`
	BaseAggro   int    `json:"base_aggro"`
	DiceAggro   int    `json:"dice_aggro"`
	Hand        []Card `json:"hand"`
	Deck        []Card `json:"deck"`
	Discard     []Card `json:"discard"`
	Gold        int    `json:"gold"`
	ChampionID  string `json:"champion_id,omitempty"`
	EnhanceMode bool   `json:"enhance_mode"`
}

// TotalAggro is the weight monsters compare when picking a target.
func (p *Player) TotalAggro() int { return p.BaseAggro + p.DiceAggro }

// HandIndex returns the position of the first copy of cardID in the hand.
func (p *Player) HandIndex(cardID string) int {
	for i := range p.Hand {
		if p.Hand[i].ID == cardID {
			return i
		}
	}
	return -1
}

// EliteModifier is a monster-level trait applied around ability execution.
type EliteModifier string

const (
	EliteNone         EliteModifier = ""
	EliteFast         EliteModifier = "fast"
	EliteEnraged      EliteModifier = "enraged"
	EliteRegenerating EliteModifier = "regenerating"
	EliteShielded     EliteModifier = "shielded"
)

func (e EliteModifier) Valid() bool {
	switch e {
	case EliteNone, EliteFast, EliteEnraged, EliteRegenerating, EliteShielded:
		return true
	}
	return false
}

// MonsterAbility is one row of a monster's weighted action table. Roll lists
// the d6 faces that select it.
type MonsterAbility struct {
	Name    string   `json:"name" yaml:"name"`
	Roll    []int    `json:"roll" yaml:"roll"`
	Effects []Effect `json:"effects" yaml:"effects"`
}

type Monster struct {
	Combatant
	Abilities  []MonsterAbility `json:"abilities"`
	Intent     string           `json:"intent,omitempty"`
	Elite      EliteModifier    `json:"elite,omitempty"`
	GoldReward int              `json:"gold_reward"`
	XPReward   int              `json:"xp_reward"`
}

// Ability returns the ability with the given name.
func (m *Monster) Ability(name string) (MonsterAbility, bool) {
	for _, a := range m.Abilities {
		if a.Name == name {
			return a, true
		}
	}
	return MonsterAbility{}, false
}

// Environment scales damage-over-time ticks per status type.
type Environment struct {
	Name         string                 `json:"name" yaml:"name"`
	DotModifiers map[EffectType]float64 `json:"dot_modifiers,omitempty" yaml:"dot_modifiers"`
}

// DotMultiplier returns the environment factor for a DoT type (1 when unset).
func (e Environment) DotMultiplier(t EffectType) float64 {
	if m, ok := e.DotModifiers[t]; ok {
		return m
	}
	return 1
}

type Phase string

const (
	PhaseDraw               Phase = "draw"
	PhaseSelect             Phase = "select"
	PhaseTargetSelect       Phase = "target_select"
	PhaseAggro              Phase = "aggro"
	PhasePlayerAction       Phase = "player_action"
	PhaseMonsterAction      Phase = "monster_action"
	PhaseDebuffResolution   Phase = "debuff_resolution"
	PhaseSimultaneousSelect Phase = "simultaneous_select"
	PhaseSimultaneousRun    Phase = "simultaneous_resolve"
	PhaseReward             Phase = "reward"
	PhaseShop               Phase = "shop"
	PhaseVictory            Phase = "victory"
	PhaseDefeat             Phase = "defeat"
)

type Mode string

const (
	ModeSequential   Mode = "sequential"
	ModeSimultaneous Mode = "simultaneous"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusVictory    Status = "victory"
	StatusDefeat     Status = "defeat"
)

// Selection is one player's pending choice in simultaneous mode.
type Selection struct {
	PlayerID    string `json:"player_id"`
	CardID      string `json:"card_id"`
	TargetID    string `json:"target_id"`
	EnhanceMode bool   `json:"enhance_mode"`
	Special     bool   `json:"special,omitempty"`
	Ready       bool   `json:"ready"`
}

// State is the single authoritative aggregate. It is also the save/resume
// and network sync format.
type State struct {
	ID                 string      `json:"id"`
	Mode               Mode        `json:"mode"`
	Status             Status      `json:"status"`
	Players            []Player    `json:"players"`
	Monsters           []Monster   `json:"monsters"`
	CurrentPlayerIndex int         `json:"current_player_index"`
	Turn               int         `json:"turn"`
	Round              int         `json:"round"`
	Phase              Phase       `json:"phase"`
	SelectedCardID     string      `json:"selected_card_id"`
	SelectedTargetID   string      `json:"selected_target_id"`
	Log                []LogEntry  `json:"log"`
	PlayerSelections   []Selection `json:"player_selections,omitempty"`
	Environment        Environment `json:"environment"`
	RNG                dice.Roller `json:"rng"`
}

// Finished reports whether the game reached victory or defeat.
func (s *State) Finished() bool {
	return s.Status == StatusVictory || s.Status == StatusDefeat
}

func (s *State) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) MonsterIndex(id string) int {
	for i := range s.Monsters {
		if s.Monsters[i].ID == id {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the player whose turn it is in sequential mode.
func (s *State) CurrentPlayer() *Player {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil
	}
	return &s.Players[s.CurrentPlayerIndex]
}

func (s *State) AllMonstersDead() bool {
	for i := range s.Monsters {
		if s.Monsters[i].IsAlive() {
			return false
		}
	}
	return true
}

func (s *State) AllPlayersDead() bool {
	for i := range s.Players {
		if s.Players[i].IsAlive() {
			return false
		}
	}
	return true
}

// LivingPlayerIDs lists living players in definition order.
func (s *State) LivingPlayerIDs() []string {
	ids := make([]string, 0, len(s.Players))
	for i := range s.Players {
		if s.Players[i].IsAlive() {
			ids = append(ids, s.Players[i].ID)
		}
	}
	return ids
}
