package game

// LogType tags a log entry for presentation.
type LogType string

const (
	LogInfo    LogType = "info"
	LogDamage  LogType = "damage"
	LogHeal    LogType = "heal"
	LogShield  LogType = "shield"
	LogBuff    LogType = "buff"
	LogDebuff  LogType = "debuff"
	LogDeath   LogType = "death"
	LogReward  LogType = "reward"
	LogPhase   LogType = "phase"
	LogWarning LogType = "warning"
)

// LogEntry is append-only; its order drives replay and animation.
type LogEntry struct {
	Turn       int     `json:"turn"`
	Phase      Phase   `json:"phase"`
	Message    string  `json:"message"`
	Type       LogType `json:"type"`
	IsSubEntry bool    `json:"is_sub_entry"`
}

type EventKind string

const (
	EventLog            EventKind = "log"
	EventActionMessage  EventKind = "action_message"
	EventDamageNumber   EventKind = "damage_number"
	EventAnimationStart EventKind = "animation_start"
	EventAnimationClear EventKind = "animation_clear"
	EventXPGrant        EventKind = "xp_grant"
	EventGoldDelta      EventKind = "gold_delta"
	EventPhase          EventKind = "phase"
)

// Damage-number categories.
const (
	NumberDamage = "damage"
	NumberHeal   = "heal"
	NumberShield = "shield"
	NumberDot    = "dot"
)

// Animation kinds.
const (
	AnimationAttack = "attack"
	AnimationCast   = "cast"
	AnimationHit    = "hit"
)

// Event is one item of the ordered outbound stream. Exactly one payload
// field is set, matching Kind.
type Event struct {
	Kind      EventKind     `json:"kind"`
	Log       *LogEntry     `json:"log,omitempty"`
	Message   string        `json:"message,omitempty"`
	Number    *DamageNumber `json:"number,omitempty"`
	Animation *Animation    `json:"animation,omitempty"`
	XP        *XPGrant      `json:"xp,omitempty"`
	Gold      *GoldDelta    `json:"gold,omitempty"`
	Phase     Phase         `json:"phase,omitempty"`
}

type DamageNumber struct {
	TargetID string `json:"target_id"`
	Value    int    `json:"value"`
	Type     string `json:"type"`
}

type Animation struct {
	EntityID string `json:"entity_id"`
	Kind     string `json:"animation_kind"`
}

// XPGrant is credited to a champion by the meta-progression collaborator.
type XPGrant struct {
	ChampionID string `json:"champion_id"`
	Amount     int    `json:"amount"`
}

type GoldDelta struct {
	PlayerID string `json:"player_id"`
	Amount   int    `json:"amount"`
}
