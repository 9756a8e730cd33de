package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickRemovesAtZero(t *testing.T) {
	_, ok := Tick(StatusEffect{Type: EffectPoison, Value: 2, Duration: 1, Tracking: TrackTurn})
	assert.False(t, ok)

	next, ok := Tick(StatusEffect{Type: EffectPoison, Value: 2, Duration: 3, Tracking: TrackTurn})
	require.True(t, ok)
	assert.Equal(t, 2, next.Duration)
}

func TestSweepsOnlyTouchTheirTracking(t *testing.T) {
	list := []StatusEffect{
		{Type: EffectStun, Value: 1, Duration: 1, Tracking: TrackAction},
		{Type: EffectBurn, Value: 4, Duration: 1, Tracking: TrackTurn},
	}

	afterTurn := TickTurnTracked(list)
	require.Len(t, afterTurn, 1)
	assert.Equal(t, EffectStun, afterTurn[0].Type)
	assert.Equal(t, 1, afterTurn[0].Duration)

	afterAction := TickActionTracked(list)
	require.Len(t, afterAction, 1)
	assert.Equal(t, EffectBurn, afterAction[0].Type)
}

func TestDurationOneIsRemovedByOneTick(t *testing.T) {
	for _, typ := range []EffectType{EffectPoison, EffectStrength, EffectStun} {
		c := Combatant{ID: "x", HP: 10, MaxHP: 10}
		c.AddStatus(StatusEffect{Type: typ, Value: 1, Duration: 1})
		require.True(t, c.HasStatus(typ))
		if typ.DefaultTracking() == TrackAction {
			c.TickActionTracked()
		} else {
			c.TickTurnTracked()
		}
		assert.False(t, c.HasStatus(typ), "%s should be gone", typ)
		for _, s := range append(c.Buffs, c.Debuffs...) {
			assert.Positive(t, s.Duration)
		}
	}
}

func TestBurnStacking(t *testing.T) {
	m := Combatant{ID: "m1", HP: 30, MaxHP: 30}
	m.AddStatus(StatusEffect{Type: EffectBurn, Value: 5, Duration: 2, Source: "p1"})
	m.AddStatus(StatusEffect{Type: EffectBurn, Value: 3, Duration: 1, Source: "p2"})

	require.Len(t, m.Debuffs, 1)
	assert.Equal(t, 5, m.Debuffs[0].Value)
	assert.Equal(t, 3, m.Debuffs[0].Duration)
	assert.Equal(t, TrackTurn, m.Debuffs[0].Tracking)
}

func TestPoisonStackingRaisesValue(t *testing.T) {
	list := AddStatus(nil, StatusEffect{Type: EffectPoison, Value: 2, Duration: 2})
	list = AddStatus(list, StatusEffect{Type: EffectPoison, Value: 6, Duration: 3})
	require.Len(t, list, 1)
	assert.Equal(t, 6, list[0].Value)
	assert.Equal(t, 5, list[0].Duration)
}

func TestBuffsAndDebuffsAreRouted(t *testing.T) {
	c := Combatant{ID: "p1", HP: 10, MaxHP: 10}
	c.AddStatus(StatusEffect{Type: EffectTaunt, Value: 1, Duration: 1})
	c.AddStatus(StatusEffect{Type: EffectWeakness, Value: 2, Duration: 2})
	assert.Len(t, c.Buffs, 1)
	assert.Len(t, c.Debuffs, 1)
	assert.Equal(t, 2, c.StatusValue(EffectWeakness))

	assert.Equal(t, 1, c.Cleanse())
	assert.Empty(t, c.Debuffs)
	assert.True(t, c.HasStatus(EffectTaunt))
}

func TestStateCloneIsDeep(t *testing.T) {
	s := &State{
		Players:  []Player{{Combatant: Combatant{ID: "p1", HP: 5, MaxHP: 5}, Hand: []Card{{ID: "c1"}}}},
		Monsters: []Monster{{Combatant: Combatant{ID: "m1", HP: 5, MaxHP: 5}}},
	}
	c := s.Clone()
	c.Players[0].HP = 1
	c.Players[0].Hand[0].ID = "changed"
	c.Monsters[0].AddStatus(StatusEffect{Type: EffectBurn, Value: 1, Duration: 1})

	assert.Equal(t, 5, s.Players[0].HP)
	assert.Equal(t, "c1", s.Players[0].Hand[0].ID)
	assert.Empty(t, s.Monsters[0].Debuffs)
}
