package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/dungeon-party/internal/game"
)

func playOne(t *testing.T, e *Engine, s *game.State, cardID, target string, enhance bool) *game.State {
	t.Helper()
	tc := e.begin(s)
	require.NoError(t, tc.playCard(0, cardID, target, enhance))
	st, _ := tc.done()
	return st
}

func TestEnhancementSuppressesResourceGain(t *testing.T) {
	c := testContent()
	e := New(c, nil)
	w := hero(c, "p1", "warrior", "strike")
	w.Resource = w.MaxResource
	s := combatState(game.ModeSequential, []game.Player{w}, dummy("m1", 50))

	st := playOne(t, e, s, "strike", "m1", true)
	assert.Equal(t, 35, st.Monsters[0].HP)
	assert.Equal(t, 0, st.Players[0].Resource)
	assert.Equal(t, 10, s.Players[0].Resource, "input state untouched")
}

func TestEnhancementNeedsFullGauge(t *testing.T) {
	c := testContent()
	e := New(c, nil)
	w := hero(c, "p1", "warrior", "strike")
	w.Resource = 4
	s := combatState(game.ModeSequential, []game.Player{w}, dummy("m1", 50))

	st := playOne(t, e, s, "strike", "m1", true)
	assert.Equal(t, 40, st.Monsters[0].HP)
	assert.Equal(t, 9, st.Players[0].Resource)
}

func TestResourceGainModes(t *testing.T) {
	c := testContent()
	e := New(c, nil)

	w := hero(c, "p1", "warrior", "strike")
	w.Resource = 8
	st := playOne(t, e, combatState(game.ModeSequential, []game.Player{w}, dummy("m1", 50)), "strike", "m1", false)
	assert.Equal(t, 10, st.Players[0].Resource, "damage gain clamps at max")

	cl := hero(c, "p1", "cleric", "mend")
	cl.HP = 75
	st = playOne(t, e, combatState(game.ModeSequential, []game.Player{cl}, dummy("m1", 50)), "mend", "p1", false)
	assert.Equal(t, 85, st.Players[0].HP)
	assert.Equal(t, 5, st.Players[0].Resource)

	m := hero(c, "p1", "mage", "blast")
	st = playOne(t, e, combatState(game.ModeSequential, []game.Player{m}, dummy("m1", 50)), "blast", "", false)
	assert.Equal(t, 1, st.Players[0].Resource)
}

func TestFaithTiers(t *testing.T) {
	cases := []struct {
		mana     int
		wantHP   int
		wantMana int
	}{
		{mana: 4, wantHP: 44, wantMana: 6},
		{mana: 5, wantHP: 42, wantMana: 7},
		{mana: 9, wantHP: 42, wantMana: 10},
		{mana: 10, wantHP: 40, wantMana: 2},
	}
	c := testContent()
	e := New(c, nil)
	for _, tt := range cases {
		p := hero(c, "p1", "cleric", "smite")
		p.Mana = tt.mana
		st := playOne(t, e, combatState(game.ModeSequential, []game.Player{p}, dummy("m1", 50)), "smite", "m1", false)
		assert.Equal(t, tt.wantHP, st.Monsters[0].HP, "mana %d", tt.mana)
		assert.Equal(t, tt.wantMana, st.Players[0].Mana, "mana %d", tt.mana)
	}
}

func TestManaTiers(t *testing.T) {
	c := testContent()
	e := New(c, nil)

	p := hero(c, "p1", "mage", "bolt")
	p.Mana = 5
	st := playOne(t, e, combatState(game.ModeSequential, []game.Player{p}, dummy("m1", 50)), "bolt", "m1", false)
	assert.Equal(t, 42, st.Monsters[0].HP)
	assert.Equal(t, 1, st.Players[0].Mana)

	p.Mana = 4
	st = playOne(t, e, combatState(game.ModeSequential, []game.Player{p}, dummy("m1", 50)), "bolt", "m1", false)
	assert.Equal(t, 45, st.Monsters[0].HP)
	assert.Equal(t, 4, st.Players[0].Mana)
}

func TestBrokenScalingNoteWarnsAndAppliesNoBonus(t *testing.T) {
	c := testContent()
	e := New(c, map[string]string{"bolt": "directive: unknown tier"})
	p := hero(c, "p1", "mage", "bolt")

	st := playOne(t, e, combatState(game.ModeSequential, []game.Player{p}, dummy("m1", 50)), "bolt", "m1", false)
	assert.Equal(t, 45, st.Monsters[0].HP)
	warned := false
	for _, le := range st.Log {
		if le.Type == game.LogWarning {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestCardMovesToDiscardAndActionStatusesTick(t *testing.T) {
	c := testContent()
	e := New(c, nil)
	p := hero(c, "p1", "warrior", "guard", "strike")
	p.Buffs = []game.StatusEffect{
		{Type: game.EffectStrength, Value: 1, Duration: 1, Tracking: game.TrackAction},
		{Type: game.EffectTaunt, Value: 1, Duration: 1, Tracking: game.TrackTurn},
	}
	st := playOne(t, e, combatState(game.ModeSequential, []game.Player{p}, dummy("m1", 50)), "guard", "", false)

	got := st.Players[0]
	assert.Equal(t, []string{"strike"}, cardIDs(got.Hand))
	assert.Equal(t, []string{"guard"}, cardIDs(got.Discard))
	assert.Equal(t, 8, got.Shield)
	assert.False(t, got.HasStatus(game.EffectStrength))
	assert.True(t, got.HasStatus(game.EffectTaunt))
}

func TestPipelineContractViolations(t *testing.T) {
	c := testContent()
	e := New(c, nil)
	s := combatState(game.ModeSequential, []game.Player{hero(c, "p1", "warrior", "strike")}, dummy("m1", 50))

	tc := e.begin(s)
	assert.ErrorIs(t, tc.playCard(0, "fireball", "m1", false), ErrCardNotInHand)
	assert.ErrorIs(t, tc.playCard(0, "strike", "", false), ErrTargetRequired)
}

func TestFollowUpEffectsFizzleOnFallenTarget(t *testing.T) {
	c := testContent()
	c.Cards["strike"] = game.Card{ID: "strike", Name: "Strike", Class: "warrior", Rarity: game.RarityCommon,
		Effects: []game.Effect{
			{Type: game.EffectDamage, Value: 10, Target: game.TargetMonster},
			{Type: game.EffectBurn, Value: 2, Duration: 2, Target: game.TargetMonster},
		}}
	e := New(c, nil)
	s := combatState(game.ModeSequential, []game.Player{hero(c, "p1", "warrior", "strike")}, dummy("m1", 5), dummy("m2", 50))

	st := playOne(t, e, s, "strike", "m1", false)
	assert.False(t, st.Monsters[0].IsAlive())
	assert.Empty(t, st.Monsters[0].Debuffs)
	assert.Equal(t, 5, st.Players[0].Gold)
}

func cardIDs(cards []game.Card) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}
