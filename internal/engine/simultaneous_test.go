package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/dungeon-party/internal/game"
)

func TestSimultaneousBarrierAndFixedOrder(t *testing.T) {
	e := New(testContent(), nil)
	s := newGame(t, e, game.ModeSimultaneous, "warrior", "cleric", "mage")
	require.Equal(t, game.PhaseSimultaneousSelect, s.Phase)
	require.Len(t, s.PlayerSelections, 3)
	for _, p := range s.Players {
		assert.Len(t, p.Hand, 3)
	}

	s, _, err := e.SetPlayerSelection(s, "p3", "blast", "", false)
	require.NoError(t, err)
	s, _, err = e.SetPlayerReady(s, "p3", true)
	require.NoError(t, err)

	s, _, err = e.SetPlayerSelection(s, "p2", "mend", "p1", false)
	require.NoError(t, err)
	s, _, err = e.SetPlayerReady(s, "p2", true)
	require.NoError(t, err)

	s, _, err = e.SetPlayerSelection(s, "p1", "strike", "", false)
	require.NoError(t, err)
	_, _, err = e.SetPlayerReady(s, "p1", true)
	assert.ErrorIs(t, err, ErrSelectionIncomplete)
	assert.False(t, AllReady(s))
	_, _, err = e.ResolveSimultaneous(s)
	assert.ErrorIs(t, err, ErrSelectionIncomplete)

	s, _, err = e.SetPlayerSelection(s, "p1", "strike", "dummy-1", false)
	require.NoError(t, err)
	s, _, err = e.SetPlayerReady(s, "p1", true)
	require.NoError(t, err)
	require.True(t, AllReady(s))
	assert.Equal(t, game.PhaseSimultaneousSelect, s.Phase, "ready never resolves on its own")

	_, _, err = e.SetPlayerSelection(s, "p1", "guard", "", false)
	assert.ErrorIs(t, err, ErrSelectionLocked)

	s, events, err := e.ResolveSimultaneous(s)
	require.NoError(t, err)
	assert.True(t, hasPhaseEvent(events, game.PhaseSimultaneousRun))
	assert.True(t, hasPhaseEvent(events, game.PhaseMonsterAction))

	p1, p2, p3 := logIndex(s, "p1 plays"), logIndex(s, "p2 plays"), logIndex(s, "p3 plays")
	require.GreaterOrEqual(t, p1, 0)
	assert.Less(t, p1, p2)
	assert.Less(t, p2, p3)

	assert.Equal(t, 36, s.Monsters[0].HP)
	assert.Equal(t, 46, s.Monsters[1].HP)
	assert.Equal(t, 270, s.Players[0].HP+s.Players[1].HP+s.Players[2].HP)

	assert.Equal(t, 2, s.Turn)
	assert.Equal(t, game.PhaseSimultaneousSelect, s.Phase)
	require.Len(t, s.PlayerSelections, 3)
	for _, sel := range s.PlayerSelections {
		assert.False(t, sel.Ready)
		assert.Empty(t, sel.CardID)
	}
}

func TestUnreadyReopensSelection(t *testing.T) {
	e := New(testContent(), nil)
	s := newGame(t, e, game.ModeSimultaneous, "warrior", "cleric")

	s, _, err := e.SetPlayerSelection(s, "p1", "guard", "", false)
	require.NoError(t, err)
	s, _, err = e.SetPlayerReady(s, "p1", true)
	require.NoError(t, err)
	s, _, err = e.SetPlayerReady(s, "p1", false)
	require.NoError(t, err)

	s, _, err = e.SetPlayerSelection(s, "p1", "strike", "dummy-2", true)
	require.NoError(t, err)
	assert.Equal(t, game.Selection{PlayerID: "p1", CardID: "strike", TargetID: "dummy-2", EnhanceMode: true}, s.PlayerSelections[0])
}

func TestSimultaneousGuards(t *testing.T) {
	e := New(testContent(), nil)
	s := newGame(t, e, game.ModeSimultaneous, "warrior")

	_, _, err := e.SelectCard(s, "p1", "strike")
	assert.ErrorIs(t, err, ErrUnsupportedMode)
	_, _, err = e.SetPlayerSelection(s, "ghost", "strike", "", false)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	_, _, err = e.SetPlayerSelection(s, "p1", "smite", "", false)
	assert.ErrorIs(t, err, ErrCardNotInHand)
	_, _, err = e.SetPlayerSelection(s, "p1", "strike", "p1", false)
	assert.ErrorIs(t, err, ErrIllegalTarget)
}

func TestStaleTargetIsNormalized(t *testing.T) {
	c := testContent()
	e := New(c, nil)
	s := combatState(game.ModeSimultaneous,
		[]game.Player{hero(c, "p1", "warrior", "strike"), hero(c, "p2", "warrior", "strike")},
		dummy("m1", 5), dummy("m2", 50))
	s.Phase = game.PhaseSimultaneousSelect
	s.PlayerSelections = []game.Selection{
		{PlayerID: "p1", CardID: "strike", TargetID: "m1", Ready: true},
		{PlayerID: "p2", CardID: "strike", TargetID: "m1", Ready: true},
	}

	st, _, err := e.ResolveSimultaneous(s)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Monsters[0].HP)
	assert.Equal(t, 40, st.Monsters[1].HP)
	assert.GreaterOrEqual(t, logIndex(st, "p2 retargets Strike to m2"), 0)
	assert.Equal(t, 2, st.Turn)
	assert.Equal(t, game.PhaseSimultaneousSelect, st.Phase)
}

func TestBatchStopsWhenEncounterIsWon(t *testing.T) {
	c := testContent()
	e := New(c, nil)
	s := combatState(game.ModeSimultaneous,
		[]game.Player{hero(c, "p1", "warrior", "strike"), hero(c, "p2", "warrior", "strike")},
		dummy("m1", 5))
	s.Phase = game.PhaseSimultaneousSelect
	s.PlayerSelections = []game.Selection{
		{PlayerID: "p1", CardID: "strike", TargetID: "m1", Ready: true},
		{PlayerID: "p2", CardID: "strike", TargetID: "m1", Ready: true},
	}

	st, _, err := e.ResolveSimultaneous(s)
	require.NoError(t, err)
	assert.Equal(t, game.PhaseReward, st.Phase)
	assert.Nil(t, st.PlayerSelections)
	assert.Equal(t, []string{"strike"}, cardIDs(st.Players[1].Hand))
	assert.Equal(t, 3, st.Players[0].Gold)
	assert.Equal(t, 2, st.Players[1].Gold)
}

func TestStunnedPlayerIsEnteredReady(t *testing.T) {
	c := testContent()
	p1 := hero(c, "p1", "warrior")
	p1.Deck = []game.Card{c.Cards["strike"]}
	p2 := hero(c, "p2", "warrior")
	p2.AddStatus(game.StatusEffect{Type: game.EffectStun, Value: 1, Duration: 1})
	s := combatState(game.ModeSimultaneous, []game.Player{p1, p2}, dummy("m1", 50))
	s.Turn = 0

	tc := New(c, nil).begin(s)
	tc.startTurn()
	require.Len(t, tc.s.PlayerSelections, 2)
	assert.False(t, tc.s.PlayerSelections[0].Ready)
	assert.Equal(t, game.Selection{PlayerID: "p2", Ready: true}, tc.s.PlayerSelections[1])
	assert.False(t, tc.s.Players[1].Stunned())
	assert.Equal(t, game.PhaseSimultaneousSelect, tc.s.Phase)
}

func TestSpecialDuringSimultaneousSelectIsQueued(t *testing.T) {
	e := New(testContent(), nil)
	s := newGame(t, e, game.ModeSimultaneous, "warrior", "cleric")
	s.Players[0].Resource = 10

	s, _, err := e.UseSpecialAbility(s, "p1")
	require.NoError(t, err)
	assert.True(t, s.PlayerSelections[0].Special)
	assert.Equal(t, 10, s.Players[0].Resource)
	assert.False(t, s.Players[0].HasStatus(game.EffectStrength))
	assert.Negative(t, logIndex(s, "p1 unleashes"))

	s, _, err = e.SetPlayerSelection(s, "p1", "strike", "dummy-1", false)
	require.NoError(t, err)
	assert.True(t, s.PlayerSelections[0].Special, "a new choice keeps the queued special")
	s, _, err = e.SetPlayerReady(s, "p1", true)
	require.NoError(t, err)
	_, _, err = e.UseSpecialAbility(s, "p1")
	assert.ErrorIs(t, err, ErrSelectionLocked)

	s, _, err = e.SetPlayerSelection(s, "p2", "mend", "p1", false)
	require.NoError(t, err)
	s, _, err = e.SetPlayerReady(s, "p2", true)
	require.NoError(t, err)

	s, _, err = e.ResolveSimultaneous(s)
	require.NoError(t, err)
	unleash, plays := logIndex(s, "p1 unleashes"), logIndex(s, "p1 plays")
	require.GreaterOrEqual(t, unleash, 0)
	assert.Less(t, unleash, plays)
	assert.Less(t, s.Monsters[0].HP, 40, "strength lands before the strike")
	assert.True(t, s.Players[0].HasStatus(game.EffectStrength))
	assert.True(t, s.Players[1].HasStatus(game.EffectStrength))
}

func TestSimultaneousSpecialNeedsFullGauge(t *testing.T) {
	e := New(testContent(), nil)
	s := newGame(t, e, game.ModeSimultaneous, "warrior")
	s.Players[0].Resource = 9

	_, _, err := e.UseSpecialAbility(s, "p1")
	assert.ErrorIs(t, err, ErrResourceNotFull)
}

func TestSimultaneousEnhanceEditsTheOpenSelection(t *testing.T) {
	c := testContent()
	e := New(c, nil)
	p := hero(c, "p1", "warrior", "strike")
	p.Resource = 10
	s := combatState(game.ModeSimultaneous, []game.Player{p}, dummy("m1", 50))
	s.Phase = game.PhaseSimultaneousSelect
	s.PlayerSelections = []game.Selection{{PlayerID: "p1"}}

	s, _, err := e.SetPlayerSelection(s, "p1", "strike", "m1", false)
	require.NoError(t, err)
	s, _, err = e.SetEnhanceMode(s, "p1", true)
	require.NoError(t, err)
	assert.True(t, s.PlayerSelections[0].EnhanceMode)
	assert.True(t, s.Players[0].EnhanceMode)

	s, _, err = e.SetPlayerReady(s, "p1", true)
	require.NoError(t, err)
	_, _, err = e.SetEnhanceMode(s, "p1", false)
	assert.ErrorIs(t, err, ErrSelectionLocked)

	s, _, err = e.ResolveSimultaneous(s)
	require.NoError(t, err)
	assert.Equal(t, 35, s.Monsters[0].HP)
}

func TestUnreadyAmongThreeBlocksResolution(t *testing.T) {
	e := New(testContent(), nil)
	s := newGame(t, e, game.ModeSimultaneous, "warrior", "cleric", "mage")

	s, _, err := e.SetPlayerSelection(s, "p1", "guard", "", false)
	require.NoError(t, err)
	s, _, err = e.SetPlayerReady(s, "p1", true)
	require.NoError(t, err)
	s, _, err = e.SetPlayerSelection(s, "p2", "mend", "p1", false)
	require.NoError(t, err)
	s, _, err = e.SetPlayerReady(s, "p2", true)
	require.NoError(t, err)
	s, _, err = e.SetPlayerSelection(s, "p3", "blast", "", false)
	require.NoError(t, err)
	s, _, err = e.SetPlayerReady(s, "p3", true)
	require.NoError(t, err)
	require.True(t, AllReady(s))

	s, _, err = e.SetPlayerReady(s, "p3", false)
	require.NoError(t, err)
	assert.False(t, AllReady(s))
	_, _, err = e.ResolveSimultaneous(s)
	assert.ErrorIs(t, err, ErrSelectionIncomplete)
	assert.Equal(t, game.PhaseSimultaneousSelect, s.Phase)
	assert.True(t, s.PlayerSelections[0].Ready)
	assert.True(t, s.PlayerSelections[1].Ready)
	assert.False(t, s.PlayerSelections[2].Ready)
}
