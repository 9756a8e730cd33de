package engine

import (
	"github.com/ericogr/dungeon-party/internal/dice"
	"github.com/ericogr/dungeon-party/internal/game"
)

func hit(value int) []game.MonsterAbility {
	return []game.MonsterAbility{{
		Name:    "Hit",
		Roll:    []int{1, 2, 3, 4, 5, 6},
		Effects: []game.Effect{{Type: game.EffectDamage, Value: value, Target: game.TargetPlayer}},
	}}
}

func testContent() *game.Content {
	cards := []game.Card{
		{ID: "strike", Name: "Strike", Class: "warrior", Rarity: game.RarityCommon, Aggro: 2,
			Effects: []game.Effect{{Type: game.EffectDamage, Value: 10, Target: game.TargetMonster}}},
		{ID: "guard", Name: "Guard", Class: "warrior", Rarity: game.RarityCommon, Aggro: 1,
			Effects: []game.Effect{{Type: game.EffectShield, Value: 8, Target: game.TargetSelf}}},
		{ID: "smite", Name: "Smite", Class: "cleric", Rarity: game.RarityCommon, Aggro: 1,
			Effects: []game.Effect{{Type: game.EffectDamage, Value: 6, Target: game.TargetMonster}}},
		{ID: "mend", Name: "Mend", Class: "cleric", Rarity: game.RarityCommon, Aggro: 0,
			Effects: []game.Effect{{Type: game.EffectHeal, Value: 10, Target: game.TargetAlly}}},
		{ID: "bolt", Name: "Bolt", Class: "mage", Rarity: game.RarityCommon, Aggro: 1,
			Effects: []game.Effect{{Type: game.EffectDamage, Value: 5, Target: game.TargetMonster}}},
		{ID: "blast", Name: "Blast", Class: "mage", Rarity: game.RarityRare, Aggro: 3,
			Effects: []game.Effect{{Type: game.EffectDamage, Value: 4, Target: game.TargetAllMonsters}}},
	}
	c := &game.Content{
		Rules: game.Rules{
			HandSize:           3,
			FinalRound:         2,
			ShopEvery:          2,
			EnragedMultiplier:  1.5,
			RegeneratingAmount: 5,
			ShieldedStep:       5,
			ShieldedCap:        0.25,
		},
		Classes: map[game.Class]game.ClassDef{
			"warrior": {
				Name: "warrior", MaxHP: 120, MaxResource: 10,
				Gain:        game.ResourceGain{Mode: game.ResourceFromDamage, Ratio: 0.5},
				Enhancement: game.Enhancement{DamageBonus: 5, ShieldBonus: 5},
				Special: game.Special{Name: "Battle Cry", Effects: []game.Effect{
					{Type: game.EffectStrength, Value: 2, Target: game.TargetAllAllies, Duration: 2},
				}},
				Deck: []string{"strike", "strike", "guard"},
			},
			"cleric": {
				Name: "cleric", MaxHP: 90, MaxResource: 10,
				Gain:  game.ResourceGain{Mode: game.ResourceFromHealing, Ratio: 0.5},
				Gauge: game.GaugeFaith, MaxMana: 10, GaugePerCard: 2, TopTierCost: 10,
				Deck: []string{"smite", "mend", "smite"},
			},
			"mage": {
				Name: "mage", MaxHP: 70, MaxResource: 5,
				Gain:  game.ResourceGain{Mode: game.ResourceFixed, Amount: 1},
				Gauge: game.GaugeMana, MaxMana: 10, StartMana: 10, TopTierCost: 4,
				Deck: []string{"bolt", "blast", "bolt"},
			},
		},
		Cards: map[string]game.Card{},
		Scaling: map[string]game.Scaling{
			"smite": {Gauge: game.GaugeFaith, Tiers: map[game.Tier][]game.Effect{
				game.TierMid: {{Type: game.EffectDamage, Value: 2, Target: game.TargetMonster}},
				game.TierTop: {{Type: game.EffectDamage, Value: 4, Target: game.TargetMonster}},
			}},
			"bolt": {Gauge: game.GaugeMana, Tiers: map[game.Tier][]game.Effect{
				game.TierEmpowered: {{Type: game.EffectDamage, Value: 3, Target: game.TargetMonster}},
			}},
		},
		Monsters: map[string]game.MonsterDef{
			"dummy": {ID: "dummy", Name: "Dummy", MaxHP: 50, GoldReward: 5, XPReward: 10, Abilities: hit(5)},
			"brute": {ID: "brute", Name: "Brute", MaxHP: 40, GoldReward: 9, XPReward: 20, Abilities: hit(10)},
		},
		Encounters: map[int]game.EncounterDef{
			1: {Round: 1, Monsters: []game.EncounterMonster{{Monster: "dummy"}, {Monster: "dummy"}}},
			2: {Round: 2, Monsters: []game.EncounterMonster{{Monster: "brute"}}},
		},
		Environments: map[string]game.Environment{},
	}
	for _, card := range cards {
		c.Cards[card.ID] = card
	}
	return c
}

// hero builds a player of a test class holding the given cards.
func hero(c *game.Content, id string, class game.Class, hand ...string) game.Player {
	cl := c.Classes[class]
	p := game.Player{
		Combatant:   game.Combatant{ID: id, Name: id, HP: cl.MaxHP, MaxHP: cl.MaxHP},
		Class:       class,
		MaxResource: cl.MaxResource,
		Mana:        cl.StartMana,
		MaxMana:     cl.MaxMana,
	}
	for _, cardID := range hand {
		p.Hand = append(p.Hand, c.Cards[cardID])
	}
	return p
}

func dummy(id string, hp int) game.Monster {
	return game.Monster{
		Combatant:  game.Combatant{ID: id, Name: id, HP: hp, MaxHP: 50},
		Abilities:  hit(5),
		GoldReward: 5,
		XPReward:   10,
	}
}

func combatState(mode game.Mode, players []game.Player, monsters ...game.Monster) *game.State {
	return &game.State{
		ID:       "g1",
		Mode:     mode,
		Status:   game.StatusInProgress,
		Players:  players,
		Monsters: monsters,
		Turn:     1,
		Round:    1,
		Phase:    game.PhasePlayerAction,
		RNG:      dice.New(1),
	}
}

func hasPhaseEvent(events []game.Event, p game.Phase) bool {
	for _, ev := range events {
		if ev.Kind == game.EventPhase && ev.Phase == p {
			return true
		}
	}
	return false
}

func logIndex(s *game.State, prefix string) int {
	for i, le := range s.Log {
		if len(le.Message) >= len(prefix) && le.Message[:len(prefix)] == prefix {
			return i
		}
	}
	return -1
}
