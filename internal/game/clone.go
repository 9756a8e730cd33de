package game

import "maps"

func cloneStatuses(in []StatusEffect) []StatusEffect {
	if in == nil {
		return nil
	}
	return append([]StatusEffect(nil), in...)
}

func cloneEffects(in []Effect) []Effect {
	if in == nil {
		return nil
	}
	return append([]Effect(nil), in...)
}

func (c Combatant) clone() Combatant {
	c.Buffs = cloneStatuses(c.Buffs)
	c.Debuffs = cloneStatuses(c.Debuffs)
	return c
}

func cloneCards(in []Card) []Card {
	if in == nil {
		return nil
	}
	out := make([]Card, len(in))
	for i, c := range in {
		c.Effects = cloneEffects(c.Effects)
		out[i] = c
	}
	return out
}

// Clone returns a deep copy of p.
func (p Player) Clone() Player {
	p.Combatant = p.Combatant.clone()
	p.Hand = cloneCards(p.Hand)
	p.Deck = cloneCards(p.Deck)
	p.Discard = cloneCards(p.Discard)
	return p
}

// Clone returns a deep copy of m.
func (m Monster) Clone() Monster {
	m.Combatant = m.Combatant.clone()
	if m.Abilities != nil {
		abilities := make([]MonsterAbility, len(m.Abilities))
		for i, a := range m.Abilities {
			a.Roll = append([]int(nil), a.Roll...)
			a.Effects = cloneEffects(a.Effects)
			abilities[i] = a
		}
		m.Abilities = abilities
	}
	return m
}

func ClonePlayers(in []Player) []Player {
	out := make([]Player, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func CloneMonsters(in []Monster) []Monster {
	out := make([]Monster, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// Clone returns a deep copy so callers can compute the next state without
// touching the one readers hold.
func (s *State) Clone() *State {
	out := *s
	out.Players = ClonePlayers(s.Players)
	out.Monsters = CloneMonsters(s.Monsters)
	out.Log = append([]LogEntry(nil), s.Log...)
	if s.PlayerSelections != nil {
		out.PlayerSelections = append([]Selection(nil), s.PlayerSelections...)
	}
	out.Environment.DotModifiers = maps.Clone(s.Environment.DotModifiers)
	return &out
}

// ViewFor returns a copy of s safe to show to playerID. Other players'
// pending simultaneous choices are blanked; their ready flags stay.
func (s *State) ViewFor(playerID string) *State {
	if s == nil {
		return nil
	}
	v := s.Clone()
	for i := range v.PlayerSelections {
		sel := &v.PlayerSelections[i]
		if sel.PlayerID == playerID {
			continue
		}
		sel.CardID, sel.TargetID = "", ""
		sel.EnhanceMode, sel.Special = false, false
		if pi := v.PlayerIndex(sel.PlayerID); pi >= 0 {
			v.Players[pi].EnhanceMode = false
		}
	}
	return v
}
