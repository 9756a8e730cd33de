package game

// Tick decrements one status and reports whether it survives. An effect is
// never kept at duration 0.
func Tick(s StatusEffect) (StatusEffect, bool) {
	s.Duration--
	if s.Duration <= 0 {
		return s, false
	}
	return s, true
}

func tickMatching(list []StatusEffect, byAction bool) []StatusEffect {
	if len(list) == 0 {
		return list
	}
	out := make([]StatusEffect, 0, len(list))
	for _, s := range list {
		if s.UseActionTracking() != byAction {
			out = append(out, s)
			continue
		}
		if next, ok := Tick(s); ok {
			out = append(out, next)
		}
	}
	return out
}

// TickTurnTracked runs the end-of-turn sweep. Action-tracked entries are
// left untouched.
func TickTurnTracked(list []StatusEffect) []StatusEffect {
	return tickMatching(list, false)
}

// TickActionTracked runs when the owner's action opportunity passes.
// Turn-tracked entries are left untouched.
func TickActionTracked(list []StatusEffect) []StatusEffect {
	return tickMatching(list, true)
}

// AddStatus merges e into list. A type already present keeps one entry with
// the durations summed and the larger value.
func AddStatus(list []StatusEffect, e StatusEffect) []StatusEffect {
	if e.Duration <= 0 {
		return list
	}
	if e.Tracking == "" {
		e.Tracking = e.Type.DefaultTracking()
	}
	for i := range list {
		if list[i].Type != e.Type {
			continue
		}
		list[i].Duration += e.Duration
		if e.Value > list[i].Value {
			list[i].Value = e.Value
		}
		return list
	}
	return append(list, e)
}

func findStatus(list []StatusEffect, t EffectType) (StatusEffect, bool) {
	for _, s := range list {
		if s.Type == t {
			return s, true
		}
	}
	return StatusEffect{}, false
}

func removeStatus(list []StatusEffect, t EffectType) []StatusEffect {
	out := list[:0]
	for _, s := range list {
		if s.Type != t {
			out = append(out, s)
		}
	}
	return out
}

func (c *Combatant) statusList(t EffectType) *[]StatusEffect {
	if t.IsBuff() {
		return &c.Buffs
	}
	return &c.Debuffs
}

// Status returns the active status of the given type.
func (c *Combatant) Status(t EffectType) (StatusEffect, bool) {
	return findStatus(*c.statusList(t), t)
}

func (c *Combatant) HasStatus(t EffectType) bool {
	_, ok := c.Status(t)
	return ok
}

// StatusValue returns the value of an active status, or 0.
func (c *Combatant) StatusValue(t EffectType) int {
	s, _ := c.Status(t)
	return s.Value
}

// AddStatus routes e to the buff or debuff list.
func (c *Combatant) AddStatus(e StatusEffect) {
	l := c.statusList(e.Type)
	*l = AddStatus(*l, e)
}

func (c *Combatant) RemoveStatus(t EffectType) {
	l := c.statusList(t)
	*l = removeStatus(*l, t)
}

// Cleanse drops every debuff.
func (c *Combatant) Cleanse() int {
	n := len(c.Debuffs)
	c.Debuffs = nil
	return n
}

func (c *Combatant) TickTurnTracked() {
	c.Buffs = TickTurnTracked(c.Buffs)
	c.Debuffs = TickTurnTracked(c.Debuffs)
}

func (c *Combatant) TickActionTracked() {
	c.Buffs = TickActionTracked(c.Buffs)
	c.Debuffs = TickActionTracked(c.Debuffs)
}

// Stunned reports an active stun.
func (c *Combatant) Stunned() bool { return c.HasStatus(EffectStun) }

// Stealthed reports an active stealth.
func (c *Combatant) Stealthed() bool { return c.HasStatus(EffectStealth) }
