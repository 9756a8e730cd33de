package directive

import (
	"fmt"
	"strings"

	"github.com/ericogr/dungeon-party/internal/game"
)

var tierLabels = []struct {
	tier  game.Tier
	label string
}{
	{game.TierMid, "Faith 50%"},
	{game.TierTop, "Faith 100%"},
	{game.TierDepowered, "Mana Depowered"},
	{game.TierEmpowered, "Mana Empowered"},
}

// Render produces the display note for structured scaling. Its output
// parses back to the same table.
func Render(s game.Scaling) string {
	clauses := make([]string, 0, len(s.Tiers))
	for _, tl := range tierLabels {
		effects, ok := s.Tiers[tl.tier]
		if !ok || len(effects) == 0 {
			continue
		}
		bonuses := make([]string, 0, len(effects))
		for _, e := range effects {
			b := fmt.Sprintf("+%d %s", e.Value, e.Type)
			if e.Duration > 0 {
				b += fmt.Sprintf(" for %d", e.Duration)
			}
			b += " to " + string(e.Target)
			bonuses = append(bonuses, b)
		}
		clauses = append(clauses, tl.label+": "+strings.Join(bonuses, ", "))
	}
	if len(clauses) == 0 {
		return ""
	}
	return "[" + strings.Join(clauses, "; ") + "]"
}
