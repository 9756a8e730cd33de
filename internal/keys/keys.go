package keys

import (
	"strings"
)

// ContentID derives a catalogue id from a display name: trimmed,
// lower-cased, runs of spaces and dashes collapsed into one underscore.
// "Heavy Blow" and " heavy-blow " both map to "heavy_blow".
func ContentID(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(name)), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	})
	return strings.Join(fields, "_")
}

// Fill returns id when set, otherwise the id derived from name.
func Fill(id, name string) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	return ContentID(name)
}
