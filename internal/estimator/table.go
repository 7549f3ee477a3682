package estimator

import "strings"

// Entry pairs a lowercase food-name key with its per-serving calorie value.
type Entry struct {
	Key      string
	Calories int
}

// Table is an ordered calorie lookup table. Matching scans entries front to
// back and the first key found as a substring of a segment wins, so entry
// order is a priority order — reordering entries changes results. Never back
// a Table with a map.
type Table struct {
	entries []Entry
}

// NewTable builds a table from entries in the given priority order. Keys are
// lowercased; empty keys are dropped.
func NewTable(entries []Entry) Table {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Key))
		if key == "" {
			continue
		}
		kept = append(kept, Entry{Key: key, Calories: e.Calories})
	}
	return Table{entries: kept}
}

// DefaultTable returns the built-in table. Entry order is load-bearing:
// "egg" is scanned before "banana", "orange juice" before "milk", and so on.
// Values for egg, banana, toast, coffee and orange juice are fixed by the
// app's historical behavior; the rest are common per-serving values.
func DefaultTable() Table {
	return NewTable([]Entry{
		{"egg", 78},
		{"eggs", 78},
		{"banana", 105},
		{"toast", 75},
		{"butter", 102},
		{"coffee", 2},
		{"orange juice", 112},
		{"milk", 103},
		{"chicken breast", 165},
		{"rice", 206},
		{"apple", 95},
		{"yogurt", 150},
		{"oatmeal", 158},
	})
}

// Len returns the number of entries.
func (t Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in priority order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Match returns the first entry whose key occurs as a substring of the
// lowercased segment. First match wins, not best or longest match.
func (t Table) Match(lowered string) (Entry, bool) {
	for _, e := range t.entries {
		if strings.Contains(lowered, e.Key) {
			return e, true
		}
	}
	return Entry{}, false
}

// ShadowedKeys returns keys that can never win a match because an earlier
// entry's key is a substring of them: any segment containing the later key
// also contains the earlier one. In the default table "eggs" is shadowed by
// "egg" (harmless, both map to the same value) — callers should surface
// shadowed keys rather than silently reorder the table.
func (t Table) ShadowedKeys() []string {
	var shadowed []string
	for i, e := range t.entries {
		for _, earlier := range t.entries[:i] {
			if strings.Contains(e.Key, earlier.Key) {
				shadowed = append(shadowed, e.Key)
				break
			}
		}
	}
	return shadowed
}
