package models

// PreferenceEntry is a single learned categorization preference: a normalized
// (lower-cased, trimmed) description mapped to a category label. Preferences
// are persisted as an ordered list so that substring tie-breaking during
// classification is deterministic.
type PreferenceEntry struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}
