package categorizer

import (
	"strings"

	"fjacquet/finance-tracker/internal/models"
)

// LearnedPreferences maps normalized descriptions to category labels, learned
// from user corrections. Keys keep their insertion order so that substring
// tie-breaking is deterministic: the oldest satisfying preference wins.
// Last write wins per key; the map only grows.
type LearnedPreferences struct {
	order []string
	byKey map[string]string
}

// NewLearnedPreferences builds the preference map from its persisted entries.
func NewLearnedPreferences(entries []models.PreferenceEntry) *LearnedPreferences {
	p := &LearnedPreferences{byKey: make(map[string]string, len(entries))}
	for _, e := range entries {
		p.Set(e.Description, e.Category)
	}
	return p
}

// Normalize lower-cases and trims a description for use as a preference key.
func Normalize(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

// Set records a preference. The description is normalized; re-setting an
// existing key overwrites the category but keeps the original position.
func (p *LearnedPreferences) Set(description, category string) {
	key := Normalize(description)
	if key == "" {
		return
	}
	if _, exists := p.byKey[key]; !exists {
		p.order = append(p.order, key)
	}
	p.byKey[key] = category
}

// Get returns the category for an exact normalized description match.
func (p *LearnedPreferences) Get(description string) (string, bool) {
	category, ok := p.byKey[Normalize(description)]
	return category, ok
}

// Len returns the number of learned preferences.
func (p *LearnedPreferences) Len() int {
	return len(p.order)
}

// Entries returns the preferences in insertion order, for persistence.
func (p *LearnedPreferences) Entries() []models.PreferenceEntry {
	entries := make([]models.PreferenceEntry, 0, len(p.order))
	for _, key := range p.order {
		entries = append(entries, models.PreferenceEntry{Description: key, Category: p.byKey[key]})
	}
	return entries
}

// LearnedStrategy matches descriptions against learned preferences: an exact
// match first, then a containment match in either direction. The first
// satisfying preference in insertion order is accepted; matches are not
// ranked by length.
type LearnedStrategy struct {
	prefs *LearnedPreferences
}

// NewLearnedStrategy creates the learned-preference tier.
func NewLearnedStrategy(prefs *LearnedPreferences) *LearnedStrategy {
	return &LearnedStrategy{prefs: prefs}
}

// Name returns the strategy name.
func (s *LearnedStrategy) Name() string { return "learned" }

// Categorize applies the exact then substring learned-preference tiers.
func (s *LearnedStrategy) Categorize(req Request) (models.Classification, bool) {
	desc := Normalize(req.Description)
	if desc == "" {
		return models.Classification{}, false
	}

	if category, ok := s.prefs.byKey[desc]; ok {
		return models.Classification{
			Category:   category,
			Confidence: models.ConfidenceHigh,
			Source:     models.SourceLearned,
		}, true
	}

	// Partial match, e.g. "uber eats sydney" matches the learned key
	// "uber eats".
	for _, key := range s.prefs.order {
		if strings.Contains(desc, key) || strings.Contains(key, desc) {
			return models.Classification{
				Category:   s.prefs.byKey[key],
				Confidence: models.ConfidenceHigh,
				Source:     models.SourceLearned,
			}, true
		}
	}

	return models.Classification{}, false
}
