// Package strategy holds the learning-strategy catalog and the normalization
// rules that reconcile legacy, default and user-defined strategy identifiers.
package strategy

import "strings"

const (
	// CustomPrefix marks ids of user-defined strategies.
	CustomPrefix = "custom_"

	// NoDescription is shown for ids that resolve to neither a default nor a
	// custom strategy.
	NoDescription = "No description available."
)

// Strategy is a displayable learning strategy.
type Strategy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var defaultStrategies = []Strategy{
	{
		ID:          "pomodoro",
		Name:        "Pomodoro",
		Description: "Work in focused 25 minute intervals separated by short breaks.",
	},
	{
		ID:          "active_recall",
		Name:        "Active Recall",
		Description: "Retrieve the material from memory instead of re-reading it.",
	},
	{
		ID:          "spaced_repetition",
		Name:        "Spaced Repetition",
		Description: "Revisit material at increasing intervals to strengthen retention.",
	},
	{
		ID:          "feynman_technique",
		Name:        "Feynman Technique",
		Description: "Explain the topic in plain words as if teaching it to someone else.",
	},
	{
		ID:          "interleaving",
		Name:        "Interleaving",
		Description: "Mix related topics or problem types within a single study session.",
	},
	{
		ID:          "mind_mapping",
		Name:        "Mind Mapping",
		Description: "Draw the connections between concepts as a diagram.",
	},
	{
		ID:          "elaboration",
		Name:        "Elaboration",
		Description: "Ask how and why questions and connect new ideas to what you already know.",
	},
	{
		ID:          "practice_testing",
		Name:        "Practice Testing",
		Description: "Solve past exams and exercises under exam-like conditions.",
	},
}

// legacyAliases maps older spellings to canonical ids. Targets are never keys,
// which keeps NormalizeID idempotent.
var legacyAliases = map[string]string{
	"pomodoro_technique":        "pomodoro",
	"pomodoro_method":           "pomodoro",
	"recall":                    "active_recall",
	"active_recalling":          "active_recall",
	"spaced_practice":           "spaced_repetition",
	"spacing":                   "spaced_repetition",
	"feynman":                   "feynman_technique",
	"feynman_method":            "feynman_technique",
	"interleaved_practice":      "interleaving",
	"mind_map":                  "mind_mapping",
	"mindmap":                   "mind_mapping",
	"mind_maps":                 "mind_mapping",
	"elaborative_interrogation": "elaboration",
	"self_testing":              "practice_testing",
	"past_papers":               "practice_testing",
}

var defaultIndex = func() map[string]int {
	out := make(map[string]int, len(defaultStrategies))
	for i, s := range defaultStrategies {
		out[s.ID] = i
	}
	return out
}()

// ListDefaultStrategies returns the default catalog in its fixed order. The
// returned slice is a copy.
func ListDefaultStrategies() []Strategy {
	out := make([]Strategy, len(defaultStrategies))
	copy(out, defaultStrategies)
	return out
}

// LookupDefault returns the default-catalog entry for a canonical id.
func LookupDefault(id string) (Strategy, bool) {
	i, ok := defaultIndex[id]
	if !ok {
		return Strategy{}, false
	}
	return defaultStrategies[i], true
}

// IsCustomID reports whether id carries the custom prefix.
func IsCustomID(id string) bool {
	return strings.HasPrefix(id, CustomPrefix)
}
