package normalization

import (
	"regexp"
	"strings"
)

func ParseInputString(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	return normalized
}

func ParseInputStringPtr(input *string) *string {
	if input == nil {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(*input))
	return &normalized
}

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lower-cases and trims input, collapses every run of non-alphanumeric
// characters to a single underscore and strips leading/trailing underscores.
func Slug(input string) string {
	s := nonAlnumRun.ReplaceAllString(ParseInputString(input), "_")
	return strings.Trim(s, "_")
}

// TrimmedOrNil returns nil for a nil, empty or whitespace-only string.
func TrimmedOrNil(input *string) *string {
	if input == nil {
		return nil
	}
	s := strings.TrimSpace(*input)
	if s == "" {
		return nil
	}
	return &s
}
