package strategy

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeID maps a legacy spelling to its canonical id. Ids without an
// alias are returned unchanged.
func NormalizeID(raw string) string {
	if canonical, ok := legacyAliases[raw]; ok {
		return canonical
	}
	return raw
}

// NormalizeIDs applies NormalizeID element-wise, keeping order and duplicates.
func NormalizeIDs(raw []string) []string {
	out := make([]string, len(raw))
	for i, id := range raw {
		out[i] = NormalizeID(id)
	}
	return out
}

// IsLegacyID reports whether raw has a canonical replacement.
func IsLegacyID(raw string) bool {
	_, ok := legacyAliases[raw]
	return ok
}

// FormatName turns an id such as "custom_flash_cards" into "Flash Cards".
func FormatName(id string) string {
	trimmed := strings.TrimPrefix(id, CustomPrefix)
	words := strings.Split(strings.ReplaceAll(trimmed, "_", " "), " ")
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func upperFirst(w string) string {
	if w == "" {
		return w
	}
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[size:]
}
