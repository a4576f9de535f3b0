package metrics

import (
	"sort"
	"strings"
	"unicode"

	"github.com/yungbote/regula-backend/internal/domain/regula"
)

const minWordRunes = 3

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {}, "you": {}, "all": {},
	"any": {}, "can": {}, "had": {}, "her": {}, "was": {}, "one": {}, "our": {}, "out": {},
	"has": {}, "have": {}, "him": {}, "his": {}, "how": {}, "its": {}, "may": {}, "new": {},
	"now": {}, "own": {}, "she": {}, "too": {}, "use": {}, "way": {}, "who": {}, "did": {},
	"get": {}, "got": {}, "let": {}, "this": {}, "that": {}, "with": {}, "from": {}, "they": {},
	"them": {}, "then": {}, "than": {}, "there": {}, "their": {}, "what": {}, "when": {},
	"which": {}, "will": {}, "would": {}, "could": {}, "should": {}, "about": {}, "into": {},
	"just": {}, "more": {}, "some": {}, "very": {}, "were": {}, "been": {}, "being": {},
	"also": {}, "only": {}, "much": {}, "like": {}, "because": {}, "while": {}, "where": {},
	"your": {}, "yours": {}, "mine": {}, "myself": {}, "these": {}, "those": {}, "after": {},
	"before": {}, "over": {}, "under": {}, "again": {}, "each": {}, "other": {}, "such": {},
	"does": {}, "doing": {}, "done": {}, "dont": {}, "didnt": {}, "cant": {}, "isnt": {},
	"wasnt": {}, "im": {}, "ive": {},
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// CommentWordFrequency counts lower-cased words across reflection comments,
// dropping stop words and words shorter than three runes. The result is
// ordered by count descending then word ascending and cut to limit when limit
// is positive.
func CommentWordFrequency(reflections []*regula.Reflection, limit int) []WordCount {
	counts := map[string]int{}
	for _, r := range reflections {
		if r == nil {
			continue
		}
		for _, w := range tokenize(r.Comment) {
			counts[w]++
		}
	}
	out := make([]WordCount, 0, len(counts))
	for w, n := range counts {
		out = append(out, WordCount{Word: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.ReplaceAll(strings.Trim(f, "'"), "'", "")
		if len([]rune(w)) < minWordRunes {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}
	return words
}
