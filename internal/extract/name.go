package extract

import (
	"regexp"
	"strings"
)

// pipeRunes are ASCII and Unicode pipe look-alikes that separate the model
// name from promotional tails in listing titles.
const pipeRunes = "|│｜︱丨"

// trailingSuffixes are stripped from the end of a model name, once each, in
// this order. Matching is a case-sensitive exact suffix check against the
// current string end.
var trailingSuffixes = []string{
	"Pickleball Paddle",
	"Paddle",
	"Pickleball",
	" - PBC",
	" - NEW",
	" - Limited Edition",
	" - LE",
	" -",
	"Elongated",
	"Standard",
	"Teardrop",
	"Lightweight",
}

var descriptorPatterns = compileWordPatterns([]string{
	"New", "Limited Edition", "SALE", "In Stock",
})

var (
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// CleanModelName normalizes a free-text model string: truncate at the first
// pipe-like delimiter, strip known trailing suffixes, drop parenthetical
// asides, remove promotional descriptor words, and collapse whitespace.
// Applying it to already-cleaned output is a no-op.
func CleanModelName(raw string) string {
	s := raw
	if i := strings.IndexAny(s, pipeRunes); i >= 0 {
		s = s[:i]
	}
	for _, r := range pipeRunes {
		s = strings.ReplaceAll(s, string(r), "")
	}

	s = strings.TrimSpace(s)
	for _, suffix := range trailingSuffixes {
		s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
	}

	s = parentheticalPattern.ReplaceAllString(s, " ")

	for _, p := range descriptorPatterns {
		s = p.ReplaceAllString(s, " ")
	}

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// ScrubWords removes each word (or phrase) as a whole-word, case-insensitive
// match. Site profiles use it to keep source-site names out of model names.
func ScrubWords(s string, words []string) string {
	for _, p := range compileWordPatterns(words) {
		s = p.ReplaceAllString(s, " ")
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

func compileWordPatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return patterns
}
