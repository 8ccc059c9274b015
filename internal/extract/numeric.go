package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Unit tokens are stripped only when bounded by non-letters so that a
	// bare "in" never eats into surrounding words or digits.
	unitPattern   = regexp.MustCompile(`(?i)(^|[^a-z])(inches|inch|in|ounces|ounce|oz|grams|gram|lbs|lb|mm|cm|g)([^a-z]|$)`)
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParseMeasurement resolves free-text numeric expressions to a float:
// plain numbers, fractions ("1/4"), mixed numbers ("4 1/4"), and hyphen
// ranges ("7.9-8.3", averaged), with unit suffixes stripped first. The
// second return is false when no value can be derived; it never guesses.
func ParseMeasurement(text string) (float64, bool) {
	// footnote markers like `4 1/8 in *may vary` end the value
	if i := strings.Index(text, "*"); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(stripUnits(text))
	if text == "" {
		return 0, false
	}

	if fields := strings.Fields(text); len(fields) == 2 && strings.Contains(fields[1], "/") {
		return parseMixedNumber(fields[0], fields[1])
	}

	if strings.Count(text, "/") == 1 && !strings.Contains(text, " ") {
		return parseFraction(text)
	}

	if v, ok, claimed := parseRange(text); claimed {
		return v, ok
	}

	if m := numberPattern.FindString(text); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v, true
		}
	}

	return 0, false
}

func stripUnits(s string) string {
	for unitPattern.MatchString(s) {
		s = unitPattern.ReplaceAllString(s, "${1}${3}")
	}
	return s
}

func parseMixedNumber(whole, frac string) (float64, bool) {
	w, err := strconv.ParseFloat(whole, 64)
	if err != nil {
		return 0, false
	}
	f, ok := parseFraction(frac)
	if !ok {
		return 0, false
	}
	return w + f, true
}

func parseFraction(s string) (float64, bool) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// parseRange handles "7.9-8.3" style bounds, returning their mean. The rule
// only claims text whose first bound starts with a digit, so hyphenated
// words fall through to plain number extraction. A claimed range with an
// unparseable bound is a failure, not a fallback.
func parseRange(text string) (v float64, ok bool, claimed bool) {
	lo, hi, found := strings.Cut(text, "-")
	if !found {
		return 0, false, false
	}
	lo = strings.TrimSpace(lo)
	hi = strings.TrimSpace(hi)
	if lo == "" || hi == "" || lo[0] < '0' || lo[0] > '9' {
		return 0, false, false
	}
	a, err1 := strconv.ParseFloat(lo, 64)
	b, err2 := strconv.ParseFloat(hi, 64)
	if err1 != nil || err2 != nil {
		return 0, false, true
	}
	return (a + b) / 2, true, true
}
