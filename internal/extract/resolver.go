package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pickledex/paddle-scraper/internal/document"
)

// StrategyKind names one heuristic technique for locating a field's raw text.
type StrategyKind string

const (
	// StrategySpecTable looks the field up in "key: value" lines collected
	// from the profile's spec-block elements.
	StrategySpecTable StrategyKind = "spec_table"
	// StrategyRegex applies a pattern over the description region and takes
	// the first capture group of the first match.
	StrategyRegex StrategyKind = "regex"
	// StrategyKeyword returns the first sentence containing the keyword as a
	// whole word.
	StrategyKeyword StrategyKind = "keyword"
)

// Strategy is one entry in a field's ordered fallback chain. Exactly one of
// Keys, Pattern, or Keyword is used, depending on Kind.
type Strategy struct {
	Kind    StrategyKind
	Keys    []string
	Pattern *regexp.Regexp
	Keyword string
}

// FieldType tells the assembler how to convert resolved raw text.
type FieldType int

const (
	FieldFloat FieldType = iota
	FieldEnum
	FieldText
)

// FieldSpec declares one target field: its record name, expected type, and
// the ordered strategies used to locate its raw text.
type FieldSpec struct {
	Name       string
	Type       FieldType
	Strategies []Strategy
}

// Resolution records the raw text for a field and which strategy produced
// it. At most one strategy contributes: the first one to yield non-empty
// text short-circuits the rest.
type Resolution struct {
	Field    string
	Value    string
	Strategy StrategyKind
	Attempt  int // 1-based index into the field's strategy list
}

// Resolver answers field lookups against a single document, using the spec
// table and description region designated by a site profile. It is built
// once per document and is read-only afterwards.
type Resolver struct {
	specs map[string]string
	text  string
}

// NewResolver collects the document's "key: value" spec lines and its
// description text according to the profile.
func NewResolver(doc *document.Document, p *Profile) *Resolver {
	r := &Resolver{specs: make(map[string]string)}

	for _, sel := range p.SpecBlockSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			r.addSpecLines(s.Text())
		})
	}

	r.text = doc.FullText()
	if p.DescriptionSelector != "" {
		if t := doc.Text(p.DescriptionSelector); t != "" {
			r.text = t
		}
	}

	return r
}

// Description returns the text region used by regex and keyword strategies.
func (r *Resolver) Description() string {
	return r.text
}

// Resolve tries a field's strategies strictly in declared order and returns
// the first non-empty result. The ok return is false when every strategy
// came up empty.
func (r *Resolver) Resolve(fs FieldSpec) (Resolution, bool) {
	for i, st := range fs.Strategies {
		var value string
		switch st.Kind {
		case StrategySpecTable:
			value = r.lookupSpec(st.Keys)
		case StrategyRegex:
			value = r.matchPattern(st.Pattern)
		case StrategyKeyword:
			value = r.keywordSentence(st.Keyword)
		}
		if value != "" {
			return Resolution{Field: fs.Name, Value: value, Strategy: st.Kind, Attempt: i + 1}, true
		}
	}
	return Resolution{Field: fs.Name}, false
}

func (r *Resolver) addSpecLines(block string) {
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		k := normalizeKey(key)
		v := strings.TrimSpace(value)
		if k == "" || v == "" {
			continue
		}
		// first occurrence wins
		if _, dup := r.specs[k]; !dup {
			r.specs[k] = v
		}
	}
}

func (r *Resolver) lookupSpec(keys []string) string {
	for _, k := range keys {
		if v, ok := r.specs[normalizeKey(k)]; ok {
			return v
		}
	}
	return ""
}

func (r *Resolver) matchPattern(p *regexp.Regexp) string {
	if p == nil {
		return ""
	}
	m := p.FindStringSubmatch(r.text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func (r *Resolver) keywordSentence(keyword string) string {
	if keyword == "" {
		return ""
	}
	word := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	for _, sentence := range strings.Split(r.text, ".") {
		if word.MatchString(sentence) {
			return strings.TrimSpace(sentence)
		}
	}
	return ""
}

func normalizeKey(k string) string {
	return strings.Join(strings.Fields(strings.ToLower(k)), " ")
}
