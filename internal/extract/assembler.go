package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/pickledex/paddle-scraper/internal/document"
	"github.com/pickledex/paddle-scraper/internal/models"
)

// ErrRejected marks pages that cannot yield a usable record: navigation
// pages, or pages where no model name survives cleaning. Rejection discards
// the page; it never aborts the surrounding batch.
var ErrRejected = errors.New("record rejected")

// navigationTitles are title texts that mean we landed on a listing or
// navigation page instead of a product page.
var navigationTitles = map[string]bool{
	"home":       true,
	"products":   true,
	"categories": true,
	"paddles":    true,
}

// FieldDiagnostic names one field that could not be resolved and why.
type FieldDiagnostic struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Diagnostics is returned alongside every assembled record instead of being
// accumulated as a side channel. Missing fields are reported, never thrown.
type Diagnostics struct {
	Missing []FieldDiagnostic `json:"missing"`
}

func (d *Diagnostics) add(field, reason string) {
	d.Missing = append(d.Missing, FieldDiagnostic{Field: field, Reason: reason})
}

// MissingFields returns just the field names, for logging.
func (d *Diagnostics) MissingFields() []string {
	names := make([]string, len(d.Missing))
	for i, m := range d.Missing {
		names[i] = m.Field
	}
	return names
}

// Assembler drives one document through title and identity extraction, field
// resolution, normalization, and record assembly. It holds no per-document
// state and is safe for concurrent use on independent documents.
type Assembler struct {
	logger *slog.Logger
}

func NewAssembler(logger *slog.Logger) *Assembler {
	return &Assembler{logger: logger.With("component", "assembler")}
}

// Assemble produces a record and its diagnostics from one document. It
// returns an error wrapping ErrRejected when the page is not a usable
// product page; callers skip such pages.
func (a *Assembler) Assemble(doc *document.Document, p *Profile) (*models.Paddle, *Diagnostics, error) {
	diags := &Diagnostics{}

	title, ok := a.extractTitle(doc, p)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no usable product title at %s", ErrRejected, doc.URL)
	}

	brand := extractBrand(title, doc.URL, p)
	if brand == "" {
		brand = "Unknown"
		diags.add("brand", "no known brand in title or URL")
	}

	model := extractModel(title, brand, p)
	if model == "" {
		return nil, nil, fmt.Errorf("%w: empty model after cleaning title %q", ErrRejected, title)
	}

	resolver := NewResolver(doc, p)
	specs := a.buildSpecs(resolver, p, diags)
	perf := buildPerformance(resolver, p, diags)

	paddle := &models.Paddle{
		ID:          models.PaddleID(brand, model),
		Metadata:    models.Metadata{Brand: brand, Model: model, Source: p.Name},
		Specs:       specs,
		Performance: perf,
	}

	a.logger.Info("record assembled",
		"id", paddle.ID,
		"brand", brand,
		"model", model,
		"source", p.Name,
		"missing", diags.MissingFields(),
	)

	return paddle, diags, nil
}

// extractTitle walks the profile's title selectors, falls back to the page
// <title>, and finally to a name derived from the URL slug. It reports !ok
// when the best candidate still looks like navigation text.
func (a *Assembler) extractTitle(doc *document.Document, p *Profile) (string, bool) {
	var title string
	for _, sel := range p.TitleSelectors {
		t := doc.Text(sel)
		if plausibleTitle(t) {
			title = t
			break
		}
	}

	if title == "" {
		if t := doc.PageTitle(); t != "" {
			// page titles usually carry the site name after a dash
			if head, _, found := strings.Cut(t, " - "); found {
				t = head
			}
			title = strings.TrimSpace(t)
		}
	}

	if !plausibleTitle(title) {
		if t := titleFromURL(doc.URL); t != "" {
			title = t
		}
	}

	if title == "" || navigationTitles[strings.ToLower(title)] {
		return "", false
	}
	return title, true
}

func plausibleTitle(t string) bool {
	return len(t) >= 5 && !navigationTitles[strings.ToLower(t)]
}

// titleFromURL turns the last path segment into a name: strip the extension,
// hyphens to spaces, words capitalized.
func titleFromURL(pageURL string) string {
	seg := pageURL
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	seg, _, _ = strings.Cut(seg, "?")
	seg = strings.TrimSuffix(seg, ".html")
	seg = strings.ReplaceAll(seg, "-", " ")

	words := strings.Fields(seg)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractBrand looks for a known brand at the start of the title, then
// anywhere in it as a whole word, then as a slug inside the URL, before
// falling back to the leading title word.
func extractBrand(title, pageURL string, p *Profile) string {
	lowerTitle := strings.ToLower(title)
	for _, b := range p.KnownBrands {
		if strings.HasPrefix(lowerTitle, strings.ToLower(b)) {
			return b
		}
	}
	for _, b := range p.KnownBrands {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(b) + `\b`)
		if re.MatchString(title) {
			return b
		}
	}

	lowerURL := strings.ToLower(pageURL)
	for _, b := range p.KnownBrands {
		if strings.Contains(lowerURL, strings.ReplaceAll(strings.ToLower(b), " ", "-")) {
			return b
		}
	}

	words := strings.Fields(title)
	if len(words) >= 2 {
		two := words[0] + " " + words[1]
		if strings.Contains(lowerURL, strings.ReplaceAll(strings.ToLower(two), " ", "-")) {
			return two
		}
	}
	if len(words) >= 1 {
		return words[0]
	}
	return ""
}

// extractModel removes the brand prefix and site names from the title, then
// runs the shared name cleaner.
func extractModel(title, brand string, p *Profile) string {
	model := title
	if brand != "Unknown" && brand != "" {
		prefix := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(brand) + `\s+`)
		model = prefix.ReplaceAllString(model, "")
	}
	model = ScrubWords(model, p.ScrubWords)
	return CleanModelName(model)
}

func (a *Assembler) buildSpecs(r *Resolver, p *Profile, diags *Diagnostics) models.Specs {
	var specs models.Specs
	var rawShape string

	for _, fs := range p.Fields {
		res, ok := r.Resolve(fs)
		if !ok {
			diags.add(fs.Name, "no strategy matched")
			continue
		}

		switch fs.Name {
		case "shape":
			rawShape = res.Value
		case "surface":
			v := classifySurface(res.Value)
			specs.Surface = &v
		case "grip_type":
			v := strings.TrimSpace(res.Value)
			specs.GripType = &v
		case "average_weight":
			specs.AverageWeight = floatField(res, diags)
		case "core":
			specs.Core = floatField(res, diags)
		case "paddle_length":
			specs.PaddleLength = floatField(res, diags)
		case "paddle_width":
			specs.PaddleWidth = floatField(res, diags)
		case "grip_length":
			specs.GripLength = floatField(res, diags)
		case "grip_circumference":
			specs.GripCircumference = floatField(res, diags)
		default:
			a.logger.Warn("unmapped field in profile", "field", fs.Name, "source", p.Name)
		}
	}

	// shape is always derivable: label, then length, then description
	// keywords, then the Wide-body default
	if rawShape != "" {
		specs.Shape = NormalizeShape(rawShape)
	} else {
		specs.Shape = ClassifyShape(specs.PaddleLength, r.Description())
	}

	return specs
}

func buildPerformance(r *Resolver, p *Profile, diags *Diagnostics) *models.Performance {
	if len(p.PerformanceFields) == 0 {
		return nil
	}

	perf := &models.Performance{}
	for _, fs := range p.PerformanceFields {
		res, ok := r.Resolve(fs)
		if !ok {
			diags.add(fs.Name, "not present on page")
			continue
		}
		v := floatField(res, diags)
		switch fs.Name {
		case "power":
			perf.Power = v
		case "pop":
			perf.Pop = v
		case "spin":
			perf.Spin = v
		case "twist_weight":
			perf.TwistWeight = v
		case "swing_weight":
			perf.SwingWeight = v
		case "balance_point":
			perf.BalancePoint = v
		}
	}

	if perf.Empty() {
		return nil
	}
	return perf
}

// floatField degrades to nil on parse failure, never to a wrong number.
func floatField(res Resolution, diags *Diagnostics) *float64 {
	v, ok := ParseMeasurement(res.Value)
	if !ok {
		diags.add(res.Field, fmt.Sprintf("unparseable number %q", res.Value))
		return nil
	}
	return &v
}

// classifySurface maps free-text face material onto the common categories,
// keeping the raw text when it matches none of them.
func classifySurface(raw string) string {
	t := strings.ToLower(raw)
	switch {
	case strings.Contains(t, "fiberglass"):
		return "Fiberglass"
	case strings.Contains(t, "carbon") && strings.Contains(t, "fiber"):
		return "Carbon Fiber"
	case strings.Contains(t, "graphite"):
		return "Graphite"
	case strings.Contains(t, "composite"):
		return "Composite"
	default:
		return strings.TrimSpace(raw)
	}
}
