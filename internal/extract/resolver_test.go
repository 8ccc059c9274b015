package extract

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickledex/paddle-scraper/internal/document"
)

const resolverHTML = `<html><body>
<div class="specs">
Paddle Length: 16.5 inches
Weight: 7.9-8.3 ounces
Grip Size: 4 1/4 in
</div>
<div class="desc">
This paddle has a 16mm core. The carbon fiber face adds spin.
</div>
</body></html>`

func resolverProfile() *Profile {
	return &Profile{
		Name:                "Test",
		SpecBlockSelectors:  []string{".specs"},
		DescriptionSelector: ".desc",
	}
}

func newTestResolver(t *testing.T, html string, p *Profile) *Resolver {
	t.Helper()
	doc, err := document.Parse("https://example.com/test-paddle.html", html)
	require.NoError(t, err)
	return NewResolver(doc, p)
}

func TestResolveSpecTable(t *testing.T) {
	r := newTestResolver(t, resolverHTML, resolverProfile())

	res, ok := r.Resolve(FieldSpec{
		Name: "paddle_length",
		Type: FieldFloat,
		Strategies: []Strategy{
			{Kind: StrategySpecTable, Keys: []string{"paddle length", "length"}},
		},
	})
	require.True(t, ok)
	assert.Equal(t, "16.5 inches", res.Value)
	assert.Equal(t, StrategySpecTable, res.Strategy)
	assert.Equal(t, 1, res.Attempt)
}

func TestResolveFallbackOrder(t *testing.T) {
	r := newTestResolver(t, resolverHTML, resolverProfile())

	// spec table has no "core" line, so the regex strategy must fire
	res, ok := r.Resolve(FieldSpec{
		Name: "core",
		Type: FieldFloat,
		Strategies: []Strategy{
			{Kind: StrategySpecTable, Keys: []string{"core thickness", "core"}},
			{Kind: StrategyRegex, Pattern: regexp.MustCompile(`(?i)(\d+\.?\d*)\s*mm\s*core`)},
		},
	})
	require.True(t, ok)
	assert.Equal(t, "16", res.Value)
	assert.Equal(t, StrategyRegex, res.Strategy)
	assert.Equal(t, 2, res.Attempt)
}

func TestResolveKeywordSentence(t *testing.T) {
	r := newTestResolver(t, resolverHTML, resolverProfile())

	res, ok := r.Resolve(FieldSpec{
		Name: "surface",
		Type: FieldEnum,
		Strategies: []Strategy{
			{Kind: StrategySpecTable, Keys: []string{"surface material"}},
			{Kind: StrategyKeyword, Keyword: "carbon"},
		},
	})
	require.True(t, ok)
	assert.Contains(t, res.Value, "carbon fiber face")
	assert.Equal(t, StrategyKeyword, res.Strategy)
}

func TestResolveAllStrategiesMiss(t *testing.T) {
	r := newTestResolver(t, resolverHTML, resolverProfile())

	_, ok := r.Resolve(FieldSpec{
		Name: "twist_weight",
		Type: FieldFloat,
		Strategies: []Strategy{
			{Kind: StrategySpecTable, Keys: []string{"twist weight"}},
			{Kind: StrategyKeyword, Keyword: "twist"},
		},
	})
	assert.False(t, ok)
}

func TestResolverFirstSpecOccurrenceWins(t *testing.T) {
	html := `<html><body>
<div class="specs">Weight: 8.0 oz</div>
<div class="specs">Weight: 9.9 oz</div>
</body></html>`
	r := newTestResolver(t, html, resolverProfile())

	res, ok := r.Resolve(FieldSpec{
		Name: "average_weight",
		Strategies: []Strategy{
			{Kind: StrategySpecTable, Keys: []string{"weight"}},
		},
	})
	require.True(t, ok)
	assert.Equal(t, "8.0 oz", res.Value)
}

func TestResolverKeyNormalization(t *testing.T) {
	html := `<html><body><div class="specs">PADDLE   LENGTH : 16.25"</div></body></html>`
	r := newTestResolver(t, html, resolverProfile())

	res, ok := r.Resolve(FieldSpec{
		Name: "paddle_length",
		Strategies: []Strategy{
			{Kind: StrategySpecTable, Keys: []string{"paddle length"}},
		},
	})
	require.True(t, ok)
	assert.Equal(t, `16.25"`, res.Value)
}
