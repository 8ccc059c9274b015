package extract

import (
	"regexp"

	"github.com/pickledex/paddle-scraper/internal/models"
)

// Length thresholds in inches, inclusive lower bounds.
const (
	elongatedMinLength = 16.5
	hybridMinLength    = 16.25
)

// shapeKeywords maps descriptive vocabulary onto the canonical shapes,
// matched as whole words so "long" never fires inside "longer" or
// "prolonged". Evaluation order matters: Elongated wins over Hybrid wins
// over Wide-body.
var shapeKeywords = []struct {
	shape    models.Shape
	patterns []*regexp.Regexp
}{
	{models.ShapeElongated, compileWordPatterns([]string{"elongated", "long"})},
	{models.ShapeHybrid, compileWordPatterns([]string{"hybrid"})},
	{models.ShapeWideBody, compileWordPatterns([]string{"standard", "traditional", "classic", "teardrop", "wide-body", "widebody", "wide body"})},
}

// ShapeFromLength buckets a paddle length into a shape category.
func ShapeFromLength(inches float64) models.Shape {
	switch {
	case inches >= elongatedMinLength:
		return models.ShapeElongated
	case inches >= hybridMinLength:
		return models.ShapeHybrid
	default:
		return models.ShapeWideBody
	}
}

// ClassifyShape derives the shape from the measured length when available,
// otherwise from keyword evidence in the description. Wide-body is the
// default when neither rule fires.
func ClassifyShape(lengthInches *float64, description string) models.Shape {
	if lengthInches != nil {
		return ShapeFromLength(*lengthInches)
	}
	return shapeFromText(description)
}

// NormalizeShape maps any free-text shape label onto the closed three-value
// set, defaulting to Wide-body for unrecognized input.
func NormalizeShape(raw string) models.Shape {
	return shapeFromText(raw)
}

func shapeFromText(text string) models.Shape {
	for _, set := range shapeKeywords {
		for _, p := range set.patterns {
			if p.MatchString(text) {
				return set.shape
			}
		}
	}
	return models.ShapeWideBody
}
