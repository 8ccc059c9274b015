package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pickledex/paddle-scraper/internal/models"
)

func ptr(v float64) *float64 { return &v }

func TestClassifyShape(t *testing.T) {
	tests := []struct {
		name        string
		length      *float64
		description string
		expected    models.Shape
	}{
		{
			name:     "elongated threshold",
			length:   ptr(16.5),
			expected: models.ShapeElongated,
		},
		{
			name:     "above elongated threshold",
			length:   ptr(17.0),
			expected: models.ShapeElongated,
		},
		{
			name:     "hybrid threshold",
			length:   ptr(16.25),
			expected: models.ShapeHybrid,
		},
		{
			name:     "below hybrid threshold",
			length:   ptr(16.0),
			expected: models.ShapeWideBody,
		},
		{
			name:        "length wins over contradicting description",
			length:      ptr(16.5),
			description: "a classic wide-body paddle",
			expected:    models.ShapeElongated,
		},
		{
			name:        "keyword fallback hybrid",
			description: "this is a hybrid paddle built for control",
			expected:    models.ShapeHybrid,
		},
		{
			name:        "keyword fallback elongated",
			description: "the long face adds reach",
			expected:    models.ShapeElongated,
		},
		{
			name:        "keyword fallback teardrop",
			description: "a teardrop profile with a forgiving sweet spot",
			expected:    models.ShapeWideBody,
		},
		{
			name:        "no evidence defaults to wide-body",
			description: "a paddle",
			expected:    models.ShapeWideBody,
		},
		{
			name:        "keyword inside a larger word does not fire",
			description: "a grip that lasts longer than most",
			expected:    models.ShapeWideBody,
		},
		{
			name:        "prolonged is not long",
			description: "built for prolonged rallies",
			expected:    models.ShapeWideBody,
		},
		{
			name:        "hyphen still bounds a keyword",
			description: "a long-face profile",
			expected:    models.ShapeElongated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyShape(tt.length, tt.description))
		})
	}
}

func TestNormalizeShape(t *testing.T) {
	assert.Equal(t, models.ShapeElongated, NormalizeShape("Elongated"))
	assert.Equal(t, models.ShapeHybrid, NormalizeShape("hybrid shape"))
	assert.Equal(t, models.ShapeWideBody, NormalizeShape("Standard"))
	assert.Equal(t, models.ShapeWideBody, NormalizeShape("something else"))
}
