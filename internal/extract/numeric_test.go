package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{
			name:     "plain number",
			input:    "16.5",
			expected: 16.5,
			ok:       true,
		},
		{
			name:     "number with unit",
			input:    "8.1 oz",
			expected: 8.1,
			ok:       true,
		},
		{
			name:     "unit attached without space",
			input:    "4 1/4in",
			expected: 4.25,
			ok:       true,
		},
		{
			name:     "bare fraction",
			input:    "1/4",
			expected: 0.25,
			ok:       true,
		},
		{
			name:     "mixed number with unit word",
			input:    "4 1/4 inches",
			expected: 4.25,
			ok:       true,
		},
		{
			name:     "range averages to mean",
			input:    "7.9-8.3 ounces",
			expected: 8.1,
			ok:       true,
		},
		{
			name:     "range without unit",
			input:    "7.5 - 8.0",
			expected: 7.75,
			ok:       true,
		},
		{
			name:     "footnote marker truncates value",
			input:    "4 1/8 in *may vary",
			expected: 4.125,
			ok:       true,
		},
		{
			name:     "millimeter core thickness",
			input:    "16mm",
			expected: 16,
			ok:       true,
		},
		{
			name:  "range with unparseable bound fails",
			input: "7.9-light",
			ok:    false,
		},
		{
			name:     "hyphenated word before number still parses",
			input:    "approx. 8.0",
			expected: 8.0,
			ok:       true,
		},
		{
			name:  "no digits",
			input: "varies by production run",
			ok:    false,
		},
		{
			name:  "empty string",
			input: "",
			ok:    false,
		},
		{
			name:  "zero denominator fraction",
			input: "1/0",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMeasurement(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, got, 1e-9)
			}
		})
	}
}

func TestStripUnitsKeepsWords(t *testing.T) {
	// "in" inside a word must survive; standalone tokens must not
	assert.Equal(t, "thin grip", stripUnits("thin grip"))
	assert.NotContains(t, stripUnits("8.1 oz"), "oz")
}
