package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{"float", 2.5, 2.5, true},
		{"int", 7, 7, true},
		{"numeric string", "3.5", 3.5, true},
		{"padded string", "  42 ", 42, true},
		{"bool true", true, 1, true},
		{"bool false", false, 0, true},
		{"word", "hello", 0, false},
		{"empty string", "", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToNumber(tt.value)
			if !tt.ok {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "5", FormatValue(5.0))
	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "-3", FormatValue(-3.0))
	assert.Equal(t, "hello", FormatValue("hello"))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "", FormatValue(nil))
}

func TestFormatResults(t *testing.T) {
	assert.Equal(t, "[]", FormatResults(nil))
	assert.Equal(t, "[Set x to 5, Changed x by 3]", FormatResults([]string{"Set x to 5", "Changed x by 3"}))
}

func TestTruthy(t *testing.T) {
	assert.True(t, Truthy(true))
	assert.True(t, Truthy(1.0))
	assert.True(t, Truthy("no"))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(0.0))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(nil))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(5.0, 5.0))
	assert.True(t, Equal(5, 5.0))
	assert.True(t, Equal("abc", "abc"))
	assert.True(t, Equal(true, 1.0))

	// Numbers never equal their string rendering.
	assert.False(t, Equal("5", 5.0))
	assert.False(t, Equal(5.0, "5"))
	assert.False(t, Equal("abc", "abd"))
}

func TestCompareValues(t *testing.T) {
	// Both numeric strings compare numerically.
	assert.Positive(t, compareValues("10", "9"))
	assert.Negative(t, compareValues("9", "10"))
	assert.Zero(t, compareValues("5", 5.0))

	// Otherwise lexicographic over rendered forms.
	assert.Positive(t, compareValues("b", "a"))
	assert.Negative(t, compareValues("10x", "9"))
}

func TestWrapHeading(t *testing.T) {
	assert.InDelta(t, 10.0, wrapHeading(370), 1e-9)
	assert.InDelta(t, 350.0, wrapHeading(-10), 1e-9)
	assert.InDelta(t, 0.0, wrapHeading(720), 1e-9)
	assert.InDelta(t, 90.0, wrapHeading(90), 1e-9)
}

func TestFloorMod(t *testing.T) {
	assert.InDelta(t, 2.0, floorMod(-7, 3), 1e-9)
	assert.InDelta(t, -2.0, floorMod(7, -3), 1e-9)
	assert.InDelta(t, 1.0, floorMod(7, 3), 1e-9)
}
