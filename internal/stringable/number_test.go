package stringable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		unit   string
		prefix Prefix
		want   float64
	}{
		{"plain", "1000", "B", Binary, 1000},
		{"decimal", "1.5", "", Metric, 1.5},
		{"negative", "-12", "", Metric, -12},
		{"metric k", "500k", "B", Metric, 500000},
		{"binary marker", "1.5MiB", "B", Metric, 1572864},
		{"bare letter uses mode", "1M", "B", Binary, 1048576},
		{"unit spelled out", "2MB", "B", Metric, 2000000},
		{"rate short unit", "1MiB", "B/s", Binary, 1048576},
		{"rate full unit", "1MiB/s", "B/s", Binary, 1048576},
		{"percent", "50%", "%", Metric, 50},
		{"percent bare", "50", "%", Metric, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseNumber(tt.in, tt.unit, tt.prefix)
			require.NoError(t, err)
			got, ok := n.Float64()
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestParseNumberErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "1.5X", "1.5kX", "--2"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseNumber(in, "B", Metric)
			assert.Error(t, err)
		})
	}
}

func TestParseNumberSentinels(t *testing.T) {
	n, err := ParseNumber("unlimited", "B/s", Binary)
	require.NoError(t, err)
	assert.True(t, n.IsUnlimited())
	assert.Equal(t, "unlimited", n.String())

	n, err = ParseNumber("unknown", "B", Binary)
	require.NoError(t, err)
	_, ok := n.Float64()
	assert.False(t, ok)
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		name string
		n    Number
		want string
	}{
		{"size binary", NewSize(1572864), "1.5MiB"},
		{"size small", NewSize(900), "900B"},
		{"rate", NewRate(0), "0B/s"},
		{"count metric", NewCount(1500), "1.5k"},
		{"percent", NewPercent(50), "50%"},
		{"ratio", NewRatio(1.25), "1.25"},
		{"negative", NewNumber(-2048, "B", Binary), "-2KiB"},
		{"unlimited", UnlimitedNumber("B/s"), "unlimited"},
		{"na", NumberNA(""), "na"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.String())
		})
	}
}

func TestNumberRoundTrip(t *testing.T) {
	for _, n := range []Number{
		NewSize(1572864),
		NewRate(1048576),
		NewCount(42),
		NewPercent(99.5),
		UnlimitedNumber("B/s"),
		NumberNA("B"),
	} {
		t.Run(n.String(), func(t *testing.T) {
			back, err := ParseNumber(n.String(), n.unit, n.prefix)
			require.NoError(t, err)
			assert.True(t, Equal(n, back), "parse(%q) != original", n.String())
		})
	}
}

func TestParseNumberAdjust(t *testing.T) {
	cur := NewRate(1000)

	up, err := ParseNumberAdjust("+=500", cur, "B/s", Binary)
	require.NoError(t, err)
	got, _ := up.Float64()
	assert.Equal(t, 1500.0, got)

	down, err := ParseNumberAdjust("-=600", cur, "B/s", Binary)
	require.NoError(t, err)
	got, _ = down.Float64()
	assert.Equal(t, 400.0, got)

	abs, err := ParseNumberAdjust("2k", cur, "B/s", Metric)
	require.NoError(t, err)
	got, _ = abs.Float64()
	assert.Equal(t, 2000.0, got)

	// Adjusting a sentinel starts from zero.
	fromUnlimited, err := ParseNumberAdjust("+=100", UnlimitedNumber("B/s"), "B/s", Binary)
	require.NoError(t, err)
	got, _ = fromUnlimited.Float64()
	assert.Equal(t, 100.0, got)
}

func TestNumberOrdering(t *testing.T) {
	order := []Number{
		NumberNA("B"),
		UnknownNumber("B"),
		NewSize(0),
		NewSize(1024),
		UnlimitedNumber("B"),
	}
	for i := 0; i < len(order)-1; i++ {
		c, ok := Cmp(order[i], order[i+1])
		require.True(t, ok)
		assert.Negative(t, c, "%s should sort below %s", order[i], order[i+1])
	}
}
