package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainMatch(t *testing.T) {
	reg := Torrents()
	items := testTorrents()

	for _, tt := range []struct {
		expr string
		want []int64
	}{
		{"complete&stopped", []int64{1}},
		{"complete|name~Bar", []int64{1, 2, 3}},
		{"stopped|seeding", []int64{1, 3}},
		{"complete&stopped|error", []int64{1, 3}},
		{"name~Ba&!error", []int64{2}},
		{"private|public&active", []int64{1, 2, 3}},
	} {
		t.Run(tt.expr, func(t *testing.T) {
			c, err := ParseChain(reg, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(c.Apply(items)))
		})
	}
}

func TestChainMultipleExpressions(t *testing.T) {
	reg := Torrents()
	items := testTorrents()

	// Separate expressions are alternatives, and blanks are skipped.
	c, err := ParseChain(reg, "stopped", "", "error")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(c.Apply(items)))

	single, err := ParseChain(reg, "stopped|error")
	require.NoError(t, err)
	assert.True(t, c.Equal(single))
}

func TestChainEmpty(t *testing.T) {
	reg := Torrents()
	items := testTorrents()

	c := EmptyChain(reg)
	assert.True(t, c.MatchesEverything())
	assert.Equal(t, items, c.Apply(items))
	assert.Equal(t, "", c.String())
	assert.Empty(t, c.NeededKeys())

	parsed, err := ParseChain(reg)
	require.NoError(t, err)
	assert.True(t, parsed.MatchesEverything())
}

func TestChainAbsorption(t *testing.T) {
	reg := Torrents()

	for _, expr := range []string{"all", "complete|all", "all&stopped", "stopped|name~x|*"} {
		t.Run(expr, func(t *testing.T) {
			c, err := ParseChain(reg, expr)
			require.NoError(t, err)
			assert.True(t, c.MatchesEverything())
			assert.Equal(t, "all", c.String())
		})
	}
}

func TestChainSplitErrors(t *testing.T) {
	reg := Torrents()

	for _, expr := range []string{"&stopped", "stopped&", "stopped||error", "stopped& &error"} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseChain(reg, expr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "missing filter expression")
		})
	}

	// Quoted and escaped combinators are value text, not syntax.
	c, err := ParseChain(reg, "name~'a&b'")
	require.NoError(t, err)
	assert.True(t, c.Match(Map{"name": "a&b"}))

	c, err = ParseChain(reg, `name~a\|b`)
	require.NoError(t, err)
	assert.True(t, c.Match(Map{"name": "xa|by"}))
}

func TestChainNeededKeys(t *testing.T) {
	reg := Torrents()

	c, err := ParseChain(reg, "complete&stopped|rate>1k")
	require.NoError(t, err)
	assert.Equal(t, []string{"%downloaded", "rate-down", "rate-up", "status"}, c.NeededKeys())
}

func TestChainEqualIgnoresOrder(t *testing.T) {
	reg := Torrents()

	a, err := ParseChain(reg, "complete&stopped|error")
	require.NoError(t, err)
	b, err := ParseChain(reg, "error|stopped&complete")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := ParseChain(reg, "complete|stopped&error")
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestChainOr(t *testing.T) {
	reg := Torrents()

	a, err := ParseChain(reg, "stopped")
	require.NoError(t, err)
	b, err := ParseChain(reg, "error")
	require.NoError(t, err)

	both := a.Or(b)
	want, err := ParseChain(reg, "stopped|error")
	require.NoError(t, err)
	assert.True(t, both.Equal(want))

	// Or is commutative and deduplicates.
	assert.True(t, b.Or(a).Equal(both))
	assert.True(t, a.Or(a).Equal(a))

	// nil and the catch-all dominate in their own ways.
	assert.True(t, a.Or(nil).Equal(a))
	every, err := ParseChain(reg, "all")
	require.NoError(t, err)
	assert.True(t, a.Or(every).MatchesEverything())
}

func TestChainAnd(t *testing.T) {
	reg := Torrents()
	items := testTorrents()

	a, err := ParseChain(reg, "complete")
	require.NoError(t, err)
	b, err := ParseChain(reg, "stopped")
	require.NoError(t, err)

	combined := a.And(b)
	assert.Equal(t, []int64{1}, ids(combined.Apply(items)))

	// AND binds the adjacent groups of each side.
	left, err := ParseChain(reg, "stopped|error")
	require.NoError(t, err)
	combined = left.And(a)
	assert.Equal(t, "stopped|error&complete", combined.String())

	// Empty chains are identity elements.
	assert.True(t, a.And(EmptyChain(reg)).Equal(a))
	assert.True(t, EmptyChain(reg).And(a).Equal(a))
}

func TestChainRoundTrip(t *testing.T) {
	reg := Torrents()

	for _, expr := range []string{
		"stopped",
		"complete&stopped|error",
		"name~foo|size>1GiB&!private",
	} {
		t.Run(expr, func(t *testing.T) {
			c, err := ParseChain(reg, expr)
			require.NoError(t, err)
			again, err := ParseChain(reg, c.String())
			require.NoError(t, err)
			assert.True(t, c.Equal(again), "%q reparsed as %q", c, again)
		})
	}
}

func TestChainFirst(t *testing.T) {
	reg := Torrents()
	items := testTorrents()

	c, err := ParseChain(reg, "error")
	require.NoError(t, err)
	it := c.First(items)
	require.NotNil(t, it)
	assert.Equal(t, "Baz", it.Value("name"))

	c, err = ParseChain(reg, "name=Nope")
	require.NoError(t, err)
	assert.Nil(t, c.First(items))
}
