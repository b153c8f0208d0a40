package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trawltui/trawl/internal/filter"
)

func fixedFetch(items []filter.Item) Fetch {
	return func(ctx context.Context, keys []string, chain *filter.Chain) ([]filter.Item, error) {
		if chain != nil {
			return chain.Apply(items), nil
		}
		return items, nil
	}
}

func poolItems() []filter.Item {
	return []filter.Item{
		filter.Map{"id": int64(1), "name": "Foo", "status": []string{"stopped"}},
		filter.Map{"id": int64(2), "name": "Bar", "status": []string{"downloading", "active"}},
	}
}

func mustChain(t *testing.T, expr string) *filter.Chain {
	t.Helper()
	c, err := filter.ParseChain(filter.Torrents(), expr)
	require.NoError(t, err)
	return c
}

func TestPoolDispatchesPerSubscriber(t *testing.T) {
	p := NewPool(fixedFetch(poolItems()), time.Minute)

	var stopped, all []filter.Item
	p.Subscribe(mustChain(t, "stopped"), nil, func(items []filter.Item) { stopped = items })
	p.Subscribe(nil, []string{"name"}, func(items []filter.Item) { all = items })

	require.NoError(t, p.Poll(context.Background()))
	require.Len(t, stopped, 1)
	assert.Equal(t, "Foo", stopped[0].Value("name"))
	assert.Len(t, all, 2)
}

func TestPoolNeededKeysUnion(t *testing.T) {
	var requested []string
	fetch := func(ctx context.Context, keys []string, chain *filter.Chain) ([]filter.Item, error) {
		requested = keys
		return nil, nil
	}
	p := NewPool(fetch, time.Minute)
	p.Subscribe(mustChain(t, "stopped"), []string{"name"}, func([]filter.Item) {})
	p.Subscribe(mustChain(t, "complete"), []string{"name", "id"}, func([]filter.Item) {})

	require.NoError(t, p.Poll(context.Background()))
	assert.Equal(t, []string{"%downloaded", "id", "name", "status"}, requested)
}

func TestPoolMergedChain(t *testing.T) {
	var merged *filter.Chain
	fetch := func(ctx context.Context, keys []string, chain *filter.Chain) ([]filter.Item, error) {
		merged = chain
		return nil, nil
	}
	p := NewPool(fetch, time.Minute)

	p.Subscribe(mustChain(t, "stopped"), nil, func([]filter.Item) {})
	p.Subscribe(mustChain(t, "complete"), nil, func([]filter.Item) {})
	require.NoError(t, p.Poll(context.Background()))
	require.NotNil(t, merged)
	assert.True(t, merged.Equal(mustChain(t, "stopped|complete")))

	// A subscriber with no filter wants every object, which dominates.
	p.Subscribe(nil, nil, func([]filter.Item) {})
	require.NoError(t, p.Poll(context.Background()))
	assert.Nil(t, merged)
}

func TestPoolSkipsFetchWithoutSubscribers(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, keys []string, chain *filter.Chain) ([]filter.Item, error) {
		calls++
		return nil, nil
	}
	p := NewPool(fetch, time.Minute)

	require.NoError(t, p.Poll(context.Background()))
	assert.Zero(t, calls)

	sub := p.Subscribe(nil, nil, func([]filter.Item) {})
	require.NoError(t, p.Poll(context.Background()))
	assert.Equal(t, 1, calls)

	sub.Unsubscribe()
	require.NoError(t, p.Poll(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestPoolFetchErrorDeliversEmpty(t *testing.T) {
	boom := errors.New("daemon down")
	fetch := func(ctx context.Context, keys []string, chain *filter.Chain) ([]filter.Item, error) {
		return nil, boom
	}
	p := NewPool(fetch, time.Minute)

	delivered := false
	var got []filter.Item
	p.Subscribe(mustChain(t, "stopped"), nil, func(items []filter.Item) {
		delivered = true
		got = items
	})

	err := p.Poll(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, delivered)
	assert.Empty(t, got)
}

func TestPoolDiscardsStaleFetch(t *testing.T) {
	p := NewPool(nil, time.Minute)

	var first, second []filter.Item
	firstCalled := false
	p.Subscribe(nil, nil, func(items []filter.Item) {
		firstCalled = true
		first = items
	})

	// The subscriber set changes while the fetch is in flight, so the
	// result belongs to a dead epoch and must not be delivered.
	p.fetch = func(ctx context.Context, keys []string, chain *filter.Chain) ([]filter.Item, error) {
		p.Subscribe(nil, nil, func(items []filter.Item) { second = items })
		return poolItems(), nil
	}

	require.NoError(t, p.Poll(context.Background()))
	assert.False(t, firstCalled)
	assert.Nil(t, second)

	// The next cycle sees the settled set and delivers to both.
	p.fetch = fixedFetch(poolItems())
	require.NoError(t, p.Poll(context.Background()))
	assert.Len(t, first, 2)
	assert.Len(t, second, 2)
}

func TestPoolSetChainAdvancesEpoch(t *testing.T) {
	p := NewPool(fixedFetch(poolItems()), time.Minute)

	var got []filter.Item
	sub := p.Subscribe(mustChain(t, "stopped"), nil, func(items []filter.Item) { got = items })

	require.NoError(t, p.Poll(context.Background()))
	require.Len(t, got, 1)

	p.SetChain(sub, mustChain(t, "active"))
	require.NoError(t, p.Poll(context.Background()))
	require.Len(t, got, 1)
	assert.Equal(t, "Bar", got[0].Value("name"))
}

func TestPoolUnsubscribeTwice(t *testing.T) {
	p := NewPool(fixedFetch(poolItems()), time.Minute)
	sub := p.Subscribe(nil, nil, func([]filter.Item) {})
	sub.Unsubscribe()
	sub.Unsubscribe()

	require.NoError(t, p.Poll(context.Background()))
}

func TestPoolStopIdempotent(t *testing.T) {
	p := NewPool(fixedFetch(nil), time.Minute)
	p.Run(context.Background())
	p.Stop()
	p.Stop()
}

func TestBackoff(t *testing.T) {
	base := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second},
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := backoff(tt.failures, base)
			if got != tt.want {
				t.Errorf("backoff(%d, %v) = %v, want %v", tt.failures, base, got, tt.want)
			}
		})
	}
}
