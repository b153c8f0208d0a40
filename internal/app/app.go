package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trawltui/trawl/internal/config"
	"github.com/trawltui/trawl/internal/filter"
	"github.com/trawltui/trawl/internal/object"
	"github.com/trawltui/trawl/internal/poll"
	"github.com/trawltui/trawl/internal/prefs"
	"github.com/trawltui/trawl/internal/state"
	"github.com/trawltui/trawl/internal/transmission"
	"github.com/trawltui/trawl/internal/ui"
)

// displayKeys are the logical keys the torrent table renders. They are
// requested every poll on top of whatever the active filter needs.
var displayKeys = []string{
	"id", "name", "size", "%downloaded", "rate-down", "rate-up", "eta", "status",
}

// Options configure the Trawl application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/trawl/prefs.toml
	Address    string // daemon address; empty uses the config value
	PollEvery  int    // seconds; zero uses the config value
	Filter     string // initial filter expression; empty uses the saved preference
}

// Run boots the Trawl TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	address := cfg.Address
	if opts.Address != "" {
		address = opts.Address
	}
	client, err := transmission.NewClient(address, cfg.User, cfg.Password)
	if err != nil {
		return fmt.Errorf("init transmission client: %w", err)
	}

	store := &state.Store{}

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// The pool reports a failed fetch to subscribers as an empty list, so
	// the last fetch error is carried to the callback out of band for the
	// store's offline tracking.
	var (
		fetchMu  sync.Mutex
		fetchErr error
	)
	cache := newTorrentCache()
	fetch := func(ctx context.Context, keys []string, ch *filter.Chain) ([]filter.Item, error) {
		raws, err := client.TorrentGet(ctx, object.RawKeys(object.Torrent, keys...), nil)
		fetchMu.Lock()
		fetchErr = err
		fetchMu.Unlock()
		if err != nil {
			return nil, err
		}
		items := cache.items(raws)
		// Transmission cannot filter server side, so the combined chain is
		// applied here instead.
		if ch != nil {
			items = ch.Apply(items)
		}
		return items, nil
	}
	pool := poll.NewPool(fetch, interval)

	expr := opts.Filter
	if expr == "" {
		expr = userPrefs.Filter
	}
	chain, err := filter.ParseChain(filter.Torrents(), expr)
	if err != nil {
		// A stale saved filter should not block startup.
		chain = filter.EmptyChain(filter.Torrents())
		userPrefs.Filter = ""
	}

	sub := pool.Subscribe(chain, displayKeys, func(items []filter.Item) {
		fetchMu.Lock()
		err := fetchErr
		fetchMu.Unlock()
		store.UpdateTorrents(asViews(items), err)
	})

	// Populate the store before the UI draws its first frame.
	_ = pool.Poll(ctx)

	pool.Run(ctx)
	defer pool.Stop()
	StartStatsPoller(ctx, store, client, interval)

	uiOpts := ui.Options{
		Context: ctx,
		Store:   store,
		Actions: client,
		OnFilter: func(c *filter.Chain) {
			pool.SetChain(sub, c)
			pool.Wake()
		},
		OnDetail:     fetchDetail(client),
		Filter:       chain.String(),
		Prefs:        userPrefs,
		PrefsPath:    opts.PrefsPath,
		RefreshEvery: time.Second,
	}
	return ui.Run(uiOpts)
}

// torrentCache keeps one View per torrent id across polls so derived
// values only recompute when their raw fields change.
type torrentCache struct {
	views map[int64]*object.View
}

func newTorrentCache() *torrentCache {
	return &torrentCache{views: make(map[int64]*object.View)}
}

// items merges a payload batch into the cache and returns the matching
// views. Torrents absent from the batch are evicted.
func (c *torrentCache) items(raws []map[string]any) []filter.Item {
	seen := make(map[int64]bool, len(raws))
	items := make([]filter.Item, 0, len(raws))
	for _, raw := range raws {
		id := rawID(raw)
		seen[id] = true
		if v, ok := c.views[id]; ok {
			v.Update(raw)
			items = append(items, v)
			continue
		}
		v := object.NewTorrent(raw)
		c.views[id] = v
		items = append(items, v)
	}
	for id := range c.views {
		if !seen[id] {
			delete(c.views, id)
		}
	}
	return items
}

func rawID(raw map[string]any) int64 {
	switch n := raw["id"].(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

func asViews(items []filter.Item) []*object.View {
	views := make([]*object.View, 0, len(items))
	for _, it := range items {
		if v, ok := it.(*object.View); ok {
			views = append(views, v)
		}
	}
	return views
}
