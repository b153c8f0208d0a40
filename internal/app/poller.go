package app

import (
	"context"
	"log"
	"time"

	"github.com/trawltui/trawl/internal/state"
	"github.com/trawltui/trawl/internal/transmission"
)

const defaultPollInterval = 2 * time.Second

// StartStatsPoller launches a background goroutine that refreshes the
// daemon-wide session stats at a fixed cadence. It returns immediately.
// The torrent list itself travels through the request pool; stats are a
// fixed, tiny payload and need no key negotiation.
func StartStatsPoller(ctx context.Context, store *state.Store, client *transmission.Client, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			refreshStats(ctx, store, client)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func refreshStats(ctx context.Context, store *state.Store, client *transmission.Client) {
	payload, err := client.SessionStats(ctx)
	if err != nil {
		store.UpdateStats(nil)
		log.Printf("stats poll failed: %v", err)
		return
	}
	stats := statsFromPayload(payload)
	store.UpdateStats(&stats)
}

// statsFromPayload picks the fields the status bar shows out of the
// session-stats arguments.
func statsFromPayload(payload map[string]any) state.SessionStats {
	return state.SessionStats{
		RateDown:     payloadInt(payload, "downloadSpeed"),
		RateUp:       payloadInt(payload, "uploadSpeed"),
		TorrentCount: payloadInt(payload, "torrentCount"),
		PausedCount:  payloadInt(payload, "pausedTorrentCount"),
	}
}

func payloadInt(payload map[string]any, key string) int64 {
	switch n := payload[key].(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}
