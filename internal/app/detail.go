package app

import (
	"context"
	"fmt"

	"github.com/trawltui/trawl/internal/object"
	"github.com/trawltui/trawl/internal/transmission"
	"github.com/trawltui/trawl/internal/ui"
)

// detailFields are the raw Transmission fields backing the detail view's
// file, peer and tracker sections.
var detailFields = []string{"id", "name", "files", "fileStats", "peers", "trackerStats"}

// fetchDetail builds the detail loader the UI calls when a torrent is
// opened.
func fetchDetail(client *transmission.Client) func(ctx context.Context, id int64) (*ui.Detail, error) {
	return func(ctx context.Context, id int64) (*ui.Detail, error) {
		raws, err := client.TorrentGet(ctx, detailFields, []int64{id})
		if err != nil {
			return nil, fmt.Errorf("fetch details: %w", err)
		}
		if len(raws) == 0 {
			return nil, fmt.Errorf("torrent %d not found", id)
		}
		raw := raws[0]

		d := &ui.Detail{ID: id}
		d.Name, _ = raw["name"].(string)
		d.Files = fileViews(raw["files"], raw["fileStats"])
		d.Peers = listViews(raw["peers"], object.NewPeer)
		d.Trackers = listViews(raw["trackerStats"], object.NewTracker)
		return d, nil
	}
}

func listViews(v any, build func(map[string]any) *object.View) []*object.View {
	entries, _ := v.([]any)
	out := make([]*object.View, 0, len(entries))
	for _, e := range entries {
		if raw, ok := e.(map[string]any); ok {
			out = append(out, build(raw))
		}
	}
	return out
}

// fileViews zips Transmission's parallel "files" and "fileStats" arrays
// into one payload per file, keyed by the list index.
func fileViews(files, stats any) []*object.View {
	fs, _ := files.([]any)
	ss, _ := stats.([]any)
	out := make([]*object.View, 0, len(fs))
	for i, e := range fs {
		raw, ok := e.(map[string]any)
		if !ok {
			continue
		}
		merged := map[string]any{"id": int64(i)}
		for k, v := range raw {
			merged[k] = v
		}
		if i < len(ss) {
			if st, ok := ss[i].(map[string]any); ok {
				for k, v := range st {
					merged[k] = v
				}
			}
		}
		out = append(out, object.NewFile(merged))
	}
	return out
}
