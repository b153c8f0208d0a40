package object

import (
	"net/url"
)

// Torrent is the schema translating Transmission's torrent payload into
// the logical keys used by filters and the UI.
var Torrent = Schema{
	"id":          {Raw: []string{"id"}},
	"name":        {Raw: []string{"name"}},
	"path":        {Raw: []string{"downloadDir"}},
	"size":        {Raw: []string{"sizeWhenDone"}},
	"downloaded":  {Raw: []string{"downloadedEver"}},
	"uploaded":    {Raw: []string{"uploadedEver"}},
	"ratio":       {Raw: []string{"uploadRatio"}},
	"rate-down":   {Raw: []string{"rateDownload"}},
	"rate-up":     {Raw: []string{"rateUpload"}},
	"peers":       {Raw: []string{"peersConnected"}},
	"eta":         {Raw: []string{"eta"}},
	"added":       {Raw: []string{"addedDate"}},
	"started":     {Raw: []string{"startDate"}},
	"activity":    {Raw: []string{"activityDate"}},
	"completed":   {Raw: []string{"doneDate"}},
	"created":     {Raw: []string{"dateCreated"}},
	"private":     {Raw: []string{"isPrivate"}},
	"error":       {Raw: []string{"errorString"}},
	"%downloaded": {
		Raw: []string{"percentDone"},
		Fn:  func(raw map[string]any) any { return asFloat(raw["percentDone"]) * 100 },
	},
	"limit-rate-down": {
		Raw: []string{"downloadLimit", "downloadLimited"},
		Fn:  rateLimit("downloadLimit", "downloadLimited"),
	},
	"limit-rate-up": {
		Raw: []string{"uploadLimit", "uploadLimited"},
		Fn:  rateLimit("uploadLimit", "uploadLimited"),
	},
	"seeds": {
		Raw: []string{"trackerStats"},
		Fn: func(raw map[string]any) any {
			best := int64(-1)
			for _, ts := range trackerMaps(raw["trackerStats"]) {
				if n := asInt64(ts["seederCount"]); n > best {
					best = n
				}
			}
			return best
		},
	},
	"tracker": {
		Raw: []string{"trackerStats"},
		Fn: func(raw map[string]any) any {
			var domains []string
			for _, ts := range trackerMaps(raw["trackerStats"]) {
				if d := announceDomain(asString(ts["announce"])); d != "" {
					domains = append(domains, d)
				}
			}
			return domains
		},
	},
	"status": {
		Raw: []string{"status", "rateDownload", "rateUpload", "isPrivate", "trackerStats"},
		Fn:  torrentStatus,
	},
}

// NewTorrent wraps one torrent payload.
func NewTorrent(raw map[string]any) *View {
	return New(Torrent, "id", raw)
}

// Transmission status codes.
const (
	statusStopped      = 0
	statusVerifyQueued = 1
	statusVerifying    = 2
	statusFetchQueued  = 3
	statusDownloading  = 4
	statusSeedQueued   = 5
	statusSeeding      = 6
)

// torrentStatus derives the status word set. A torrent can carry several
// words at once, like downloading and active.
func torrentStatus(raw map[string]any) any {
	code := asInt64(raw["status"])
	down := asInt64(raw["rateDownload"])
	up := asInt64(raw["rateUpload"])

	var words []string
	switch code {
	case statusStopped:
		words = append(words, "stopped")
	case statusVerifyQueued, statusFetchQueued, statusSeedQueued:
		words = append(words, "queued")
	case statusVerifying:
		words = append(words, "verifying")
	case statusDownloading:
		words = append(words, "downloading")
	case statusSeeding:
		words = append(words, "uploading")
	}

	switch {
	case down > 0 || up > 0 || code == statusVerifying:
		words = append(words, "active")
	case code != statusStopped:
		words = append(words, "idle")
	}

	if asBool(raw["isPrivate"]) && code != statusStopped {
		reachable := false
		for _, ts := range trackerMaps(raw["trackerStats"]) {
			if asBool(ts["lastAnnounceSucceeded"]) {
				reachable = true
				break
			}
		}
		if !reachable && len(trackerMaps(raw["trackerStats"])) > 0 {
			words = append(words, "isolated")
		}
	}
	return words
}

// rateLimit folds Transmission's limit pair (a KB/s number plus an enabled
// flag) into bytes per second, with -1 meaning no limit.
func rateLimit(limitKey, enabledKey string) func(map[string]any) any {
	return func(raw map[string]any) any {
		if !asBool(raw[enabledKey]) {
			return int64(-1)
		}
		return asInt64(raw[limitKey]) * 1024
	}
}

func trackerMaps(v any) []map[string]any {
	switch list := v.(type) {
	case []map[string]any:
		return list
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, e := range list {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// announceDomain extracts the host from an announce URL, dropping the
// port.
func announceDomain(announce string) string {
	u, err := url.Parse(announce)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
