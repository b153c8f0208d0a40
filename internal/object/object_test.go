package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawTorrent() map[string]any {
	return map[string]any{
		"id":              float64(7),
		"name":            "ubuntu.iso",
		"downloadDir":     "/srv/dl",
		"sizeWhenDone":    float64(2 << 30),
		"downloadedEver":  float64(1 << 30),
		"percentDone":     0.5,
		"status":          float64(4),
		"rateDownload":    float64(100_000),
		"rateUpload":      float64(0),
		"isPrivate":       false,
		"errorString":     "",
		"downloadLimit":   float64(100),
		"downloadLimited": true,
		"uploadLimit":     float64(50),
		"uploadLimited":   false,
		"trackerStats": []any{
			map[string]any{
				"announce":              "https://tracker.example.org:8080/announce",
				"seederCount":           float64(12),
				"lastAnnounceSucceeded": true,
			},
			map[string]any{
				"announce":              "udp://backup.example.net/announce",
				"seederCount":           float64(40),
				"lastAnnounceSucceeded": false,
			},
		},
	}
}

func TestTorrentDerivedValues(t *testing.T) {
	v := NewTorrent(rawTorrent())

	assert.Equal(t, "ubuntu.iso", v.Value("name"))
	assert.Equal(t, "/srv/dl", v.Value("path"))
	assert.Equal(t, 50.0, v.Value("%downloaded"))
	assert.Equal(t, int64(40), v.Value("seeds"))
	assert.Equal(t, []string{"tracker.example.org", "backup.example.net"}, v.Value("tracker"))
	assert.Equal(t, []string{"downloading", "active"}, v.Value("status"))

	// Limits fold the enabled flag in: KB/s when on, -1 when off.
	assert.Equal(t, int64(100*1024), v.Value("limit-rate-down"))
	assert.Equal(t, int64(-1), v.Value("limit-rate-up"))
}

func TestTorrentStatusWords(t *testing.T) {
	for _, tt := range []struct {
		name string
		mut  func(map[string]any)
		want []string
	}{
		{
			name: "stopped",
			mut:  func(m map[string]any) { m["status"] = float64(0); m["rateDownload"] = float64(0) },
			want: []string{"stopped"},
		},
		{
			name: "queued",
			mut:  func(m map[string]any) { m["status"] = float64(3); m["rateDownload"] = float64(0) },
			want: []string{"queued", "idle"},
		},
		{
			name: "verifying counts as active",
			mut:  func(m map[string]any) { m["status"] = float64(2); m["rateDownload"] = float64(0) },
			want: []string{"verifying", "active"},
		},
		{
			name: "idle seed",
			mut:  func(m map[string]any) { m["status"] = float64(6); m["rateDownload"] = float64(0) },
			want: []string{"uploading", "idle"},
		},
		{
			name: "isolated private torrent",
			mut: func(m map[string]any) {
				m["isPrivate"] = true
				m["trackerStats"] = []any{
					map[string]any{"announce": "https://x.test/a", "lastAnnounceSucceeded": false},
				}
			},
			want: []string{"downloading", "active", "isolated"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawTorrent()
			tt.mut(raw)
			assert.Equal(t, tt.want, NewTorrent(raw).Value("status"))
		})
	}
}

func TestViewUpdateInvalidatesChangedOnly(t *testing.T) {
	v := NewTorrent(rawTorrent())

	require.Equal(t, 50.0, v.Value("%downloaded"))
	require.Equal(t, []string{"downloading", "active"}, v.Value("status"))

	// Progress changed, status inputs did not.
	v.Update(map[string]any{"percentDone": 0.75})
	assert.Equal(t, 75.0, v.Value("%downloaded"))
	assert.Equal(t, []string{"downloading", "active"}, v.Value("status"))

	v.Update(map[string]any{"status": float64(0), "rateDownload": float64(0)})
	assert.Equal(t, []string{"stopped"}, v.Value("status"))

	// Fields absent from a partial update survive.
	assert.Equal(t, "ubuntu.iso", v.Value("name"))
}

func TestViewHasAndIdentity(t *testing.T) {
	v := NewTorrent(map[string]any{"id": float64(7), "percentDone": 0.5})

	assert.True(t, v.Has("%downloaded"))
	assert.False(t, v.Has("status"))
	assert.False(t, v.Has("name"))
	assert.Equal(t, float64(7), v.ID())

	other := NewTorrent(map[string]any{"id": float64(7), "name": "x"})
	assert.True(t, v.Same(other))
	assert.False(t, v.Same(NewTorrent(map[string]any{"id": float64(8)})))
	assert.False(t, v.Same(nil))
}

func TestRawKeys(t *testing.T) {
	keys := RawKeys(Torrent, "%downloaded", "status", "name", "unknown")
	assert.Equal(t,
		[]string{"isPrivate", "name", "percentDone", "rateDownload", "rateUpload", "status", "trackerStats", "unknown"},
		keys)
}

func TestFileSchema(t *testing.T) {
	v := NewFile(map[string]any{
		"id":             float64(0),
		"name":           "linux/vmlinuz",
		"length":         float64(1000),
		"bytesCompleted": float64(250),
		"wanted":         true,
		"priority":       float64(-1),
	})

	assert.Equal(t, "vmlinuz", v.Value("name"))
	assert.Equal(t, "linux", v.Value("path"))
	assert.Equal(t, 25.0, v.Value("%downloaded"))
	assert.Equal(t, "low", v.Value("priority"))
}

func TestTrackerSchema(t *testing.T) {
	v := NewTracker(map[string]any{
		"id":                    float64(1),
		"announce":              "https://tracker.example.org:2710/announce",
		"announceState":         float64(3),
		"lastAnnounceSucceeded": false,
		"lastAnnounceResult":    "connection refused",
	})

	assert.Equal(t, "tracker.example.org", v.Value("domain"))
	assert.Equal(t, "announcing", v.Value("status"))
	assert.Equal(t, "connection refused", v.Value("error"))
}

func TestSettingSchema(t *testing.T) {
	v := NewSetting(map[string]any{
		"name":    "speed-limit-down",
		"value":   float64(100),
		"default": float64(0),
	})

	assert.Equal(t, "100", v.Value("value"))
	assert.Equal(t, true, v.Value("changed"))
	assert.Equal(t, "speed-limit-down", v.ID())
}
