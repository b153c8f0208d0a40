package ui

import (
	"strings"
	"testing"

	"github.com/trawltui/trawl/internal/object"
)

func TestPad(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abc", 3, "abc"},
		{"abcdef", 4, "abc…"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := pad(tt.in, tt.width); got != tt.want {
			t.Errorf("pad(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRateCell(t *testing.T) {
	if got := rateCell(0); got != "-" {
		t.Errorf("rateCell(0) = %q, want -", got)
	}
	if got := rateCell(1536); got != "1.5KiB/s" {
		t.Errorf("rateCell(1536) = %q, want 1.5KiB/s", got)
	}
}

func TestEtaCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{float64(-1), "?"},
		{float64(-2), "-"},
		{float64(0), "-"},
		{float64(90), "1m30s"},
	}
	for _, tt := range tests {
		if got := etaCell(tt.in); got != tt.want {
			t.Errorf("etaCell(%v) = %q, want %q", tt.in, tt.want, got)
		}
	}
}

func TestNextSortKey_Cycles(t *testing.T) {
	seen := map[string]bool{}
	key := sortKeys[0]
	for range sortKeys {
		seen[key] = true
		key = NextSortKey(key)
	}
	if key != sortKeys[0] {
		t.Fatalf("cycle did not return to %q, got %q", sortKeys[0], key)
	}
	if len(seen) != len(sortKeys) {
		t.Fatalf("cycle visited %d keys, want %d", len(seen), len(sortKeys))
	}
	if NextSortKey("bogus") != sortKeys[0] {
		t.Fatalf("unknown key should reset to %q", sortKeys[0])
	}
}

func TestSortViews(t *testing.T) {
	views := []*object.View{
		object.NewTorrent(map[string]any{"id": float64(2), "name": "beta", "sizeWhenDone": float64(100)}),
		object.NewTorrent(map[string]any{"id": float64(1), "name": "alpha", "sizeWhenDone": float64(300)}),
		object.NewTorrent(map[string]any{"id": float64(3), "name": "gamma", "sizeWhenDone": float64(200)}),
	}

	sortViews(views, "name")
	if views[0].Value("name") != "alpha" || views[2].Value("name") != "gamma" {
		t.Fatalf("sort by name: got %v %v %v", views[0].Value("name"), views[1].Value("name"), views[2].Value("name"))
	}

	sortViews(views, "size")
	if views[0].Value("name") != "alpha" || views[1].Value("name") != "gamma" {
		t.Fatalf("sort by size: biggest first, got %v %v %v", views[0].Value("name"), views[1].Value("name"), views[2].Value("name"))
	}

	sortViews(views, "id")
	if toInt(views[0].Value("id")) != 1 || toInt(views[2].Value("id")) != 3 {
		t.Fatalf("sort by id ascending, got %v", views)
	}
}

func TestRenderRowWidths(t *testing.T) {
	row := renderRow(torrentColumns, 120, func(c column) string { return c.title })
	if !strings.Contains(row, "Name") || !strings.Contains(row, "Status") {
		t.Fatalf("header row missing columns: %q", row)
	}
	if len([]rune(row)) < 80 {
		t.Fatalf("row too narrow: %d", len([]rune(row)))
	}
}
