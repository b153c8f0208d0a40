package filter

import (
	"github.com/trawltui/trawl/internal/stringable"
)

// TorrentStatusWords is the closed universe for the torrent status key, in
// the order used by ordinal comparisons.
var TorrentStatusWords = []string{
	"stopped",
	"queued",
	"verifying",
	"downloading",
	"uploading",
	"idle",
	"active",
	"isolated",
}

// Torrents builds the filter registry for torrent lists. The spec tables
// are compile-time data, so an invalid table is a defect and panics.
func Torrents() *Registry {
	return mustRegistry(NewRegistry("torrent", torrentBooleans, torrentComparatives, "name"))
}

var torrentBooleans = []BooleanSpec{
	{
		Name:        "all",
		Aliases:     []string{"*"},
		Description: "All torrents",
	},
	{
		Name:        "complete",
		Aliases:     []string{"cmp"},
		Description: "Torrents with all wanted data downloaded",
		Keys:        []string{"%downloaded"},
		Test: func(it Item) bool {
			f, ok := toFloat(it.Value("%downloaded"))
			return ok && f >= 100
		},
	},
	{
		Name:        "incomplete",
		Aliases:     []string{"inc"},
		Description: "Torrents with wanted data left to download",
		Keys:        []string{"%downloaded"},
		Test: func(it Item) bool {
			f, ok := toFloat(it.Value("%downloaded"))
			return ok && f < 100
		},
	},
	{
		Name:        "stopped",
		Aliases:     []string{"paused"},
		Description: "Torrents that are not allowed to transfer",
		Keys:        []string{"status"},
		Test:        hasWord("status", "stopped"),
	},
	{
		Name:        "downloading",
		Aliases:     []string{"dn"},
		Description: "Torrents that are downloading",
		Keys:        []string{"status"},
		Test:        hasWord("status", "downloading"),
	},
	{
		Name:        "uploading",
		Aliases:     []string{"up", "seeding"},
		Description: "Torrents that are uploading",
		Keys:        []string{"status"},
		Test:        hasWord("status", "uploading"),
	},
	{
		Name:        "active",
		Description: "Torrents transferring data right now",
		Keys:        []string{"status"},
		Test:        hasWord("status", "active"),
	},
	{
		Name:        "idle",
		Description: "Torrents that could transfer but are not",
		Keys:        []string{"status"},
		Test:        hasWord("status", "idle"),
	},
	{
		Name:        "queued",
		Description: "Torrents waiting for a free slot",
		Keys:        []string{"status"},
		Test:        hasWord("status", "queued"),
	},
	{
		Name:        "verifying",
		Aliases:     []string{"checking"},
		Description: "Torrents being hash-checked",
		Keys:        []string{"status"},
		Test:        hasWord("status", "verifying"),
	},
	{
		Name:        "isolated",
		Description: "Torrents that cannot discover new peers",
		Keys:        []string{"status"},
		Test:        hasWord("status", "isolated"),
	},
	{
		Name:        "private",
		Description: "Torrents restricted to their trackers",
		Keys:        []string{"private"},
		Test:        func(it Item) bool { return toBool(it.Value("private")) },
	},
	{
		Name:        "public",
		Description: "Torrents that may use DHT and PEX",
		Keys:        []string{"private"},
		Test:        func(it Item) bool { return !toBool(it.Value("private")) },
	},
}

var torrentComparatives = []ComparativeSpec{
	{
		Name:        "id",
		Description: "Torrent ID",
		Keys:        []string{"id"},
		Parse:       parseCount,
		Get:         getCount("id"),
	},
	{
		Name:        "name",
		Aliases:     []string{"title"},
		Description: "Torrent name",
		Keys:        []string{"name"},
		Parse:       parseStr,
		Get:         getStr("name"),
	},
	{
		Name:        "path",
		Aliases:     []string{"dir"},
		Description: "Download location",
		Keys:        []string{"path"},
		Parse:       parsePath,
		Get:         getPath("path"),
	},
	{
		Name:        "size",
		Description: "Size of all wanted data",
		Keys:        []string{"size"},
		Parse:       parseSize,
		Get:         getSize("size"),
	},
	{
		Name:        "downloaded",
		Description: "Downloaded payload bytes",
		Keys:        []string{"downloaded"},
		Parse:       parseSize,
		Get:         getSize("downloaded"),
	},
	{
		Name:        "uploaded",
		Description: "Uploaded payload bytes",
		Keys:        []string{"uploaded"},
		Parse:       parseSize,
		Get:         getSize("uploaded"),
	},
	{
		Name:        "%downloaded",
		Aliases:     []string{"%done", "progress"},
		Description: "Percentage of wanted data downloaded",
		Keys:        []string{"%downloaded"},
		Parse:       parsePercent,
		Get:         getPercent("%downloaded"),
	},
	{
		Name:        "ratio",
		Description: "Upload/download ratio",
		Keys:        []string{"ratio"},
		Parse:       parseRatio,
		Get:         getRatio("ratio"),
	},
	{
		Name:        "rate-down",
		Aliases:     []string{"rdown"},
		Description: "Download rate",
		Keys:        []string{"rate-down"},
		Parse:       parseRate,
		Get:         getRate("rate-down"),
	},
	{
		Name:        "rate-up",
		Aliases:     []string{"rup"},
		Description: "Upload rate",
		Keys:        []string{"rate-up"},
		Parse:       parseRate,
		Get:         getRate("rate-up"),
	},
	{
		Name:        "rate",
		Description: "Transfer rate in either direction",
		Keys:        []string{"rate-down", "rate-up"},
		Parse:       parseRate,
		GetAll: func(it Item) []stringable.Value {
			return []stringable.Value{
				getRate("rate-down")(it),
				getRate("rate-up")(it),
			}
		},
	},
	{
		Name:        "limit-rate-down",
		Description: "Download rate limit",
		Keys:        []string{"limit-rate-down"},
		Parse:       parseRate,
		Get:         getLimit("limit-rate-down"),
	},
	{
		Name:        "limit-rate-up",
		Description: "Upload rate limit",
		Keys:        []string{"limit-rate-up"},
		Parse:       parseRate,
		Get:         getLimit("limit-rate-up"),
	},
	{
		Name:        "seeds",
		Description: "Largest seed count reported by any tracker",
		Keys:        []string{"seeds"},
		Parse:       parseCount,
		Get:         getCount("seeds"),
	},
	{
		Name:        "peers",
		Aliases:     []string{"connections"},
		Description: "Connected peers",
		Keys:        []string{"peers"},
		Parse:       parseCount,
		Get:         getCount("peers"),
	},
	{
		Name:        "status",
		Description: "Current status words",
		Keys:        []string{"status"},
		Parse:       parseOption(TorrentStatusWords...),
		Get:         getOptions("status"),
	},
	{
		Name:        "tracker",
		Description: "Domain of any announce URL",
		Keys:        []string{"tracker"},
		Parse:       parseStr,
		GetAll: func(it Item) []stringable.Value {
			var out []stringable.Value
			for _, domain := range toStrings(it.Value("tracker")) {
				out = append(out, stringable.Str(domain))
			}
			return out
		},
	},
	{
		Name:        "eta",
		Description: "Time left until complete",
		Keys:        []string{"eta"},
		Parse:       parseEta,
		Get:         getEta("eta"),
	},
	{
		Name:        "added",
		Description: "When the torrent was added",
		Keys:        []string{"added"},
		Parse:       parseTimePast,
		Get:         getTime("added"),
	},
	{
		Name:        "started",
		Description: "When the torrent was last started",
		Keys:        []string{"started"},
		Parse:       parseTimePast,
		Get:         getTime("started"),
	},
	{
		Name:        "activity",
		Aliases:     []string{"last-active"},
		Description: "Last time data was transferred",
		Keys:        []string{"activity"},
		Parse:       parseTimePast,
		Get:         getTime("activity"),
	},
	{
		Name:        "completed",
		Description: "When the download finished",
		Keys:        []string{"completed"},
		Parse:       parseTimePast,
		Get:         getTime("completed"),
	},
	{
		Name:        "created",
		Description: "When the torrent file was created",
		Keys:        []string{"created"},
		Parse:       parseTimePast,
		Get:         getTime("created"),
	},
	{
		Name:        "error",
		Description: "Error message, if any",
		Keys:        []string{"error"},
		Parse:       parseStr,
		Get:         getStr("error"),
		AsBool:      func(it Item) bool { return toString(it.Value("error")) != "" },
	},
}
