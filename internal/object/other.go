package object

import (
	"fmt"
	"path"
)

// File is the schema for one entry of a torrent's file list. The raw
// payload merges Transmission's "files" and "fileStats" entries plus the
// list index under "id".
var File = Schema{
	"id":         {Raw: []string{"id"}},
	"size":       {Raw: []string{"length"}},
	"downloaded": {Raw: []string{"bytesCompleted"}},
	"wanted":     {Raw: []string{"wanted"}},
	"name": {
		Raw: []string{"name"},
		Fn:  func(raw map[string]any) any { return path.Base(asString(raw["name"])) },
	},
	"path": {
		Raw: []string{"name"},
		Fn:  func(raw map[string]any) any { return path.Dir(asString(raw["name"])) },
	},
	"%downloaded": {
		Raw: []string{"bytesCompleted", "length"},
		Fn: func(raw map[string]any) any {
			total := asFloat(raw["length"])
			if total <= 0 {
				return 100.0
			}
			return asFloat(raw["bytesCompleted"]) / total * 100
		},
	},
	"priority": {
		Raw: []string{"priority", "wanted"},
		Fn: func(raw map[string]any) any {
			switch asInt64(raw["priority"]) {
			case -1:
				return "low"
			case 1:
				return "high"
			}
			return "normal"
		},
	},
}

// NewFile wraps one file payload.
func NewFile(raw map[string]any) *View {
	return New(File, "id", raw)
}

// Peer is the schema for one connected peer.
var Peer = Schema{
	"host":      {Raw: []string{"address"}},
	"port":      {Raw: []string{"port"}},
	"client":    {Raw: []string{"clientName"}},
	"rate-down": {Raw: []string{"rateToClient"}},
	"rate-up":   {Raw: []string{"rateToPeer"}},
	"%downloaded": {
		Raw: []string{"progress"},
		Fn:  func(raw map[string]any) any { return asFloat(raw["progress"]) * 100 },
	},
	"id": {
		Raw: []string{"address", "port"},
		Fn: func(raw map[string]any) any {
			return fmt.Sprintf("%s:%d", asString(raw["address"]), asInt64(raw["port"]))
		},
	},
}

// NewPeer wraps one peer payload.
func NewPeer(raw map[string]any) *View {
	return New(Peer, "id", raw)
}

// Tracker announce states, indexed by Transmission's announceState codes.
var trackerStates = []string{"inactive", "waiting", "queued", "announcing", "scraping"}

// Tracker is the schema for one entry of trackerStats.
var Tracker = Schema{
	"id":         {Raw: []string{"id"}},
	"url":        {Raw: []string{"announce"}},
	"url-scrape": {Raw: []string{"scrape"}},
	"tier":       {Raw: []string{"tier"}},
	"seeds":      {Raw: []string{"seederCount"}},
	"leeches":    {Raw: []string{"leecherCount"}},
	"downloads":  {Raw: []string{"downloadCount"}},
	"domain": {
		Raw: []string{"announce"},
		Fn:  func(raw map[string]any) any { return announceDomain(asString(raw["announce"])) },
	},
	"status": {
		Raw: []string{"announceState"},
		Fn: func(raw map[string]any) any {
			code := asInt64(raw["announceState"])
			if code < 0 || int(code) >= len(trackerStates) {
				return "inactive"
			}
			return trackerStates[code]
		},
	},
	"last-announce": {Raw: []string{"lastAnnounceTime"}},
	"next-announce": {Raw: []string{"nextAnnounceTime"}},
	"error": {
		Raw: []string{"lastAnnounceSucceeded", "lastAnnounceResult"},
		Fn: func(raw map[string]any) any {
			if asBool(raw["lastAnnounceSucceeded"]) {
				return ""
			}
			return asString(raw["lastAnnounceResult"])
		},
	},
}

// NewTracker wraps one tracker payload.
func NewTracker(raw map[string]any) *View {
	return New(Tracker, "id", raw)
}

// Setting is the schema for one session setting, synthesized from the
// session-get payload as {name, value, default, description} rows.
var Setting = Schema{
	"id":          {Raw: []string{"name"}},
	"name":        {Raw: []string{"name"}},
	"description": {Raw: []string{"description"}},
	"value": {
		Raw: []string{"value"},
		Fn:  func(raw map[string]any) any { return fmt.Sprintf("%v", raw["value"]) },
	},
	"changed": {
		Raw: []string{"value", "default"},
		Fn: func(raw map[string]any) any {
			return fmt.Sprintf("%v", raw["value"]) != fmt.Sprintf("%v", raw["default"])
		},
	},
}

// NewSetting wraps one setting row.
func NewSetting(raw map[string]any) *View {
	return New(Setting, "name", raw)
}
