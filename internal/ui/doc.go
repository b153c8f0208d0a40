// Package ui implements the Bubble Tea terminal interface for Trawl.
//
// # Overview
//
// The UI is a single torrent table plus a footer status bar. A filter bar
// opens on "/" and accepts the filter expression language; the parsed
// chain is handed to the application through Options.OnFilter, which
// repoints the request pool, so the daemon is only asked for the fields
// the visible filter needs. Enter opens a detail view of the selected
// torrent with files, peers and trackers sections, each filterable
// through its own registry.
//
// # Architecture
//
// The model never talks to the network on the render path. A ticker
// message copies the latest state.Store snapshot into the model, and
// torrent actions run as asynchronous commands that report back through a
// message. Preferences (theme, filter, sort order) are saved as they
// change.
package ui
