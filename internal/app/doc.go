// Package app provides the orchestration layer for the Trawl application.
//
// # Overview
//
// This package wires together configuration, the request pool, state
// management, and the UI to create the complete Trawl TUI experience. It
// serves as the composition root where all dependencies are initialized and
// connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load client configuration from ~/.config/trawl/config.toml
//  2. Load user preferences (theme, saved filter, sort order)
//  3. Initialize the Transmission RPC client
//  4. Create shared state.Store for UI and poller coordination
//  5. Subscribe the torrent table to a poll.Pool behind the saved filter
//  6. Launch the pool loop and the session stats poller
//  7. Start the TUI and block until user exits or context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()           Read trawl config
//	       ├─────> prefs.Load()            Read user preferences
//	       ├─────> transmission.NewClient  Create RPC client
//	       ├─────> state.Store{}           Shared state container
//	       ├─────> poll.NewPool()          Torrent request pool
//	       ├─────> StartStatsPoller()      Session stats updates
//	       └─────> ui.Run()               Start TUI (blocks)
//
//	Pool Loop:
//	┌─────────────────────────────────────────┐
//	│ pool.Run() goroutine                    │
//	│  ├─> TorrentGet(needed raw fields)      │
//	│  ├─> torrentCache merge (View.Update)   │
//	│  ├─> chain.Apply per subscriber         │
//	│  └─> store.UpdateTorrents()             │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The pool fetches continuously at a configurable interval (default: 2
// seconds), requesting only the raw Transmission fields the active filter
// and the table columns need. Changing the filter from the UI advances the
// pool epoch and wakes the loop so the new result set appears immediately.
// Consecutive fetch failures back off exponentially, capped at 30 seconds.
//
// The UI reads snapshots from the store at its own refresh rate (typically
// 1 second). This separation keeps the UI responsive during slow RPC calls.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - Transmission client initialization failure
//
// Recoverable errors (recorded in the store, polling continues):
//   - Periodic torrent fetch failures
//   - Periodic session stats fetch failures
//
// An unreachable daemon at startup is recoverable: the UI starts with an
// offline banner and recovers when Transmission answers again.
package app
