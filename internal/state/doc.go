// Package state provides thread-safe state management for the Trawl
// application.
//
// # Overview
//
// This package implements a simple but thread-safe store for sharing the
// torrent list and session stats between the background request pool and
// the UI. It acts as the coordination point where polling updates meet
// UI rendering.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock:
//
//   - UpdateTorrents(), UpdateStats(): Acquire the write lock
//   - Snapshot(): Acquires the read lock (concurrent reads allowed)
//
// The lock is held only during copy operations, not during network I/O or
// rendering. Snapshots are returned by value with the torrent slice
// cloned, so the UI can iterate without racing the next update.
//
// # Update Semantics
//
// UpdateTorrents keeps the previous list when given an error, so the UI
// always has the most recent successful data to display while still being
// informed of polling failures through LastError and the consecutive
// failure count. IsOffline folds the failure count into the single
// question the status bar asks.
//
// # Testing Considerations
//
// The Store is safe to construct with zero value:
//
//	store := &state.Store{}  // Ready to use immediately
//
// Snapshot() returns a zero Snapshot if never updated.
package state
