package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/trawltui/trawl/internal/object"
)

// SessionStats summarizes the daemon-wide transfer totals shown in the
// status bar.
type SessionStats struct {
	RateDown     int64
	RateUp       int64
	TorrentCount int64
	PausedCount  int64
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Torrents            []*object.View
	Stats               SessionStats
	HasStats            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the daemon has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// UpdateTorrents replaces the torrent list. A nil err resets the failure
// count; a non-nil err keeps the previous list and records the error.
func (s *Store) UpdateTorrents(torrents []*object.View, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Torrents = cloneTorrents(torrents)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// UpdateStats records the daemon-wide transfer totals.
func (s *Store) UpdateStats(stats *SessionStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stats != nil {
		s.snapshot.Stats = *stats
		s.snapshot.HasStats = true
	} else {
		s.snapshot.HasStats = false
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Torrents = cloneTorrents(s.snapshot.Torrents)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneTorrents(items []*object.View) []*object.View {
	if len(items) == 0 {
		return nil
	}
	dup := make([]*object.View, len(items))
	copy(dup, items)
	return dup
}
