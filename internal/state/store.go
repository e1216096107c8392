package state

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/five82/ragdesk/internal/ragapi"
)

// UnhealthyLabel is shown when the last status probe failed.
const UnhealthyLabel = "Unhealthy"

// Snapshot is the latest backend health known to the UI.
type Snapshot struct {
	DatabaseStatus      string
	HasStatus           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Probed reports whether any probe has completed since the last reset.
func (s Snapshot) Probed() bool {
	return s.HasStatus || s.LastError != nil
}

// Healthy reports whether the last probe succeeded.
func (s Snapshot) Healthy() bool {
	return s.HasStatus && s.ConsecutiveFailures == 0
}

// Label is the header text: the backend's database status, "Unhealthy" after a
// failed probe, or "Checking" before the first result.
func (s Snapshot) Label() string {
	switch {
	case s.ConsecutiveFailures > 0:
		return UnhealthyLabel
	case s.HasStatus:
		if v := strings.TrimSpace(s.DatabaseStatus); v != "" {
			return v
		}
		return "OK"
	default:
		return "Checking"
	}
}

// Store coordinates the status poller and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a probe result. On error the previous status is dropped so
// the header never shows a stale healthy value.
func (s *Store) Update(status *ragapi.StatusResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.HasStatus = false
		s.snapshot.DatabaseStatus = ""
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.HasStatus = status != nil
	s.snapshot.DatabaseStatus = ""
	if status != nil {
		s.snapshot.DatabaseStatus = status.DatabaseStatus
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Reset forgets everything, as on a client reload.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
