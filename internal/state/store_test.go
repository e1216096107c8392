package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/ragdesk/internal/ragapi"
)

func TestStore_UpdateAndSnapshot(t *testing.T) {
	var s Store
	if got := s.Snapshot().Label(); got != "Checking" {
		t.Fatalf("initial Label = %q, want Checking", got)
	}

	before := time.Now()
	s.Update(&ragapi.StatusResponse{DatabaseStatus: "🟢 Connected"}, nil)

	snap := s.Snapshot()
	if !snap.Healthy() || snap.Label() != "🟢 Connected" {
		t.Fatalf("snapshot = %#v, want healthy with status label", snap)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if !snap.Probed() {
		t.Fatalf("Probed = false after update")
	}
}

func TestStore_FailureShowsUnhealthy(t *testing.T) {
	var s Store
	s.Update(&ragapi.StatusResponse{DatabaseStatus: "ok"}, nil)

	origErr := errors.New("api /status returned status 503")
	s.Update(nil, origErr)
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.Healthy() {
		t.Fatalf("Healthy = true after failure")
	}
	if snap.Label() != UnhealthyLabel {
		t.Fatalf("Label = %q, want %q", snap.Label(), UnhealthyLabel)
	}
	if snap.ConsecutiveFailures != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", snap.ConsecutiveFailures)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError = %v, want wrapping %v", snap.LastError, origErr)
	}

	s.Update(&ragapi.StatusResponse{DatabaseStatus: "back"}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil || snap.Label() != "back" {
		t.Fatalf("recovery snapshot = %#v", snap)
	}
}

func TestStore_Reset(t *testing.T) {
	var s Store
	s.Update(nil, errors.New("boom"))
	s.Reset()
	if snap := s.Snapshot(); snap.Probed() || snap.Label() != "Checking" {
		t.Fatalf("snapshot after Reset = %#v", snap)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				s.Update(&ragapi.StatusResponse{DatabaseStatus: "ok"}, nil)
			} else {
				s.Update(nil, errors.New("down"))
			}
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot().Label()
		}()
	}
	wg.Wait()
}
