package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/ragdesk/internal/outcome"
	"github.com/five82/ragdesk/internal/ragapi"
	"github.com/five82/ragdesk/internal/state"
)

const (
	defaultPollInterval = 10 * time.Second
	maxBackoff          = 30 * time.Second
)

// StatusProber is the part of the API the poller needs.
type StatusProber interface {
	Status(ctx context.Context) (*ragapi.StatusResponse, error)
}

// Poller probes backend health into a Store. After a failure the interval
// doubles per consecutive failure up to maxBackoff.
type Poller struct {
	store    *state.Store
	api      StatusProber
	interval time.Duration
	log      *zap.Logger
	kick     chan struct{}
}

// NewPoller returns a Poller that is not yet running.
func NewPoller(store *state.Store, api StatusProber, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{
		store:    store,
		api:      api,
		interval: interval,
		log:      log,
		kick:     make(chan struct{}, 1),
	}
}

// Start launches the polling goroutine and returns immediately. The first
// probe runs right away.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			case <-p.kick:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			p.Probe(ctx)
			timer.Reset(calculateBackoff(p.store.Snapshot().ConsecutiveFailures, p.interval))
		}
	}()
}

// Kick asks for an immediate probe, as on a client reload. It never blocks.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Probe runs one status request and records the result.
func (p *Poller) Probe(ctx context.Context) {
	status, err := p.api.Status(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		outcome.Silent(p.log, "status", err)
	}
	p.store.Update(status, err)
}

// calculateBackoff returns base for a healthy backend and doubles it for each
// consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
