package delay

import (
	"context"
	"log/slog"
	"sync"

	"buswatch/internal/transit"
)

type availability int

const (
	untested availability = iota
	available
	unavailable
)

// Prober decides once per process whether the upstream API is reachable.
// The result is sticky: a transient outage keeps the service in simulated
// mode until restart. Check stays an explicit call site so it can later be
// replaced with a time-boxed re-probe.
type Prober struct {
	client     *transit.Client
	probeQuery string
	logger     *slog.Logger

	mu    sync.Mutex
	state availability
}

// NewProber creates a prober that issues a single one-result directory
// lookup for probeQuery on first use.
func NewProber(client *transit.Client, probeQuery string, logger *slog.Logger) *Prober {
	return &Prober{client: client, probeQuery: probeQuery, logger: logger}
}

// Check returns whether the upstream is reachable, probing at most once.
func (p *Prober) Check(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != untested {
		return p.state == available
	}

	_, err := p.client.Locations(ctx, p.probeQuery, 1)
	if err != nil {
		p.logger.Warn("upstream probe failed, switching to simulated data", "error", err)
		p.state = unavailable
		return false
	}

	p.logger.Info("upstream probe succeeded")
	p.state = available
	return true
}
