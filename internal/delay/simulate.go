package delay

import (
	"math/rand"
	"strconv"
	"time"

	"buswatch/internal/clock"
	"buswatch/internal/route"
)

const cancelProbability = 0.05

// Generator synthesizes plausible delay snapshots when the upstream is
// unreachable, keeping the output shape identical to real-data mode.
// The random source is injected so tests can pin the distribution.
type Generator struct {
	rng   *rand.Rand
	clock clock.Clock
}

// NewGenerator creates a synthetic snapshot generator.
func NewGenerator(rng *rand.Rand, clk clock.Clock) *Generator {
	return &Generator{rng: rng, clock: clk}
}

// SnapshotAll produces one synthetic snapshot per stop, in route order.
func (g *Generator) SnapshotAll(stops []route.Stop) []StopDelaySnapshot {
	maxOrder := 0
	for _, s := range stops {
		if s.Order > maxOrder {
			maxOrder = s.Order
		}
	}

	snaps := make([]StopDelaySnapshot, 0, len(stops))
	for _, s := range stops {
		snaps = append(snaps, g.snapshot(s, maxOrder))
	}
	return snaps
}

func (g *Generator) snapshot(stop route.Stop, maxOrder int) StopDelaySnapshot {
	// Base draw from {0..15}; values below 5 collapse to 0, biasing the
	// distribution toward on-time (5 of 16 outcomes).
	minutes := g.rng.Intn(16)
	if minutes < 5 {
		minutes = 0
	}

	cancelled := g.rng.Float64() < cancelProbability
	status := Classify(minutes)
	if cancelled {
		minutes = 0
		status = StatusCancelled
	}

	now := g.clock.Now()
	scheduled := nextHalfHour(now)
	expected := scheduled.Add(time.Duration(minutes) * time.Minute)

	direction := route.Direction(stop.Order)
	rec := DepartureRecord{
		ScheduledDeparture: &scheduled,
		ExpectedArrival:    &expected,
		DelayMinutes:       minutes,
		Status:             status,
		Cancelled:          cancelled,
		Direction:          &direction,
	}

	// Only the termini report a platform.
	if stop.Order == 1 || stop.Order == maxOrder {
		platform := strconv.Itoa(1 + g.rng.Intn(3))
		rec.Platform = &platform
	}

	return StopDelaySnapshot{
		StopID:          stop.ID,
		StopName:        stop.Name,
		StopOrder:       stop.Order,
		DepartureRecord: rec,
		Upcoming:        []DepartureRecord{rec},
		LastUpdated:     now,
		IsSimulated:     true,
	}
}

// nextHalfHour returns the next top-of-half-hour strictly after t's minute:
// :00-:29 round to :30, :30-:59 carry into the next hour.
func nextHalfHour(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	if t.Minute() < 30 {
		return t.Add(time.Duration(30-t.Minute()) * time.Minute)
	}
	return t.Add(time.Duration(60-t.Minute()) * time.Minute)
}
