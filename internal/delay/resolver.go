package delay

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/bluele/gcache"

	"buswatch/internal/clock"
	"buswatch/internal/route"
	"buswatch/internal/transit"
)

const maxUpcoming = 5

// Resolver produces per-stop delay snapshots for the monitored line,
// choosing real or synthetic mode via the availability prober. All mutable
// state (station cache, probe result) is owned by the instance, so tests
// can construct independent resolvers.
type Resolver struct {
	client        *transit.Client
	prober        *Prober
	gen           *Generator
	matcher       *route.LineMatcher
	stops         []route.Stop
	clock         clock.Clock
	logger        *slog.Logger
	lookaheadMin  int
	maxDepartures int
	forceSimulate bool

	// searchName -> *StationMatch, effectively process-lifetime for the
	// fixed stop list. Only successful resolutions are cached.
	stations gcache.Cache
}

// ResolverOptions configures a Resolver. Client, Stops and Logger are
// required; zero values elsewhere pick sensible defaults.
type ResolverOptions struct {
	Client        *transit.Client
	Stops         []route.Stop
	Logger        *slog.Logger
	RouteName     string
	ProbeQuery    string
	LookaheadMin  int
	MaxDepartures int
	ForceSimulate bool
	Clock         clock.Clock
	Rand          *rand.Rand
}

// NewResolver creates a Resolver for the given stop list.
func NewResolver(opts ResolverOptions) *Resolver {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.RouteName == "" {
		opts.RouteName = "M41"
	}
	if opts.ProbeQuery == "" {
		opts.ProbeQuery = "Alexanderplatz"
	}
	if opts.LookaheadMin == 0 {
		opts.LookaheadMin = 120
	}
	if opts.MaxDepartures == 0 {
		opts.MaxDepartures = 50
	}

	return &Resolver{
		client:        opts.Client,
		prober:        NewProber(opts.Client, opts.ProbeQuery, opts.Logger),
		gen:           NewGenerator(opts.Rand, opts.Clock),
		matcher:       route.NewLineMatcher(opts.RouteName),
		stops:         opts.Stops,
		clock:         opts.Clock,
		logger:        opts.Logger,
		lookaheadMin:  opts.LookaheadMin,
		maxDepartures: opts.MaxDepartures,
		forceSimulate: opts.ForceSimulate,
		stations:      gcache.New(256).LRU().Build(),
	}
}

// Stops returns the static stop list in route order.
func (r *Resolver) Stops() []route.Stop {
	return r.stops
}

// SnapshotAll resolves every stop in route order and reports whether the
// result is simulated. The returned list always has one entry per stop,
// ascending by order.
func (r *Resolver) SnapshotAll(ctx context.Context) ([]StopDelaySnapshot, bool) {
	if r.forceSimulate || !r.prober.Check(ctx) {
		return r.gen.SnapshotAll(r.stops), true
	}

	// Strictly sequential, one upstream round-trip at a time. Bounds
	// upstream load; the response cache makes repeat passes cheap.
	snaps := make([]StopDelaySnapshot, 0, len(r.stops))
	for _, stop := range r.stops {
		snaps = append(snaps, r.resolveStop(ctx, stop))
	}
	return snaps, false
}

// SnapshotByStopID resolves all stops and returns the snapshot for the
// given stop ID. found is false when the ID is not in the static list.
func (r *Resolver) SnapshotByStopID(ctx context.Context, stopID string) (snap *StopDelaySnapshot, simulated, found bool) {
	snaps, simulated := r.SnapshotAll(ctx)
	for i := range snaps {
		if snaps[i].StopID == stopID {
			return &snaps[i], simulated, true
		}
	}
	return nil, simulated, false
}

// Summary resolves all stops and aggregates them.
func (r *Resolver) Summary(ctx context.Context) (RouteSummary, bool) {
	snaps, simulated := r.SnapshotAll(ctx)
	return Summarize(snaps), simulated
}

// SearchStations runs a free-text query against the upstream stop directory.
func (r *Resolver) SearchStations(ctx context.Context, query string, limit int) ([]transit.Location, error) {
	return r.client.Locations(ctx, query, limit)
}

func (r *Resolver) resolveStop(ctx context.Context, stop route.Stop) StopDelaySnapshot {
	snap := StopDelaySnapshot{
		StopID:      stop.ID,
		StopName:    stop.Name,
		StopOrder:   stop.Order,
		LastUpdated: r.clock.Now(),
	}
	snap.Status = StatusUnknown

	var stationID string
	if match := r.findStation(ctx, stop.SearchName); match != nil {
		snap.Station = match
		stationID = match.ExternalID
	} else if stop.ExternalID != "" {
		// Directory lookup failed; query the configured stop ID directly.
		r.logger.Warn("station lookup failed, using configured stop ID",
			"stop", stop.ID, "externalID", stop.ExternalID)
		stationID = stop.ExternalID
	} else {
		snap.Error = "station not found"
		return snap
	}

	deps := r.fetchDepartures(ctx, stationID)
	if len(deps) == 0 {
		snap.Error = "no departures found"
		return snap
	}

	n := len(deps)
	if n > maxUpcoming {
		n = maxUpcoming
	}
	records := make([]DepartureRecord, 0, n)
	for _, d := range deps[:n] {
		records = append(records, NormalizeDeparture(d))
	}

	snap.DepartureRecord = records[0]
	snap.Upcoming = records
	return snap
}

// findStation maps a search name to an upstream station, best-effort.
// Prefers stop/station results over other location kinds, falls back to
// the first candidate, and returns nil on any failure.
func (r *Resolver) findStation(ctx context.Context, searchName string) *StationMatch {
	if v, err := r.stations.Get(searchName); err == nil {
		return v.(*StationMatch)
	}

	locs, err := r.client.Locations(ctx, searchName, 5)
	if err != nil {
		r.logger.Warn("station search failed", "query", searchName, "error", err)
		return nil
	}
	if len(locs) == 0 {
		return nil
	}

	pick := locs[0]
	for _, l := range locs {
		if l.IsStop() {
			pick = l
			break
		}
	}

	match := &StationMatch{
		ExternalID:  pick.ID,
		DisplayName: pick.Name,
		Location:    pick.Position,
	}
	if err := r.stations.Set(searchName, match); err != nil {
		r.logger.Warn("station cache write failed", "query", searchName, "error", err)
	}
	return match
}

// fetchDepartures retrieves upcoming departures for a station and keeps
// only the monitored line. Returns an empty list on any upstream failure.
func (r *Resolver) fetchDepartures(ctx context.Context, stationID string) []transit.Departure {
	deps, err := r.client.Departures(ctx, stationID, r.lookaheadMin, r.maxDepartures)
	if err != nil {
		r.logger.Warn("departures fetch failed", "station", stationID, "error", err)
		return nil
	}

	var matched []transit.Departure
	for _, d := range deps {
		if r.matcher.Matches(d.Line.Name) {
			matched = append(matched, d)
		}
	}
	return matched
}

// Summarize aggregates a snapshot set. Delay statistics cover non-error
// snapshots only; cancelled services are counted over the full list,
// including snapshots that carry an error.
func Summarize(snaps []StopDelaySnapshot) RouteSummary {
	s := RouteSummary{TotalStops: len(snaps)}

	var totalDelay int
	for _, sn := range snaps {
		if sn.Cancelled {
			s.CancelledServices++
		}
		if sn.Error != "" {
			continue
		}
		s.StopsWithData++

		// Cancelled departures contribute 0 to delay totals; they are
		// tallied via CancelledServices, not broken out of the on-time
		// bucket.
		minutes := sn.DelayMinutes
		if sn.Cancelled {
			minutes = 0
		}
		totalDelay += minutes
		if minutes > s.MaxDelayMinutes {
			s.MaxDelayMinutes = minutes
		}
		if minutes == 0 {
			s.StopsOnTime++
		} else {
			s.StopsDelayed++
		}
	}

	if s.StopsWithData > 0 {
		s.AverageDelayMinutes = int(math.Round(float64(totalDelay) / float64(s.StopsWithData)))
		s.OnTimePercentage = int(math.Round(100 * float64(s.StopsOnTime) / float64(s.StopsWithData)))
	}
	return s
}
