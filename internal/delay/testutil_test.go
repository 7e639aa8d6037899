package delay

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"buswatch/internal/transit"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUpstream is an httptest-backed transport.rest stand-in. Location
// results are keyed by query string, departures by stop ID; queries marked
// as failing return 503.
type fakeUpstream struct {
	mu         sync.Mutex
	locations  map[string][]transit.Location
	departures map[string][]transit.Departure
	failLocs   map[string]bool
	failDeps   map[string]bool
	locHits    map[string]int

	srv *httptest.Server
}

func newFakeUpstream() *fakeUpstream {
	f := &fakeUpstream{
		locations:  map[string][]transit.Location{},
		departures: map[string][]transit.Departure{},
		failLocs:   map[string]bool{},
		failDeps:   map[string]bool{},
		locHits:    map[string]int{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeUpstream) Close() { f.srv.Close() }

func (f *fakeUpstream) URL() string { return f.srv.URL }

func (f *fakeUpstream) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/locations":
		query := r.URL.Query().Get("query")
		f.locHits[query]++
		if f.failLocs[query] {
			http.Error(w, "upstream error", http.StatusServiceUnavailable)
			return
		}
		locs := f.locations[query]
		if locs == nil {
			locs = []transit.Location{}
		}
		json.NewEncoder(w).Encode(locs)

	case strings.HasPrefix(r.URL.Path, "/stops/") && strings.HasSuffix(r.URL.Path, "/departures"):
		stopID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/stops/"), "/departures")
		if f.failDeps[stopID] {
			http.Error(w, "upstream error", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(transit.DeparturesResponse{
			Departures: f.departures[stopID],
		})

	default:
		http.NotFound(w, r)
	}
}

func (f *fakeUpstream) locationHits(query string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locHits[query]
}

// stopLocation builds a single stop-type directory result.
func stopLocation(id, name string) []transit.Location {
	return []transit.Location{{Type: "stop", ID: id, Name: name}}
}
