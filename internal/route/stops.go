// Package route holds the static definition of the monitored bus line:
// its ordered stop list and the matcher for its inconsistently formatted
// line labels.
package route

// Stop is one halt along the monitored line. The list is defined once at
// process start and never mutated.
type Stop struct {
	ID         string // stable internal identity
	Name       string // display name
	SearchName string // query string for the upstream stop directory
	ExternalID string // upstream stop ID, empty until known; used as lookup fallback
	Order      int    // 1-based position along the route
}

// Terminus labels for direction assignment.
const (
	TerminusSouth = "Sonnenallee/Baumschulenstr."
	TerminusNorth = "S+U Hauptbahnhof"
)

// Stops returns the ordered stop list for line M41, ascending by Order.
// External IDs are VBB stop IDs where known; they serve as a fallback when
// the directory search fails.
func Stops() []Stop {
	return []Stop{
		{ID: "hauptbahnhof", Name: "S+U Hauptbahnhof", SearchName: "S+U Berlin Hauptbahnhof", ExternalID: "900003201", Order: 1},
		{ID: "potsdamer-platz", Name: "S+U Potsdamer Platz", SearchName: "S+U Potsdamer Platz", ExternalID: "900100020", Order: 2},
		{ID: "anhalter-bahnhof", Name: "S Anhalter Bahnhof", SearchName: "S Anhalter Bahnhof", ExternalID: "900012103", Order: 3},
		{ID: "mehringdamm", Name: "U Mehringdamm", SearchName: "U Mehringdamm (Berlin)", Order: 4},
		{ID: "hermannplatz", Name: "U Hermannplatz", SearchName: "U Hermannplatz (Berlin)", ExternalID: "900078101", Order: 5},
		{ID: "sonnenallee", Name: "S Sonnenallee", SearchName: "S Sonnenallee (Berlin)", Order: 6},
		{ID: "baumschulenstr", Name: "Sonnenallee/Baumschulenstr.", SearchName: "Sonnenallee/Baumschulenstr.", ExternalID: "900192001", Order: 7},
	}
}

// Direction returns the terminus label a stop's departures head toward.
// The first three stops face the southern terminus, the rest the northern.
func Direction(order int) string {
	if order <= 3 {
		return TerminusSouth
	}
	return TerminusNorth
}
