package transit

import "time"

// Location is one result from the upstream /locations directory search.
type Location struct {
	Type     string    `json:"type"` // "stop", "station", "location", ...
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Position *Position `json:"location,omitempty"`
}

// Position is a WGS84 coordinate attached to a location.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsStop reports whether the location refers to a transit stop or station,
// as opposed to an address or point of interest.
func (l Location) IsStop() bool {
	return l.Type == "stop" || l.Type == "station"
}

// DeparturesResponse is the top-level shape of /stops/{id}/departures.
type DeparturesResponse struct {
	Departures []Departure `json:"departures"`
}

// Departure is a single upcoming departure as reported upstream.
// `When` is the realtime estimate and may be null for cancelled trips;
// `PlannedWhen` is the timetable time; `Delay` is seconds, null when the
// upstream has no realtime data for the trip.
type Departure struct {
	TripID          string     `json:"tripId"`
	When            *time.Time `json:"when"`
	PlannedWhen     *time.Time `json:"plannedWhen"`
	Delay           *int       `json:"delay"`
	Cancelled       bool       `json:"cancelled"`
	Platform        string     `json:"platform"`
	PlannedPlatform string     `json:"plannedPlatform"`
	Direction       string     `json:"direction"`
	Line            Line       `json:"line"`
	Remarks         []Remark   `json:"remarks"`
}

// Line identifies the service a departure belongs to.
type Line struct {
	ID      string `json:"id"`
	Name    string `json:"name"` // display label, e.g. "M41" or "Bus M41"
	Mode    string `json:"mode"`
	Product string `json:"product"`
}

// Remark is a free-text notice attached to a departure.
type Remark struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// BestPlatform returns the realtime platform if known, else the planned one.
func (d Departure) BestPlatform() string {
	if d.Platform != "" {
		return d.Platform
	}
	return d.PlannedPlatform
}
