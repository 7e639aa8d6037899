// Package delay implements the delay-resolution core for the monitored
// line: upstream availability probing, station resolution, departure
// normalization, and the synthetic fallback generator.
package delay

import (
	"time"

	"buswatch/internal/transit"
)

// Status classifies a departure by its delay in minutes.
type Status string

const (
	StatusOnTime         Status = "on-time"
	StatusSlightDelay    Status = "slight-delay"
	StatusDelayed        Status = "delayed"
	StatusHeavilyDelayed Status = "heavily-delayed"
	StatusCancelled      Status = "cancelled"
	StatusUnknown        Status = "unknown"
)

// StationMatch is a resolved upstream station for one of our stops.
type StationMatch struct {
	ExternalID  string            `json:"id"`
	DisplayName string            `json:"name"`
	Location    *transit.Position `json:"location,omitempty"`
}

// DepartureRecord is one normalized upcoming departure.
type DepartureRecord struct {
	ScheduledDeparture *time.Time `json:"scheduledDeparture"`
	ExpectedArrival    *time.Time `json:"expectedArrival"`
	DelayMinutes       int        `json:"delayMinutes"`
	Status             Status     `json:"status"`
	Cancelled          bool       `json:"cancelled"`
	Platform           *string    `json:"platform"`
	Direction          *string    `json:"direction"`
	Remarks            []string   `json:"remarks,omitempty"`
}

// StopDelaySnapshot is the per-stop result returned to callers. The first
// upcoming departure is embedded, flattening its fields to the top level.
// Snapshots are produced fresh on every resolution call, never persisted.
type StopDelaySnapshot struct {
	StopID    string        `json:"stopId"`
	StopName  string        `json:"stopName"`
	StopOrder int           `json:"stopOrder"`
	Station   *StationMatch `json:"station"`

	DepartureRecord

	Upcoming    []DepartureRecord `json:"upcomingDepartures,omitempty"`
	LastUpdated time.Time         `json:"lastUpdated"`
	Error       string            `json:"error,omitempty"`
	IsSimulated bool              `json:"isSimulated,omitempty"`
}

// RouteSummary aggregates delay statistics over one snapshot set.
type RouteSummary struct {
	TotalStops          int `json:"totalStops"`
	StopsWithData       int `json:"stopsWithData"`
	AverageDelayMinutes int `json:"averageDelayMinutes"`
	MaxDelayMinutes     int `json:"maxDelayMinutes"`
	OnTimePercentage    int `json:"onTimePercentage"`
	StopsOnTime         int `json:"stopsOnTime"`
	StopsDelayed        int `json:"stopsDelayed"`
	CancelledServices   int `json:"cancelledServices"`
}
