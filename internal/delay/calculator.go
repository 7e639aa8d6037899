package delay

import (
	"math"

	"buswatch/internal/transit"
)

// NormalizeDeparture converts a raw upstream departure into a
// DepartureRecord. Delay comes from the explicit delay-seconds field when
// present, otherwise from the realtime/planned time difference; early
// departures are clamped to zero.
func NormalizeDeparture(d transit.Departure) DepartureRecord {
	minutes := delayMinutes(d)

	status := Classify(minutes)
	if d.Cancelled {
		status = StatusCancelled
	}

	rec := DepartureRecord{
		ScheduledDeparture: d.PlannedWhen,
		ExpectedArrival:    d.When,
		DelayMinutes:       minutes,
		Status:             status,
		Cancelled:          d.Cancelled,
	}
	if p := d.BestPlatform(); p != "" {
		rec.Platform = &p
	}
	if d.Direction != "" {
		dir := d.Direction
		rec.Direction = &dir
	}
	for _, r := range d.Remarks {
		if r.Text != "" {
			rec.Remarks = append(rec.Remarks, r.Text)
		}
	}
	return rec
}

func delayMinutes(d transit.Departure) int {
	var m int
	switch {
	case d.Delay != nil:
		m = int(math.Round(float64(*d.Delay) / 60))
	case d.When != nil && d.PlannedWhen != nil:
		m = int(math.Round(d.When.Sub(*d.PlannedWhen).Minutes()))
	}
	if m < 0 {
		m = 0
	}
	return m
}
