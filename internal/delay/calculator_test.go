package delay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buswatch/internal/transit"
)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(n int) *int              { return &n }

var (
	planned = time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)
	actual  = planned.Add(7 * time.Minute)
)

func TestNormalizeDeparture_DelayFieldPreferred(t *testing.T) {
	// Explicit delay seconds win even when the timestamps disagree.
	rec := NormalizeDeparture(transit.Departure{
		PlannedWhen: timePtr(planned),
		When:        timePtr(actual),
		Delay:       intPtr(180),
	})
	assert.Equal(t, 3, rec.DelayMinutes)
	assert.Equal(t, StatusSlightDelay, rec.Status)
}

func TestNormalizeDeparture_DelaySecondsRounding(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{0, 0},
		{29, 0},
		{30, 1}, // round half away from zero
		{90, 2},
		{119, 2},
		{600, 10},
		{660, 11},
	}
	for _, tt := range tests {
		rec := NormalizeDeparture(transit.Departure{Delay: intPtr(tt.seconds)})
		assert.Equal(t, tt.want, rec.DelayMinutes, "delay %ds", tt.seconds)
	}
}

func TestNormalizeDeparture_TimeDifferenceFallback(t *testing.T) {
	rec := NormalizeDeparture(transit.Departure{
		PlannedWhen: timePtr(planned),
		When:        timePtr(actual),
	})
	assert.Equal(t, 7, rec.DelayMinutes)
	assert.Equal(t, StatusDelayed, rec.Status)
}

func TestNormalizeDeparture_EarlyDepartureClampedToZero(t *testing.T) {
	// Explicit negative delay seconds.
	rec := NormalizeDeparture(transit.Departure{Delay: intPtr(-120)})
	assert.Equal(t, 0, rec.DelayMinutes)
	assert.Equal(t, StatusOnTime, rec.Status)

	// Early realtime estimate.
	rec = NormalizeDeparture(transit.Departure{
		PlannedWhen: timePtr(planned),
		When:        timePtr(planned.Add(-3 * time.Minute)),
	})
	assert.Equal(t, 0, rec.DelayMinutes)
	assert.Equal(t, StatusOnTime, rec.Status)
}

func TestNormalizeDeparture_NoTimingDataIsOnTime(t *testing.T) {
	rec := NormalizeDeparture(transit.Departure{})
	assert.Equal(t, 0, rec.DelayMinutes)
	assert.Equal(t, StatusOnTime, rec.Status)
	assert.Nil(t, rec.ScheduledDeparture)
	assert.Nil(t, rec.ExpectedArrival)
}

func TestNormalizeDeparture_Cancelled(t *testing.T) {
	rec := NormalizeDeparture(transit.Departure{
		PlannedWhen: timePtr(planned),
		Cancelled:   true,
		Delay:       intPtr(900),
	})
	assert.True(t, rec.Cancelled)
	assert.Equal(t, StatusCancelled, rec.Status)
	// The minute figure passes through; aggregation treats cancelled as 0.
	assert.Equal(t, 15, rec.DelayMinutes)
}

func TestNormalizeDeparture_OptionalFields(t *testing.T) {
	rec := NormalizeDeparture(transit.Departure{
		PlannedWhen:     timePtr(planned),
		PlannedPlatform: "3",
		Direction:       "S+U Hauptbahnhof",
		Remarks: []transit.Remark{
			{Type: "hint", Text: "barrier-free"},
			{Type: "hint", Text: ""},
			{Type: "warning", Text: "diversion"},
		},
	})
	require.NotNil(t, rec.Platform)
	assert.Equal(t, "3", *rec.Platform)
	require.NotNil(t, rec.Direction)
	assert.Equal(t, "S+U Hauptbahnhof", *rec.Direction)
	assert.Equal(t, []string{"barrier-free", "diversion"}, rec.Remarks)

	rec = NormalizeDeparture(transit.Departure{PlannedWhen: timePtr(planned)})
	assert.Nil(t, rec.Platform)
	assert.Nil(t, rec.Direction)
	assert.Empty(t, rec.Remarks)
}
