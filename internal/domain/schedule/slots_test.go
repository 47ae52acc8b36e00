//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRule(t *testing.T, weekday int, start, end string, duration int) *schedule.Rule {
	t.Helper()
	rule, err := schedule.NewRule(uuid.New(), uuid.New(), weekday, start, end, duration)
	require.NoError(t, err)
	return rule
}

func localDay(t *testing.T, zone string, year int, month time.Month, day int) (time.Time, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation(zone)
	require.NoError(t, err)
	return time.Date(year, month, day, 0, 0, 0, 0, loc), loc
}

func TestExpandSlots(t *testing.T) {
	t.Run("trailing partial window is dropped", func(t *testing.T) {
		// Monday 2025-06-02, 09:00-09:45 with 30-minute slots: exactly one
		// slot, the trailing 15 minutes produce nothing.
		day, loc := localDay(t, "UTC", 2025, time.June, 2)

		slots := schedule.ExpandSlots(day, day, schedule.Expansion{
			Rules:          []*schedule.Rule{mustRule(t, 1, "09:00", "09:45", 30)},
			TotalResources: 1,
			Location:       loc,
		})

		require.Len(t, slots, 1)
		assert.Equal(t, "09:00", slots[0].LocalLabel)
		assert.Equal(t, day.Add(9*time.Hour), slots[0].Start)
		assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), slots[0].End)
	})

	t.Run("zero resources yields no slots", func(t *testing.T) {
		day, loc := localDay(t, "UTC", 2025, time.June, 2)

		slots := schedule.ExpandSlots(day, day, schedule.Expansion{
			Rules:          []*schedule.Rule{mustRule(t, 1, "09:00", "17:00", 30)},
			TotalResources: 0,
			Location:       loc,
		})

		assert.Empty(t, slots)
	})

	t.Run("weekday zero is Sunday", func(t *testing.T) {
		// 2025-06-01 is a Sunday.
		day, loc := localDay(t, "UTC", 2025, time.June, 1)

		slots := schedule.ExpandSlots(day, day, schedule.Expansion{
			Rules:          []*schedule.Rule{mustRule(t, 0, "10:00", "11:00", 30)},
			TotalResources: 2,
			Location:       loc,
		})

		assert.Len(t, slots, 2)
	})

	t.Run("kolkata slots carry a fixed +05:30 offset", func(t *testing.T) {
		// Monday rule 09:00-17:00 in Asia/Kolkata. The zone has no DST, so
		// every UTC instant must sit exactly 5h30m behind local.
		day, loc := localDay(t, "Asia/Kolkata", 2025, time.June, 2)

		slots := schedule.ExpandSlots(day, day, schedule.Expansion{
			Rules:          []*schedule.Rule{mustRule(t, 1, "09:00", "17:00", 60)},
			TotalResources: 1,
			Location:       loc,
		})

		require.Len(t, slots, 8)
		assert.Equal(t, time.Date(2025, 6, 2, 3, 30, 0, 0, time.UTC), slots[0].Start)
		assert.Equal(t, "09:00", slots[0].LocalLabel)
		assert.Equal(t, time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC), slots[7].Start)
	})

	t.Run("duration precedence rule over category over default", func(t *testing.T) {
		day, loc := localDay(t, "UTC", 2025, time.June, 2)

		ruleLevel := schedule.ExpandSlots(day, day, schedule.Expansion{
			Rules:           []*schedule.Rule{mustRule(t, 1, "09:00", "10:00", 20)},
			CategoryMinutes: 45,
			TotalResources:  1,
			Location:        loc,
		})
		assert.Len(t, ruleLevel, 3)

		categoryLevel := schedule.ExpandSlots(day, day, schedule.Expansion{
			Rules:           []*schedule.Rule{mustRule(t, 1, "09:00", "10:30", 0)},
			CategoryMinutes: 45,
			TotalResources:  1,
			Location:        loc,
		})
		assert.Len(t, categoryLevel, 2)

		defaultLevel := schedule.ExpandSlots(day, day, schedule.Expansion{
			Rules:          []*schedule.Rule{mustRule(t, 1, "09:00", "10:00", 0)},
			TotalResources: 1,
			Location:       loc,
		})
		assert.Len(t, defaultLevel, 2)
	})

	t.Run("overlapping rules are not deduplicated", func(t *testing.T) {
		// Two identical windows: the owner defined both, the caller sees one
		// slot entry per rule match.
		day, loc := localDay(t, "UTC", 2025, time.June, 2)

		slots := schedule.ExpandSlots(day, day, schedule.Expansion{
			Rules: []*schedule.Rule{
				mustRule(t, 1, "09:00", "10:00", 30),
				mustRule(t, 1, "09:00", "10:00", 30),
			},
			TotalResources: 1,
			Location:       loc,
		})

		assert.Len(t, slots, 4)
		assert.Equal(t, slots[0].Start, slots[2].Start)
	})

	t.Run("occupancy counts per distinct resource", func(t *testing.T) {
		day, loc := localDay(t, "UTC", 2025, time.June, 2)
		resA, resB := uuid.New(), uuid.New()
		nineAM := day.Add(9 * time.Hour)

		slots := schedule.ExpandSlots(day, day, schedule.Expansion{
			Rules:          []*schedule.Rule{mustRule(t, 1, "09:00", "10:00", 30)},
			TotalResources: 2,
			Booked: []schedule.Booking{
				{ResourceID: resA, StartAt: nineAM},
				{ResourceID: resB, StartAt: nineAM},
				{ResourceID: resA, StartAt: nineAM}, // same resource twice counts once
			},
			Location: loc,
		})

		require.Len(t, slots, 2)

		full := slots[0]
		assert.Equal(t, 2, full.BookedCount)
		assert.Equal(t, 0, full.AvailableCount)
		assert.False(t, full.Available)
		assert.Equal(t, schedule.SlotFullyBooked, full.Status)

		open := slots[1]
		assert.Equal(t, 0, open.BookedCount)
		assert.Equal(t, 2, open.AvailableCount)
		assert.True(t, open.Available)
		assert.Equal(t, schedule.SlotAvailable, open.Status)
	})

	t.Run("expansion is deterministic", func(t *testing.T) {
		from, loc := localDay(t, "Europe/Berlin", 2025, time.June, 2)
		to := from.AddDate(0, 0, 6)
		exp := schedule.Expansion{
			Rules: []*schedule.Rule{
				mustRule(t, 1, "09:00", "12:00", 30),
				mustRule(t, 3, "14:00", "18:00", 45),
			},
			TotalResources: 3,
			Booked: []schedule.Booking{
				{ResourceID: uuid.New(), StartAt: from.Add(9 * time.Hour)},
			},
			Location: loc,
		}

		first := schedule.ExpandSlots(from, to, exp)
		second := schedule.ExpandSlots(from, to, exp)

		assert.Empty(t, cmp.Diff(first, second))
	})

	t.Run("inverted window produces no slots", func(t *testing.T) {
		day, loc := localDay(t, "UTC", 2025, time.June, 2)
		rule := schedule.ReconstructRule(uuid.New(), uuid.New(), uuid.New(), 1,
			mustTimeOfDay(t, "17:00"), mustTimeOfDay(t, "09:00"), 30)

		slots := schedule.ExpandSlots(day, day, schedule.Expansion{
			Rules:          []*schedule.Rule{rule},
			TotalResources: 1,
			Location:       loc,
		})

		assert.Empty(t, slots)
	})
}

func mustTimeOfDay(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.NewTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestNewRule(t *testing.T) {
	businessID, categoryID := uuid.New(), uuid.New()

	tests := []struct {
		name     string
		weekday  int
		start    string
		end      string
		duration int
		wantErr  bool
	}{
		{name: "valid", weekday: 1, start: "09:00", end: "17:00", duration: 30},
		{name: "weekday below range", weekday: -1, start: "09:00", end: "17:00", wantErr: true},
		{name: "weekday above range", weekday: 7, start: "09:00", end: "17:00", wantErr: true},
		{name: "start equals end", weekday: 2, start: "09:00", end: "09:00", wantErr: true},
		{name: "start after end", weekday: 2, start: "17:00", end: "09:00", wantErr: true},
		{name: "malformed start", weekday: 2, start: "9am", end: "17:00", wantErr: true},
		{name: "out of range minute", weekday: 2, start: "09:61", end: "17:00", wantErr: true},
		{name: "negative duration", weekday: 2, start: "09:00", end: "17:00", duration: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := schedule.NewRule(businessID, categoryID, tt.weekday, tt.start, tt.end, tt.duration)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.weekday, rule.Weekday())
		})
	}
}
