package schedule

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSlotMinutes applies when neither the rule nor the category carries a
// duration.
const DefaultSlotMinutes = 30

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotFullyBooked SlotStatus = "fully_booked"
)

// Slot is a derived, never-persisted candidate booking interval annotated
// with aggregate resource occupancy. It is computed fresh on every query and
// re-validated by the booking transaction.
type Slot struct {
	Start          time.Time // UTC
	End            time.Time // UTC
	LocalLabel     string    // HH:MM in the business zone
	TotalResources int
	BookedCount    int
	AvailableCount int
	Available      bool
	Status         SlotStatus
}

// Booking is the projection of a booked appointment the expansion needs.
type Booking struct {
	ResourceID uuid.UUID
	StartAt    time.Time
}

// occupancyKeyLayout keys appointments by their minute-precision local start.
const occupancyKeyLayout = "2006-01-02T15:04"

// OccupancyKey formats t as a minute-precision key in loc.
func OccupancyKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(occupancyKeyLayout)
}

// BuildOccupancyIndex maps each local slot-start key to the number of
// distinct resources already consumed at that instant.
func BuildOccupancyIndex(booked []Booking, loc *time.Location) map[string]int {
	sets := make(map[string]map[uuid.UUID]struct{})
	for _, b := range booked {
		key := OccupancyKey(b.StartAt, loc)
		set, ok := sets[key]
		if !ok {
			set = make(map[uuid.UUID]struct{})
			sets[key] = set
		}
		set[b.ResourceID] = struct{}{}
	}

	index := make(map[string]int, len(sets))
	for key, set := range sets {
		index[key] = len(set)
	}
	return index
}

// Expansion is the input state for ExpandSlots: the weekly rules, the live
// occupancy of the requested window and the resource pool size.
type Expansion struct {
	Rules           []*Rule
	CategoryMinutes int
	TotalResources  int
	Booked          []Booking
	Location        *time.Location
}

// ExpandSlots materializes the weekly rules over the inclusive local date
// range [from, to] into discrete slots, chronological within each day's rule
// iteration. Overlapping rules intentionally emit one slot per rule match.
// A window not evenly divisible by the slot duration drops the trailing
// partial slot. Zero resources yields no slots.
func ExpandSlots(from, to time.Time, exp Expansion) []Slot {
	if exp.TotalResources == 0 {
		return nil
	}

	index := BuildOccupancyIndex(exp.Booked, exp.Location)

	var slots []Slot
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		weekday := int(d.Weekday())

		for _, rule := range exp.Rules {
			if rule.Weekday() != weekday {
				continue
			}

			duration := rule.durationFor(exp.CategoryMinutes)
			localStart := rule.StartTime().On(d)
			localEnd := rule.EndTime().On(d)

			for !localStart.Add(duration).After(localEnd) {
				slotEnd := localStart.Add(duration)
				bookedCount := index[localStart.Format(occupancyKeyLayout)]
				availableCount := exp.TotalResources - bookedCount
				if availableCount < 0 {
					availableCount = 0
				}
				available := bookedCount < exp.TotalResources

				status := SlotFullyBooked
				if available {
					status = SlotAvailable
				}

				slots = append(slots, Slot{
					Start:          localStart.UTC(),
					End:            slotEnd.UTC(),
					LocalLabel:     localStart.Format("15:04"),
					TotalResources: exp.TotalResources,
					BookedCount:    bookedCount,
					AvailableCount: availableCount,
					Available:      available,
					Status:         status,
				})

				localStart = slotEnd
			}
		}
	}

	return slots
}
