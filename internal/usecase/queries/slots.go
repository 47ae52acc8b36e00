package queries

import (
	"context"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/schedule"
	"github.com/ExactwareSolution/booktimez-app/internal/infra"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/timezone"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ScheduleReadStore supplies the state the slot expansion reads: weekly
// rules, pool size and live booked occupancy.
type ScheduleReadStore interface {
	RulesFor(ctx context.Context, businessID, categoryID uuid.UUID) ([]shared.RuleSnapshot, error)
	ResourceCount(ctx context.Context, businessID uuid.UUID) (int, error)
	BookedBetween(ctx context.Context, businessID, categoryID uuid.UUID, from, to time.Time) ([]schedule.Booking, error)
}

type SlotQueries interface {
	// ListSlots materializes bookable slots for the inclusive local date
	// range [startDate, endDate] in the business's zone. The listing is
	// advisory; the booking transaction re-validates under lock.
	ListSlots(ctx context.Context, businessRef string, categoryID uuid.UUID, startDate, endDate string) ([]schedule.Slot, error)
}

type slotQueriesImpl struct {
	reads shared.CommandReads
	store ScheduleReadStore
}

func NewSlotQueries(reads shared.CommandReads, store ScheduleReadStore) SlotQueries {
	return &slotQueriesImpl{reads: reads, store: store}
}

func (q *slotQueriesImpl) ListSlots(ctx context.Context, businessRef string, categoryID uuid.UUID, startDate, endDate string) ([]schedule.Slot, error) {
	business, err := shared.ResolveBusiness(ctx, q.reads, businessRef)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBusinessNotFound
		}
		return nil, err
	}

	loc, err := timezone.Location(business.Timezone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimezone)
	}

	from, err := time.ParseInLocation(dateLayout, startDate, loc)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}
	to, err := time.ParseInLocation(dateLayout, endDate, loc)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	category, err := q.reads.CategoryByID(ctx, categoryID)
	if err != nil {
		// An unknown category reads as "nothing bookable", not an error.
		if infra.IsKind(err, infra.KindNotFound) {
			return []schedule.Slot{}, nil
		}
		return nil, err
	}

	totalResources, err := q.store.ResourceCount(ctx, business.ID)
	if err != nil {
		return nil, err
	}
	if totalResources == 0 {
		return []schedule.Slot{}, nil
	}

	rows, err := q.store.RulesFor(ctx, business.ID, categoryID)
	if err != nil {
		return nil, err
	}
	rules := make([]*schedule.Rule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, ruleFromSnapshot(row))
	}

	// Range query bounds: [startDate 00:00, next day after endDate) local,
	// converted to UTC.
	booked, err := q.store.BookedBetween(ctx, business.ID, categoryID, from.UTC(), to.AddDate(0, 0, 1).UTC())
	if err != nil {
		return nil, err
	}

	slots := schedule.ExpandSlots(from, to, schedule.Expansion{
		Rules:           rules,
		CategoryMinutes: category.DurationMinutes,
		TotalResources:  totalResources,
		Booked:          booked,
		Location:        loc,
	})
	if slots == nil {
		slots = []schedule.Slot{}
	}
	return slots, nil
}

func ruleFromSnapshot(row shared.RuleSnapshot) *schedule.Rule {
	start, _ := schedule.NewTimeOfDay(row.StartTime)
	end, _ := schedule.NewTimeOfDay(row.EndTime)
	duration := 0
	if row.SlotDurationMinutes != nil {
		duration = *row.SlotDurationMinutes
	}
	return schedule.ReconstructRule(row.ID, row.BusinessID, row.CategoryID, row.Weekday, start, end, duration)
}
