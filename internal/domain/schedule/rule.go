package schedule

import (
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"

	"github.com/google/uuid"
)

// Rule is one weekly recurring availability window for a business+category.
// Weekday follows 0=Sunday .. 6=Saturday.
type Rule struct {
	id                  uuid.UUID
	businessID          uuid.UUID
	categoryID          uuid.UUID
	weekday             int
	startTime           TimeOfDay
	endTime             TimeOfDay
	slotDurationMinutes int // 0 = inherit from category
}

func NewRule(businessID, categoryID uuid.UUID, weekday int, startTime, endTime string, slotDurationMinutes int) (*Rule, error) {
	if weekday < 0 || weekday > 6 {
		return nil, errs.ErrInvalidWeekday
	}

	start, err := NewTimeOfDay(startTime)
	if err != nil {
		return nil, err
	}
	end, err := NewTimeOfDay(endTime)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, errs.ErrInvalidWindow
	}
	if slotDurationMinutes < 0 {
		return nil, errs.ErrInvalidWindow
	}

	return &Rule{
		id:                  uuid.New(),
		businessID:          businessID,
		categoryID:          categoryID,
		weekday:             weekday,
		startTime:           start,
		endTime:             end,
		slotDurationMinutes: slotDurationMinutes,
	}, nil
}

// ReconstructRule rebuilds a rule from persistence without re-validating.
// Inverted windows that slipped into the store naturally produce no slots.
func ReconstructRule(id, businessID, categoryID uuid.UUID, weekday int, startTime, endTime TimeOfDay, slotDurationMinutes int) *Rule {
	return &Rule{
		id:                  id,
		businessID:          businessID,
		categoryID:          categoryID,
		weekday:             weekday,
		startTime:           startTime,
		endTime:             endTime,
		slotDurationMinutes: slotDurationMinutes,
	}
}

func (r *Rule) ID() uuid.UUID            { return r.id }
func (r *Rule) BusinessID() uuid.UUID    { return r.businessID }
func (r *Rule) CategoryID() uuid.UUID    { return r.categoryID }
func (r *Rule) Weekday() int             { return r.weekday }
func (r *Rule) StartTime() TimeOfDay     { return r.startTime }
func (r *Rule) EndTime() TimeOfDay       { return r.endTime }
func (r *Rule) SlotDurationMinutes() int { return r.slotDurationMinutes }

// durationFor resolves the slot duration precedence: rule-level, then the
// category default, then DefaultSlotMinutes.
func (r *Rule) durationFor(categoryMinutes int) time.Duration {
	minutes := r.slotDurationMinutes
	if minutes == 0 {
		minutes = categoryMinutes
	}
	if minutes == 0 {
		minutes = DefaultSlotMinutes
	}
	return time.Duration(minutes) * time.Minute
}
