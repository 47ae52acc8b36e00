//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/schedule"
	"github.com/ExactwareSolution/booktimez-app/internal/infra"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/queries"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReads struct {
	business *shared.BusinessSnapshot
	category *shared.CategorySnapshot
}

func (f *fakeReads) BusinessByID(_ context.Context, id uuid.UUID) (*shared.BusinessSnapshot, error) {
	if f.business != nil && f.business.ID == id {
		return f.business, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "business not found", nil)
}

func (f *fakeReads) BusinessBySlug(_ context.Context, slug string) (*shared.BusinessSnapshot, error) {
	if f.business != nil && f.business.Slug == slug {
		return f.business, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "business not found", nil)
}

func (f *fakeReads) CategoryByID(_ context.Context, id uuid.UUID) (*shared.CategorySnapshot, error) {
	if f.category != nil && f.category.ID == id {
		return f.category, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "category not found", nil)
}

func (f *fakeReads) PlanByOwner(context.Context, uuid.UUID) (*shared.PlanSnapshot, error) {
	return nil, infra.WrapRepoErr(infra.KindNotFound, "plan not found", nil)
}

func (f *fakeReads) CountAppointmentsCreatedBetween(context.Context, uuid.UUID, time.Time, time.Time) (int, error) {
	return 0, nil
}

type fakeScheduleStore struct {
	rules     []shared.RuleSnapshot
	resources int
	booked    []schedule.Booking
}

func (f *fakeScheduleStore) RulesFor(context.Context, uuid.UUID, uuid.UUID) ([]shared.RuleSnapshot, error) {
	return f.rules, nil
}

func (f *fakeScheduleStore) ResourceCount(context.Context, uuid.UUID) (int, error) {
	return f.resources, nil
}

func (f *fakeScheduleStore) BookedBetween(_ context.Context, _, _ uuid.UUID, from, to time.Time) ([]schedule.Booking, error) {
	var out []schedule.Booking
	for _, b := range f.booked {
		if !b.StartAt.Before(from) && b.StartAt.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

type slotFixture struct {
	reads      *fakeReads
	store      *fakeScheduleStore
	queries    queries.SlotQueries
	businessID uuid.UUID
	categoryID uuid.UUID
}

// Monday-only window in UTC: 09:00-11:00, slot length from the category.
func newSlotFixture() *slotFixture {
	businessID := uuid.New()
	categoryID := uuid.New()

	reads := &fakeReads{
		business: &shared.BusinessSnapshot{
			ID:       businessID,
			OwnerID:  uuid.New(),
			Name:     "Glow Bar",
			Slug:     "glowbar",
			Timezone: "UTC",
		},
		category: &shared.CategorySnapshot{
			ID:              categoryID,
			Name:            "Haircut",
			DurationMinutes: 60,
		},
	}
	store := &fakeScheduleStore{
		rules: []shared.RuleSnapshot{
			{ID: uuid.New(), BusinessID: businessID, CategoryID: categoryID, Weekday: 1, StartTime: "09:00", EndTime: "11:00"},
		},
		resources: 2,
	}

	return &slotFixture{
		reads:      reads,
		store:      store,
		queries:    queries.NewSlotQueries(reads, store),
		businessID: businessID,
		categoryID: categoryID,
	}
}

func TestListSlots_ExpandsRulesOverRange(t *testing.T) {
	f := newSlotFixture()

	// 2026-09-07 is a Monday, 2026-09-08 a Tuesday with no rule.
	slots, err := f.queries.ListSlots(context.Background(), "glowbar", f.categoryID, "2026-09-07", "2026-09-08")
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, "09:00", slots[0].LocalLabel)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), slots[1].Start)
	for _, s := range slots {
		assert.Equal(t, 2, s.TotalResources)
		assert.Equal(t, 2, s.AvailableCount)
		assert.True(t, s.Available)
		assert.Equal(t, schedule.SlotAvailable, s.Status)
	}
}

func TestListSlots_Idempotent(t *testing.T) {
	f := newSlotFixture()
	ctx := context.Background()

	first, err := f.queries.ListSlots(ctx, "glowbar", f.categoryID, "2026-09-07", "2026-09-13")
	require.NoError(t, err)
	second, err := f.queries.ListSlots(ctx, "glowbar", f.categoryID, "2026-09-07", "2026-09-13")
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second))
}

func TestListSlots_CountsBookedOccupancy(t *testing.T) {
	f := newSlotFixture()
	resourceA := uuid.New()
	resourceB := uuid.New()

	f.store.booked = []schedule.Booking{
		{ResourceID: resourceA, StartAt: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)},
		{ResourceID: resourceB, StartAt: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)},
		{ResourceID: resourceA, StartAt: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)},
	}

	slots, err := f.queries.ListSlots(context.Background(), "glowbar", f.categoryID, "2026-09-07", "2026-09-07")
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, 2, slots[0].BookedCount)
	assert.Equal(t, 0, slots[0].AvailableCount)
	assert.False(t, slots[0].Available)
	assert.Equal(t, schedule.SlotFullyBooked, slots[0].Status)

	assert.Equal(t, 1, slots[1].BookedCount)
	assert.Equal(t, 1, slots[1].AvailableCount)
	assert.True(t, slots[1].Available)
}

func TestListSlots_CancellationRestoresAvailability(t *testing.T) {
	f := newSlotFixture()
	f.store.resources = 1
	f.store.booked = []schedule.Booking{
		{ResourceID: uuid.New(), StartAt: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)},
	}
	ctx := context.Background()

	slots, err := f.queries.ListSlots(ctx, "glowbar", f.categoryID, "2026-09-07", "2026-09-07")
	require.NoError(t, err)
	assert.False(t, slots[0].Available)

	// The read store only surfaces booked rows, so a cancellation simply
	// disappears from the occupancy feed.
	f.store.booked = nil

	slots, err = f.queries.ListSlots(ctx, "glowbar", f.categoryID, "2026-09-07", "2026-09-07")
	require.NoError(t, err)
	assert.True(t, slots[0].Available)
	assert.Equal(t, 1, slots[0].AvailableCount)
}

func TestListSlots_UnknownCategoryIsEmpty(t *testing.T) {
	f := newSlotFixture()

	slots, err := f.queries.ListSlots(context.Background(), "glowbar", uuid.New(), "2026-09-07", "2026-09-07")
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestListSlots_NoResourcesIsEmpty(t *testing.T) {
	f := newSlotFixture()
	f.store.resources = 0

	slots, err := f.queries.ListSlots(context.Background(), "glowbar", f.categoryID, "2026-09-07", "2026-09-07")
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestListSlots_UnknownBusiness(t *testing.T) {
	f := newSlotFixture()

	_, err := f.queries.ListSlots(context.Background(), "no-such-salon", f.categoryID, "2026-09-07", "2026-09-07")
	assert.ErrorIs(t, err, errs.ErrBusinessNotFound)
}

func TestListSlots_MalformedDates(t *testing.T) {
	f := newSlotFixture()
	ctx := context.Background()

	_, err := f.queries.ListSlots(ctx, "glowbar", f.categoryID, "07-09-2026", "2026-09-07")
	assert.ErrorIs(t, err, errs.ErrInvalidDateRange)

	_, err = f.queries.ListSlots(ctx, "glowbar", f.categoryID, "2026-09-07", "next week")
	assert.ErrorIs(t, err, errs.ErrInvalidDateRange)
}

func TestListSlots_BusinessZoneConversion(t *testing.T) {
	f := newSlotFixture()
	f.reads.business.Timezone = "Asia/Kolkata"

	slots, err := f.queries.ListSlots(context.Background(), "glowbar", f.categoryID, "2026-09-07", "2026-09-07")
	require.NoError(t, err)
	require.Len(t, slots, 2)

	// 09:00 IST is 03:30 UTC.
	assert.Equal(t, time.Date(2026, 9, 7, 3, 30, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, "09:00", slots[0].LocalLabel)
}
