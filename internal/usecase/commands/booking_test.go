//go:build unit

package commands_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/appointment"
	"github.com/ExactwareSolution/booktimez-app/internal/infra"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/clock"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/commands"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore backs the in-memory unit of work. All access goes through mu so
// that Within behaves like a serialized database transaction.
type memStore struct {
	mu           sync.Mutex
	businesses   map[uuid.UUID]shared.BusinessSnapshot
	slugs        map[string]uuid.UUID
	categories   map[uuid.UUID]shared.CategorySnapshot
	plans        map[uuid.UUID]shared.PlanSnapshot
	resources    map[uuid.UUID][]shared.ResourceSnapshot
	appointments []*appointment.Appointment
}

func newMemStore() *memStore {
	return &memStore{
		businesses: make(map[uuid.UUID]shared.BusinessSnapshot),
		slugs:      make(map[string]uuid.UUID),
		categories: make(map[uuid.UUID]shared.CategorySnapshot),
		plans:      make(map[uuid.UUID]shared.PlanSnapshot),
		resources:  make(map[uuid.UUID][]shared.ResourceSnapshot),
	}
}

func cloneAppt(a *appointment.Appointment) *appointment.Appointment {
	return appointment.ReconstructAppointment(
		a.ID(), a.BusinessID(), a.CategoryID(), a.ResourceID(),
		a.StartAt(), a.EndAt(), a.Status(), a.Customer(),
		a.TimezoneAtBooking(), a.CancelToken(), a.ReferenceNumber(), a.CreatedAt(),
	)
}

type memUnitOfWork struct {
	store *memStore
}

func (u *memUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	tx := &memTx{store: u.store, statusUpdates: make(map[uuid.UUID]appointment.Status)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (u *memUnitOfWork) Reads() shared.CommandReads {
	return &memReads{store: u.store, locked: true}
}

type memTx struct {
	store         *memStore
	created       []*appointment.Appointment
	statusUpdates map[uuid.UUID]appointment.Status
}

func (tx *memTx) Appointments() shared.AppointmentRepository { return &memApptRepo{tx: tx} }
func (tx *memTx) Resources() shared.ResourceRepository       { return &memResourceRepo{store: tx.store} }
func (tx *memTx) Reads() shared.CommandReads                 { return &memReads{store: tx.store} }

func (tx *memTx) commit() {
	tx.store.appointments = append(tx.store.appointments, tx.created...)
	for id, status := range tx.statusUpdates {
		for i, a := range tx.store.appointments {
			if a.ID() == id {
				tx.store.appointments[i] = appointment.ReconstructAppointment(
					a.ID(), a.BusinessID(), a.CategoryID(), a.ResourceID(),
					a.StartAt(), a.EndAt(), status, a.Customer(),
					a.TimezoneAtBooking(), a.CancelToken(), a.ReferenceNumber(), a.CreatedAt(),
				)
			}
		}
	}
}

// visible returns committed appointments plus this transaction's own writes.
func (tx *memTx) visible() []*appointment.Appointment {
	all := make([]*appointment.Appointment, 0, len(tx.store.appointments)+len(tx.created))
	all = append(all, tx.store.appointments...)
	all = append(all, tx.created...)
	return all
}

type memApptRepo struct {
	tx *memTx
}

func (r *memApptRepo) Create(_ context.Context, appt *appointment.Appointment) error {
	for _, existing := range r.tx.visible() {
		if existing.BusinessID() == appt.BusinessID() && existing.ReferenceNumber() == appt.ReferenceNumber() {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "duplicate reference number", nil)
		}
		// Mirrors the exclusion constraint on (business_id, resource_id, interval).
		if existing.IsBooked() &&
			existing.BusinessID() == appt.BusinessID() &&
			existing.ResourceID() == appt.ResourceID() &&
			existing.Overlaps(appt.StartAt(), appt.EndAt()) {
			return infra.WrapRepoErr(infra.KindConflict, "overlapping booking for resource", nil)
		}
	}
	r.tx.created = append(r.tx.created, appt)
	return nil
}

func (r *memApptRepo) LockOverlappingBooked(_ context.Context, businessID, categoryID uuid.UUID, start, end time.Time) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for _, a := range r.tx.visible() {
		if a.BusinessID() == businessID && a.CategoryID() == categoryID && a.IsBooked() && a.Overlaps(start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memApptRepo) FindByTokenForUpdate(_ context.Context, cancelToken string) (*appointment.Appointment, error) {
	for _, a := range r.tx.visible() {
		if a.CancelToken() == cancelToken {
			return cloneAppt(a), nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "appointment not found", nil)
}

func (r *memApptRepo) FindByIDForUpdate(_ context.Context, businessID, id uuid.UUID) (*appointment.Appointment, error) {
	for _, a := range r.tx.visible() {
		if a.BusinessID() == businessID && a.ID() == id {
			return cloneAppt(a), nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "appointment not found", nil)
}

func (r *memApptRepo) UpdateStatus(_ context.Context, id uuid.UUID, status appointment.Status) error {
	r.tx.statusUpdates[id] = status
	return nil
}

func (r *memApptRepo) ReferenceExists(_ context.Context, businessID uuid.UUID, referenceNumber string) (bool, error) {
	for _, a := range r.tx.visible() {
		if a.BusinessID() == businessID && a.ReferenceNumber() == referenceNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *memApptRepo) CompletePastBooked(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, a := range r.tx.visible() {
		if a.IsBooked() && !a.EndAt().After(now) {
			r.tx.statusUpdates[a.ID()] = appointment.StatusCompleted
			n++
		}
	}
	return n, nil
}

type memResourceRepo struct {
	store *memStore
}

func (r *memResourceRepo) LockByBusiness(_ context.Context, businessID uuid.UUID) ([]shared.ResourceSnapshot, error) {
	return r.store.resources[businessID], nil
}

type memReads struct {
	store  *memStore
	locked bool
}

func (r *memReads) acquire() func() {
	if !r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memReads) BusinessByID(_ context.Context, id uuid.UUID) (*shared.BusinessSnapshot, error) {
	defer r.acquire()()
	if biz, ok := r.store.businesses[id]; ok {
		return &biz, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "business not found", nil)
}

func (r *memReads) BusinessBySlug(_ context.Context, slug string) (*shared.BusinessSnapshot, error) {
	defer r.acquire()()
	if id, ok := r.store.slugs[slug]; ok {
		biz := r.store.businesses[id]
		return &biz, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "business not found", nil)
}

func (r *memReads) CategoryByID(_ context.Context, id uuid.UUID) (*shared.CategorySnapshot, error) {
	defer r.acquire()()
	if cat, ok := r.store.categories[id]; ok {
		return &cat, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "category not found", nil)
}

func (r *memReads) PlanByOwner(_ context.Context, ownerID uuid.UUID) (*shared.PlanSnapshot, error) {
	defer r.acquire()()
	if plan, ok := r.store.plans[ownerID]; ok {
		return &plan, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "plan not found", nil)
}

func (r *memReads) CountAppointmentsCreatedBetween(_ context.Context, businessID uuid.UUID, _, _ time.Time) (int, error) {
	defer r.acquire()()
	count := 0
	for _, a := range r.store.appointments {
		if a.BusinessID() == businessID {
			count++
		}
	}
	return count, nil
}

type memNotifier struct {
	mu    sync.Mutex
	notes []shared.Notification
}

func (n *memNotifier) Enqueue(note shared.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note)
}

func (n *memNotifier) sent() []shared.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]shared.Notification, len(n.notes))
	copy(out, n.notes)
	return out
}

type fixture struct {
	store    *memStore
	notifier *memNotifier
	clock    *clock.MockClock
	cmds     commands.BookingCommands

	ownerID    uuid.UUID
	businessID uuid.UUID
	categoryID uuid.UUID
}

func newFixture(resourceCount int) *fixture {
	store := newMemStore()
	notifier := &memNotifier{}
	clk := clock.NewMockClock(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	f := &fixture{
		store:      store,
		notifier:   notifier,
		clock:      clk,
		ownerID:    uuid.New(),
		businessID: uuid.New(),
		categoryID: uuid.New(),
	}

	store.businesses[f.businessID] = shared.BusinessSnapshot{
		ID:       f.businessID,
		OwnerID:  f.ownerID,
		Name:     "Glow Bar",
		Slug:     "glowbar",
		Timezone: "UTC",
	}
	store.slugs["glowbar"] = f.businessID
	store.categories[f.categoryID] = shared.CategorySnapshot{
		ID:              f.categoryID,
		Name:            "Haircut",
		DurationMinutes: 30,
	}
	store.plans[f.ownerID] = shared.PlanSnapshot{
		ID:     uuid.New(),
		Code:   "pro",
		Name:   "Pro",
		Status: "Active",
	}
	for i := 0; i < resourceCount; i++ {
		store.resources[f.businessID] = append(store.resources[f.businessID], shared.ResourceSnapshot{
			ID:         uuid.New(),
			BusinessID: f.businessID,
			Name:       "Chair",
			Type:       "staff",
		})
	}

	f.cmds = commands.NewBookingCommands(&memUnitOfWork{store: store}, notifier, clk)
	return f
}

func (f *fixture) bookParams(localStart string) commands.BookParams {
	return commands.BookParams{
		BusinessRef:   "glowbar",
		CategoryID:    f.categoryID,
		LocalStartAt:  localStart,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "+15550100",
	}
}

var testRefPattern = regexp.MustCompile(`^GLOWBAR-2026-[0-9A-F]{6}$`)

func TestBook_Succeeds(t *testing.T) {
	f := newFixture(1)

	result, err := f.cmds.Book(context.Background(), f.bookParams("2026-09-07T10:00"))
	require.NoError(t, err)

	appt := result.Appointment
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), appt.StartAt())
	assert.Equal(t, time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC), appt.EndAt())
	assert.Equal(t, appointment.StatusBooked, appt.Status())
	assert.Regexp(t, testRefPattern, appt.ReferenceNumber())
	assert.Len(t, appt.CancelToken(), 64)

	notes := f.notifier.sent()
	require.Len(t, notes, 1)
	assert.Equal(t, shared.NotifyBookingConfirmed, notes[0].Kind)
	assert.Equal(t, "ada@example.com", notes[0].RecipientEmail)
}

func TestBook_InterpretsStartInBusinessZone(t *testing.T) {
	f := newFixture(1)
	biz := f.store.businesses[f.businessID]
	biz.Timezone = "Asia/Kolkata"
	f.store.businesses[f.businessID] = biz

	result, err := f.cmds.Book(context.Background(), f.bookParams("2026-09-07T10:00"))
	require.NoError(t, err)

	// 10:00 IST is 04:30 UTC.
	assert.Equal(t, time.Date(2026, 9, 7, 4, 30, 0, 0, time.UTC), result.Appointment.StartAt())
	assert.Equal(t, "Asia/Kolkata", result.Appointment.TimezoneAtBooking())
}

func TestBook_ConcurrentRequestsForSameSlot(t *testing.T) {
	f := newFixture(2)

	const callers = 3
	var wg sync.WaitGroup
	results := make(chan *commands.BookingResult, callers)
	failures := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := f.cmds.Book(context.Background(), f.bookParams("2026-09-07T10:00"))
			if err != nil {
				failures <- err
				return
			}
			results <- result
		}()
	}
	wg.Wait()
	close(results)
	close(failures)

	var booked []*commands.BookingResult
	for r := range results {
		booked = append(booked, r)
	}
	var errsOut []error
	for e := range failures {
		errsOut = append(errsOut, e)
	}

	require.Len(t, booked, 2, "two resources means two winners")
	require.Len(t, errsOut, 1)
	assert.ErrorIs(t, errsOut[0], errs.ErrSlotTaken)

	assert.NotEqual(t, booked[0].Appointment.ResourceID(), booked[1].Appointment.ResourceID())
	assert.NotEqual(t, booked[0].Appointment.ReferenceNumber(), booked[1].Appointment.ReferenceNumber())
}

func TestBook_FillsEveryResourceThenConflicts(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 3; i++ {
		result, err := f.cmds.Book(ctx, f.bookParams("2026-09-07T10:00"))
		require.NoError(t, err)
		assert.False(t, seen[result.Appointment.ResourceID()], "each booking must consume a distinct resource")
		seen[result.Appointment.ResourceID()] = true
	}

	_, err := f.cmds.Book(ctx, f.bookParams("2026-09-07T10:00"))
	assert.ErrorIs(t, err, errs.ErrSlotTaken)

	// An adjacent window is unaffected.
	_, err = f.cmds.Book(ctx, f.bookParams("2026-09-07T10:30"))
	assert.NoError(t, err)
}

func TestBook_PartialOverlapConflicts(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	_, err := f.cmds.Book(ctx, f.bookParams("2026-09-07T10:00"))
	require.NoError(t, err)

	// 10:15 overlaps the 10:00-10:30 booking.
	_, err = f.cmds.Book(ctx, f.bookParams("2026-09-07T10:15"))
	assert.ErrorIs(t, err, errs.ErrSlotTaken)
}

func TestBook_NoResources(t *testing.T) {
	f := newFixture(0)

	_, err := f.cmds.Book(context.Background(), f.bookParams("2026-09-07T10:00"))
	assert.ErrorIs(t, err, errs.ErrNoResourcesAvailable)
}

func TestBook_UnknownBusinessAndCategory(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	params := f.bookParams("2026-09-07T10:00")
	params.BusinessRef = "no-such-salon"
	_, err := f.cmds.Book(ctx, params)
	assert.ErrorIs(t, err, errs.ErrBusinessNotFound)

	params = f.bookParams("2026-09-07T10:00")
	params.CategoryID = uuid.New()
	_, err = f.cmds.Book(ctx, params)
	assert.ErrorIs(t, err, errs.ErrCategoryNotFound)
}

func TestBook_ResolvesBusinessByID(t *testing.T) {
	f := newFixture(1)

	params := f.bookParams("2026-09-07T10:00")
	params.BusinessRef = f.businessID.String()
	result, err := f.cmds.Book(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, f.businessID, result.Appointment.BusinessID())
}

func TestBook_RejectsMalformedStartTime(t *testing.T) {
	f := newFixture(1)

	for _, bad := range []string{"", "tomorrow", "2026-09-07", "10:00"} {
		params := f.bookParams(bad)
		_, err := f.cmds.Book(context.Background(), params)
		assert.ErrorIs(t, err, errs.ErrInvalidStartTime, "input %q", bad)
	}
}

func TestBook_RejectsBlankCustomerName(t *testing.T) {
	f := newFixture(1)

	params := f.bookParams("2026-09-07T10:00")
	params.CustomerName = "   "
	_, err := f.cmds.Book(context.Background(), params)
	assert.ErrorIs(t, err, appointment.ErrCustomerNameRequired)
}

func TestBook_PlanGate(t *testing.T) {
	t.Run("inactive plan", func(t *testing.T) {
		f := newFixture(1)
		plan := f.store.plans[f.ownerID]
		plan.Status = "Cancelled"
		f.store.plans[f.ownerID] = plan

		_, err := f.cmds.Book(context.Background(), f.bookParams("2026-09-07T10:00"))
		assert.ErrorIs(t, err, errs.ErrPlanInactive)
	})

	t.Run("owner without plan", func(t *testing.T) {
		f := newFixture(1)
		delete(f.store.plans, f.ownerID)

		_, err := f.cmds.Book(context.Background(), f.bookParams("2026-09-07T10:00"))
		assert.ErrorIs(t, err, errs.ErrOwnerHasNoPlan)
	})

	t.Run("monthly cap", func(t *testing.T) {
		f := newFixture(5)
		limit := 2
		plan := f.store.plans[f.ownerID]
		plan.MaxBookingsPerMonth = &limit
		f.store.plans[f.ownerID] = plan
		ctx := context.Background()

		_, err := f.cmds.Book(ctx, f.bookParams("2026-09-07T10:00"))
		require.NoError(t, err)
		_, err = f.cmds.Book(ctx, f.bookParams("2026-09-07T11:00"))
		require.NoError(t, err)

		_, err = f.cmds.Book(ctx, f.bookParams("2026-09-07T12:00"))
		assert.ErrorIs(t, err, errs.ErrPlanLimitReached)
	})
}

func TestCancelByToken_FreesTheSlot(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	first, err := f.cmds.Book(ctx, f.bookParams("2026-09-07T10:00"))
	require.NoError(t, err)

	_, err = f.cmds.Book(ctx, f.bookParams("2026-09-07T10:00"))
	require.ErrorIs(t, err, errs.ErrSlotTaken)

	cancelled, err := f.cmds.CancelByToken(ctx, first.Appointment.CancelToken())
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCancelled, cancelled.Appointment.Status())

	second, err := f.cmds.Book(ctx, f.bookParams("2026-09-07T10:00"))
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusBooked, second.Appointment.Status())

	kinds := []shared.NotificationKind{}
	for _, n := range f.notifier.sent() {
		kinds = append(kinds, n.Kind)
	}
	assert.Equal(t, []shared.NotificationKind{
		shared.NotifyBookingConfirmed,
		shared.NotifyBookingCancelled,
		shared.NotifyBookingConfirmed,
	}, kinds)
}

func TestCancelByToken_Idempotence(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	booked, err := f.cmds.Book(ctx, f.bookParams("2026-09-07T10:00"))
	require.NoError(t, err)
	token := booked.Appointment.CancelToken()

	_, err = f.cmds.CancelByToken(ctx, token)
	require.NoError(t, err)

	_, err = f.cmds.CancelByToken(ctx, token)
	assert.ErrorIs(t, err, errs.ErrAlreadyCancelled)

	_, err = f.cmds.CancelByToken(ctx, "deadbeef")
	assert.ErrorIs(t, err, errs.ErrAppointmentNotFound)
}

func TestCancelByID_OwnerOnly(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	booked, err := f.cmds.Book(ctx, f.bookParams("2026-09-07T10:00"))
	require.NoError(t, err)
	apptID := booked.Appointment.ID()

	_, err = f.cmds.CancelByID(ctx, f.businessID, apptID, uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotOwner)

	result, err := f.cmds.CancelByID(ctx, f.businessID, apptID, f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCancelled, result.Appointment.Status())

	_, err = f.cmds.CancelByID(ctx, f.businessID, uuid.New(), f.ownerID)
	assert.ErrorIs(t, err, errs.ErrAppointmentNotFound)
}

func TestCompletePastAppointments(t *testing.T) {
	f := newFixture(2)
	ctx := context.Background()

	past, err := f.cmds.Book(ctx, f.bookParams("2026-09-10T10:00"))
	require.NoError(t, err)
	future, err := f.cmds.Book(ctx, f.bookParams("2026-09-10T15:00"))
	require.NoError(t, err)

	f.clock.Set(time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))

	n, err := f.cmds.CompletePastAppointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	statuses := map[uuid.UUID]appointment.Status{}
	for _, a := range f.store.appointments {
		statuses[a.ID()] = a.Status()
	}
	assert.Equal(t, appointment.StatusCompleted, statuses[past.Appointment.ID()])
	assert.Equal(t, appointment.StatusBooked, statuses[future.Appointment.ID()])

	// A second run finds nothing left to flip.
	n, err = f.cmds.CompletePastAppointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBook_ExclusionConstraintBackstop(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	// A booked row in a different category holds the only resource. The
	// category-scoped lock cannot see it, so the create must surface the
	// conflict from the storage layer.
	otherCategory := uuid.New()
	f.store.categories[otherCategory] = shared.CategorySnapshot{ID: otherCategory, Name: "Massage", DurationMinutes: 60}

	params := f.bookParams("2026-09-07T10:00")
	params.CategoryID = otherCategory
	_, err := f.cmds.Book(ctx, params)
	require.NoError(t, err)

	_, err = f.cmds.Book(ctx, f.bookParams("2026-09-07T10:30"))
	assert.ErrorIs(t, err, errs.ErrSlotTaken)
}

func TestBook_ErrorsDoNotNotify(t *testing.T) {
	f := newFixture(0)

	_, err := f.cmds.Book(context.Background(), f.bookParams("2026-09-07T10:00"))
	require.Error(t, err)
	assert.Empty(t, f.notifier.sent())
}

func TestBook_ManyBookingsDistinctReferences(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	refs := make(map[string]bool)
	for hour := 9; hour < 17; hour++ {
		result, err := f.cmds.Book(ctx, f.bookParams(time.Date(2026, 9, 7, hour, 0, 0, 0, time.UTC).Format("2006-01-02T15:04")))
		require.NoError(t, err)
		require.Regexp(t, testRefPattern, result.Appointment.ReferenceNumber())
		refs[result.Appointment.ReferenceNumber()] = true
	}
	assert.Len(t, refs, 8)
}

func TestBook_DefaultsUnknownPlanStatusToInactive(t *testing.T) {
	f := newFixture(1)
	plan := f.store.plans[f.ownerID]
	plan.Status = "PastDue"
	f.store.plans[f.ownerID] = plan

	_, err := f.cmds.Book(context.Background(), f.bookParams("2026-09-07T10:00"))
	assert.True(t, errors.Is(err, errs.ErrPlanInactive))
}
