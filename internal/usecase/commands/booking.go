package commands

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/appointment"
	"github.com/ExactwareSolution/booktimez-app/internal/infra"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/clock"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/reference"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/timezone"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
)

// localStartLayouts are the accepted shapes of a booking start time. Layouts
// without a zone are interpreted in the business's canonical zone.
var localStartLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type BookParams struct {
	BusinessRef   string
	CategoryID    uuid.UUID
	LocalStartAt  string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// BookingResult carries the committed appointment plus the snapshots needed
// to render a localized response and the confirmation notice.
type BookingResult struct {
	Appointment *appointment.Appointment
	Business    shared.BusinessSnapshot
	Category    shared.CategorySnapshot
}

type BookingCommands interface {
	Book(ctx context.Context, params BookParams) (*BookingResult, error)
	CancelByToken(ctx context.Context, cancelToken string) (*BookingResult, error)
	CancelByID(ctx context.Context, businessID, appointmentID, ownerID uuid.UUID) (*BookingResult, error)
	// CompletePastAppointments flips booked appointments whose end has
	// passed to completed. Run periodically by the completer job.
	CompletePastAppointments(ctx context.Context) (int64, error)
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier shared.Notifier
	clock    clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, notifier shared.Notifier, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		notifier: notifier,
		clock:    clk,
	}
}

func (c *bookingCommandsImpl) Book(ctx context.Context, params BookParams) (*BookingResult, error) {
	business, category, err := c.resolveTarget(ctx, params.BusinessRef, params.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := c.checkPlanAllowsBooking(ctx, business); err != nil {
		return nil, err
	}

	loc, err := timezone.Location(business.Timezone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimezone)
	}
	startAt, err := parseLocalStart(params.LocalStartAt, loc)
	if err != nil {
		return nil, err
	}

	durationMinutes := category.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = 30
	}
	endAt := startAt.Add(time.Duration(durationMinutes) * time.Minute)

	customer, err := appointment.NewCustomer(params.CustomerName, params.CustomerEmail, params.CustomerPhone)
	if err != nil {
		return nil, err
	}

	appt, err := c.bookWithRetry(ctx, business, category, startAt, endAt, customer)
	if err != nil {
		return nil, err
	}

	c.notifier.Enqueue(confirmationNotice(appt, business, category))

	return &BookingResult{Appointment: appt, Business: *business, Category: *category}, nil
}

// bookWithRetry runs the booking transaction, retrying once if the commit
// trips the per-business reference uniqueness index.
func (c *bookingCommandsImpl) bookWithRetry(
	ctx context.Context,
	business *shared.BusinessSnapshot,
	category *shared.CategorySnapshot,
	startAt, endAt time.Time,
	customer appointment.Customer,
) (*appointment.Appointment, error) {
	var appt *appointment.Appointment
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		appt, err = c.bookOnce(ctx, business, category, startAt, endAt, customer)
		if err == nil {
			return appt, nil
		}
		// The exclusion constraint catches overlap races the category-scoped
		// lock cannot see (same resource, different category).
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.ErrSlotTaken
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, err
		}
		slog.Warn("reference number collided at commit, retrying",
			"business_id", business.ID, "attempt", attempt+1)
	}
	return nil, errs.Mark(err, errs.ErrReferenceExhausted)
}

// bookOnce is the serialization point of the whole system: the resource and
// overlap locks taken here guarantee that two concurrent requests for the
// same window never select the same resource.
func (c *bookingCommandsImpl) bookOnce(
	ctx context.Context,
	business *shared.BusinessSnapshot,
	category *shared.CategorySnapshot,
	startAt, endAt time.Time,
	customer appointment.Customer,
) (*appointment.Appointment, error) {
	var appt *appointment.Appointment

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		resources, err := tx.Resources().LockByBusiness(ctx, business.ID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(resources) == 0 {
			return errs.ErrNoResourcesAvailable
		}

		overlapping, err := tx.Appointments().LockOverlappingBooked(ctx, business.ID, category.ID, startAt, endAt)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		chosen, ok := pickFreeResource(resources, overlapping)
		if !ok {
			return errs.ErrSlotTaken
		}

		cancelToken, err := reference.NewCancelToken()
		if err != nil {
			return err
		}
		referenceNumber, err := reference.NewNumber(ctx, business.Slug, c.clock.Now(), func(ctx context.Context, ref string) (bool, error) {
			return tx.Appointments().ReferenceExists(ctx, business.ID, ref)
		})
		if err != nil {
			return err
		}

		appt, err = appointment.NewAppointment(
			business.ID, category.ID, chosen.ID,
			startAt, endAt,
			customer,
			timezone.Normalize(business.Timezone),
			cancelToken, referenceNumber,
		)
		if err != nil {
			return err
		}

		return tx.Appointments().Create(ctx, appt)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// pickFreeResource selects the lowest-id resource not consumed by any locked
// overlapping appointment. The stable order keeps concurrent transactions
// contending on the same rows instead of interleaving.
func pickFreeResource(resources []shared.ResourceSnapshot, overlapping []*appointment.Appointment) (shared.ResourceSnapshot, bool) {
	taken := make(map[uuid.UUID]struct{}, len(overlapping))
	for _, appt := range overlapping {
		taken[appt.ResourceID()] = struct{}{}
	}

	sorted := make([]shared.ResourceSnapshot, len(resources))
	copy(sorted, resources)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	for _, res := range sorted {
		if _, used := taken[res.ID]; !used {
			return res, true
		}
	}
	return shared.ResourceSnapshot{}, false
}

func (c *bookingCommandsImpl) CancelByToken(ctx context.Context, cancelToken string) (*BookingResult, error) {
	var appt *appointment.Appointment

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Appointments().FindByTokenForUpdate(ctx, cancelToken)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrAppointmentNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := found.Cancel(); err != nil {
			return errs.ErrAlreadyCancelled
		}
		if err := tx.Appointments().UpdateStatus(ctx, found.ID(), found.Status()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		appt = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := c.hydrateResult(ctx, appt)
	if err != nil {
		return nil, err
	}

	c.notifier.Enqueue(cancellationNotice(appt, &result.Business, &result.Category))

	return result, nil
}

func (c *bookingCommandsImpl) CancelByID(ctx context.Context, businessID, appointmentID, ownerID uuid.UUID) (*BookingResult, error) {
	business, err := c.reads().BusinessByID(ctx, businessID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBusinessNotFound
		}
		return nil, err
	}
	if business.OwnerID != ownerID {
		return nil, errs.ErrNotOwner
	}

	var appt *appointment.Appointment
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Appointments().FindByIDForUpdate(ctx, businessID, appointmentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrAppointmentNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := found.Cancel(); err != nil {
			return errs.ErrAlreadyCancelled
		}
		if err := tx.Appointments().UpdateStatus(ctx, found.ID(), found.Status()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		appt = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := c.hydrateResult(ctx, appt)
	if err != nil {
		return nil, err
	}

	c.notifier.Enqueue(cancellationNotice(appt, &result.Business, &result.Category))

	return result, nil
}

func (c *bookingCommandsImpl) CompletePastAppointments(ctx context.Context) (int64, error) {
	var completed int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Appointments().CompletePastBooked(ctx, c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		completed = n
		return nil
	})
	return completed, err
}

func (c *bookingCommandsImpl) resolveTarget(ctx context.Context, businessRef string, categoryID uuid.UUID) (*shared.BusinessSnapshot, *shared.CategorySnapshot, error) {
	business, err := shared.ResolveBusiness(ctx, c.reads(), businessRef)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.ErrBusinessNotFound
		}
		return nil, nil, err
	}

	category, err := c.reads().CategoryByID(ctx, categoryID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.ErrCategoryNotFound
		}
		return nil, nil, err
	}

	return business, category, nil
}

// checkPlanAllowsBooking is the plan gate: the owner's plan must be active
// and, when capped, under its monthly booking count.
func (c *bookingCommandsImpl) checkPlanAllowsBooking(ctx context.Context, business *shared.BusinessSnapshot) error {
	plan, err := c.reads().PlanByOwner(ctx, business.OwnerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrOwnerHasNoPlan
		}
		return err
	}

	if plan.Status != "Active" {
		return errs.ErrPlanInactive
	}
	if plan.MaxBookingsPerMonth == nil {
		return nil
	}

	now := c.clock.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	count, err := c.reads().CountAppointmentsCreatedBetween(ctx, business.ID, monthStart, monthEnd)
	if err != nil {
		return err
	}
	if count >= *plan.MaxBookingsPerMonth {
		return errs.ErrPlanLimitReached
	}
	return nil
}

func (c *bookingCommandsImpl) hydrateResult(ctx context.Context, appt *appointment.Appointment) (*BookingResult, error) {
	business, err := c.reads().BusinessByID(ctx, appt.BusinessID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	category, err := c.reads().CategoryByID(ctx, appt.CategoryID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &BookingResult{Appointment: appt, Business: *business, Category: *category}, nil
}

func (c *bookingCommandsImpl) reads() shared.CommandReads {
	return c.uow.Reads()
}

func parseLocalStart(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range localStartLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.ErrInvalidStartTime
}

func confirmationNotice(appt *appointment.Appointment, business *shared.BusinessSnapshot, category *shared.CategorySnapshot) shared.Notification {
	return notice(shared.NotifyBookingConfirmed, appt, business, category)
}

func cancellationNotice(appt *appointment.Appointment, business *shared.BusinessSnapshot, category *shared.CategorySnapshot) shared.Notification {
	return notice(shared.NotifyBookingCancelled, appt, business, category)
}

func notice(kind shared.NotificationKind, appt *appointment.Appointment, business *shared.BusinessSnapshot, category *shared.CategorySnapshot) shared.Notification {
	return shared.Notification{
		Kind:            kind,
		RecipientEmail:  appt.Customer().Email(),
		RecipientName:   appt.Customer().Name(),
		BusinessName:    business.Name,
		CategoryName:    category.Name,
		StartAt:         appt.StartAt(),
		EndAt:           appt.EndAt(),
		Timezone:        appt.TimezoneAtBooking(),
		ReferenceNumber: appt.ReferenceNumber(),
		CancelToken:     appt.CancelToken(),
		AppointmentID:   appt.ID().String(),
	}
}
