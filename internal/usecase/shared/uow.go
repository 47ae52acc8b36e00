package shared

import (
	"context"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/appointment"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"

	"github.com/google/uuid"
)

// UnitOfWork scopes the booking engine's read-modify-write cycles to one
// transaction. Row locks taken inside Within are held until commit or
// rollback on every exit path.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures and deadlocks
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: direct access to command reads outside any transaction
	Reads() CommandReads
}

type Tx interface {
	Appointments() AppointmentRepository
	Resources() ResourceRepository
	Reads() CommandReads
}

type CommandReads interface {
	BusinessByID(ctx context.Context, id uuid.UUID) (*BusinessSnapshot, error)
	BusinessBySlug(ctx context.Context, slug string) (*BusinessSnapshot, error)
	CategoryByID(ctx context.Context, id uuid.UUID) (*CategorySnapshot, error)
	PlanByOwner(ctx context.Context, ownerID uuid.UUID) (*PlanSnapshot, error)
	CountAppointmentsCreatedBetween(ctx context.Context, businessID uuid.UUID, from, to time.Time) (int, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *appointment.Appointment) error
	// LockOverlappingBooked takes FOR UPDATE locks on every booked
	// appointment of (businessID, categoryID) whose interval overlaps
	// [start, end).
	LockOverlappingBooked(ctx context.Context, businessID, categoryID uuid.UUID, start, end time.Time) ([]*appointment.Appointment, error)
	FindByTokenForUpdate(ctx context.Context, cancelToken string) (*appointment.Appointment, error)
	FindByIDForUpdate(ctx context.Context, businessID, id uuid.UUID) (*appointment.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status appointment.Status) error
	ReferenceExists(ctx context.Context, businessID uuid.UUID, referenceNumber string) (bool, error)
	// CompletePastBooked flips booked appointments whose end passed to
	// completed and returns how many rows changed.
	CompletePastBooked(ctx context.Context, now time.Time) (int64, error)
}

type ResourceRepository interface {
	// LockByBusiness takes FOR UPDATE locks on the business's resources,
	// ordered by id so concurrent bookings cannot deadlock on each other.
	LockByBusiness(ctx context.Context, businessID uuid.UUID) ([]ResourceSnapshot, error)
}

// ResolveBusiness looks a business up by id when ref parses as a UUID,
// otherwise by slug.
func ResolveBusiness(ctx context.Context, reads CommandReads, ref string) (*BusinessSnapshot, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return reads.BusinessByID(ctx, id)
	}
	biz, err := reads.BusinessBySlug(ctx, ref)
	if err != nil {
		return nil, errs.Wrap(err, "failed to resolve business by slug")
	}
	return biz, nil
}
