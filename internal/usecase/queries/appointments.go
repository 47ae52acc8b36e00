package queries

import (
	"context"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/infra"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
)

// AppointmentView is the denormalized read model exposed on lookup paths.
type AppointmentView struct {
	ID                uuid.UUID
	Business          BusinessRef
	Category          CategoryRef
	ResourceID        uuid.UUID
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	StartAt           time.Time // UTC
	EndAt             time.Time // UTC
	Timezone          string
	Status            string
	ReferenceNumber   string
	CreatedAt         time.Time
}

type BusinessRef struct {
	ID   uuid.UUID
	Name string
	Slug string
}

type CategoryRef struct {
	ID              uuid.UUID
	Name            string
	DurationMinutes int
}

type AppointmentReadStore interface {
	ViewByToken(ctx context.Context, cancelToken string) (*AppointmentView, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]AppointmentView, error)
}

type AppointmentQueries interface {
	// LookupByToken resolves an appointment by its bearer cancel token; the
	// token alone authorizes the read.
	LookupByToken(ctx context.Context, cancelToken string) (*AppointmentView, error)
	// ListForBusiness returns the owner-facing ledger, newest start first.
	ListForBusiness(ctx context.Context, businessID, ownerID uuid.UUID) ([]AppointmentView, error)
}

type appointmentQueriesImpl struct {
	reads shared.CommandReads
	store AppointmentReadStore
}

func NewAppointmentQueries(reads shared.CommandReads, store AppointmentReadStore) AppointmentQueries {
	return &appointmentQueriesImpl{reads: reads, store: store}
}

func (q *appointmentQueriesImpl) LookupByToken(ctx context.Context, cancelToken string) (*AppointmentView, error) {
	view, err := q.store.ViewByToken(ctx, cancelToken)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrAppointmentNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *appointmentQueriesImpl) ListForBusiness(ctx context.Context, businessID, ownerID uuid.UUID) ([]AppointmentView, error) {
	business, err := q.reads.BusinessByID(ctx, businessID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBusinessNotFound
		}
		return nil, err
	}
	if business.OwnerID != ownerID {
		return nil, errs.ErrNotOwner
	}

	return q.store.ListByBusiness(ctx, businessID)
}
