package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrNotBooked        = errors.New("appointment is not booked")
	ErrInvalidInterval  = errors.New("start must be before end")
)

// Appointment is the persisted booking ledger entry. It consumes exactly one
// resource for one [startAt, endAt) interval and only ever mutates by
// flipping status; rows are never deleted.
type Appointment struct {
	id                uuid.UUID
	businessID        uuid.UUID
	categoryID        uuid.UUID
	resourceID        uuid.UUID
	startAt           time.Time // UTC
	endAt             time.Time // UTC
	status            Status
	customer          Customer
	timezoneAtBooking string
	cancelToken       string
	referenceNumber   string
	createdAt         time.Time
}

func NewAppointment(
	businessID, categoryID, resourceID uuid.UUID,
	startAt, endAt time.Time,
	customer Customer,
	timezoneAtBooking, cancelToken, referenceNumber string,
) (*Appointment, error) {
	if !startAt.Before(endAt) {
		return nil, ErrInvalidInterval
	}

	return &Appointment{
		id:                uuid.New(),
		businessID:        businessID,
		categoryID:        categoryID,
		resourceID:        resourceID,
		startAt:           startAt.UTC(),
		endAt:             endAt.UTC(),
		status:            StatusBooked,
		customer:          customer,
		timezoneAtBooking: timezoneAtBooking,
		cancelToken:       cancelToken,
		referenceNumber:   referenceNumber,
	}, nil
}

func ReconstructAppointment(
	id, businessID, categoryID, resourceID uuid.UUID,
	startAt, endAt time.Time,
	status Status,
	customer Customer,
	timezoneAtBooking, cancelToken, referenceNumber string,
	createdAt time.Time,
) *Appointment {
	return &Appointment{
		id:                id,
		businessID:        businessID,
		categoryID:        categoryID,
		resourceID:        resourceID,
		startAt:           startAt,
		endAt:             endAt,
		status:            status,
		customer:          customer,
		timezoneAtBooking: timezoneAtBooking,
		cancelToken:       cancelToken,
		referenceNumber:   referenceNumber,
		createdAt:         createdAt,
	}
}

// Cancel flips the status to cancelled. The vacated interval becomes
// bookable again purely through the overlap check on new bookings.
func (a *Appointment) Cancel() error {
	if a.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	a.status = StatusCancelled
	return nil
}

// Complete marks a past booked appointment as fulfilled.
func (a *Appointment) Complete() error {
	if a.status != StatusBooked {
		return ErrNotBooked
	}
	a.status = StatusCompleted
	return nil
}

func (a *Appointment) IsBooked() bool {
	return a.status == StatusBooked
}

func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.startAt.Before(end) && a.endAt.After(start)
}

func (a *Appointment) ID() uuid.UUID            { return a.id }
func (a *Appointment) BusinessID() uuid.UUID    { return a.businessID }
func (a *Appointment) CategoryID() uuid.UUID    { return a.categoryID }
func (a *Appointment) ResourceID() uuid.UUID    { return a.resourceID }
func (a *Appointment) StartAt() time.Time       { return a.startAt }
func (a *Appointment) EndAt() time.Time         { return a.endAt }
func (a *Appointment) Status() Status           { return a.status }
func (a *Appointment) Customer() Customer       { return a.customer }
func (a *Appointment) TimezoneAtBooking() string { return a.timezoneAtBooking }
func (a *Appointment) CancelToken() string      { return a.cancelToken }
func (a *Appointment) ReferenceNumber() string  { return a.referenceNumber }
func (a *Appointment) CreatedAt() time.Time     { return a.createdAt }
