package repository

import (
	"context"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/appointment"
	"github.com/ExactwareSolution/booktimez-app/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const appointmentColumns = `
	id, business_id, category_id, resource_id,
	start_at, end_at, status,
	customer_name, customer_email, customer_phone,
	timezone_at_booking, cancel_token, reference_number, created_at`

type AppointmentRepository struct {
	db db.DBTX
}

func NewAppointmentRepository(dbtx db.DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: dbtx}
}

func (r *AppointmentRepository) Create(ctx context.Context, appt *appointment.Appointment) error {
	const query = `
		INSERT INTO appointments (
			id, business_id, category_id, resource_id,
			start_at, end_at, status,
			customer_name, customer_email, customer_phone,
			timezone_at_booking, cancel_token, reference_number
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	customer := appt.Customer()
	_, err := r.db.Exec(ctx, query,
		appt.ID(), appt.BusinessID(), appt.CategoryID(), appt.ResourceID(),
		appt.StartAt(), appt.EndAt(), string(appt.Status()),
		customer.Name(), customer.Email(), customer.Phone(),
		appt.TimezoneAtBooking(), appt.CancelToken(), appt.ReferenceNumber(),
	)
	if err != nil {
		return wrapPgErr("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) LockOverlappingBooked(ctx context.Context, businessID, categoryID uuid.UUID, start, end time.Time) ([]*appointment.Appointment, error) {
	const query = `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE business_id = $1
		  AND category_id = $2
		  AND status = 'booked'
		  AND start_at < $4
		  AND end_at > $3
		ORDER BY id
		FOR UPDATE`

	rows, err := r.db.Query(ctx, query, businessID, categoryID, start, end)
	if err != nil {
		return nil, wrapPgErr("failed to lock overlapping appointments", err)
	}
	defer rows.Close()

	var out []*appointment.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan appointment row", err)
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read appointment rows", err)
	}
	return out, nil
}

func (r *AppointmentRepository) FindByTokenForUpdate(ctx context.Context, cancelToken string) (*appointment.Appointment, error) {
	const query = `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE cancel_token = $1
		FOR UPDATE`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, cancelToken))
	if err != nil {
		return nil, wrapPgErr("failed to find appointment by token", err)
	}
	return appt, nil
}

func (r *AppointmentRepository) FindByIDForUpdate(ctx context.Context, businessID, id uuid.UUID) (*appointment.Appointment, error) {
	const query = `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE business_id = $1 AND id = $2
		FOR UPDATE`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, businessID, id))
	if err != nil {
		return nil, wrapPgErr("failed to find appointment by id", err)
	}
	return appt, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status appointment.Status) error {
	const query = `UPDATE appointments SET status = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, string(status))
	if err != nil {
		return wrapPgErr("failed to update appointment status", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("appointment not found for status update", pgx.ErrNoRows)
	}
	return nil
}

func (r *AppointmentRepository) ReferenceExists(ctx context.Context, businessID uuid.UUID, referenceNumber string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE business_id = $1 AND reference_number = $2
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, businessID, referenceNumber).Scan(&exists); err != nil {
		return false, wrapPgErr("failed to check reference number", err)
	}
	return exists, nil
}

func (r *AppointmentRepository) CompletePastBooked(ctx context.Context, now time.Time) (int64, error) {
	const query = `
		UPDATE appointments
		SET status = 'completed'
		WHERE status = 'booked' AND end_at <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, wrapPgErr("failed to complete past appointments", err)
	}
	return tag.RowsAffected(), nil
}

func scanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var (
		id, businessID, categoryID, resourceID uuid.UUID
		startAt, endAt, createdAt              time.Time
		status, name, email, phone             string
		tz, cancelToken, referenceNumber       string
	)

	err := row.Scan(
		&id, &businessID, &categoryID, &resourceID,
		&startAt, &endAt, &status,
		&name, &email, &phone,
		&tz, &cancelToken, &referenceNumber, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	customer := appointment.ReconstructCustomer(name, email, phone)
	return appointment.ReconstructAppointment(
		id, businessID, categoryID, resourceID,
		startAt.UTC(), endAt.UTC(),
		appointment.Status(status), customer,
		tz, cancelToken, referenceNumber, createdAt,
	), nil
}
