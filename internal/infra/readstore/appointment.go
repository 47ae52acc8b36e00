package readstore

import (
	"context"

	"github.com/ExactwareSolution/booktimez-app/internal/infra/db"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AppointmentReadStore struct {
	db db.DBTX
}

func NewAppointmentReadStore(dbtx db.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{db: dbtx}
}

const appointmentViewQuery = `
	SELECT a.id,
	       b.id, b.name, b.slug,
	       c.id, c.name, c.duration_minutes,
	       a.resource_id,
	       a.customer_name, a.customer_email, a.customer_phone,
	       a.start_at, a.end_at, a.timezone_at_booking,
	       a.status, a.reference_number, a.created_at
	FROM appointments a
	JOIN businesses b ON b.id = a.business_id
	JOIN categories c ON c.id = a.category_id`

func (s *AppointmentReadStore) ViewByToken(ctx context.Context, cancelToken string) (*queries.AppointmentView, error) {
	query := appointmentViewQuery + ` WHERE a.cancel_token = $1`

	view, err := scanAppointmentView(s.db.QueryRow(ctx, query, cancelToken))
	if err != nil {
		return nil, wrapPgErr("appointment not found by token", err)
	}
	return view, nil
}

func (s *AppointmentReadStore) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]queries.AppointmentView, error) {
	query := appointmentViewQuery + ` WHERE a.business_id = $1 ORDER BY a.start_at DESC`

	rows, err := s.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, wrapPgErr("failed to list appointments", err)
	}
	defer rows.Close()

	out := []queries.AppointmentView{}
	for rows.Next() {
		view, err := scanAppointmentView(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan appointment row", err)
		}
		out = append(out, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read appointment rows", err)
	}
	return out, nil
}

func scanAppointmentView(row pgx.Row) (*queries.AppointmentView, error) {
	var view queries.AppointmentView
	err := row.Scan(
		&view.ID,
		&view.Business.ID, &view.Business.Name, &view.Business.Slug,
		&view.Category.ID, &view.Category.Name, &view.Category.DurationMinutes,
		&view.ResourceID,
		&view.CustomerName, &view.CustomerEmail, &view.CustomerPhone,
		&view.StartAt, &view.EndAt, &view.Timezone,
		&view.Status, &view.ReferenceNumber, &view.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.StartAt = view.StartAt.UTC()
	view.EndAt = view.EndAt.UTC()
	return &view, nil
}
