package readstore

import (
	"context"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/infra/db"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
)

// BusinessReadStore serves command-side snapshots and the public category
// listing.
type BusinessReadStore struct {
	db db.DBTX
}

func NewBusinessReadStore(dbtx db.DBTX) *BusinessReadStore {
	return &BusinessReadStore{db: dbtx}
}

const businessColumns = `id, owner_id, name, slug, timezone`

func (s *BusinessReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.BusinessSnapshot, error) {
	const query = `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`

	var biz shared.BusinessSnapshot
	err := s.db.QueryRow(ctx, query, id).Scan(&biz.ID, &biz.OwnerID, &biz.Name, &biz.Slug, &biz.Timezone)
	if err != nil {
		return nil, wrapPgErr("business not found by id", err)
	}
	return &biz, nil
}

func (s *BusinessReadStore) FindBySlug(ctx context.Context, slug string) (*shared.BusinessSnapshot, error) {
	const query = `SELECT ` + businessColumns + ` FROM businesses WHERE slug = $1`

	var biz shared.BusinessSnapshot
	err := s.db.QueryRow(ctx, query, slug).Scan(&biz.ID, &biz.OwnerID, &biz.Name, &biz.Slug, &biz.Timezone)
	if err != nil {
		return nil, wrapPgErr("business not found by slug", err)
	}
	return &biz, nil
}

func (s *BusinessReadStore) FindCategory(ctx context.Context, id uuid.UUID) (*shared.CategorySnapshot, error) {
	const query = `SELECT id, name, duration_minutes FROM categories WHERE id = $1`

	var cat shared.CategorySnapshot
	err := s.db.QueryRow(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.DurationMinutes)
	if err != nil {
		return nil, wrapPgErr("category not found", err)
	}
	return &cat, nil
}

func (s *BusinessReadStore) ListCategories(ctx context.Context, businessID uuid.UUID) ([]shared.CategorySnapshot, error) {
	const query = `
		SELECT id, name, duration_minutes
		FROM categories
		WHERE business_id = $1
		ORDER BY name`

	rows, err := s.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, wrapPgErr("failed to list categories", err)
	}
	defer rows.Close()

	out := []shared.CategorySnapshot{}
	for rows.Next() {
		var cat shared.CategorySnapshot
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.DurationMinutes); err != nil {
			return nil, wrapPgErr("failed to scan category row", err)
		}
		out = append(out, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read category rows", err)
	}
	return out, nil
}

func (s *BusinessReadStore) PlanByOwner(ctx context.Context, ownerID uuid.UUID) (*shared.PlanSnapshot, error) {
	const query = `
		SELECT p.id, p.code, p.name, sub.status, p.max_bookings_per_month
		FROM subscriptions sub
		JOIN plans p ON p.id = sub.plan_id
		WHERE sub.owner_id = $1`

	var plan shared.PlanSnapshot
	err := s.db.QueryRow(ctx, query, ownerID).Scan(
		&plan.ID, &plan.Code, &plan.Name, &plan.Status, &plan.MaxBookingsPerMonth,
	)
	if err != nil {
		return nil, wrapPgErr("plan not found for owner", err)
	}
	return &plan, nil
}

func (s *BusinessReadStore) CountAppointmentsCreatedBetween(ctx context.Context, businessID uuid.UUID, from, to time.Time) (int, error) {
	const query = `
		SELECT count(*)
		FROM appointments
		WHERE business_id = $1 AND created_at >= $2 AND created_at < $3`

	var count int
	if err := s.db.QueryRow(ctx, query, businessID, from, to).Scan(&count); err != nil {
		return 0, wrapPgErr("failed to count created appointments", err)
	}
	return count, nil
}
