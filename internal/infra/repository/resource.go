package repository

import (
	"context"

	"github.com/ExactwareSolution/booktimez-app/internal/infra/db"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ResourceRepository struct {
	db db.DBTX
}

func NewResourceRepository(dbtx db.DBTX) *ResourceRepository {
	return &ResourceRepository{db: dbtx}
}

// LockByBusiness orders by id so concurrent bookings acquire resource locks
// in the same sequence.
func (r *ResourceRepository) LockByBusiness(ctx context.Context, businessID uuid.UUID) ([]shared.ResourceSnapshot, error) {
	const query = `
		SELECT id, business_id, name, type, created_at
		FROM resources
		WHERE business_id = $1
		ORDER BY id
		FOR UPDATE`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, wrapPgErr("failed to lock resources", err)
	}
	defer rows.Close()

	return collectResources(rows)
}

func (r *ResourceRepository) Create(ctx context.Context, businessID uuid.UUID, name, resourceType string) (*shared.ResourceSnapshot, error) {
	const query = `
		INSERT INTO resources (id, business_id, name, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, business_id, name, type, created_at`

	snapshot, err := scanResource(r.db.QueryRow(ctx, query, uuid.New(), businessID, name, resourceType))
	if err != nil {
		return nil, wrapPgErr("failed to create resource", err)
	}
	return snapshot, nil
}

func (r *ResourceRepository) Update(ctx context.Context, businessID, resourceID uuid.UUID, name, resourceType string) (*shared.ResourceSnapshot, error) {
	const query = `
		UPDATE resources
		SET name = $3, type = $4
		WHERE business_id = $1 AND id = $2
		RETURNING id, business_id, name, type, created_at`

	snapshot, err := scanResource(r.db.QueryRow(ctx, query, businessID, resourceID, name, resourceType))
	if err != nil {
		return nil, wrapPgErr("failed to update resource", err)
	}
	return snapshot, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, businessID, resourceID uuid.UUID) error {
	const query = `DELETE FROM resources WHERE business_id = $1 AND id = $2`

	tag, err := r.db.Exec(ctx, query, businessID, resourceID)
	if err != nil {
		return wrapPgErr("failed to delete resource", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("resource not found", pgx.ErrNoRows)
	}
	return nil
}

func (r *ResourceRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]shared.ResourceSnapshot, error) {
	const query = `
		SELECT id, business_id, name, type, created_at
		FROM resources
		WHERE business_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, wrapPgErr("failed to list resources", err)
	}
	defer rows.Close()

	return collectResources(rows)
}

func collectResources(rows pgx.Rows) ([]shared.ResourceSnapshot, error) {
	var out []shared.ResourceSnapshot
	for rows.Next() {
		snapshot, err := scanResource(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan resource row", err)
		}
		out = append(out, *snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read resource rows", err)
	}
	return out, nil
}

func scanResource(row pgx.Row) (*shared.ResourceSnapshot, error) {
	var snapshot shared.ResourceSnapshot
	err := row.Scan(&snapshot.ID, &snapshot.BusinessID, &snapshot.Name, &snapshot.Type, &snapshot.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
