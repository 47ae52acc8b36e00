package repository

import (
	"context"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/schedule"
	"github.com/ExactwareSolution/booktimez-app/internal/infra/db"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const ruleColumns = `
	id, business_id, category_id, weekday,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	slot_duration_minutes`

type RuleRepository struct {
	db db.DBTX
}

func NewRuleRepository(dbtx db.DBTX) *RuleRepository {
	return &RuleRepository{db: dbtx}
}

func (r *RuleRepository) Create(ctx context.Context, rule *schedule.Rule) error {
	const query = `
		INSERT INTO availability_rules (
			id, business_id, category_id, weekday,
			start_time, end_time, slot_duration_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var duration *int
	if d := rule.SlotDurationMinutes(); d > 0 {
		duration = &d
	}

	_, err := r.db.Exec(ctx, query,
		rule.ID(), rule.BusinessID(), rule.CategoryID(), rule.Weekday(),
		rule.StartTime().String(), rule.EndTime().String(), duration,
	)
	if err != nil {
		return wrapPgErr("failed to create availability rule", err)
	}
	return nil
}

func (r *RuleRepository) ListByBusinessCategory(ctx context.Context, businessID uuid.UUID, categoryID *uuid.UUID) ([]shared.RuleSnapshot, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM availability_rules
		WHERE business_id = $1
		ORDER BY weekday, start_time`
	args := []any{businessID}

	if categoryID != nil {
		query = `
			SELECT ` + ruleColumns + `
			FROM availability_rules
			WHERE business_id = $1 AND category_id = $2
			ORDER BY weekday, start_time`
		args = append(args, *categoryID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPgErr("failed to list availability rules", err)
	}
	defer rows.Close()

	var out []shared.RuleSnapshot
	for rows.Next() {
		var snapshot shared.RuleSnapshot
		err := rows.Scan(
			&snapshot.ID, &snapshot.BusinessID, &snapshot.CategoryID, &snapshot.Weekday,
			&snapshot.StartTime, &snapshot.EndTime, &snapshot.SlotDurationMinutes,
		)
		if err != nil {
			return nil, wrapPgErr("failed to scan rule row", err)
		}
		out = append(out, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read rule rows", err)
	}
	return out, nil
}

func (r *RuleRepository) Delete(ctx context.Context, businessID, ruleID uuid.UUID) error {
	const query = `DELETE FROM availability_rules WHERE business_id = $1 AND id = $2`

	tag, err := r.db.Exec(ctx, query, businessID, ruleID)
	if err != nil {
		return wrapPgErr("failed to delete availability rule", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("availability rule not found", pgx.ErrNoRows)
	}
	return nil
}

// CategoryBelongsToBusiness satisfies the membership check rules are created
// against.
func (r *RuleRepository) CategoryBelongsToBusiness(ctx context.Context, businessID, categoryID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE business_id = $1 AND id = $2
		)`

	var ok bool
	if err := r.db.QueryRow(ctx, query, businessID, categoryID).Scan(&ok); err != nil {
		return false, wrapPgErr("failed to check category membership", err)
	}
	return ok, nil
}
