package readstore

import (
	"context"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/schedule"
	"github.com/ExactwareSolution/booktimez-app/internal/infra/db"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/shared"

	"github.com/google/uuid"
)

// ScheduleReadStore feeds the slot expansion: rules, pool size and booked
// occupancy. All reads are plain snapshots without locks.
type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(dbtx db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx}
}

func (s *ScheduleReadStore) RulesFor(ctx context.Context, businessID, categoryID uuid.UUID) ([]shared.RuleSnapshot, error) {
	const query = `
		SELECT id, business_id, category_id, weekday,
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       slot_duration_minutes
		FROM availability_rules
		WHERE business_id = $1 AND category_id = $2
		ORDER BY weekday, start_time`

	rows, err := s.db.Query(ctx, query, businessID, categoryID)
	if err != nil {
		return nil, wrapPgErr("failed to load availability rules", err)
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

func (s *ScheduleReadStore) ResourceCount(ctx context.Context, businessID uuid.UUID) (int, error) {
	const query = `SELECT count(*) FROM resources WHERE business_id = $1`

	var count int
	if err := s.db.QueryRow(ctx, query, businessID).Scan(&count); err != nil {
		return 0, wrapPgErr("failed to count resources", err)
	}
	return count, nil
}

func (s *ScheduleReadStore) BookedBetween(ctx context.Context, businessID, categoryID uuid.UUID, from, to time.Time) ([]schedule.Booking, error) {
	const query = `
		SELECT resource_id, start_at
		FROM appointments
		WHERE business_id = $1
		  AND category_id = $2
		  AND status = 'booked'
		  AND start_at >= $3
		  AND start_at < $4`

	rows, err := s.db.Query(ctx, query, businessID, categoryID, from, to)
	if err != nil {
		return nil, wrapPgErr("failed to load booked occupancy", err)
	}
	defer rows.Close()

	var out []schedule.Booking
	for rows.Next() {
		var booking schedule.Booking
		if err := rows.Scan(&booking.ResourceID, &booking.StartAt); err != nil {
			return nil, wrapPgErr("failed to scan booking row", err)
		}
		booking.StartAt = booking.StartAt.UTC()
		out = append(out, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read booking rows", err)
	}
	return out, nil
}
