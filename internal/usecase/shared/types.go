package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side reads; the full views live in the
// query layer.

type BusinessSnapshot struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Name     string
	Slug     string
	Timezone string
}

type CategorySnapshot struct {
	ID              uuid.UUID
	Name            string
	DurationMinutes int
}

type PlanSnapshot struct {
	ID                  uuid.UUID
	Code                string
	Name                string
	Status              string
	MaxBookingsPerMonth *int // nil = unlimited
}

type ResourceSnapshot struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Type       string
	CreatedAt  time.Time
}

type RuleSnapshot struct {
	ID                  uuid.UUID
	BusinessID          uuid.UUID
	CategoryID          uuid.UUID
	Weekday             int
	StartTime           string
	EndTime             string
	SlotDurationMinutes *int
}
