package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Business / category errors
	ErrBusinessNotFound = errors.New("business not found")
	ErrCategoryNotFound = errors.New("category not found")

	// Booking errors
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrNoResourcesAvailable  = errors.New("no resources available")
	ErrSlotTaken             = errors.New("slot taken")
	ErrReferenceExhausted    = errors.New("reference number generation exhausted")
	ErrAlreadyCancelled      = errors.New("appointment already cancelled")
	ErrInvalidStartTime      = errors.New("invalid start time")
	ErrInvalidDateRange      = errors.New("invalid date range")
	ErrInvalidTimezone       = errors.New("invalid timezone")

	// Plan gate errors
	ErrPlanInactive     = errors.New("plan inactive")
	ErrPlanLimitReached = errors.New("booking limit reached")
	ErrOwnerHasNoPlan   = errors.New("business owner has no plan")

	// Availability rule errors
	ErrRuleNotFound    = errors.New("availability rule not found")
	ErrInvalidWeekday  = errors.New("weekday must be between 0 and 6")
	ErrInvalidWindow   = errors.New("start time must be before end time")
	ErrInvalidTimeOfDay = errors.New("time must be in HH:MM format")

	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotOwner           = errors.New("caller does not own this business")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
