package shared

import "time"

type NotificationKind string

const (
	NotifyBookingConfirmed NotificationKind = "booking_confirmed"
	NotifyBookingCancelled NotificationKind = "booking_cancelled"
)

// Notification is the one-way message handed to the dispatch worker after a
// booking transaction commits. Submission always succeeds synchronously;
// delivery is best-effort and never observed by the booking flow.
type Notification struct {
	Kind            NotificationKind
	RecipientEmail  string
	RecipientName   string
	BusinessName    string
	CategoryName    string
	StartAt         time.Time // UTC
	EndAt           time.Time // UTC
	Timezone        string
	ReferenceNumber string
	CancelToken     string
	AppointmentID   string
}

type Notifier interface {
	Enqueue(n Notification)
}
