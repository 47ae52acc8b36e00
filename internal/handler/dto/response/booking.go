package response

import (
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/pkg/timezone"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/commands"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/queries"

	"github.com/google/uuid"
)

const localTimeLayout = "2006-01-02T15:04"

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	BusinessID      uuid.UUID `json:"businessId"`
	BusinessName    string    `json:"businessName"`
	CategoryID      uuid.UUID `json:"categoryId"`
	CategoryName    string    `json:"categoryName"`
	ResourceID      uuid.UUID `json:"resourceId"`
	CustomerName    string    `json:"customerName"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	LocalStartAt    string    `json:"localStartAt"`
	Timezone        string    `json:"timezone"`
	Status          string    `json:"status"`
	ReferenceNumber string    `json:"referenceNumber"`
	CancelToken     string    `json:"cancelToken,omitempty"`
}

// FromBookingResult renders a freshly committed booking. The cancel token is
// included only here; lookups never return it back.
func FromBookingResult(result *commands.BookingResult, includeToken bool) *BookingResponse {
	appt := result.Appointment
	resp := &BookingResponse{
		ID:              appt.ID(),
		BusinessID:      result.Business.ID,
		BusinessName:    result.Business.Name,
		CategoryID:      result.Category.ID,
		CategoryName:    result.Category.Name,
		ResourceID:      appt.ResourceID(),
		CustomerName:    appt.Customer().Name(),
		StartAt:         appt.StartAt(),
		EndAt:           appt.EndAt(),
		LocalStartAt:    localLabel(appt.StartAt(), appt.TimezoneAtBooking()),
		Timezone:        appt.TimezoneAtBooking(),
		Status:          appt.Status().String(),
		ReferenceNumber: appt.ReferenceNumber(),
	}
	if includeToken {
		resp.CancelToken = appt.CancelToken()
	}
	return resp
}

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	BusinessID      uuid.UUID `json:"businessId"`
	BusinessName    string    `json:"businessName"`
	BusinessSlug    string    `json:"businessSlug"`
	CategoryID      uuid.UUID `json:"categoryId"`
	CategoryName    string    `json:"categoryName"`
	ResourceID      uuid.UUID `json:"resourceId"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail,omitempty"`
	CustomerPhone   string    `json:"customerPhone,omitempty"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	LocalStartAt    string    `json:"localStartAt"`
	Timezone        string    `json:"timezone"`
	Status          string    `json:"status"`
	ReferenceNumber string    `json:"referenceNumber"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromAppointmentView(view *queries.AppointmentView) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              view.ID,
		BusinessID:      view.Business.ID,
		BusinessName:    view.Business.Name,
		BusinessSlug:    view.Business.Slug,
		CategoryID:      view.Category.ID,
		CategoryName:    view.Category.Name,
		ResourceID:      view.ResourceID,
		CustomerName:    view.CustomerName,
		CustomerEmail:   view.CustomerEmail,
		CustomerPhone:   view.CustomerPhone,
		StartAt:         view.StartAt,
		EndAt:           view.EndAt,
		LocalStartAt:    localLabel(view.StartAt, view.Timezone),
		Timezone:        view.Timezone,
		Status:          view.Status,
		ReferenceNumber: view.ReferenceNumber,
		CreatedAt:       view.CreatedAt,
	}
}

func FromAppointmentViews(views []queries.AppointmentView) []*AppointmentResponse {
	out := make([]*AppointmentResponse, len(views))
	for i := range views {
		out[i] = FromAppointmentView(&views[i])
	}
	return out
}

func localLabel(t time.Time, tz string) string {
	loc, err := timezone.Location(tz)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format(localTimeLayout)
}
