package api

import (
	"errors"
	"net/http"

	resdto "github.com/ExactwareSolution/booktimez-app/internal/handler/dto/response"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/commands"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppointmentHandler is the owner-facing appointment ledger.
type AppointmentHandler struct {
	appointments queries.AppointmentQueries
	booking      commands.BookingCommands
}

func NewAppointmentHandler(appointments queries.AppointmentQueries, booking commands.BookingCommands) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		booking:      booking,
	}
}

// @Summary List appointments
// @Description Full appointment history for the business, newest start first
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /businesses/{businessId}/appointments [get]
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	views, err := h.appointments.ListForBusiness(c.Request.Context(), businessID, ownerID)
	if err != nil {
		abortOwnerErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentViews(views))
}

// @Summary Cancel appointment
// @Description Owner-initiated cancellation
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /businesses/{businessId}/appointments/{id}/cancel [post]
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}

	result, err := h.booking.CancelByID(c.Request.Context(), businessID, appointmentID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		case errors.Is(err, errs.ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "Appointment is already cancelled"})
		default:
			abortOwnerErr(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingResult(result, false))
}
