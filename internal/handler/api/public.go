package api

import (
	"errors"
	"net/http"

	"github.com/ExactwareSolution/booktimez-app/internal/domain/appointment"
	reqdto "github.com/ExactwareSolution/booktimez-app/internal/handler/dto/request"
	resdto "github.com/ExactwareSolution/booktimez-app/internal/handler/dto/response"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/commands"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PublicHandler serves the unauthenticated booking surface. A business is
// addressed by slug or id; an appointment by its bearer cancel token.
type PublicHandler struct {
	business queries.BusinessQueries
	slots    queries.SlotQueries
	lookup   queries.AppointmentQueries
	booking  commands.BookingCommands
}

func NewPublicHandler(
	business queries.BusinessQueries,
	slots queries.SlotQueries,
	lookup queries.AppointmentQueries,
	booking commands.BookingCommands,
) *PublicHandler {
	return &PublicHandler{
		business: business,
		slots:    slots,
		lookup:   lookup,
		booking:  booking,
	}
}

// @Summary Get business profile
// @Description Get a business with its bookable categories, by slug or id
// @Tags public
// @Produce json
// @Param ref path string true "Business slug or UUID"
// @Success 200 {object} resdto.BusinessResponse
// @Failure 404 {object} map[string]string
// @Router /public/businesses/{ref}/categories [get]
func (h *PublicHandler) GetBusiness(c *gin.Context) {
	business, categories, err := h.business.PublicProfile(c.Request.Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, errs.ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBusinessProfile(business, categories))
}

// @Summary List bookable slots
// @Description Expand availability rules over a local date range and overlay live occupancy
// @Tags public
// @Produce json
// @Param ref path string true "Business slug or UUID"
// @Param categoryId path string true "Category ID"
// @Param start query string true "Start date (YYYY-MM-DD, business-local)"
// @Param end query string true "End date (YYYY-MM-DD, business-local, inclusive)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /public/businesses/{ref}/categories/{categoryId}/slots [get]
func (h *PublicHandler) ListSlots(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	slots, err := h.slots.ListSlots(c.Request.Context(),
		c.Param("ref"), categoryID, c.Query("start"), c.Query("end"))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBusinessNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		case errors.Is(err, errs.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		case errors.Is(err, errs.ErrInvalidTimezone):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Business timezone misconfigured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlots(slots))
}

// @Summary Book an appointment
// @Description Atomically claim a resource for the requested window
// @Tags public
// @Accept json
// @Produce json
// @Param ref path string true "Business slug or UUID"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /public/businesses/{ref}/appointments [post]
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.booking.Book(c.Request.Context(), commands.BookParams{
		BusinessRef:   c.Param("ref"),
		CategoryID:    req.CategoryID,
		LocalStartAt:  req.LocalStartAt,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBusinessNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		case errors.Is(err, errs.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		case errors.Is(err, errs.ErrSlotTaken), errors.Is(err, errs.ErrNoResourcesAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Slot is no longer available"})
		case errors.Is(err, errs.ErrPlanInactive),
			errors.Is(err, errs.ErrPlanLimitReached),
			errors.Is(err, errs.ErrOwnerHasNoPlan):
			c.JSON(http.StatusForbidden, gin.H{"error": "Business is not accepting bookings"})
		case errors.Is(err, errs.ErrInvalidStartTime):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time"})
		case errors.Is(err, appointment.ErrCustomerNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingResult(result, true))
}

// @Summary Look up an appointment
// @Description Resolve an appointment by its cancel token
// @Tags public
// @Produce json
// @Param cancelToken path string true "Cancel token"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 404 {object} map[string]string
// @Router /public/appointments/{cancelToken} [get]
func (h *PublicHandler) GetAppointment(c *gin.Context) {
	view, err := h.lookup.LookupByToken(c.Request.Context(), c.Param("cancelToken"))
	if err != nil {
		if errors.Is(err, errs.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Cancel an appointment
// @Description Cancel by bearer token; already-cancelled appointments conflict
// @Tags public
// @Produce json
// @Param cancelToken path string true "Cancel token"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /public/appointments/{cancelToken}/cancel [post]
func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	result, err := h.booking.CancelByToken(c.Request.Context(), c.Param("cancelToken"))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		case errors.Is(err, errs.ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "Appointment is already cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingResult(result, false))
}
