package api

import (
	"errors"
	"net/http"

	reqdto "github.com/ExactwareSolution/booktimez-app/internal/handler/dto/request"
	resdto "github.com/ExactwareSolution/booktimez-app/internal/handler/dto/response"
	"github.com/ExactwareSolution/booktimez-app/internal/handler/middleware"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ScheduleHandler manages availability rules on the owner surface.
type ScheduleHandler struct {
	schedule commands.ScheduleCommands
}

func NewScheduleHandler(schedule commands.ScheduleCommands) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// @Summary Create availability rule
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param request body reqdto.CreateRuleRequest true "Rule"
// @Success 201 {object} resdto.RuleResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /businesses/{businessId}/availabilities [post]
func (h *ScheduleHandler) CreateRule(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	var req reqdto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rule, err := h.schedule.CreateRule(c.Request.Context(), ownerID, commands.CreateRuleParams{
		BusinessID:          businessID,
		CategoryID:          req.CategoryID,
		Weekday:             req.Weekday,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBusinessNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		case errors.Is(err, errs.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not the business owner"})
		case errors.Is(err, errs.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		case errors.Is(err, errs.ErrInvalidWeekday),
			errors.Is(err, errs.ErrInvalidWindow),
			errors.Is(err, errs.ErrInvalidTimeOfDay):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid availability window"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRule(rule))
}

// @Summary List availability rules
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param categoryId query string false "Filter by category"
// @Success 200 {array} resdto.RuleResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /businesses/{businessId}/availabilities [get]
func (h *ScheduleHandler) ListRules(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	var categoryID *uuid.UUID
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		categoryID = &id
	}

	rules, err := h.schedule.ListRules(c.Request.Context(), ownerID, businessID, categoryID)
	if err != nil {
		abortOwnerErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRuleSnapshots(rules))
}

// @Summary Delete availability rule
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param id path string true "Rule ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /businesses/{businessId}/availabilities/{id} [delete]
func (h *ScheduleHandler) DeleteRule(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule id"})
		return
	}

	if err := h.schedule.DeleteRule(c.Request.Context(), ownerID, businessID, ruleID); err != nil {
		switch {
		case errors.Is(err, errs.ErrRuleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
		default:
			abortOwnerErr(c, err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ownerAndBusiness pulls the authenticated owner and the business path param.
func ownerAndBusiness(c *gin.Context) (ownerID, businessID uuid.UUID, ok bool) {
	ownerID, found := middleware.GetUserID(c)
	if !found {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, uuid.Nil, false
	}

	businessID, err := uuid.Parse(c.Param("businessId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business id"})
		return uuid.Nil, uuid.Nil, false
	}

	return ownerID, businessID, true
}

func abortOwnerErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBusinessNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
	case errors.Is(err, errs.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the business owner"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
