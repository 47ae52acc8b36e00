package api

import (
	"errors"
	"net/http"

	reqdto "github.com/ExactwareSolution/booktimez-app/internal/handler/dto/request"
	resdto "github.com/ExactwareSolution/booktimez-app/internal/handler/dto/response"
	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	resources commands.ResourceCommands
}

func NewResourceHandler(resources commands.ResourceCommands) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// @Summary Create resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param request body reqdto.CreateResourceRequest true "Resource"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId}/resources [post]
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	var req reqdto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resource, err := h.resources.CreateResource(c.Request.Context(), ownerID, businessID, req.Name, req.Type)
	if err != nil {
		if errors.Is(err, commands.ErrResourceNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Resource name is required"})
			return
		}
		abortOwnerErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromResourceSnapshot(resource))
}

// @Summary List resources
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Success 200 {array} resdto.ResourceResponse
// @Failure 403 {object} map[string]string
// @Router /businesses/{businessId}/resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	resources, err := h.resources.ListResources(c.Request.Context(), ownerID, businessID)
	if err != nil {
		abortOwnerErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceSnapshots(resources))
}

// @Summary Update resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Resource"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /businesses/{businessId}/resources/{id} [put]
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource id"})
		return
	}

	var req reqdto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resource, err := h.resources.UpdateResource(c.Request.Context(), ownerID, businessID, resourceID, req.Name, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		case errors.Is(err, commands.ErrResourceNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Resource name is required"})
		default:
			abortOwnerErr(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceSnapshot(resource))
}

// @Summary Delete resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param businessId path string true "Business ID"
// @Param id path string true "Resource ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /businesses/{businessId}/resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	ownerID, businessID, ok := ownerAndBusiness(c)
	if !ok {
		return
	}

	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource id"})
		return
	}

	if err := h.resources.DeleteResource(c.Request.Context(), ownerID, businessID, resourceID); err != nil {
		if errors.Is(err, errs.ErrResourceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
			return
		}
		abortOwnerErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
