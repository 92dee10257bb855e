package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
	"github.com/pawhaven/shelter-api/internal/service"
	"github.com/pawhaven/shelter-api/pkg/response"
)

// ApplicationHandler exposes application intake and review endpoints.
type ApplicationHandler struct {
	applications *service.ApplicationService
}

// NewApplicationHandler constructs ApplicationHandler.
func NewApplicationHandler(applications *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// Submit godoc
// @Summary Submit an adoption application
// @Tags Applications
// @Accept json
// @Produce json
// @Param payload body dto.SubmitApplicationRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid application payload"))
		return
	}

	result, err := h.applications.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List applications
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param petId query int false "Filter by pet"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	var filter models.ApplicationFilter
	filter.Status = models.ApplicationStatus(c.Query("status"))
	if raw := c.Query("petId"); raw != "" {
		if petID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.PetID = petID
		}
	}

	items, err := h.applications.ListAdmin(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Approve godoc
// @Summary Approve a pending application
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param payload body dto.ReviewApplicationRequest false "Reviewer attribution"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/applications/{id}/approve [post]
func (h *ApplicationHandler) Approve(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReviewApplicationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, bindError(err, "invalid review payload"))
			return
		}
	}

	result, err := h.applications.Approve(c.Request.Context(), id, h.reviewer(c, req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Reject godoc
// @Summary Reject a pending application
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param payload body dto.ReviewApplicationRequest false "Reviewer attribution"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/applications/{id}/reject [post]
func (h *ApplicationHandler) Reject(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReviewApplicationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, bindError(err, "invalid review payload"))
			return
		}
	}

	result, err := h.applications.Reject(c.Request.Context(), id, h.reviewer(c, req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// reviewer prefers the explicit payload attribution, falling back to the
// authenticated admin's name.
func (h *ApplicationHandler) reviewer(c *gin.Context, req dto.ReviewApplicationRequest) string {
	if req.ReviewedBy != "" {
		return req.ReviewedBy
	}
	if claims := claimsFromContext(c); claims != nil {
		return claims.Name
	}
	return ""
}
