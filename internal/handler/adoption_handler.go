package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
	"github.com/pawhaven/shelter-api/internal/service"
	"github.com/pawhaven/shelter-api/pkg/response"
)

// AdoptionHandler exposes the adoption fulfillment endpoints.
type AdoptionHandler struct {
	adoptions *service.AdoptionService
	exports   *service.ExportService
	metrics   *service.MetricsService
}

// NewAdoptionHandler constructs AdoptionHandler.
func NewAdoptionHandler(adoptions *service.AdoptionService, exports *service.ExportService, metrics *service.MetricsService) *AdoptionHandler {
	return &AdoptionHandler{adoptions: adoptions, exports: exports, metrics: metrics}
}

// List godoc
// @Summary List adoption history
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param petId query int false "Filter by pet"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/adoptions [get]
func (h *AdoptionHandler) List(c *gin.Context) {
	items, err := h.adoptions.ListAdmin(c.Request.Context(), adoptionFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Confirm godoc
// @Summary Confirm a pickup, completing the adoption
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Adoption ID"
// @Param payload body dto.ConfirmAdoptionRequest false "Optional notes"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/adoptions/{id}/confirm [post]
func (h *AdoptionHandler) Confirm(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ConfirmAdoptionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, bindError(err, "invalid confirmation payload"))
			return
		}
	}

	result, err := h.adoptions.Confirm(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordAdoptionEvent("confirmed")
	response.JSON(c, http.StatusOK, result)
}

// Cancel godoc
// @Summary Cancel an adoption before pickup
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Adoption ID"
// @Param payload body dto.CancelAdoptionRequest true "Cancellation reason"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/adoptions/{id}/cancel [post]
func (h *AdoptionHandler) Cancel(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CancelAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid cancellation payload"))
		return
	}

	result, err := h.adoptions.Cancel(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordAdoptionEvent("cancelled")
	response.JSON(c, http.StatusOK, result)
}

// Return godoc
// @Summary Record an adopted pet being returned
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Adoption ID"
// @Param payload body dto.ReturnPetRequest true "Return reason"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/adoptions/{id}/return [post]
func (h *AdoptionHandler) Return(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReturnPetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid return payload"))
		return
	}

	result, err := h.adoptions.Return(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordAdoptionEvent("returned")
	response.JSON(c, http.StatusOK, result)
}

// Export godoc
// @Summary Export adoption history as CSV or PDF
// @Tags Admin
// @Produce json
// @Param format query string false "csv or pdf" default(csv)
// @Param status query string false "Filter by status"
// @Param petId query int false "Filter by pet"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/adoptions/export [get]
func (h *AdoptionHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.Generate(c.Request.Context(), adoptionFilterFromQuery(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"url":       result.URL,
		"format":    result.Format,
		"expiresAt": result.ExpiresAt,
	})
}

// Download godoc
// @Summary Download a previously generated export
// @Tags Admin
// @Produce octet-stream
// @Param token path string true "Download token"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/adoptions/export/{token} [get]
func (h *AdoptionHandler) Download(c *gin.Context) {
	file, relPath, err := h.exports.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	filename := filepath.Base(relPath)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", contentTypeFor(filename))
	if _, err := io.Copy(c.Writer, file); err != nil {
		c.Abort()
	}
}

func adoptionFilterFromQuery(c *gin.Context) models.AdoptionFilter {
	var filter models.AdoptionFilter
	filter.Status = models.AdoptionStatus(c.Query("status"))
	if raw := c.Query("petId"); raw != "" {
		if petID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.PetID = petID
		}
	}
	return filter
}

func contentTypeFor(filename string) string {
	switch filepath.Ext(filename) {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
