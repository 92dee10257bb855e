package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawhaven/shelter-api/internal/service"
	"github.com/pawhaven/shelter-api/pkg/response"
)

// SpeciesHandler exposes the species reference list.
type SpeciesHandler struct {
	species *service.SpeciesService
}

// NewSpeciesHandler constructs SpeciesHandler.
func NewSpeciesHandler(species *service.SpeciesService) *SpeciesHandler {
	return &SpeciesHandler{species: species}
}

// List godoc
// @Summary List species
// @Tags Species
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /species [get]
func (h *SpeciesHandler) List(c *gin.Context) {
	species, err := h.species.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, species)
}
