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

// PetHandler exposes the public catalog and admin pet management.
type PetHandler struct {
	pets *service.PetService
}

// NewPetHandler constructs PetHandler.
func NewPetHandler(pets *service.PetService) *PetHandler {
	return &PetHandler{pets: pets}
}

// List godoc
// @Summary List pets available for adoption
// @Tags Pets
// @Produce json
// @Param status query string false "Filter by status"
// @Param speciesId query int false "Filter by species"
// @Success 200 {object} response.Envelope
// @Router /pets [get]
func (h *PetHandler) List(c *gin.Context) {
	pets, err := h.pets.List(c.Request.Context(), petFilterFromQuery(c, false))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pets)
}

// Get godoc
// @Summary Get pet detail
// @Tags Pets
// @Produce json
// @Param id path int true "Pet ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pets/{id} [get]
func (h *PetHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	pet, err := h.pets.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pet)
}

// ListAdmin godoc
// @Summary List pets including soft-deleted ones
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param speciesId query int false "Filter by species"
// @Param includeDeleted query bool false "Include soft-deleted pets"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/pets [get]
func (h *PetHandler) ListAdmin(c *gin.Context) {
	includeDeleted := c.Query("includeDeleted") == "true"
	pets, err := h.pets.List(c.Request.Context(), petFilterFromQuery(c, includeDeleted))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pets)
}

// Create godoc
// @Summary Register a new pet
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.CreatePetRequest true "Pet payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/pets [post]
func (h *PetHandler) Create(c *gin.Context) {
	var req dto.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid pet payload"))
		return
	}

	pet, err := h.pets.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pet)
}

// Update godoc
// @Summary Update a pet's details
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Pet ID"
// @Param payload body dto.UpdatePetRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/pets/{id} [put]
func (h *PetHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid pet payload"))
		return
	}

	pet, err := h.pets.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pet)
}

// Delete godoc
// @Summary Soft-delete a pet
// @Tags Admin
// @Param id path int true "Pet ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/pets/{id} [delete]
func (h *PetHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.pets.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func petFilterFromQuery(c *gin.Context, includeDeleted bool) models.PetFilter {
	filter := models.PetFilter{IncludeDeleted: includeDeleted}
	filter.Status = models.PetStatus(c.Query("status"))
	if raw := c.Query("speciesId"); raw != "" {
		if speciesID, err := strconv.Atoi(raw); err == nil {
			filter.SpeciesID = speciesID
		}
	}
	return filter
}
