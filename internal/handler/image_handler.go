package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawhaven/shelter-api/internal/service"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
	"github.com/pawhaven/shelter-api/pkg/response"
)

// ImageHandler exposes pet photo upload.
type ImageHandler struct {
	images *service.ImageService
}

// NewImageHandler constructs ImageHandler.
func NewImageHandler(images *service.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload godoc
// @Summary Upload a pet photo
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Pet ID"
// @Param image formData file true "Image file (jpeg, png or webp)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/pets/{id}/image [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "image file is required"))
		return
	}

	result, err := h.images.Upload(c.Request.Context(), id, header)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
