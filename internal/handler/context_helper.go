package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/middleware"
	"github.com/pawhaven/shelter-api/internal/models"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.AdminClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.AdminClaims)
	if !ok {
		return nil
	}
	return claims
}

// pathID parses a positive int64 path identifier.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" parameter")
	}
	return id, nil
}

// bindError converts gin binding failures into a 400 with per-field
// messages where the validator provides them.
func bindError(err error, message string) error {
	appErr := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	if fields := dto.FieldErrors(err); len(fields) > 0 {
		return appErrors.WithFields(appErr, fields)
	}
	return appErr
}
