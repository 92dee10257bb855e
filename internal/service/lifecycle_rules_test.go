package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pawhaven/shelter-api/internal/models"
)

func TestDerivePetStatus(t *testing.T) {
	assert.Equal(t, models.PetStatusAdopted, derivePetStatus(true, true))
	assert.Equal(t, models.PetStatusAdopted, derivePetStatus(true, false))
	assert.Equal(t, models.PetStatusPending, derivePetStatus(false, true))
	assert.Equal(t, models.PetStatusAvailable, derivePetStatus(false, false))
}
