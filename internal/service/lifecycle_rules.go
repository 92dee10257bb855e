package service

import "github.com/pawhaven/shelter-api/internal/models"

// derivePetStatus recomputes the denormalized pet status from the pet's
// current adoption and application state. It is evaluated inside the same
// transaction as the triggering transition so the cached field cannot
// drift from the true derived state.
func derivePetStatus(hasActiveAdoption, hasOpenApplications bool) models.PetStatus {
	switch {
	case hasActiveAdoption:
		return models.PetStatusAdopted
	case hasOpenApplications:
		return models.PetStatusPending
	default:
		return models.PetStatusAvailable
	}
}
