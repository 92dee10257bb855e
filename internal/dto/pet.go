package dto

import (
	"time"

	"github.com/pawhaven/shelter-api/internal/models"
)

// PetItem is a pet row annotated with its species name and the number of
// pending applications it currently holds.
type PetItem struct {
	ID                  int64            `db:"id" json:"id"`
	Name                string           `db:"name" json:"name"`
	SpeciesID           int              `db:"species_id" json:"speciesId"`
	SpeciesName         string           `db:"species_name" json:"speciesName"`
	Age                 int              `db:"age" json:"age"`
	ImageURL            *string          `db:"image_url" json:"imageUrl,omitempty"`
	Description         *string          `db:"description" json:"description,omitempty"`
	Status              models.PetStatus `db:"status" json:"status"`
	PendingApplications int              `db:"pending_applications" json:"pendingApplications"`
	CreatedAt           time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time        `db:"updated_at" json:"updatedAt"`
	DeletedAt           *time.Time       `db:"deleted_at" json:"deletedAt,omitempty"`
}

// CreatePetRequest registers a new pet for adoption.
type CreatePetRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	SpeciesID   int     `json:"speciesId" binding:"required,gt=0"`
	Age         int     `json:"age" binding:"gte=0,lte=50"`
	ImageURL    *string `json:"imageUrl,omitempty" binding:"omitempty,max=500"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=10000"`
}

// UpdatePetRequest updates only the provided fields.
type UpdatePetRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Age         *int    `json:"age,omitempty" binding:"omitempty,gte=0,lte=50"`
	ImageURL    *string `json:"imageUrl,omitempty" binding:"omitempty,max=500"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=10000"`
}
