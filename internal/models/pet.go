package models

import "time"

// PetStatus is the denormalized availability state of a pet. It is derived
// from the pet's applications and adoptions and kept consistent inside the
// same transaction as every lifecycle transition.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "AVAILABLE"
	PetStatusPending   PetStatus = "PENDING"
	PetStatusAdopted   PetStatus = "ADOPTED"
)

// Pet represents an animal listed by the shelter. Pets are soft-deleted:
// DeletedAt is set and all default read paths filter on it.
type Pet struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	SpeciesID   int        `db:"species_id" json:"speciesId"`
	Age         int        `db:"age" json:"age"`
	ImageURL    *string    `db:"image_url" json:"imageUrl,omitempty"`
	Description *string    `db:"description" json:"description,omitempty"`
	Status      PetStatus  `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
}

// IsDeleted reports whether the pet has been soft-deleted.
func (p *Pet) IsDeleted() bool {
	return p.DeletedAt != nil
}

// PetFilter constrains pet listing queries.
type PetFilter struct {
	Status         PetStatus
	SpeciesID      int
	IncludeDeleted bool
}
