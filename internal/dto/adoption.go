package dto

import (
	"time"

	"github.com/pawhaven/shelter-api/internal/models"
)

// ConfirmAdoptionRequest marks a pickup as completed.
type ConfirmAdoptionRequest struct {
	Notes *string `json:"notes,omitempty" binding:"omitempty,max=10000"`
}

// ConfirmAdoptionResponse reports the confirmation outcome, including how
// many competing applications were auto-rejected.
type ConfirmAdoptionResponse struct {
	AdoptionID               int64                 `json:"adoptionId"`
	AdoptionStatus           models.AdoptionStatus `json:"adoptionStatus"`
	PetID                    int64                 `json:"petId"`
	PetStatus                models.PetStatus      `json:"petStatus"`
	RejectedApplicationCount int                   `json:"rejectedApplicationCount"`
	Message                  string                `json:"message"`
}

// CancelAdoptionRequest records why the pickup never happened.
type CancelAdoptionRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=10000"`
}

// CancelAdoptionResponse reports the cancellation outcome.
type CancelAdoptionResponse struct {
	AdoptionID        int64                    `json:"adoptionId"`
	AdoptionStatus    models.AdoptionStatus    `json:"adoptionStatus"`
	ApplicationID     int64                    `json:"applicationId"`
	ApplicationStatus models.ApplicationStatus `json:"applicationStatus"`
	PetID             int64                    `json:"petId"`
	PetStatus         models.PetStatus         `json:"petStatus"`
	Message           string                   `json:"message"`
}

// ReturnPetRequest records a pet being brought back to the shelter.
type ReturnPetRequest struct {
	ReturnReason string  `json:"returnReason" binding:"required,min=1,max=10000"`
	Notes        *string `json:"notes,omitempty" binding:"omitempty,max=10000"`
}

// ReturnPetResponse reports the return outcome.
type ReturnPetResponse struct {
	AdoptionID     int64                 `json:"adoptionId"`
	AdoptionStatus models.AdoptionStatus `json:"adoptionStatus"`
	PetID          int64                 `json:"petId"`
	PetStatus      models.PetStatus      `json:"petStatus"`
	ReturnedAt     time.Time             `json:"returnedAt"`
	Message        string                `json:"message"`
}

// AdminAdoptionItem is an adoption row joined with its pet and applicant
// for the admin ledger.
type AdminAdoptionItem struct {
	ID             int64                 `db:"id" json:"id"`
	PetID          int64                 `db:"pet_id" json:"petId"`
	PetName        string                `db:"pet_name" json:"petName"`
	ApplicationID  int64                 `db:"application_id" json:"applicationId"`
	ApplicantID    int64                 `db:"applicant_id" json:"applicantId"`
	ApplicantName  string                `db:"applicant_name" json:"applicantName"`
	ApplicantEmail string                `db:"applicant_email" json:"applicantEmail"`
	Status         models.AdoptionStatus `db:"status" json:"status"`
	AdoptedAt      time.Time             `db:"adopted_at" json:"adoptedAt"`
	ReturnedAt     *time.Time            `db:"returned_at" json:"returnedAt,omitempty"`
	ReturnReason   *string               `db:"return_reason" json:"returnReason,omitempty"`
	Notes          *string               `db:"notes" json:"notes,omitempty"`
}
