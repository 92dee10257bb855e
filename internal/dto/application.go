package dto

import (
	"time"

	"github.com/pawhaven/shelter-api/internal/models"
)

// SubmitApplicationRequest is the public intake payload.
type SubmitApplicationRequest struct {
	PetID         int64   `json:"petId" binding:"required,gt=0"`
	ApplicantName string  `json:"applicantName" binding:"required,min=1,max=200"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Reason        string  `json:"reason" binding:"required,min=50,max=5000"`
}

// SubmitApplicationResponse confirms intake to the applicant.
type SubmitApplicationResponse struct {
	ID            int64                    `json:"id"`
	PetID         int64                    `json:"petId"`
	PetName       string                   `json:"petName"`
	ApplicantName string                   `json:"applicantName"`
	Status        models.ApplicationStatus `json:"status"`
	SubmittedAt   time.Time                `json:"submittedAt"`
	Message       string                   `json:"message"`
}

// ReviewApplicationRequest carries the optional reviewer attribution for
// approve/reject decisions.
type ReviewApplicationRequest struct {
	ReviewedBy string `json:"reviewedBy,omitempty" binding:"omitempty,max=100"`
}

// ApproveApplicationResponse reports the approval outcome.
type ApproveApplicationResponse struct {
	ApplicationID  int64                    `json:"applicationId"`
	Status         models.ApplicationStatus `json:"status"`
	AdoptionID     int64                    `json:"adoptionId"`
	AdoptionStatus models.AdoptionStatus    `json:"adoptionStatus"`
	Message        string                   `json:"message"`
}

// RejectApplicationResponse reports the rejection outcome including the
// pet's possibly reverted status.
type RejectApplicationResponse struct {
	ApplicationID int64                    `json:"applicationId"`
	Status        models.ApplicationStatus `json:"status"`
	PetStatus     models.PetStatus         `json:"petStatus"`
	Message       string                   `json:"message"`
}

// AdminApplicationItem is an application row joined with its pet and
// applicant for the admin listing.
type AdminApplicationItem struct {
	ID             int64                    `db:"id" json:"id"`
	PetID          int64                    `db:"pet_id" json:"petId"`
	PetName        string                   `db:"pet_name" json:"petName"`
	PetSpecies     string                   `db:"pet_species" json:"petSpecies"`
	PetImageURL    *string                  `db:"pet_image_url" json:"petImageUrl,omitempty"`
	PetStatus      models.PetStatus         `db:"pet_status" json:"petStatus"`
	ApplicantID    int64                    `db:"applicant_id" json:"applicantId"`
	ApplicantName  string                   `db:"applicant_name" json:"applicantName"`
	ApplicantEmail string                   `db:"applicant_email" json:"applicantEmail"`
	ApplicantPhone *string                  `db:"applicant_phone" json:"applicantPhone,omitempty"`
	Reason         string                   `db:"reason" json:"reason"`
	Status         models.ApplicationStatus `db:"status" json:"status"`
	SubmittedAt    time.Time                `db:"submitted_at" json:"submittedAt"`
	ReviewedAt     *time.Time               `db:"reviewed_at" json:"reviewedAt,omitempty"`
	ReviewedBy     *string                  `db:"reviewed_by" json:"reviewedBy,omitempty"`
}
