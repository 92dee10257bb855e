package models

import "time"

// ApplicationStatus captures the review state of an adoption application.
type ApplicationStatus string

const (
	ApplicationStatusPending           ApplicationStatus = "PENDING"
	ApplicationStatusApproved          ApplicationStatus = "APPROVED"
	ApplicationStatusRejected          ApplicationStatus = "REJECTED"
	ApplicationStatusAdoptionCancelled ApplicationStatus = "ADOPTION_CANCELLED"
)

// Application is a single applicant's request to adopt a specific pet.
// The (pet, applicant) pair is unique for all time, even after rejection.
type Application struct {
	ID          int64             `db:"id" json:"id"`
	PetID       int64             `db:"pet_id" json:"petId"`
	ApplicantID int64             `db:"applicant_id" json:"applicantId"`
	Reason      string            `db:"reason" json:"reason"`
	Status      ApplicationStatus `db:"status" json:"status"`
	SubmittedAt time.Time         `db:"submitted_at" json:"submittedAt"`
	ReviewedAt  *time.Time        `db:"reviewed_at" json:"reviewedAt,omitempty"`
	ReviewedBy  *string           `db:"reviewed_by" json:"reviewedBy,omitempty"`
}

// IsOpen reports whether the application still holds a claim on the pet.
func (a *Application) IsOpen() bool {
	return a.Status == ApplicationStatusPending || a.Status == ApplicationStatusApproved
}

// ApplicationFilter constrains admin application listings.
type ApplicationFilter struct {
	Status ApplicationStatus
	PetID  int64
}
