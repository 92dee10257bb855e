package models

import "time"

// AdoptionStatus tracks a single adoption attempt:
// PENDING_PICKUP -> {ACTIVE, CANCELLED}; ACTIVE -> RETURNED.
// RETURNED and CANCELLED are terminal.
type AdoptionStatus string

const (
	AdoptionStatusPendingPickup AdoptionStatus = "PENDING_PICKUP"
	AdoptionStatusActive        AdoptionStatus = "ACTIVE"
	AdoptionStatusReturned      AdoptionStatus = "RETURNED"
	AdoptionStatusCancelled     AdoptionStatus = "CANCELLED"
)

// Adoption is the durable record of one adoption attempt. A pet can
// accumulate several rows over its lifetime (approve, cancel, re-approve,
// confirm, return, and so on); it is not a mutable singleton.
type Adoption struct {
	ID            int64          `db:"id" json:"id"`
	PetID         int64          `db:"pet_id" json:"petId"`
	ApplicationID int64          `db:"application_id" json:"applicationId"`
	ApplicantID   int64          `db:"applicant_id" json:"applicantId"`
	AdoptedAt     time.Time      `db:"adopted_at" json:"adoptedAt"`
	ReturnedAt    *time.Time     `db:"returned_at" json:"returnedAt,omitempty"`
	ReturnReason  *string        `db:"return_reason" json:"returnReason,omitempty"`
	Status        AdoptionStatus `db:"status" json:"status"`
	Notes         *string        `db:"notes" json:"notes,omitempty"`
}

// IsSettled reports whether the adoption reached a terminal state.
func (a *Adoption) IsSettled() bool {
	return a.Status == AdoptionStatusReturned || a.Status == AdoptionStatusCancelled
}

// AdoptionFilter constrains admin adoption listings.
type AdoptionFilter struct {
	Status AdoptionStatus
	PetID  int64
}
