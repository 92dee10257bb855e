package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
)

// AdoptionRepository serves the admin adoption ledger.
type AdoptionRepository struct {
	db *sqlx.DB
}

// NewAdoptionRepository constructs the repository.
func NewAdoptionRepository(db *sqlx.DB) *AdoptionRepository {
	return &AdoptionRepository{db: db}
}

// ListAdmin returns adoption records joined with their pet and applicant,
// oldest first. Rows whose pet or applicant is gone are dropped silently.
func (r *AdoptionRepository) ListAdmin(ctx context.Context, filter models.AdoptionFilter) ([]dto.AdminAdoptionItem, error) {
	builder := strings.Builder{}
	builder.WriteString(`
SELECT
	h.id,
	h.pet_id,
	p.name AS pet_name,
	h.application_id,
	h.applicant_id,
	ap.name AS applicant_name,
	ap.email AS applicant_email,
	h.status,
	h.adopted_at,
	h.returned_at,
	h.return_reason,
	h.notes
FROM adoption_history h
JOIN pets p ON p.id = h.pet_id
JOIN applicants ap ON ap.id = h.applicant_id`)

	args := make([]interface{}, 0, 2)
	conditions := make([]string, 0, 2)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("h.status = $%d", len(args)))
	}
	if filter.PetID > 0 {
		args = append(args, filter.PetID)
		conditions = append(conditions, fmt.Sprintf("h.pet_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString("\nWHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString("\nORDER BY h.adopted_at ASC")

	var items []dto.AdminAdoptionItem
	if err := r.db.SelectContext(ctx, &items, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list adoptions: %w", err)
	}
	return items, nil
}
