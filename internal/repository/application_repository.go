package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
)

// ApplicationRepository serves the admin application listings.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs the repository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// ListAdmin returns applications joined with their pet and applicant,
// oldest first. The inner joins silently drop rows whose pet or applicant
// no longer exists.
func (r *ApplicationRepository) ListAdmin(ctx context.Context, filter models.ApplicationFilter) ([]dto.AdminApplicationItem, error) {
	builder := strings.Builder{}
	builder.WriteString(`
SELECT
	a.id,
	a.pet_id,
	p.name AS pet_name,
	s.name AS pet_species,
	p.image_url AS pet_image_url,
	p.status AS pet_status,
	a.applicant_id,
	ap.name AS applicant_name,
	ap.email AS applicant_email,
	ap.phone AS applicant_phone,
	a.reason,
	a.status,
	a.submitted_at,
	a.reviewed_at,
	a.reviewed_by
FROM applications a
JOIN pets p ON p.id = a.pet_id
JOIN species s ON s.id = p.species_id
JOIN applicants ap ON ap.id = a.applicant_id`)

	args := make([]interface{}, 0, 2)
	conditions := make([]string, 0, 2)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if filter.PetID > 0 {
		args = append(args, filter.PetID)
		conditions = append(conditions, fmt.Sprintf("a.pet_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString("\nWHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString("\nORDER BY a.submitted_at ASC")

	var items []dto.AdminApplicationItem
	if err := r.db.SelectContext(ctx, &items, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return items, nil
}
