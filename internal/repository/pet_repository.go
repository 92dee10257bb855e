package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
)

// PetRepository persists pets and serves the annotated catalog queries.
type PetRepository struct {
	db *sqlx.DB
}

// NewPetRepository constructs the repository.
func NewPetRepository(db *sqlx.DB) *PetRepository {
	return &PetRepository{db: db}
}

const petItemSelect = `
SELECT
	p.id,
	p.name,
	p.species_id,
	s.name AS species_name,
	p.age,
	p.image_url,
	p.description,
	p.status,
	(SELECT COUNT(*) FROM applications a WHERE a.pet_id = p.id AND a.status = 'PENDING') AS pending_applications,
	p.created_at,
	p.updated_at,
	p.deleted_at
FROM pets p
JOIN species s ON s.id = p.species_id`

// List returns pets matching the filter, each annotated with its pending
// application count. Soft-deleted pets are excluded unless the filter
// explicitly includes them.
func (r *PetRepository) List(ctx context.Context, filter models.PetFilter) ([]dto.PetItem, error) {
	builder := strings.Builder{}
	builder.WriteString(petItemSelect)

	args := make([]interface{}, 0, 2)
	conditions := make([]string, 0, 3)
	if !filter.IncludeDeleted {
		conditions = append(conditions, "p.deleted_at IS NULL")
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if filter.SpeciesID > 0 {
		args = append(args, filter.SpeciesID)
		conditions = append(conditions, fmt.Sprintf("p.species_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString("\nWHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString("\nORDER BY p.created_at ASC")

	var pets []dto.PetItem
	if err := r.db.SelectContext(ctx, &pets, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

// GetItem fetches a single non-deleted pet with its annotations.
func (r *PetRepository) GetItem(ctx context.Context, id int64) (*dto.PetItem, error) {
	query := petItemSelect + "\nWHERE p.id = $1 AND p.deleted_at IS NULL"
	var pet dto.PetItem
	if err := r.db.GetContext(ctx, &pet, query, id); err != nil {
		return nil, err
	}
	return &pet, nil
}

// GetByID fetches a non-deleted pet row.
func (r *PetRepository) GetByID(ctx context.Context, id int64) (*models.Pet, error) {
	query := fmt.Sprintf("SELECT %s FROM pets WHERE id = $1 AND deleted_at IS NULL", petColumns)
	var pet models.Pet
	if err := r.db.GetContext(ctx, &pet, query, id); err != nil {
		return nil, err
	}
	return &pet, nil
}

// Create inserts a new pet in AVAILABLE status.
func (r *PetRepository) Create(ctx context.Context, pet *models.Pet) error {
	now := time.Now().UTC()
	pet.CreatedAt = now
	pet.UpdatedAt = now
	if pet.Status == "" {
		pet.Status = models.PetStatusAvailable
	}
	const query = `INSERT INTO pets (name, species_id, age, image_url, description, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.GetContext(ctx, &pet.ID, query,
		pet.Name, pet.SpeciesID, pet.Age, pet.ImageURL, pet.Description,
		pet.Status, pet.CreatedAt, pet.UpdatedAt); err != nil {
		return fmt.Errorf("create pet: %w", err)
	}
	return nil
}

// Update persists the pet's mutable detail fields.
func (r *PetRepository) Update(ctx context.Context, pet *models.Pet) error {
	pet.UpdatedAt = time.Now().UTC()
	const query = `UPDATE pets SET name = $1, age = $2, image_url = $3, description = $4, updated_at = $5
	WHERE id = $6 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query,
		pet.Name, pet.Age, pet.ImageURL, pet.Description, pet.UpdatedAt, pet.ID)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	return requireRow(result)
}

// SoftDelete tombstones the pet; it disappears from default queries but
// its history stays intact.
func (r *PetRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	const query = `UPDATE pets SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, now, id)
	if err != nil {
		return fmt.Errorf("soft delete pet: %w", err)
	}
	return requireRow(result)
}
