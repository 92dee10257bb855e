package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pawhaven/shelter-api/internal/models"
)

// SpeciesRepository serves the species reference data.
type SpeciesRepository struct {
	db *sqlx.DB
}

// NewSpeciesRepository constructs the repository.
func NewSpeciesRepository(db *sqlx.DB) *SpeciesRepository {
	return &SpeciesRepository{db: db}
}

// List returns all species sorted by name.
func (r *SpeciesRepository) List(ctx context.Context) ([]models.Species, error) {
	const query = `SELECT id, name FROM species ORDER BY name ASC`
	var species []models.Species
	if err := r.db.SelectContext(ctx, &species, query); err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	return species, nil
}

// GetByID fetches one species.
func (r *SpeciesRepository) GetByID(ctx context.Context, id int) (*models.Species, error) {
	const query = `SELECT id, name FROM species WHERE id = $1`
	var species models.Species
	if err := r.db.GetContext(ctx, &species, query, id); err != nil {
		return nil, err
	}
	return &species, nil
}
