package service

import (
	"context"

	"github.com/pawhaven/shelter-api/internal/models"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
)

type speciesStore interface {
	List(ctx context.Context) ([]models.Species, error)
}

// SpeciesService serves the species reference list.
type SpeciesService struct {
	species speciesStore
}

// NewSpeciesService constructs the service.
func NewSpeciesService(species speciesStore) *SpeciesService {
	return &SpeciesService{species: species}
}

// List returns every species sorted by name.
func (s *SpeciesService) List(ctx context.Context) ([]models.Species, error) {
	species, err := s.species.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list species")
	}
	if species == nil {
		species = []models.Species{}
	}
	return species, nil
}
