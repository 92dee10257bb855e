package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
)

type petStore interface {
	List(ctx context.Context, filter models.PetFilter) ([]dto.PetItem, error)
	GetItem(ctx context.Context, id int64) (*dto.PetItem, error)
	GetByID(ctx context.Context, id int64) (*models.Pet, error)
	Create(ctx context.Context, pet *models.Pet) error
	Update(ctx context.Context, pet *models.Pet) error
	SoftDelete(ctx context.Context, id int64) error
}

type speciesReader interface {
	GetByID(ctx context.Context, id int) (*models.Species, error)
}

// PetService serves the public catalog and the admin pet management
// operations.
type PetService struct {
	pets    petStore
	species speciesReader
	cache   *CacheService
	logger  *zap.Logger
}

// NewPetService constructs the service.
func NewPetService(pets petStore, species speciesReader, cache *CacheService, logger *zap.Logger) *PetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PetService{pets: pets, species: species, cache: cache, logger: logger}
}

// List returns the pet catalog, optionally filtered by status and species.
// Results are cached per filter combination; any pet or application write
// invalidates the whole catalog.
func (s *PetService) List(ctx context.Context, filter models.PetFilter) ([]dto.PetItem, error) {
	key := petListCacheKey(filter)
	if !filter.IncludeDeleted && s.cache.Enabled() {
		var cached []dto.PetItem
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	pets, err := s.pets.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pets")
	}
	if pets == nil {
		pets = []dto.PetItem{}
	}
	if !filter.IncludeDeleted {
		s.cache.Set(ctx, key, pets)
	}
	return pets, nil
}

// Get returns one pet with its pending application count.
func (s *PetService) Get(ctx context.Context, id int64) (*dto.PetItem, error) {
	pet, err := s.pets.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
	}
	return pet, nil
}

// Create registers a new pet in AVAILABLE status after checking the species
// exists.
func (s *PetService) Create(ctx context.Context, req dto.CreatePetRequest) (*dto.PetItem, error) {
	if _, err := s.species.GetByID(ctx, req.SpeciesID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("species %d not found", req.SpeciesID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load species")
	}

	pet := &models.Pet{
		Name:        req.Name,
		SpeciesID:   req.SpeciesID,
		Age:         req.Age,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Status:      models.PetStatusAvailable,
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create pet")
	}
	s.cache.InvalidatePets(ctx)
	s.logger.Info("pet created", zap.Int64("petId", pet.ID), zap.String("name", pet.Name))
	return s.Get(ctx, pet.ID)
}

// Update modifies a pet's detail fields. The status field is never updated
// here, it only moves through the adoption lifecycle.
func (s *PetService) Update(ctx context.Context, id int64, req dto.UpdatePetRequest) (*dto.PetItem, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
	}

	if req.Name != nil {
		pet.Name = *req.Name
	}
	if req.Age != nil {
		pet.Age = *req.Age
	}
	if req.ImageURL != nil {
		pet.ImageURL = req.ImageURL
	}
	if req.Description != nil {
		pet.Description = req.Description
	}

	if err := s.pets.Update(ctx, pet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pet")
	}
	s.cache.InvalidatePets(ctx)
	return s.Get(ctx, id)
}

// Delete soft-deletes a pet. Deleting a pet with open applications or an
// unsettled adoption is refused so the lifecycle can finish cleanly.
func (s *PetService) Delete(ctx context.Context, id int64) error {
	item, err := s.pets.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", id))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
	}
	if item.Status != models.PetStatusAvailable || item.PendingApplications > 0 {
		return appErrors.Clone(appErrors.ErrRuleViolation, "cannot delete a pet with pending applications or an active adoption")
	}

	if err := s.pets.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", id))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete pet")
	}
	s.cache.InvalidatePets(ctx)
	s.logger.Info("pet deleted", zap.Int64("petId", id))
	return nil
}

func petListCacheKey(filter models.PetFilter) string {
	return fmt.Sprintf("pets:list:status=%s:species=%d", filter.Status, filter.SpeciesID)
}
