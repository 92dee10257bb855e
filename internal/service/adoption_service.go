package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
	"github.com/pawhaven/shelter-api/internal/repository"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
)

type adoptionLister interface {
	ListAdmin(ctx context.Context, filter models.AdoptionFilter) ([]dto.AdminAdoptionItem, error)
}

// AdoptionService drives the fulfillment half of the lifecycle:
// PENDING_PICKUP -> {ACTIVE, CANCELLED}, ACTIVE -> RETURNED.
type AdoptionService struct {
	store  lifecycleStore
	lister adoptionLister
	cache  *CacheService
	logger *zap.Logger
}

// NewAdoptionService constructs the service.
func NewAdoptionService(store lifecycleStore, lister adoptionLister, cache *CacheService, logger *zap.Logger) *AdoptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdoptionService{store: store, lister: lister, cache: cache, logger: logger}
}

// Confirm records that the family picked up the pet: the adoption becomes
// ACTIVE, the pet ADOPTED, and every other open application for the pet
// is rejected. The number of rejected competitors is returned.
func (s *AdoptionService) Confirm(ctx context.Context, adoptionID int64, req dto.ConfirmAdoptionRequest) (*dto.ConfirmAdoptionResponse, error) {
	var resp *dto.ConfirmAdoptionResponse
	err := s.store.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		adoption, err := s.loadAdoption(ctx, uow, adoptionID)
		if err != nil {
			return err
		}
		if adoption.Status != models.AdoptionStatusPendingPickup {
			return appErrors.Clone(appErrors.ErrRuleViolation,
				fmt.Sprintf("can only confirm adoptions in PENDING_PICKUP status (current status: %s)", adoption.Status))
		}

		adoption.Status = models.AdoptionStatusActive
		if req.Notes != nil {
			adoption.Notes = req.Notes
		}
		if err := uow.UpdateAdoption(ctx, adoption); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update adoption")
		}

		pet, err := s.loadPet(ctx, uow, adoption.PetID)
		if err != nil {
			return err
		}
		if err := uow.UpdatePetStatus(ctx, pet.ID, models.PetStatusAdopted); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pet status")
		}

		open, err := uow.ListOpenApplications(ctx, adoption.PetID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list open applications")
		}
		now := time.Now().UTC()
		rejected := 0
		for _, application := range open {
			if application.ID == adoption.ApplicationID {
				continue
			}
			if err := uow.UpdateApplicationStatus(ctx, application.ID, models.ApplicationStatusRejected, &now, nil); err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject competing application")
			}
			rejected++
		}

		resp = &dto.ConfirmAdoptionResponse{
			AdoptionID:               adoption.ID,
			AdoptionStatus:           adoption.Status,
			PetID:                    pet.ID,
			PetStatus:                models.PetStatusAdopted,
			RejectedApplicationCount: rejected,
			Message:                  fmt.Sprintf("Adoption confirmed. Pet marked as ADOPTED. %d other application(s) rejected.", rejected),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidatePets(ctx)
	return resp, nil
}

// Cancel records that the family never showed up: the adoption is
// CANCELLED, the linked application marked ADOPTION_CANCELLED, and the
// pet reverts to AVAILABLE unless other open applications keep it PENDING.
func (s *AdoptionService) Cancel(ctx context.Context, adoptionID int64, req dto.CancelAdoptionRequest) (*dto.CancelAdoptionResponse, error) {
	var resp *dto.CancelAdoptionResponse
	err := s.store.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		adoption, err := s.loadAdoption(ctx, uow, adoptionID)
		if err != nil {
			return err
		}
		if adoption.Status != models.AdoptionStatusPendingPickup {
			return appErrors.Clone(appErrors.ErrRuleViolation, "can only cancel adoptions in PENDING_PICKUP status")
		}

		adoption.Status = models.AdoptionStatusCancelled
		adoption.Notes = &req.Reason
		if err := uow.UpdateAdoption(ctx, adoption); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update adoption")
		}

		if err := uow.UpdateApplicationStatus(ctx, adoption.ApplicationID, models.ApplicationStatusAdoptionCancelled, nil, nil); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application")
		}

		pet, err := s.loadPet(ctx, uow, adoption.PetID)
		if err != nil {
			return err
		}
		hasOpen, err := uow.HasApplicationWithStatus(ctx, adoption.PetID,
			models.ApplicationStatusPending, models.ApplicationStatusApproved)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check open applications")
		}
		petStatus := derivePetStatus(false, hasOpen)
		if err := uow.UpdatePetStatus(ctx, pet.ID, petStatus); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pet status")
		}

		resp = &dto.CancelAdoptionResponse{
			AdoptionID:        adoption.ID,
			AdoptionStatus:    adoption.Status,
			ApplicationID:     adoption.ApplicationID,
			ApplicationStatus: models.ApplicationStatusAdoptionCancelled,
			PetID:             pet.ID,
			PetStatus:         petStatus,
			Message:           fmt.Sprintf("Adoption cancelled. Application marked as ADOPTION_CANCELLED. Pet status: %s.", petStatus),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidatePets(ctx)
	return resp, nil
}

// Return records the family bringing the pet back: the adoption becomes
// RETURNED and the pet unconditionally re-enters the pool as AVAILABLE.
// Pre-existing open applications are not reconsidered here.
func (s *AdoptionService) Return(ctx context.Context, adoptionID int64, req dto.ReturnPetRequest) (*dto.ReturnPetResponse, error) {
	var resp *dto.ReturnPetResponse
	err := s.store.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		adoption, err := s.loadAdoption(ctx, uow, adoptionID)
		if err != nil {
			return err
		}
		if adoption.Status != models.AdoptionStatusActive {
			return appErrors.Clone(appErrors.ErrRuleViolation, "can only return pets with ACTIVE adoption status")
		}

		now := time.Now().UTC()
		adoption.Status = models.AdoptionStatusReturned
		adoption.ReturnedAt = &now
		adoption.ReturnReason = &req.ReturnReason
		if req.Notes != nil {
			adoption.Notes = appendNote(adoption.Notes, *req.Notes)
		}
		if err := uow.UpdateAdoption(ctx, adoption); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update adoption")
		}

		pet, err := s.loadPet(ctx, uow, adoption.PetID)
		if err != nil {
			return err
		}
		if err := uow.UpdatePetStatus(ctx, pet.ID, models.PetStatusAvailable); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pet status")
		}

		resp = &dto.ReturnPetResponse{
			AdoptionID:     adoption.ID,
			AdoptionStatus: adoption.Status,
			PetID:          pet.ID,
			PetStatus:      models.PetStatusAvailable,
			ReturnedAt:     now,
			Message:        "Pet marked as returned. Pet status updated to AVAILABLE for re-adoption.",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidatePets(ctx)
	return resp, nil
}

// ListAdmin returns the adoption ledger for the admin view.
func (s *AdoptionService) ListAdmin(ctx context.Context, filter models.AdoptionFilter) ([]dto.AdminAdoptionItem, error) {
	items, err := s.lister.ListAdmin(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list adoptions")
	}
	return items, nil
}

func (s *AdoptionService) loadAdoption(ctx context.Context, uow repository.UnitOfWork, id int64) (*models.Adoption, error) {
	adoption, err := uow.GetAdoptionForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("adoption %d not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load adoption")
	}
	return adoption, nil
}

func (s *AdoptionService) loadPet(ctx context.Context, uow repository.UnitOfWork, id int64) (*models.Pet, error) {
	pet, err := uow.GetPetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
	}
	return pet, nil
}

func appendNote(existing *string, note string) *string {
	if existing == nil || *existing == "" {
		return &note
	}
	joined := *existing + "\n" + note
	return &joined
}
