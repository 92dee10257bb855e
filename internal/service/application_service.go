package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
	"github.com/pawhaven/shelter-api/internal/repository"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
)

// lifecycleStore runs a lifecycle operation as one atomic transaction.
type lifecycleStore interface {
	Run(ctx context.Context, fn func(ctx context.Context, uow repository.UnitOfWork) error) error
}

type applicationLister interface {
	ListAdmin(ctx context.Context, filter models.ApplicationFilter) ([]dto.AdminApplicationItem, error)
}

// ApplicationService handles intake and review of adoption applications.
// All state transitions execute inside a single store transaction; a
// violated precondition rolls back every change.
type ApplicationService struct {
	store  lifecycleStore
	lister applicationLister
	cache  *CacheService
	logger *zap.Logger
}

// NewApplicationService constructs the service.
func NewApplicationService(store lifecycleStore, lister applicationLister, cache *CacheService, logger *zap.Logger) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{store: store, lister: lister, cache: cache, logger: logger}
}

// Submit files a new application. The applicant is resolved (or created)
// by email, the pet must exist and not be adopted, and the (pet,
// applicant) pair must not have applied before. The first application
// flips an AVAILABLE pet to PENDING.
func (s *ApplicationService) Submit(ctx context.Context, req dto.SubmitApplicationRequest) (*dto.SubmitApplicationResponse, error) {
	if req.Phone != nil && !dto.ValidPhone(*req.Phone) {
		return nil, appErrors.WithFields(
			appErrors.Clone(appErrors.ErrValidation, "invalid application payload"),
			map[string]string{"phone": "contains invalid characters"},
		)
	}

	var resp *dto.SubmitApplicationResponse
	err := s.store.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		pet, err := uow.GetPetForUpdate(ctx, req.PetID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", req.PetID))
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
		}
		if pet.IsDeleted() {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", req.PetID))
		}
		if pet.Status == models.PetStatusAdopted {
			return appErrors.Clone(appErrors.ErrRuleViolation, "pet is already adopted")
		}

		applicant, err := s.resolveApplicant(ctx, uow, req)
		if err != nil {
			return err
		}

		exists, err := uow.ApplicationExists(ctx, req.PetID, applicant.ID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing applications")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrDuplicate, "you have already applied for this pet")
		}

		application := &models.Application{
			PetID:       req.PetID,
			ApplicantID: applicant.ID,
			Reason:      req.Reason,
			Status:      models.ApplicationStatusPending,
		}
		if err := uow.InsertApplication(ctx, application); err != nil {
			if repository.IsUniqueViolation(err) {
				return appErrors.Clone(appErrors.ErrDuplicate, "you have already applied for this pet")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application")
		}

		if pet.Status == models.PetStatusAvailable {
			if err := uow.UpdatePetStatus(ctx, pet.ID, models.PetStatusPending); err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pet status")
			}
		}

		resp = &dto.SubmitApplicationResponse{
			ID:            application.ID,
			PetID:         pet.ID,
			PetName:       pet.Name,
			ApplicantName: applicant.Name,
			Status:        application.Status,
			SubmittedAt:   application.SubmittedAt,
			Message:       "Application submitted successfully. We will review your application and contact you soon.",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidatePets(ctx)
	return resp, nil
}

// resolveApplicant finds the applicant by email, updating stale contact
// details, or creates a new row.
func (s *ApplicationService) resolveApplicant(ctx context.Context, uow repository.UnitOfWork, req dto.SubmitApplicationRequest) (*models.Applicant, error) {
	applicant, err := uow.FindApplicantByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve applicant")
	}
	if applicant == nil {
		applicant = &models.Applicant{
			Name:  req.ApplicantName,
			Email: strings.ToLower(strings.TrimSpace(req.Email)),
			Phone: req.Phone,
		}
		if err := uow.InsertApplicant(ctx, applicant); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create applicant")
		}
		return applicant, nil
	}
	if applicant.Name != req.ApplicantName || !equalPhone(applicant.Phone, req.Phone) {
		if err := uow.UpdateApplicantContact(ctx, applicant.ID, req.ApplicantName, req.Phone); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update applicant")
		}
		applicant.Name = req.ApplicantName
		applicant.Phone = req.Phone
	}
	return applicant, nil
}

// Approve marks a pending application as approved and opens a
// PENDING_PICKUP adoption. The pet stays PENDING until pickup is
// confirmed. Approval is exclusive per pet: no second APPROVED
// application and no live adoption may exist.
func (s *ApplicationService) Approve(ctx context.Context, applicationID int64, reviewedBy string) (*dto.ApproveApplicationResponse, error) {
	var resp *dto.ApproveApplicationResponse
	err := s.store.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		application, err := uow.GetApplicationForUpdate(ctx, applicationID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("application %d not found", applicationID))
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
		}
		if application.Status != models.ApplicationStatusPending {
			return appErrors.Clone(appErrors.ErrRuleViolation,
				fmt.Sprintf("can only approve pending applications (current status: %s)", application.Status))
		}

		pet, err := uow.GetPetForUpdate(ctx, application.PetID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", application.PetID))
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
		}
		if pet.Status == models.PetStatusAdopted {
			return appErrors.Clone(appErrors.ErrRuleViolation, "pet is already adopted")
		}

		hasApproved, err := uow.HasApplicationWithStatus(ctx, application.PetID, models.ApplicationStatusApproved)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check approved applications")
		}
		if hasApproved {
			return appErrors.Clone(appErrors.ErrRuleViolation,
				"pet already has an approved application; reject or cancel it first")
		}

		hasLiveAdoption, err := uow.HasAdoptionWithStatus(ctx, application.PetID,
			models.AdoptionStatusPendingPickup, models.AdoptionStatusActive)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check live adoptions")
		}
		if hasLiveAdoption {
			return appErrors.Clone(appErrors.ErrRuleViolation, "pet already has an active adoption")
		}

		now := time.Now().UTC()
		if err := uow.UpdateApplicationStatus(ctx, application.ID, models.ApplicationStatusApproved, &now, optionalString(reviewedBy)); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application")
		}

		adoption := &models.Adoption{
			PetID:         application.PetID,
			ApplicationID: application.ID,
			ApplicantID:   application.ApplicantID,
			Status:        models.AdoptionStatusPendingPickup,
		}
		if err := uow.InsertAdoption(ctx, adoption); err != nil {
			if repository.IsUniqueViolation(err) {
				return appErrors.Clone(appErrors.ErrRuleViolation, "pet already has an active adoption")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create adoption record")
		}

		resp = &dto.ApproveApplicationResponse{
			ApplicationID:  application.ID,
			Status:         models.ApplicationStatusApproved,
			AdoptionID:     adoption.ID,
			AdoptionStatus: adoption.Status,
			Message:        "Application approved. Adoption record created. Waiting for family to pick up pet.",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidatePets(ctx)
	return resp, nil
}

// Reject marks a pending application as rejected. When this removes the
// pet's last open application, the pet reverts from PENDING to AVAILABLE.
func (s *ApplicationService) Reject(ctx context.Context, applicationID int64, reviewedBy string) (*dto.RejectApplicationResponse, error) {
	var resp *dto.RejectApplicationResponse
	err := s.store.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		application, err := uow.GetApplicationForUpdate(ctx, applicationID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("application %d not found", applicationID))
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
		}
		if application.Status != models.ApplicationStatusPending {
			return appErrors.Clone(appErrors.ErrRuleViolation, "can only reject pending applications")
		}

		now := time.Now().UTC()
		if err := uow.UpdateApplicationStatus(ctx, application.ID, models.ApplicationStatusRejected, &now, optionalString(reviewedBy)); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application")
		}

		pet, err := uow.GetPetForUpdate(ctx, application.PetID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", application.PetID))
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
		}

		petStatus := pet.Status
		if pet.Status == models.PetStatusPending {
			hasOpen, err := uow.HasApplicationWithStatus(ctx, application.PetID,
				models.ApplicationStatusPending, models.ApplicationStatusApproved)
			if err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check open applications")
			}
			if !hasOpen {
				petStatus = models.PetStatusAvailable
				if err := uow.UpdatePetStatus(ctx, pet.ID, petStatus); err != nil {
					return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pet status")
				}
			}
		}

		message := "Application rejected."
		if petStatus == models.PetStatusAvailable && pet.Status == models.PetStatusPending {
			message = "Application rejected. Pet status updated to AVAILABLE (no open applications remaining)."
		}
		resp = &dto.RejectApplicationResponse{
			ApplicationID: application.ID,
			Status:        models.ApplicationStatusRejected,
			PetStatus:     petStatus,
			Message:       message,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidatePets(ctx)
	return resp, nil
}

// ListAdmin returns applications for the admin view.
func (s *ApplicationService) ListAdmin(ctx context.Context, filter models.ApplicationFilter) ([]dto.AdminApplicationItem, error) {
	items, err := s.lister.ListAdmin(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	return items, nil
}

func equalPhone(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
