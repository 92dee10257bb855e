package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
)

func newAdoptionService(unit *fakeUnit) *AdoptionService {
	return NewAdoptionService(&fakeStore{unit: unit}, nil, nil, zap.NewNop())
}

func TestAdoptionServiceConfirmRejectsCompetitors(t *testing.T) {
	unit := newFakeUnit()
	pet := unit.addPet(models.Pet{Status: models.PetStatusPending})
	winner := unit.addApplication(models.Application{PetID: pet.ID, Status: models.ApplicationStatusApproved})
	competitor := unit.addApplication(models.Application{PetID: pet.ID, Status: models.ApplicationStatusPending})
	adoption := unit.addAdoption(models.Adoption{PetID: pet.ID, ApplicationID: winner.ID, Status: models.AdoptionStatusPendingPickup})
	svc := newAdoptionService(unit)

	notes := "Picked up on Saturday morning."
	resp, err := svc.Confirm(context.Background(), adoption.ID, dto.ConfirmAdoptionRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionStatusActive, resp.AdoptionStatus)
	assert.Equal(t, models.PetStatusAdopted, resp.PetStatus)
	assert.Equal(t, 1, resp.RejectedApplicationCount)
	assert.Contains(t, resp.Message, "1 other application(s) rejected")

	assert.Equal(t, models.PetStatusAdopted, unit.pets[pet.ID].Status)
	assert.Equal(t, models.ApplicationStatusRejected, unit.applications[competitor.ID].Status)
	assert.Equal(t, models.ApplicationStatusApproved, unit.applications[winner.ID].Status)
	require.NotNil(t, unit.adoptions[adoption.ID].Notes)
	assert.Equal(t, notes, *unit.adoptions[adoption.ID].Notes)
}

func TestAdoptionServiceConfirmRequiresPendingPickup(t *testing.T) {
	unit := newFakeUnit()
	pet := unit.addPet(models.Pet{Status: models.PetStatusAdopted})
	adoption := unit.addAdoption(models.Adoption{PetID: pet.ID, Status: models.AdoptionStatusActive})
	svc := newAdoptionService(unit)

	_, err := svc.Confirm(context.Background(), adoption.ID, dto.ConfirmAdoptionRequest{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrRuleViolation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "PENDING_PICKUP")
}

func TestAdoptionServiceConfirmUnknownAdoption(t *testing.T) {
	svc := newAdoptionService(newFakeUnit())

	_, err := svc.Confirm(context.Background(), 99, dto.ConfirmAdoptionRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAdoptionServiceCancelRevertsPetToAvailable(t *testing.T) {
	unit := newFakeUnit()
	pet := unit.addPet(models.Pet{Status: models.PetStatusPending})
	application := unit.addApplication(models.Application{PetID: pet.ID, Status: models.ApplicationStatusApproved})
	adoption := unit.addAdoption(models.Adoption{PetID: pet.ID, ApplicationID: application.ID, Status: models.AdoptionStatusPendingPickup})
	svc := newAdoptionService(unit)

	resp, err := svc.Cancel(context.Background(), adoption.ID, dto.CancelAdoptionRequest{Reason: "Family never came to pick up."})
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionStatusCancelled, resp.AdoptionStatus)
	assert.Equal(t, models.ApplicationStatusAdoptionCancelled, resp.ApplicationStatus)
	assert.Equal(t, models.PetStatusAvailable, resp.PetStatus)

	assert.Equal(t, models.ApplicationStatusAdoptionCancelled, unit.applications[application.ID].Status)
	assert.Equal(t, models.PetStatusAvailable, unit.pets[pet.ID].Status)
	require.NotNil(t, unit.adoptions[adoption.ID].Notes)
	assert.Equal(t, "Family never came to pick up.", *unit.adoptions[adoption.ID].Notes)
}

func TestAdoptionServiceCancelKeepsPetPendingWithOtherApplicants(t *testing.T) {
	unit := newFakeUnit()
	pet := unit.addPet(models.Pet{Status: models.PetStatusPending})
	application := unit.addApplication(models.Application{PetID: pet.ID, Status: models.ApplicationStatusApproved})
	unit.addApplication(models.Application{PetID: pet.ID, Status: models.ApplicationStatusPending})
	adoption := unit.addAdoption(models.Adoption{PetID: pet.ID, ApplicationID: application.ID, Status: models.AdoptionStatusPendingPickup})
	svc := newAdoptionService(unit)

	resp, err := svc.Cancel(context.Background(), adoption.ID, dto.CancelAdoptionRequest{Reason: "No show."})
	require.NoError(t, err)
	assert.Equal(t, models.PetStatusPending, resp.PetStatus)
	assert.Equal(t, models.PetStatusPending, unit.pets[pet.ID].Status)
}

func TestAdoptionServiceCancelRequiresPendingPickup(t *testing.T) {
	unit := newFakeUnit()
	pet := unit.addPet(models.Pet{Status: models.PetStatusAdopted})
	adoption := unit.addAdoption(models.Adoption{PetID: pet.ID, Status: models.AdoptionStatusActive})
	svc := newAdoptionService(unit)

	_, err := svc.Cancel(context.Background(), adoption.ID, dto.CancelAdoptionRequest{Reason: "Too late."})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRuleViolation.Code, appErrors.FromError(err).Code)
}

func TestAdoptionServiceReturn(t *testing.T) {
	unit := newFakeUnit()
	pet := unit.addPet(models.Pet{Status: models.PetStatusAdopted})
	existing := "Picked up on Saturday."
	adoption := unit.addAdoption(models.Adoption{PetID: pet.ID, Status: models.AdoptionStatusActive, Notes: &existing})
	svc := newAdoptionService(unit)

	notes := "Returned in good health."
	resp, err := svc.Return(context.Background(), adoption.ID, dto.ReturnPetRequest{
		ReturnReason: "Landlord does not allow pets.",
		Notes:        &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AdoptionStatusReturned, resp.AdoptionStatus)
	assert.Equal(t, models.PetStatusAvailable, resp.PetStatus)
	assert.False(t, resp.ReturnedAt.IsZero())

	stored := unit.adoptions[adoption.ID]
	require.NotNil(t, stored.ReturnedAt)
	require.NotNil(t, stored.ReturnReason)
	assert.Equal(t, "Landlord does not allow pets.", *stored.ReturnReason)
	assert.Equal(t, "Picked up on Saturday.\nReturned in good health.", *stored.Notes)
	assert.Equal(t, models.PetStatusAvailable, unit.pets[pet.ID].Status)
}

func TestAdoptionServiceReturnRequiresActive(t *testing.T) {
	unit := newFakeUnit()
	pet := unit.addPet(models.Pet{Status: models.PetStatusPending})
	adoption := unit.addAdoption(models.Adoption{PetID: pet.ID, Status: models.AdoptionStatusPendingPickup})
	svc := newAdoptionService(unit)

	_, err := svc.Return(context.Background(), adoption.ID, dto.ReturnPetRequest{ReturnReason: "n/a"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrRuleViolation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "ACTIVE")
}
