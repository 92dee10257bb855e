package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pawhaven/shelter-api/internal/models"
	"github.com/pawhaven/shelter-api/internal/repository"
)

// fakeUnit is an in-memory UnitOfWork so lifecycle decisions can be
// exercised without a database.
type fakeUnit struct {
	pets         map[int64]*models.Pet
	applicants   map[int64]*models.Applicant
	applications map[int64]*models.Application
	adoptions    map[int64]*models.Adoption
	nextID       int64
}

func newFakeUnit() *fakeUnit {
	return &fakeUnit{
		pets:         make(map[int64]*models.Pet),
		applicants:   make(map[int64]*models.Applicant),
		applications: make(map[int64]*models.Application),
		adoptions:    make(map[int64]*models.Adoption),
	}
}

func (f *fakeUnit) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeUnit) addPet(pet models.Pet) *models.Pet {
	if pet.ID == 0 {
		pet.ID = f.id()
	} else if pet.ID > f.nextID {
		f.nextID = pet.ID
	}
	f.pets[pet.ID] = &pet
	return &pet
}

func (f *fakeUnit) addApplicant(applicant models.Applicant) *models.Applicant {
	if applicant.ID == 0 {
		applicant.ID = f.id()
	} else if applicant.ID > f.nextID {
		f.nextID = applicant.ID
	}
	f.applicants[applicant.ID] = &applicant
	return &applicant
}

func (f *fakeUnit) addApplication(application models.Application) *models.Application {
	if application.ID == 0 {
		application.ID = f.id()
	} else if application.ID > f.nextID {
		f.nextID = application.ID
	}
	if application.SubmittedAt.IsZero() {
		application.SubmittedAt = time.Now().UTC()
	}
	f.applications[application.ID] = &application
	return &application
}

func (f *fakeUnit) addAdoption(adoption models.Adoption) *models.Adoption {
	if adoption.ID == 0 {
		adoption.ID = f.id()
	} else if adoption.ID > f.nextID {
		f.nextID = adoption.ID
	}
	if adoption.AdoptedAt.IsZero() {
		adoption.AdoptedAt = time.Now().UTC()
	}
	f.adoptions[adoption.ID] = &adoption
	return &adoption
}

func (f *fakeUnit) GetPetForUpdate(ctx context.Context, id int64) (*models.Pet, error) {
	pet, ok := f.pets[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *pet
	return &copied, nil
}

func (f *fakeUnit) UpdatePetStatus(ctx context.Context, id int64, status models.PetStatus) error {
	pet, ok := f.pets[id]
	if !ok {
		return sql.ErrNoRows
	}
	pet.Status = status
	return nil
}

func (f *fakeUnit) FindApplicantByEmail(ctx context.Context, email string) (*models.Applicant, error) {
	for _, applicant := range f.applicants {
		if strings.EqualFold(applicant.Email, email) {
			copied := *applicant
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUnit) InsertApplicant(ctx context.Context, applicant *models.Applicant) error {
	applicant.ID = f.id()
	copied := *applicant
	f.applicants[applicant.ID] = &copied
	return nil
}

func (f *fakeUnit) UpdateApplicantContact(ctx context.Context, id int64, name string, phone *string) error {
	applicant, ok := f.applicants[id]
	if !ok {
		return sql.ErrNoRows
	}
	applicant.Name = name
	applicant.Phone = phone
	return nil
}

func (f *fakeUnit) GetApplicationForUpdate(ctx context.Context, id int64) (*models.Application, error) {
	application, ok := f.applications[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *application
	return &copied, nil
}

func (f *fakeUnit) ApplicationExists(ctx context.Context, petID, applicantID int64) (bool, error) {
	for _, application := range f.applications {
		if application.PetID == petID && application.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUnit) HasApplicationWithStatus(ctx context.Context, petID int64, statuses ...models.ApplicationStatus) (bool, error) {
	for _, application := range f.applications {
		if application.PetID != petID {
			continue
		}
		for _, status := range statuses {
			if application.Status == status {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeUnit) ListOpenApplications(ctx context.Context, petID int64) ([]models.Application, error) {
	var open []models.Application
	for _, application := range f.applications {
		if application.PetID == petID && application.IsOpen() {
			open = append(open, *application)
		}
	}
	return open, nil
}

func (f *fakeUnit) InsertApplication(ctx context.Context, application *models.Application) error {
	if application.Status == "" {
		application.Status = models.ApplicationStatusPending
	}
	if application.SubmittedAt.IsZero() {
		application.SubmittedAt = time.Now().UTC()
	}
	application.ID = f.id()
	copied := *application
	f.applications[application.ID] = &copied
	return nil
}

func (f *fakeUnit) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus, reviewedAt *time.Time, reviewedBy *string) error {
	application, ok := f.applications[id]
	if !ok {
		return sql.ErrNoRows
	}
	application.Status = status
	if reviewedAt != nil {
		application.ReviewedAt = reviewedAt
	}
	if reviewedBy != nil {
		application.ReviewedBy = reviewedBy
	}
	return nil
}

func (f *fakeUnit) GetAdoptionForUpdate(ctx context.Context, id int64) (*models.Adoption, error) {
	adoption, ok := f.adoptions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *adoption
	return &copied, nil
}

func (f *fakeUnit) HasAdoptionWithStatus(ctx context.Context, petID int64, statuses ...models.AdoptionStatus) (bool, error) {
	for _, adoption := range f.adoptions {
		if adoption.PetID != petID {
			continue
		}
		for _, status := range statuses {
			if adoption.Status == status {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeUnit) InsertAdoption(ctx context.Context, adoption *models.Adoption) error {
	if adoption.Status == "" {
		adoption.Status = models.AdoptionStatusPendingPickup
	}
	if adoption.AdoptedAt.IsZero() {
		adoption.AdoptedAt = time.Now().UTC()
	}
	adoption.ID = f.id()
	copied := *adoption
	f.adoptions[adoption.ID] = &copied
	return nil
}

func (f *fakeUnit) UpdateAdoption(ctx context.Context, adoption *models.Adoption) error {
	stored, ok := f.adoptions[adoption.ID]
	if !ok {
		return sql.ErrNoRows
	}
	*stored = *adoption
	return nil
}

// fakeStore runs the callback directly against the fake unit. Errors from
// the callback surface unchanged, mirroring the transactional rollback
// contract at the API level.
type fakeStore struct {
	unit *fakeUnit
}

func (s *fakeStore) Run(ctx context.Context, fn func(ctx context.Context, uow repository.UnitOfWork) error) error {
	return fn(ctx, s.unit)
}
