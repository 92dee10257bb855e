package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
)

type fakePetStore struct {
	pets   map[int64]*models.Pet
	items  map[int64]*dto.PetItem
	nextID int64
	listed []dto.PetItem
}

func newFakePetStore() *fakePetStore {
	return &fakePetStore{
		pets:   map[int64]*models.Pet{},
		items:  map[int64]*dto.PetItem{},
		nextID: 1,
	}
}

func (f *fakePetStore) List(ctx context.Context, filter models.PetFilter) ([]dto.PetItem, error) {
	return f.listed, nil
}

func (f *fakePetStore) GetItem(ctx context.Context, id int64) (*dto.PetItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *item
	return &copied, nil
}

func (f *fakePetStore) GetByID(ctx context.Context, id int64) (*models.Pet, error) {
	pet, ok := f.pets[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *pet
	return &copied, nil
}

func (f *fakePetStore) Create(ctx context.Context, pet *models.Pet) error {
	pet.ID = f.nextID
	f.nextID++
	copied := *pet
	f.pets[pet.ID] = &copied
	f.items[pet.ID] = &dto.PetItem{
		ID:        pet.ID,
		Name:      pet.Name,
		SpeciesID: pet.SpeciesID,
		Age:       pet.Age,
		Status:    pet.Status,
	}
	return nil
}

func (f *fakePetStore) Update(ctx context.Context, pet *models.Pet) error {
	if _, ok := f.pets[pet.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *pet
	f.pets[pet.ID] = &copied
	item := f.items[pet.ID]
	item.Name = pet.Name
	item.Age = pet.Age
	item.ImageURL = pet.ImageURL
	item.Description = pet.Description
	return nil
}

func (f *fakePetStore) SoftDelete(ctx context.Context, id int64) error {
	if _, ok := f.pets[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.pets, id)
	delete(f.items, id)
	return nil
}

type fakeSpeciesReader struct {
	known map[int]*models.Species
}

func (f *fakeSpeciesReader) GetByID(ctx context.Context, id int) (*models.Species, error) {
	species, ok := f.known[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return species, nil
}

func newPetService(store *fakePetStore) *PetService {
	species := &fakeSpeciesReader{known: map[int]*models.Species{
		1: {ID: 1, Name: "Dog"},
	}}
	return NewPetService(store, species, nil, zap.NewNop())
}

func TestPetServiceCreate(t *testing.T) {
	store := newFakePetStore()
	svc := newPetService(store)

	item, err := svc.Create(context.Background(), dto.CreatePetRequest{
		Name:      "Biscuit",
		SpeciesID: 1,
		Age:       3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Biscuit", item.Name)
	assert.Equal(t, models.PetStatusAvailable, item.Status)
	require.Contains(t, store.pets, item.ID)
}

func TestPetServiceCreateUnknownSpecies(t *testing.T) {
	svc := newPetService(newFakePetStore())

	_, err := svc.Create(context.Background(), dto.CreatePetRequest{
		Name:      "Biscuit",
		SpeciesID: 99,
		Age:       3,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "species 99")
}

func TestPetServiceUpdatePartial(t *testing.T) {
	store := newFakePetStore()
	svc := newPetService(store)
	created, err := svc.Create(context.Background(), dto.CreatePetRequest{
		Name:      "Biscuit",
		SpeciesID: 1,
		Age:       3,
	})
	require.NoError(t, err)

	newAge := 4
	updated, err := svc.Update(context.Background(), created.ID, dto.UpdatePetRequest{Age: &newAge})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Age)
	assert.Equal(t, "Biscuit", updated.Name)
}

func TestPetServiceUpdateUnknownPet(t *testing.T) {
	svc := newPetService(newFakePetStore())

	name := "Ghost"
	_, err := svc.Update(context.Background(), 42, dto.UpdatePetRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPetServiceDelete(t *testing.T) {
	store := newFakePetStore()
	svc := newPetService(store)
	created, err := svc.Create(context.Background(), dto.CreatePetRequest{
		Name:      "Biscuit",
		SpeciesID: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.NotContains(t, store.pets, created.ID)
}

func TestPetServiceDeleteRefusedWhilePending(t *testing.T) {
	store := newFakePetStore()
	svc := newPetService(store)
	created, err := svc.Create(context.Background(), dto.CreatePetRequest{
		Name:      "Biscuit",
		SpeciesID: 1,
	})
	require.NoError(t, err)
	store.items[created.ID].PendingApplications = 2

	err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrRuleViolation.Code, appErr.Code)
	assert.Contains(t, store.pets, created.ID)
}

func TestPetServiceDeleteRefusedWhileAdopted(t *testing.T) {
	store := newFakePetStore()
	svc := newPetService(store)
	created, err := svc.Create(context.Background(), dto.CreatePetRequest{
		Name:      "Biscuit",
		SpeciesID: 1,
	})
	require.NoError(t, err)
	store.items[created.ID].Status = models.PetStatusAdopted

	err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRuleViolation.Code, appErrors.FromError(err).Code)
}

func TestPetServiceListReturnsEmptySlice(t *testing.T) {
	svc := newPetService(newFakePetStore())

	pets, err := svc.List(context.Background(), models.PetFilter{})
	require.NoError(t, err)
	require.NotNil(t, pets)
	assert.Empty(t, pets)
}

func TestPetServiceGetUnknown(t *testing.T) {
	svc := newPetService(newFakePetStore())

	_, err := svc.Get(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
