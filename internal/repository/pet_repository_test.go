package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/shelter-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func petItemColumns() []string {
	return []string{
		"id", "name", "species_id", "species_name", "age", "image_url",
		"description", "status", "pending_applications", "created_at",
		"updated_at", "deleted_at",
	}
}

func TestPetRepositoryListFiltersStatusAndSpecies(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(petItemColumns()).
		AddRow(1, "Biscuit", 2, "Cat", 3, nil, nil, "AVAILABLE", 0, now, now, nil)
	mock.ExpectQuery(`FROM pets p\s+JOIN species s ON s\.id = p\.species_id\s+WHERE p\.deleted_at IS NULL AND p\.status = \$1 AND p\.species_id = \$2\s+ORDER BY p\.created_at ASC`).
		WithArgs(models.PetStatusAvailable, 2).
		WillReturnRows(rows)

	pets, err := repo.List(context.Background(), models.PetFilter{
		Status:    models.PetStatusAvailable,
		SpeciesID: 2,
	})
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "Biscuit", pets[0].Name)
	assert.Equal(t, "Cat", pets[0].SpeciesName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetRepositoryListIncludeDeletedSkipsTombstoneFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	now := time.Now()
	deleted := now.Add(-time.Hour)
	rows := sqlmock.NewRows(petItemColumns()).
		AddRow(1, "Biscuit", 2, "Cat", 3, nil, nil, "AVAILABLE", 0, now, now, deleted)
	mock.ExpectQuery(`FROM pets p\s+JOIN species s ON s\.id = p\.species_id\s+ORDER BY p\.created_at ASC`).
		WillReturnRows(rows)

	pets, err := repo.List(context.Background(), models.PetFilter{IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, pets, 1)
	require.NotNil(t, pets[0].DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	mock.ExpectQuery("INSERT INTO pets").
		WithArgs("Biscuit", 2, 3, nil, nil, models.PetStatusAvailable, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	pet := &models.Pet{Name: "Biscuit", SpeciesID: 2, Age: 3}
	require.NoError(t, repo.Create(context.Background(), pet))
	assert.Equal(t, int64(7), pet.ID)
	assert.Equal(t, models.PetStatusAvailable, pet.Status)
	assert.False(t, pet.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	mock.ExpectExec("UPDATE pets SET").
		WithArgs("Biscuit", 3, nil, nil, sqlmock.AnyArg(), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Pet{ID: 42, Name: "Biscuit", Age: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPetRepository(db)

	mock.ExpectExec("UPDATE pets SET deleted_at").
		WithArgs(sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
