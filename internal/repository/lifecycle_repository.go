package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pawhaven/shelter-api/internal/models"
)

// UnitOfWork exposes the transactional primitives the adoption lifecycle
// engine runs on. Every method executes inside the surrounding serializable
// transaction; the pet row is expected to be locked via GetPetForUpdate
// before any existence check that guards a transition.
type UnitOfWork interface {
	GetPetForUpdate(ctx context.Context, id int64) (*models.Pet, error)
	UpdatePetStatus(ctx context.Context, id int64, status models.PetStatus) error

	FindApplicantByEmail(ctx context.Context, email string) (*models.Applicant, error)
	InsertApplicant(ctx context.Context, applicant *models.Applicant) error
	UpdateApplicantContact(ctx context.Context, id int64, name string, phone *string) error

	GetApplicationForUpdate(ctx context.Context, id int64) (*models.Application, error)
	ApplicationExists(ctx context.Context, petID, applicantID int64) (bool, error)
	HasApplicationWithStatus(ctx context.Context, petID int64, statuses ...models.ApplicationStatus) (bool, error)
	ListOpenApplications(ctx context.Context, petID int64) ([]models.Application, error)
	InsertApplication(ctx context.Context, application *models.Application) error
	UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus, reviewedAt *time.Time, reviewedBy *string) error

	GetAdoptionForUpdate(ctx context.Context, id int64) (*models.Adoption, error)
	HasAdoptionWithStatus(ctx context.Context, petID int64, statuses ...models.AdoptionStatus) (bool, error)
	InsertAdoption(ctx context.Context, adoption *models.Adoption) error
	UpdateAdoption(ctx context.Context, adoption *models.Adoption) error
}

// LifecycleRepository runs lifecycle operations as single serializable
// transactions. The store's isolation, the pet row lock, and the partial
// unique index on adoption_history together serialize competing approvals.
type LifecycleRepository struct {
	db *sqlx.DB
}

// NewLifecycleRepository constructs the repository.
func NewLifecycleRepository(db *sqlx.DB) *LifecycleRepository {
	return &LifecycleRepository{db: db}
}

// Run executes fn inside one transaction. Any error rolls back every
// change made by fn; there is no partial commit.
func (r *LifecycleRepository) Run(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin lifecycle transaction: %w", err)
	}
	if err := fn(ctx, &txUnit{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lifecycle transaction: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether the error is a postgres unique
// constraint failure (e.g. the second application for the same pet and
// applicant racing past the existence check).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type txUnit struct {
	tx *sqlx.Tx
}

const petColumns = "id, name, species_id, age, image_url, description, status, created_at, updated_at, deleted_at"

func (u *txUnit) GetPetForUpdate(ctx context.Context, id int64) (*models.Pet, error) {
	query := fmt.Sprintf("SELECT %s FROM pets WHERE id = $1 FOR UPDATE", petColumns)
	var pet models.Pet
	if err := u.tx.GetContext(ctx, &pet, query, id); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (u *txUnit) UpdatePetStatus(ctx context.Context, id int64, status models.PetStatus) error {
	const query = `UPDATE pets SET status = $1, updated_at = $2 WHERE id = $3`
	if _, err := u.tx.ExecContext(ctx, query, status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update pet status: %w", err)
	}
	return nil
}

func (u *txUnit) FindApplicantByEmail(ctx context.Context, email string) (*models.Applicant, error) {
	const query = `SELECT id, name, email, phone, created_at, updated_at FROM applicants WHERE email = $1`
	var applicant models.Applicant
	if err := u.tx.GetContext(ctx, &applicant, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find applicant by email: %w", err)
	}
	return &applicant, nil
}

func (u *txUnit) InsertApplicant(ctx context.Context, applicant *models.Applicant) error {
	now := time.Now().UTC()
	applicant.CreatedAt = now
	applicant.UpdatedAt = now
	const query = `INSERT INTO applicants (name, email, phone, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := u.tx.GetContext(ctx, &applicant.ID, query, applicant.Name, applicant.Email, applicant.Phone, now, now); err != nil {
		return fmt.Errorf("insert applicant: %w", err)
	}
	return nil
}

func (u *txUnit) UpdateApplicantContact(ctx context.Context, id int64, name string, phone *string) error {
	const query = `UPDATE applicants SET name = $1, phone = $2, updated_at = $3 WHERE id = $4`
	if _, err := u.tx.ExecContext(ctx, query, name, phone, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update applicant contact: %w", err)
	}
	return nil
}

const applicationColumns = "id, pet_id, applicant_id, reason, status, submitted_at, reviewed_at, reviewed_by"

func (u *txUnit) GetApplicationForUpdate(ctx context.Context, id int64) (*models.Application, error) {
	query := fmt.Sprintf("SELECT %s FROM applications WHERE id = $1 FOR UPDATE", applicationColumns)
	var application models.Application
	if err := u.tx.GetContext(ctx, &application, query, id); err != nil {
		return nil, err
	}
	return &application, nil
}

func (u *txUnit) ApplicationExists(ctx context.Context, petID, applicantID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM applications WHERE pet_id = $1 AND applicant_id = $2)`
	var exists bool
	if err := u.tx.GetContext(ctx, &exists, query, petID, applicantID); err != nil {
		return false, fmt.Errorf("check application exists: %w", err)
	}
	return exists, nil
}

func (u *txUnit) HasApplicationWithStatus(ctx context.Context, petID int64, statuses ...models.ApplicationStatus) (bool, error) {
	if len(statuses) == 0 {
		return false, nil
	}
	placeholders := make([]string, len(statuses))
	args := make([]interface{}, 0, len(statuses)+1)
	args = append(args, petID)
	for i, status := range statuses {
		args = append(args, status)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM applications WHERE pet_id = $1 AND status IN (%s))",
		strings.Join(placeholders, ","),
	)
	var exists bool
	if err := u.tx.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("check application status: %w", err)
	}
	return exists, nil
}

// ListOpenApplications returns PENDING and APPROVED applications for the
// pet ordered by submission time.
func (u *txUnit) ListOpenApplications(ctx context.Context, petID int64) ([]models.Application, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM applications WHERE pet_id = $1 AND status IN ($2, $3) ORDER BY submitted_at ASC",
		applicationColumns,
	)
	var applications []models.Application
	if err := u.tx.SelectContext(ctx, &applications, query, petID,
		models.ApplicationStatusPending, models.ApplicationStatusApproved); err != nil {
		return nil, fmt.Errorf("list open applications: %w", err)
	}
	return applications, nil
}

func (u *txUnit) InsertApplication(ctx context.Context, application *models.Application) error {
	if application.Status == "" {
		application.Status = models.ApplicationStatusPending
	}
	if application.SubmittedAt.IsZero() {
		application.SubmittedAt = time.Now().UTC()
	}
	const query = `INSERT INTO applications (pet_id, applicant_id, reason, status, submitted_at)
	VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := u.tx.GetContext(ctx, &application.ID, query,
		application.PetID, application.ApplicantID, application.Reason,
		application.Status, application.SubmittedAt); err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (u *txUnit) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus, reviewedAt *time.Time, reviewedBy *string) error {
	const query = `UPDATE applications SET status = $1, reviewed_at = COALESCE($2, reviewed_at), reviewed_by = COALESCE($3, reviewed_by) WHERE id = $4`
	if _, err := u.tx.ExecContext(ctx, query, status, reviewedAt, reviewedBy, id); err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	return nil
}

const adoptionColumns = "id, pet_id, application_id, applicant_id, adopted_at, returned_at, return_reason, status, notes"

func (u *txUnit) GetAdoptionForUpdate(ctx context.Context, id int64) (*models.Adoption, error) {
	query := fmt.Sprintf("SELECT %s FROM adoption_history WHERE id = $1 FOR UPDATE", adoptionColumns)
	var adoption models.Adoption
	if err := u.tx.GetContext(ctx, &adoption, query, id); err != nil {
		return nil, err
	}
	return &adoption, nil
}

func (u *txUnit) HasAdoptionWithStatus(ctx context.Context, petID int64, statuses ...models.AdoptionStatus) (bool, error) {
	if len(statuses) == 0 {
		return false, nil
	}
	placeholders := make([]string, len(statuses))
	args := make([]interface{}, 0, len(statuses)+1)
	args = append(args, petID)
	for i, status := range statuses {
		args = append(args, status)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM adoption_history WHERE pet_id = $1 AND status IN (%s))",
		strings.Join(placeholders, ","),
	)
	var exists bool
	if err := u.tx.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("check adoption status: %w", err)
	}
	return exists, nil
}

func (u *txUnit) InsertAdoption(ctx context.Context, adoption *models.Adoption) error {
	if adoption.Status == "" {
		adoption.Status = models.AdoptionStatusPendingPickup
	}
	if adoption.AdoptedAt.IsZero() {
		adoption.AdoptedAt = time.Now().UTC()
	}
	const query = `INSERT INTO adoption_history (pet_id, application_id, applicant_id, adopted_at, status, notes)
	VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := u.tx.GetContext(ctx, &adoption.ID, query,
		adoption.PetID, adoption.ApplicationID, adoption.ApplicantID,
		adoption.AdoptedAt, adoption.Status, adoption.Notes); err != nil {
		return fmt.Errorf("insert adoption: %w", err)
	}
	return nil
}

func (u *txUnit) UpdateAdoption(ctx context.Context, adoption *models.Adoption) error {
	const query = `UPDATE adoption_history
	SET status = $1, returned_at = $2, return_reason = $3, notes = $4
	WHERE id = $5`
	if _, err := u.tx.ExecContext(ctx, query,
		adoption.Status, adoption.ReturnedAt, adoption.ReturnReason, adoption.Notes, adoption.ID); err != nil {
		return fmt.Errorf("update adoption: %w", err)
	}
	return nil
}
