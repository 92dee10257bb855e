package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
	"github.com/pawhaven/shelter-api/pkg/storage"
)

type stubAdoptionLister struct {
	items []dto.AdminAdoptionItem
	err   error
}

func (s *stubAdoptionLister) ListAdmin(ctx context.Context, filter models.AdoptionFilter) ([]dto.AdminAdoptionItem, error) {
	return s.items, s.err
}

func newTestExportService(t *testing.T, lister adoptionLister) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewExportService(lister, store, signer, nil, "/api", zap.NewNop(), nil, nil)
}

func TestExportServiceGenerateCSV(t *testing.T) {
	returned := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	reason := "Landlord does not allow pets."
	lister := &stubAdoptionLister{items: []dto.AdminAdoptionItem{
		{
			ID:             7,
			PetID:          3,
			PetName:        "Biscuit",
			ApplicantName:  "Jordan Lee",
			ApplicantEmail: "jordan.lee@example.com",
			Status:         models.AdoptionStatusReturned,
			AdoptedAt:      time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
			ReturnedAt:     &returned,
			ReturnReason:   &reason,
		},
	}}
	svc := newTestExportService(t, lister)

	result, err := svc.Generate(context.Background(), models.AdoptionFilter{}, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, ExportFormatCSV, result.Format)
	assert.Contains(t, result.URL, "/api/admin/adoptions/export/")
	assert.True(t, result.ExpiresAt.After(time.Now()))

	file, relPath, err := svc.Open(result.Token)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck
	assert.Equal(t, result.RelativePath, relPath)

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.HasPrefix(text, "Adoption ID,"))
	assert.Contains(t, text, "Biscuit")
	assert.Contains(t, text, "jordan.lee@example.com")
	assert.Contains(t, text, "2026-03-02T10:00:00Z")
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc := newTestExportService(t, &stubAdoptionLister{items: []dto.AdminAdoptionItem{{ID: 1, PetName: "Biscuit"}}})

	result, err := svc.Generate(context.Background(), models.AdoptionFilter{}, ExportFormatPDF)
	require.NoError(t, err)

	file, _, err := svc.Open(result.Token)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	header := make([]byte, 5)
	_, err = io.ReadFull(file, header)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(header))
}

func TestExportServiceGenerateUnsupportedFormat(t *testing.T) {
	svc := newTestExportService(t, &stubAdoptionLister{})

	_, err := svc.Generate(context.Background(), models.AdoptionFilter{}, ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceOpenRejectsBadToken(t *testing.T) {
	svc := newTestExportService(t, &stubAdoptionLister{})

	_, _, err := svc.Open("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
