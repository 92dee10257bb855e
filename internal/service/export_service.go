package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/internal/models"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
	"github.com/pawhaven/shelter-api/pkg/export"
	"github.com/pawhaven/shelter-api/pkg/storage"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       ExportFormat
	ExpiresAt    time.Time
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type exportStorage interface {
	Save(key string, data []byte) (string, error)
	Open(key string) (*os.File, error)
	Delete(key string) error
}

// ExportService renders the adoption history as downloadable CSV or PDF
// reports and hands out time-limited download tokens.
type ExportService struct {
	adoptions adoptionLister
	storage   exportStorage
	csv       csvRenderer
	pdf       pdfRenderer
	signer    *storage.SignedURLSigner
	metrics   *MetricsService
	apiPrefix string
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(adoptions adoptionLister, store exportStorage, signer *storage.SignedURLSigner, metrics *MetricsService, apiPrefix string, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		adoptions: adoptions,
		storage:   store,
		csv:       csv,
		pdf:       pdf,
		signer:    signer,
		metrics:   metrics,
		apiPrefix: apiPrefix,
		logger:    logger,
	}
}

// Generate builds the adoption dataset and stores the rendered export.
func (s *ExportService) Generate(ctx context.Context, filter models.AdoptionFilter, format ExportFormat) (*ExportResult, error) {
	start := time.Now()
	items, err := s.adoptions.ListAdmin(ctx, filter)
	s.metrics.ObserveDBQuery("adoption_export", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list adoptions")
	}
	dataset := buildAdoptionDataset(items)

	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, "Adoption History Report")
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format: %s", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	key := fmt.Sprintf("exports/adoptions_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
	relPath, err := s.storage.Save(key, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to sign export url")
	}

	url := fmt.Sprintf("%s/admin/adoptions/export/%s", strings.TrimRight(s.apiPrefix, "/"), token)
	s.logger.Info("export generated",
		zap.String("format", string(format)),
		zap.Int("rows", len(items)),
		zap.String("path", relPath))

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          url,
		Format:       format,
		ExpiresAt:    expiresAt,
	}, nil
}

// Open resolves a download token back to the stored file.
func (s *ExportService) Open(token string) (*os.File, string, error) {
	relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "invalid or expired download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	return file, relPath, nil
}

var adoptionExportHeaders = []string{
	"Adoption ID", "Pet ID", "Pet Name", "Applicant", "Email",
	"Status", "Adopted At", "Returned At", "Return Reason", "Notes",
}

func buildAdoptionDataset(items []dto.AdminAdoptionItem) export.Dataset {
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]string{
			"Adoption ID":   fmt.Sprintf("%d", item.ID),
			"Pet ID":        fmt.Sprintf("%d", item.PetID),
			"Pet Name":      item.PetName,
			"Applicant":     item.ApplicantName,
			"Email":         item.ApplicantEmail,
			"Status":        string(item.Status),
			"Adopted At":    item.AdoptedAt.UTC().Format(time.RFC3339),
			"Returned At":   formatOptionalTime(item.ReturnedAt),
			"Return Reason": derefString(item.ReturnReason),
			"Notes":         derefString(item.Notes),
		})
	}
	return export.Dataset{Headers: adoptionExportHeaders, Rows: rows}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
