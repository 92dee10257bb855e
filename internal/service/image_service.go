package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pawhaven/shelter-api/internal/dto"
	"github.com/pawhaven/shelter-api/pkg/config"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
	"github.com/pawhaven/shelter-api/pkg/storage"
)

// ImageService validates and stores pet photos, then binds the resulting
// URL to the pet row.
type ImageService struct {
	pets    petStore
	store   *storage.LocalStorage
	cache   *CacheService
	cfg     config.UploadsConfig
	logger  *zap.Logger
	allowed map[string]string
}

// NewImageService constructs the service. Allowed MIME types map to the
// file extension used on disk.
func NewImageService(pets petStore, store *storage.LocalStorage, cache *CacheService, cfg config.UploadsConfig, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]string, len(cfg.AllowedMIMEs))
	for _, mime := range cfg.AllowedMIMEs {
		switch mime {
		case "image/jpeg":
			allowed[mime] = ".jpg"
		case "image/png":
			allowed[mime] = ".png"
		case "image/webp":
			allowed[mime] = ".webp"
		}
	}
	return &ImageService{pets: pets, store: store, cache: cache, cfg: cfg, logger: logger, allowed: allowed}
}

// Upload stores the photo for a pet and records its public URL. The file's
// real content type is sniffed, the declared header alone is not trusted.
func (s *ImageService) Upload(ctx context.Context, petID int64, header *multipart.FileHeader) (*dto.ImageUploadResponse, error) {
	if header.Size > s.cfg.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file exceeds the maximum allowed size of %d bytes", s.cfg.MaxFileSizeBytes))
	}

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", petID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pet")
	}

	file, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to open uploaded file")
	}
	defer file.Close() //nolint:errcheck

	sniff := make([]byte, 512)
	n, err := file.Read(sniff)
	if err != nil && err != io.EOF {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to read uploaded file")
	}
	contentType := http.DetectContentType(sniff[:n])
	ext, ok := s.allowed[normalizeMIME(contentType)]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("unsupported image type: %s (allowed: %s)", contentType, strings.Join(s.cfg.AllowedMIMEs, ", ")))
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to rewind uploaded file")
	}

	key := fmt.Sprintf("pets/%s%s", uuid.NewString(), ext)
	if _, err := s.store.SaveStream(key, file); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store image")
	}

	url := s.publicURL(key)
	previous := pet.ImageURL
	pet.ImageURL = &url
	if err := s.pets.Update(ctx, pet); err != nil {
		_ = s.store.Delete(key)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("pet %d not found", petID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pet image")
	}

	if previous != nil {
		if oldKey, ok := s.keyFromURL(*previous); ok {
			if err := s.store.Delete(oldKey); err != nil {
				s.logger.Warn("failed to remove replaced pet image", zap.String("key", oldKey), zap.Error(err))
			}
		}
	}

	s.cache.InvalidatePets(ctx)
	s.logger.Info("pet image uploaded", zap.Int64("petId", petID), zap.String("key", key))
	return &dto.ImageUploadResponse{ImageURL: url, Message: "Image uploaded successfully"}, nil
}

func (s *ImageService) publicURL(key string) string {
	base := strings.TrimSuffix(s.cfg.PublicBaseURL, "/")
	return base + "/" + key
}

// keyFromURL recovers the storage key from a URL we issued earlier.
// Foreign URLs (pets created with an external imageUrl) are left alone.
func (s *ImageService) keyFromURL(url string) (string, bool) {
	base := strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/"
	if !strings.HasPrefix(url, base) {
		return "", false
	}
	return strings.TrimPrefix(url, base), true
}

// normalizeMIME strips any parameters DetectContentType may append, e.g.
// "text/plain; charset=utf-8".
func normalizeMIME(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}
