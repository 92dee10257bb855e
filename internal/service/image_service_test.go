package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pawhaven/shelter-api/internal/models"
	"github.com/pawhaven/shelter-api/pkg/config"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
	"github.com/pawhaven/shelter-api/pkg/storage"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

func newTestImageService(t *testing.T, store *fakePetStore) (*ImageService, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	cfg := config.UploadsConfig{
		StorageDir:       dir,
		PublicBaseURL:    "http://localhost:8080/uploads",
		MaxFileSizeBytes: 1 << 20,
		AllowedMIMEs:     []string{"image/jpeg", "image/png", "image/webp"},
	}
	return NewImageService(store, local, nil, cfg, zap.NewNop()), dir
}

func TestImageServiceUploadStoresAndLinks(t *testing.T) {
	store := newFakePetStore()
	pet := models.Pet{Name: "Biscuit", SpeciesID: 1, Status: models.PetStatusAvailable}
	require.NoError(t, store.Create(context.Background(), &pet))
	svc, dir := newTestImageService(t, store)

	result, err := svc.Upload(context.Background(), pet.ID, multipartHeader(t, "biscuit.png", pngBytes))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(result.ImageURL, "http://localhost:8080/uploads/pets/"))
	assert.True(t, strings.HasSuffix(result.ImageURL, ".png"))

	stored := store.pets[pet.ID]
	require.NotNil(t, stored.ImageURL)
	assert.Equal(t, result.ImageURL, *stored.ImageURL)

	key := strings.TrimPrefix(result.ImageURL, "http://localhost:8080/uploads/")
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
}

func TestImageServiceUploadReplacesPreviousImage(t *testing.T) {
	store := newFakePetStore()
	pet := models.Pet{Name: "Biscuit", SpeciesID: 1, Status: models.PetStatusAvailable}
	require.NoError(t, store.Create(context.Background(), &pet))
	svc, dir := newTestImageService(t, store)

	first, err := svc.Upload(context.Background(), pet.ID, multipartHeader(t, "one.png", pngBytes))
	require.NoError(t, err)
	firstKey := strings.TrimPrefix(first.ImageURL, "http://localhost:8080/uploads/")

	_, err = svc.Upload(context.Background(), pet.ID, multipartHeader(t, "two.png", pngBytes))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(firstKey)))
	assert.True(t, os.IsNotExist(err))
}

func TestImageServiceUploadSniffsContent(t *testing.T) {
	store := newFakePetStore()
	pet := models.Pet{Name: "Biscuit", SpeciesID: 1, Status: models.PetStatusAvailable}
	require.NoError(t, store.Create(context.Background(), &pet))
	svc, _ := newTestImageService(t, store)

	header := multipartHeader(t, "sneaky.png", []byte("just plain text pretending to be an image"))
	_, err := svc.Upload(context.Background(), pet.ID, header)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "unsupported image type")
	assert.Nil(t, store.pets[pet.ID].ImageURL)
}

func TestImageServiceUploadRejectsOversizeFile(t *testing.T) {
	store := newFakePetStore()
	pet := models.Pet{Name: "Biscuit", SpeciesID: 1, Status: models.PetStatusAvailable}
	require.NoError(t, store.Create(context.Background(), &pet))
	svc, _ := newTestImageService(t, store)

	big := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 2<<20)...)
	_, err := svc.Upload(context.Background(), pet.ID, multipartHeader(t, "huge.png", big))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "maximum allowed size")
}

func TestImageServiceUploadUnknownPet(t *testing.T) {
	svc, _ := newTestImageService(t, newFakePetStore())

	_, err := svc.Upload(context.Background(), 42, multipartHeader(t, "biscuit.png", pngBytes))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
