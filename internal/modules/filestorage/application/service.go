package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/anuragc10/academiapro/internal/modules/filestorage/domain"
)

// FileService provides high-level file operations
type FileService struct {
	storage domain.FileStorage
}

// NewFileService creates a new file service
func NewFileService(storage domain.FileStorage) *FileService {
	return &FileService{
		storage: storage,
	}
}

// Upload stores the content under a generated unique key inside folder and
// returns the public URL and the key.
func (s *FileService) Upload(ctx context.Context, file io.Reader, originalName, contentType, folder string) (string, string, error) {
	ext := filepath.Ext(originalName)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	url, err := s.storage.UploadFile(ctx, key, file, contentType)
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

// Delete deletes a file
func (s *FileService) Delete(ctx context.Context, key string) error {
	return s.storage.DeleteFile(ctx, key)
}

// GetKeyFromURL extracts the storage key from a URL
func (s *FileService) GetKeyFromURL(fileURL string) (string, error) {
	return s.storage.GetKeyFromURL(fileURL)
}
