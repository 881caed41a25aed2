package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	catalogapp "github.com/rahmimuaz/Evolexxlk/internal/application/catalog"
)

// Ensure LocalObjectStorage implements ObjectStorageService
var _ catalogapp.ObjectStorageService = (*LocalObjectStorage)(nil)

// LocalObjectStorage stores objects on the local filesystem. Used for
// development when no S3-compatible backend is configured.
type LocalObjectStorage struct {
	baseDir   string
	publicURL string
}

// NewLocalObjectStorage creates a filesystem-backed store rooted at baseDir
func NewLocalObjectStorage(baseDir, publicURL string) (*LocalObjectStorage, error) {
	if baseDir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if publicURL == "" {
		publicURL = "/uploads"
	}
	return &LocalObjectStorage{
		baseDir:   baseDir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// Upload stores data under storageKey
func (s *LocalObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	path, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// Delete removes the object stored under storageKey. Deleting a missing
// object is not an error.
func (s *LocalObjectStorage) Delete(_ context.Context, storageKey string) error {
	path, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PublicURL returns the URL the stored object is served from
func (s *LocalObjectStorage) PublicURL(storageKey string) string {
	return s.publicURL + "/" + strings.TrimPrefix(storageKey, "/")
}

// resolve maps a storage key to a path under baseDir, rejecting keys
// that would escape it
func (s *LocalObjectStorage) resolve(storageKey string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}
	cleaned := filepath.Clean("/" + storageKey)
	if strings.Contains(cleaned, "..") {
		return "", errors.New("invalid storage key")
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
