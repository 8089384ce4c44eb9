package document

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage holds uploads and rasterized pages while a request is processed
type Storage interface {
	// Save writes data under name and returns the key to read or delete it
	Save(name string, data []byte) (string, error)

	// Get reads a saved file
	Get(key string) ([]byte, error)

	// Delete removes a saved file
	Delete(key string) error
}

// LocalStorage implements the Storage interface in a local directory
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the upload directory if needed
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// path keeps keys inside the base directory
func (l *LocalStorage) path(key string) string {
	return filepath.Join(l.basePath, filepath.Base(key))
}

// Save writes a file to the upload directory
func (l *LocalStorage) Save(name string, data []byte) (string, error) {
	key := filepath.Base(name)
	if err := os.WriteFile(l.path(key), data, 0o600); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return key, nil
}

// Get reads a file from the upload directory
func (l *LocalStorage) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(l.path(key))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes a file from the upload directory
func (l *LocalStorage) Delete(key string) error {
	if err := os.Remove(l.path(key)); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
