package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage persists uploaded bytes and hands back a retrievable URL. The
// API only ever consumes this interface; swapping the disk backend for an
// object store is a deployment concern.
type Storage interface {
	Save(name string, r io.Reader) (key string, url string, err error)
	Delete(key string) error
}

var Default Storage

// DiskStorage keeps uploads under a local directory served by the router
// at /uploads.
type DiskStorage struct {
	dir     string
	baseURL string
}

func NewDiskStorage(dir, baseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	return &DiskStorage{dir: dir, baseURL: baseURL}, nil
}

func (s *DiskStorage) Save(name string, r io.Reader) (string, string, error) {
	key := uuid.NewString() + filepath.Ext(name)

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	return key, s.baseURL + "/uploads/" + key, nil
}

func (s *DiskStorage) Delete(key string) error {
	err := os.Remove(filepath.Join(s.dir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Dir exposes the uploads directory for static serving.
func (s *DiskStorage) Dir() string {
	return s.dir
}
