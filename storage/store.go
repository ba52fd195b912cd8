package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore is the asset-store boundary used by the course content engine.
// Save returns an opaque reference; the caller never inspects its format.
type FileStore interface {
	Save(filename string, src io.Reader) (string, error)
	Delete(ref string) error
}

// LocalStore keeps assets on the local filesystem under a root directory.
// References are filenames relative to the root.
type LocalStore struct {
	Root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

func (s *LocalStore) Save(filename string, src io.Reader) (string, error) {
	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return "", err
	}

	// Create a unique filename, keeping the original extension
	ext := filepath.Ext(filename)
	ref := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.Root, ref))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return ref, nil
}

func (s *LocalStore) Delete(ref string) error {
	if ref == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, ref))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// FileURL maps an asset reference to the public path it is served from.
func FileURL(ref string) string {
	if ref == "" {
		return ""
	}
	return "/uploads/" + ref
}
