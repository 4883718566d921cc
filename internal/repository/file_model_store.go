package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	domrepo "FinCast/internal/domain/repository"
)

// FileModelStore keeps the model blob on local disk.
type FileModelStore struct {
	path string
}

var _ domrepo.ModelStore = (*FileModelStore)(nil)

func NewFileModelStore(path string) *FileModelStore {
	return &FileModelStore{path: path}
}

// Save writes the blob through a temp file and rename so readers never see a
// partial model.
func (s *FileModelStore) Save(_ context.Context, blob []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".model-*")
	if err != nil {
		return fmt.Errorf("create temp model: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close model: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename model: %w", err)
	}
	return nil
}

func (s *FileModelStore) Load(_ context.Context) ([]byte, bool, error) {
	blob, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read model: %w", err)
	}
	return blob, true, nil
}
