package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-wizard/internal/types"
)

// FileStore keeps the blob in <Dir>/<Key>.json
type FileStore struct {
	Dir string
	Key string
}

// NewFileStore returns a FileStore, defaulting the key to DefaultKey
func NewFileStore(dir, key string) *FileStore {
	if key == "" {
		key = DefaultKey
	}
	return &FileStore{Dir: dir, Key: key}
}

// Path returns the file the blob lives in
func (f *FileStore) Path() string {
	return filepath.Join(f.Dir, f.Key+".json")
}

// Load reads and decodes the blob. A missing file returns (nil, nil).
func (f *FileStore) Load(_ context.Context) (*types.State, error) {
	data, err := os.ReadFile(f.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	return Decode(f.Key, data)
}

// Save encodes state and replaces the file atomically
func (f *FileStore) Save(_ context.Context, state types.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, f.Key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, f.Path()); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
