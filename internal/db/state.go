package db

import (
	"context"

	"github.com/jonathan/resume-wizard/internal/storage"
	"github.com/jonathan/resume-wizard/internal/types"
)

// BlobStore is the subset of DB the state persister needs
type BlobStore interface {
	LoadBlob(ctx context.Context, key string) ([]byte, error)
	SaveBlob(ctx context.Context, key string, blob []byte) error
}

// StatePersister stores the wizard state as one JSONB row, using the same blob format as the file backend
type StatePersister struct {
	Blobs BlobStore
	Key   string
}

// NewStatePersister returns a persister for key, defaulting to storage.DefaultKey
func NewStatePersister(blobs BlobStore, key string) *StatePersister {
	if key == "" {
		key = storage.DefaultKey
	}
	return &StatePersister{Blobs: blobs, Key: key}
}

// Load reads and decodes the stored state. No row returns (nil, nil).
func (p *StatePersister) Load(ctx context.Context) (*types.State, error) {
	blob, err := p.Blobs.LoadBlob(ctx, p.Key)
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, nil
	}
	return storage.Decode(p.Key, blob)
}

// Save encodes and upserts state
func (p *StatePersister) Save(ctx context.Context, state types.State) error {
	blob, err := storage.Encode(state)
	if err != nil {
		return err
	}
	return p.Blobs.SaveBlob(ctx, p.Key, blob)
}
