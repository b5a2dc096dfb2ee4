package storage

import (
	"context"
	"sync"

	"github.com/jonathan/resume-wizard/internal/types"
)

// MemoryStore keeps encoded blobs in process, keyed by storage name
type MemoryStore struct {
	Key string

	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore, defaulting the key to DefaultKey
func NewMemoryStore(key string) *MemoryStore {
	if key == "" {
		key = DefaultKey
	}
	return &MemoryStore{Key: key, blobs: make(map[string][]byte)}
}

// Load decodes the blob under Key. Nothing stored returns (nil, nil).
func (m *MemoryStore) Load(_ context.Context) (*types.State, error) {
	blob := m.Blob()
	if blob == nil {
		return nil, nil
	}
	return Decode(m.Key, blob)
}

// Save encodes state under Key
func (m *MemoryStore) Save(_ context.Context, state types.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	m.SetBlob(data)
	return nil
}

// Blob returns the raw stored bytes, or nil
func (m *MemoryStore) Blob() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blobs[m.Key]
}

// SetBlob replaces the raw stored bytes
func (m *MemoryStore) SetBlob(blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blobs == nil {
		m.blobs = make(map[string][]byte)
	}
	m.blobs[m.Key] = blob
}
