package mirror

import (
	"context"
	"sync"
)

// DefaultKey is the key the blob is stored under when none is configured.
const DefaultKey = "wanderlust_builtin_state_v1"

// Store is the key-value capability the mirror persists its blob through.
//
// Load and Save are independent calls. The mirror performs an unlocked
// read-modify-write across them, so two writers that load the same blob
// will each save their own version and the last save wins.
type Store interface {
	// Load returns the blob stored under key, or nil when nothing is stored.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, data []byte) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Load returns a copy of the blob under key.
func (s *MemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data under key.
func (s *MemoryStore) Save(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
	return nil
}

var _ Store = (*MemoryStore)(nil)
