package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// MirrorStore keeps the demo engagement blob in a single Redis string.
// Load and Save are plain GET and SET, so concurrent writers overwrite each other.
type MirrorStore struct {
	client *redis.Client
	prefix string
}

// NewMirrorStore creates a MirrorStore. prefix is prepended to every key.
func NewMirrorStore(client *redis.Client, prefix string) *MirrorStore {
	return &MirrorStore{client: client, prefix: prefix}
}

// Load returns the blob under key, or nil when the key is absent.
func (s *MirrorStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Save replaces the blob under key. The blob never expires.
func (s *MirrorStore) Save(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, s.prefix+key, data, 0).Err()
}
