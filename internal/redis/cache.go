package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// AuthorCacheTTL bounds how stale a cached author card can get when an
// invalidation is missed.
const AuthorCacheTTL = 5 * time.Minute

const authorCachePrefix = "cache:author:"

// CachedAuthor represents a cached author card.
type CachedAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// GetAuthor retrieves an author card from cache. A miss returns nil, nil.
func (s *CacheStore) GetAuthor(ctx context.Context, userID string) (*CachedAuthor, error) {
	data, err := s.client.Get(ctx, authorCachePrefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var author CachedAuthor
	if err := json.Unmarshal(data, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// SetAuthor stores an author card in cache.
func (s *CacheStore) SetAuthor(ctx context.Context, author *CachedAuthor) error {
	data, err := json.Marshal(author)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, authorCachePrefix+author.ID, data, AuthorCacheTTL).Err()
}

// InvalidateAuthor removes an author card from cache.
func (s *CacheStore) InvalidateAuthor(ctx context.Context, userID string) error {
	return s.client.Del(ctx, authorCachePrefix+userID).Err()
}

// GetAuthorsBatch retrieves multiple author cards using a pipeline.
// Returns the hits keyed by user id and the ids that missed.
func (s *CacheStore) GetAuthorsBatch(ctx context.Context, userIDs []string) (map[string]*CachedAuthor, []string, error) {
	result := make(map[string]*CachedAuthor, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make(map[string]*redis.StringCmd, len(userIDs))
	for _, id := range userIDs {
		cmds[id] = pipe.Get(ctx, authorCachePrefix+id)
	}

	// Exec reports redis.Nil when any key is missing; per-command results are checked below.
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return result, userIDs, err
	}

	var missing []string
	for id, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			missing = append(missing, id)
			continue
		}

		var author CachedAuthor
		if err := json.Unmarshal(data, &author); err != nil {
			missing = append(missing, id)
			continue
		}
		result[id] = &author
	}

	return result, missing, nil
}

// SetAuthorsBatch stores multiple author cards using a pipeline.
func (s *CacheStore) SetAuthorsBatch(ctx context.Context, authors []*CachedAuthor) error {
	if len(authors) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, author := range authors {
		data, err := json.Marshal(author)
		if err != nil {
			continue
		}
		pipe.Set(ctx, authorCachePrefix+author.ID, data, AuthorCacheTTL)
	}

	_, err := pipe.Exec(ctx)
	return err
}
