package redis

import (
	"context"

	"wanderlust/internal/mirror"
)

// AuthorCacheInterface defines the author card cache operations.
type AuthorCacheInterface interface {
	GetAuthorsBatch(ctx context.Context, userIDs []string) (map[string]*CachedAuthor, []string, error)
	SetAuthorsBatch(ctx context.Context, authors []*CachedAuthor) error
	InvalidateAuthor(ctx context.Context, userID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ AuthorCacheInterface = (*CacheStore)(nil)
	_ mirror.Store         = (*MirrorStore)(nil)
)
