package service

import (
	"context"
	"log"

	"wanderlust/internal/domain"
	internalRedis "wanderlust/internal/redis"
	"wanderlust/internal/repository"
)

// AuthorCache is the optional cache in front of author lookups.
type AuthorCache interface {
	GetAuthorsBatch(ctx context.Context, userIDs []string) (map[string]*internalRedis.CachedAuthor, []string, error)
	SetAuthorsBatch(ctx context.Context, authors []*internalRedis.CachedAuthor) error
	InvalidateAuthor(ctx context.Context, userID string) error
}

// AuthorDirectory resolves user ids to public author cards in batches.
type AuthorDirectory struct {
	userRepo repository.UserRepository
	cache    AuthorCache
}

// NewAuthorDirectory creates a new AuthorDirectory. cache may be nil.
func NewAuthorDirectory(userRepo repository.UserRepository, cache AuthorCache) *AuthorDirectory {
	return &AuthorDirectory{userRepo: userRepo, cache: cache}
}

// Resolve returns the cards of the given users keyed by id.
// Ids that no longer resolve are absent from the result.
func (d *AuthorDirectory) Resolve(ctx context.Context, userIDs []string) (map[string]domain.Author, error) {
	ids := uniqueNonEmpty(userIDs)
	authors := make(map[string]domain.Author, len(ids))
	if len(ids) == 0 {
		return authors, nil
	}

	missing := ids
	if d.cache != nil {
		hits, miss, err := d.cache.GetAuthorsBatch(ctx, ids)
		if err != nil {
			log.Printf("author cache read failed: %v", err)
			miss = ids
		}
		for id, c := range hits {
			authors[id] = domain.Author{ID: c.ID, Username: c.Username, Name: c.Name, Avatar: c.Avatar}
		}
		missing = miss
	}
	if len(missing) == 0 {
		return authors, nil
	}

	users, err := d.userRepo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	fill := make([]*internalRedis.CachedAuthor, 0, len(users))
	for _, u := range users {
		card := u.AuthorCard()
		authors[u.ID] = card
		fill = append(fill, &internalRedis.CachedAuthor{
			ID:       card.ID,
			Username: card.Username,
			Name:     card.Name,
			Avatar:   card.Avatar,
		})
	}

	if d.cache != nil && len(fill) > 0 {
		if err := d.cache.SetAuthorsBatch(ctx, fill); err != nil {
			log.Printf("author cache write failed: %v", err)
		}
	}

	return authors, nil
}

// Invalidate drops the cached card of userID after a profile change.
func (d *AuthorDirectory) Invalidate(ctx context.Context, userID string) {
	if d.cache == nil {
		return
	}
	if err := d.cache.InvalidateAuthor(ctx, userID); err != nil {
		log.Printf("author cache invalidation failed for %s: %v", userID, err)
	}
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
