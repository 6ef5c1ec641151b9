package repository

import (
	"context"

	"wanderlust/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip with its embedded stops.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves all trips, newest first.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// GetByAuthor retrieves the trips written by authorID, newest first.
	GetByAuthor(ctx context.Context, authorID string) ([]*domain.Trip, error)

	// GetByIDs retrieves the trips with the given ids, newest first.
	// Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Trip, error)

	// CountByAuthor returns how many trips authorID has written.
	CountByAuthor(ctx context.Context, authorID string) (int, error)

	// Update replaces the editable fields and the whole stop list.
	Update(ctx context.Context, trip *domain.Trip) error

	// Delete removes a trip.
	Delete(ctx context.Context, id string) error

	// SetLike adds or removes userID from the trip's like set and
	// returns the resulting like count.
	SetLike(ctx context.Context, tripID, userID string, liked bool) (int, error)

	// IncrementShare atomically bumps the share counter and returns the new value.
	IncrementShare(ctx context.Context, tripID string) (int, error)
}
