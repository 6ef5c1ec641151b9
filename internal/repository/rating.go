package repository

import (
	"context"

	"wanderlust/internal/domain"
)

// RatingRepository defines the persistence operations for ratings.
type RatingRepository interface {
	// Create persists a new rating.
	Create(ctx context.Context, rating *domain.Rating) error

	// GetByID retrieves a rating by ID.
	GetByID(ctx context.Context, id string) (*domain.Rating, error)

	// ListByTrips retrieves the ratings of the given trips, newest first.
	ListByTrips(ctx context.Context, tripIDs []string) ([]*domain.Rating, error)

	// Delete removes a rating.
	Delete(ctx context.Context, id string) error

	// DeleteByTrip removes every rating of a trip.
	DeleteByTrip(ctx context.Context, tripID string) error
}

// CommentRepository defines the persistence operations for comments.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByTrips retrieves the comments of the given trips, newest first.
	ListByTrips(ctx context.Context, tripIDs []string) ([]*domain.Comment, error)

	// DeleteByTrip removes every comment of a trip.
	DeleteByTrip(ctx context.Context, tripID string) error
}
