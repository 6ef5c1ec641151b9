package repository

import (
	"context"

	"wanderlust/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create adds a new user. Returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by lower-cased email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByIDs retrieves the users with the given ids. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error)

	// UpdateProfile persists name, username, bio and avatar.
	UpdateProfile(ctx context.Context, user *domain.User) error

	// SetLikedTrip adds or removes tripID from the user's liked set.
	SetLikedTrip(ctx context.Context, userID, tripID string, liked bool) error

	// SetSavedTrip adds or removes tripID from the user's saved set.
	SetSavedTrip(ctx context.Context, userID, tripID string, saved bool) error

	// PullTrip removes tripID from every user's liked and saved sets.
	PullTrip(ctx context.Context, tripID string) error
}
