package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"wanderlust/internal/domain"
	"wanderlust/internal/repository"
)

const userColumns = `id, email, password_hash, username, name, bio, avatar, followers, following, saved_trips, liked_trips, created_at`

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, username, name, bio, avatar, followers, following, saved_trips, liked_trips, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.Username,
		user.Name,
		user.Bio,
		user.Avatar,
		user.Followers,
		user.Following,
		pq.Array(nonNil(user.SavedTrips)),
		pq.Array(nonNil(user.LikedTrips)),
		user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email, ignoring case.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.q.QueryRowContext(ctx, query, strings.ToLower(email)))
}

// GetByIDs retrieves the users with the given ids.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.q.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// UpdateProfile persists the editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET name = $1, username = $2, bio = $3, avatar = $4 WHERE id = $5`

	result, err := r.q.ExecContext(ctx, query, user.Name, user.Username, user.Bio, user.Avatar, user.ID)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

// SetLikedTrip adds or removes tripID from the user's liked set.
func (r *UserRepository) SetLikedTrip(ctx context.Context, userID, tripID string, liked bool) error {
	return r.setMembership(ctx, "liked_trips", userID, tripID, liked)
}

// SetSavedTrip adds or removes tripID from the user's saved set.
func (r *UserRepository) SetSavedTrip(ctx context.Context, userID, tripID string, saved bool) error {
	return r.setMembership(ctx, "saved_trips", userID, tripID, saved)
}

// setMembership is a single-row update, so concurrent toggles never duplicate an id.
func (r *UserRepository) setMembership(ctx context.Context, column, userID, tripID string, member bool) error {
	var query string
	if member {
		query = `UPDATE users SET ` + column + ` = CASE WHEN $1 = ANY(` + column + `) THEN ` + column +
			` ELSE array_append(` + column + `, $1) END WHERE id = $2`
	} else {
		query = `UPDATE users SET ` + column + ` = array_remove(` + column + `, $1) WHERE id = $2`
	}

	result, err := r.q.ExecContext(ctx, query, tripID, userID)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

// PullTrip removes tripID from every user's liked and saved sets.
func (r *UserRepository) PullTrip(ctx context.Context, tripID string) error {
	query := `
		UPDATE users
		SET saved_trips = array_remove(saved_trips, $1), liked_trips = array_remove(liked_trips, $1)
		WHERE $1 = ANY(saved_trips) OR $1 = ANY(liked_trips)
	`
	_, err := r.q.ExecContext(ctx, query, tripID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var saved, liked pq.StringArray

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Username,
		&user.Name,
		&user.Bio,
		&user.Avatar,
		&user.Followers,
		&user.Following,
		&saved,
		&liked,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	user.SavedTrips = []string(saved)
	user.LikedTrips = []string(liked)
	return &user, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// Ensure UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)
