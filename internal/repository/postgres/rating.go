package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"wanderlust/internal/domain"
	"wanderlust/internal/repository"
)

// RatingRepository is a PostgreSQL implementation of repository.RatingRepository.
type RatingRepository struct {
	q Querier
}

// NewRatingRepository creates a new PostgreSQL rating repository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{q: db}
}

// Create persists a new rating.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, trip_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.q.ExecContext(ctx, query,
		rating.ID,
		rating.TripID,
		nullString(rating.UserID),
		rating.Score,
		rating.Comment,
		rating.CreatedAt,
	)
	return err
}

// GetByID retrieves a rating by ID.
func (r *RatingRepository) GetByID(ctx context.Context, id string) (*domain.Rating, error) {
	query := `SELECT id, trip_id, user_id, rating, comment, created_at FROM ratings WHERE id = $1`
	return scanRating(r.q.QueryRowContext(ctx, query, id))
}

// ListByTrips retrieves the ratings of the given trips, newest first.
func (r *RatingRepository) ListByTrips(ctx context.Context, tripIDs []string) ([]*domain.Rating, error) {
	if len(tripIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, trip_id, user_id, rating, comment, created_at
		FROM ratings WHERE trip_id = ANY($1)
		ORDER BY created_at DESC
	`
	rows, err := r.q.QueryContext(ctx, query, pq.Array(tripIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*domain.Rating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}

	return ratings, rows.Err()
}

// Delete removes a rating.
func (r *RatingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

// DeleteByTrip removes every rating of a trip.
func (r *RatingRepository) DeleteByTrip(ctx context.Context, tripID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM ratings WHERE trip_id = $1`, tripID)
	return err
}

func scanRating(row rowScanner) (*domain.Rating, error) {
	var rating domain.Rating
	var userID sql.NullString

	err := row.Scan(&rating.ID, &rating.TripID, &userID, &rating.Score, &rating.Comment, &rating.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	rating.UserID = userID.String
	return &rating, nil
}

// CommentRepository is a PostgreSQL implementation of repository.CommentRepository.
type CommentRepository struct {
	q Querier
}

// NewCommentRepository creates a new PostgreSQL comment repository.
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{q: db}
}

// Create persists a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `INSERT INTO comments (id, trip_id, user_id, comment, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.ExecContext(ctx, query,
		comment.ID,
		comment.TripID,
		nullString(comment.UserID),
		comment.Text,
		comment.CreatedAt,
	)
	return err
}

// ListByTrips retrieves the comments of the given trips, newest first.
func (r *CommentRepository) ListByTrips(ctx context.Context, tripIDs []string) ([]*domain.Comment, error) {
	if len(tripIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, trip_id, user_id, comment, created_at
		FROM comments WHERE trip_id = ANY($1)
		ORDER BY created_at DESC
	`
	rows, err := r.q.QueryContext(ctx, query, pq.Array(tripIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var comment domain.Comment
		var userID sql.NullString
		if err := rows.Scan(&comment.ID, &comment.TripID, &userID, &comment.Text, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comment.UserID = userID.String
		comments = append(comments, &comment)
	}

	return comments, rows.Err()
}

// DeleteByTrip removes every comment of a trip.
func (r *CommentRepository) DeleteByTrip(ctx context.Context, tripID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM comments WHERE trip_id = $1`, tripID)
	return err
}

// Ensure interfaces are satisfied.
var (
	_ repository.RatingRepository  = (*RatingRepository)(nil)
	_ repository.CommentRepository = (*CommentRepository)(nil)
)
