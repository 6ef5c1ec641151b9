package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"

	"wanderlust/internal/domain"
	"wanderlust/internal/repository"
)

const tripColumns = `id, title, description, image, distance, duration, location, difficulty, author_id, stops, likes, share_count, created_at`

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// stopRecord is the JSONB shape of an embedded stop.
type stopRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Location    string   `json:"location,omitempty"`
	Position    int      `json:"position"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

func encodeStops(stops []domain.Stop) ([]byte, error) {
	records := make([]stopRecord, 0, len(stops))
	for _, s := range stops {
		records = append(records, stopRecord{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Image:       s.Image,
			Location:    s.Location,
			Position:    s.Position,
			Lat:         s.Lat,
			Lng:         s.Lng,
		})
	}
	return json.Marshal(records)
}

func decodeStops(tripID string, data []byte) ([]domain.Stop, error) {
	var records []stopRecord
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	}

	stops := make([]domain.Stop, 0, len(records))
	for _, rec := range records {
		stops = append(stops, domain.Stop{
			ID:          rec.ID,
			TripID:      tripID,
			Name:        rec.Name,
			Description: rec.Description,
			Image:       rec.Image,
			Location:    rec.Location,
			Position:    rec.Position,
			Lat:         rec.Lat,
			Lng:         rec.Lng,
		})
	}
	return stops, nil
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, title, description, image, distance, duration, location, difficulty, author_id, stops, likes, share_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	stops, err := encodeStops(trip.Stops)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query,
		trip.ID,
		trip.Title,
		trip.Description,
		trip.Image,
		trip.Distance,
		trip.Duration,
		trip.Location,
		trip.Difficulty,
		trip.AuthorID,
		string(stops),
		pq.Array(nonNil(trip.Likes)),
		trip.ShareCount,
		trip.CreatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return scanTrip(r.q.QueryRowContext(ctx, query, id))
}

// GetAll retrieves all trips, newest first.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// GetByAuthor retrieves the trips of one author, newest first.
func (r *TripRepository) GetByAuthor(ctx context.Context, authorID string) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE author_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, authorID)
}

// GetByIDs retrieves the trips with the given ids, newest first.
func (r *TripRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Trip, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = ANY($1) ORDER BY created_at DESC`
	return r.list(ctx, query, pq.Array(ids))
}

// CountByAuthor returns the number of trips written by authorID.
func (r *TripRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE author_id = $1`, authorID).Scan(&count)
	return count, err
}

// Update replaces the editable fields and the stop list of a trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET title = $1, description = $2, image = $3, distance = $4, duration = $5, location = $6, difficulty = $7, stops = $8
		WHERE id = $9
	`

	stops, err := encodeStops(trip.Stops)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query,
		trip.Title,
		trip.Description,
		trip.Image,
		trip.Distance,
		trip.Duration,
		trip.Location,
		trip.Difficulty,
		string(stops),
		trip.ID,
	)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

// Delete removes a trip.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

// SetLike adds or removes userID from the like set and returns the like count.
func (r *TripRepository) SetLike(ctx context.Context, tripID, userID string, liked bool) (int, error) {
	var query string
	if liked {
		query = `
			UPDATE trips
			SET likes = CASE WHEN $1 = ANY(likes) THEN likes ELSE array_append(likes, $1) END
			WHERE id = $2
			RETURNING cardinality(likes)
		`
	} else {
		query = `UPDATE trips SET likes = array_remove(likes, $1) WHERE id = $2 RETURNING cardinality(likes)`
	}

	var count int
	err := r.q.QueryRowContext(ctx, query, userID, tripID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	return count, err
}

// IncrementShare bumps the share counter and returns the new value.
func (r *TripRepository) IncrementShare(ctx context.Context, tripID string) (int, error) {
	query := `UPDATE trips SET share_count = share_count + 1 WHERE id = $1 RETURNING share_count`

	var count int
	err := r.q.QueryRowContext(ctx, query, tripID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	return count, err
}

func (r *TripRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Trip, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var stops []byte
	var likes pq.StringArray

	err := row.Scan(
		&trip.ID,
		&trip.Title,
		&trip.Description,
		&trip.Image,
		&trip.Distance,
		&trip.Duration,
		&trip.Location,
		&trip.Difficulty,
		&trip.AuthorID,
		&stops,
		&likes,
		&trip.ShareCount,
		&trip.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	trip.Stops, err = decodeStops(trip.ID, stops)
	if err != nil {
		return nil, err
	}
	trip.Likes = []string(likes)

	return &trip, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
