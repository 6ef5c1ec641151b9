package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"wanderlust/internal/domain"
	"wanderlust/internal/repository"
)

type ratingDocument struct {
	ID        string    `bson:"_id"`
	TripID    string    `bson:"tripId"`
	UserID    string    `bson:"userId,omitempty"`
	Score     float64   `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d *ratingDocument) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:        d.ID,
		TripID:    d.TripID,
		UserID:    d.UserID,
		Score:     d.Score,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

// RatingRepository is a MongoDB implementation of repository.RatingRepository.
type RatingRepository struct {
	coll *mongo.Collection
}

// NewRatingRepository creates a new MongoDB rating repository.
func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{coll: db.Collection(ratingsCollection)}
}

// Create persists a new rating.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	_, err := r.coll.InsertOne(ctx, ratingDocument{
		ID:        rating.ID,
		TripID:    rating.TripID,
		UserID:    rating.UserID,
		Score:     rating.Score,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
	})
	return translateErr(err)
}

// GetByID retrieves a rating by ID.
func (r *RatingRepository) GetByID(ctx context.Context, id string) (*domain.Rating, error) {
	var doc ratingDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translateErr(err)
	}
	return doc.toDomain(), nil
}

// ListByTrips retrieves the ratings of the given trips, newest first.
func (r *RatingRepository) ListByTrips(ctx context.Context, tripIDs []string) ([]*domain.Rating, error) {
	if len(tripIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"tripId": bson.M{"$in": tripIDs}}, newestFirst())
	if err != nil {
		return nil, err
	}

	var docs []ratingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ratings := make([]*domain.Rating, 0, len(docs))
	for i := range docs {
		ratings = append(ratings, docs[i].toDomain())
	}
	return ratings, nil
}

// Delete removes a rating.
func (r *RatingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByTrip removes every rating of a trip.
func (r *RatingRepository) DeleteByTrip(ctx context.Context, tripID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"tripId": tripID})
	return err
}

type commentDocument struct {
	ID        string    `bson:"_id"`
	TripID    string    `bson:"tripId"`
	UserID    string    `bson:"userId,omitempty"`
	Text      string    `bson:"comment"`
	CreatedAt time.Time `bson:"createdAt"`
}

// CommentRepository is a MongoDB implementation of repository.CommentRepository.
type CommentRepository struct {
	coll *mongo.Collection
}

// NewCommentRepository creates a new MongoDB comment repository.
func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(commentsCollection)}
}

// Create persists a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	_, err := r.coll.InsertOne(ctx, commentDocument{
		ID:        comment.ID,
		TripID:    comment.TripID,
		UserID:    comment.UserID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
	return translateErr(err)
}

// ListByTrips retrieves the comments of the given trips, newest first.
func (r *CommentRepository) ListByTrips(ctx context.Context, tripIDs []string) ([]*domain.Comment, error) {
	if len(tripIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"tripId": bson.M{"$in": tripIDs}}, newestFirst())
	if err != nil {
		return nil, err
	}

	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	comments := make([]*domain.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, &domain.Comment{
			ID:        d.ID,
			TripID:    d.TripID,
			UserID:    d.UserID,
			Text:      d.Text,
			CreatedAt: d.CreatedAt,
		})
	}
	return comments, nil
}

// DeleteByTrip removes every comment of a trip.
func (r *CommentRepository) DeleteByTrip(ctx context.Context, tripID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"tripId": tripID})
	return err
}

// Ensure interfaces are satisfied.
var (
	_ repository.RatingRepository  = (*RatingRepository)(nil)
	_ repository.CommentRepository = (*CommentRepository)(nil)
)
