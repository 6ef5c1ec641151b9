package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wanderlust/internal/domain"
	"wanderlust/internal/repository"
)

type stopDocument struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name"`
	Description string   `bson:"description,omitempty"`
	Image       string   `bson:"image,omitempty"`
	Location    string   `bson:"location,omitempty"`
	Position    int      `bson:"position"`
	Lat         *float64 `bson:"lat,omitempty"`
	Lng         *float64 `bson:"lng,omitempty"`
}

type tripDocument struct {
	ID          string         `bson:"_id"`
	Title       string         `bson:"title"`
	Description string         `bson:"description"`
	Image       string         `bson:"image"`
	Distance    float64        `bson:"distance"`
	Duration    float64        `bson:"duration"`
	Location    string         `bson:"location"`
	Difficulty  string         `bson:"difficulty"`
	AuthorID    string         `bson:"authorId"`
	Stops       []stopDocument `bson:"stops"`
	Likes       []string       `bson:"likes"`
	ShareCount  int            `bson:"shareCount"`
	CreatedAt   time.Time      `bson:"createdAt"`
}

func toStopDocuments(stops []domain.Stop) []stopDocument {
	docs := make([]stopDocument, 0, len(stops))
	for _, s := range stops {
		docs = append(docs, stopDocument{
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
	return docs
}

func (d *tripDocument) toDomain() *domain.Trip {
	stops := make([]domain.Stop, 0, len(d.Stops))
	for _, s := range d.Stops {
		stops = append(stops, domain.Stop{
			ID:          s.ID,
			TripID:      d.ID,
			Name:        s.Name,
			Description: s.Description,
			Image:       s.Image,
			Location:    s.Location,
			Position:    s.Position,
			Lat:         s.Lat,
			Lng:         s.Lng,
		})
	}

	return &domain.Trip{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Image:       d.Image,
		Distance:    d.Distance,
		Duration:    d.Duration,
		Location:    d.Location,
		Difficulty:  domain.Difficulty(d.Difficulty),
		AuthorID:    d.AuthorID,
		Stops:       stops,
		Likes:       d.Likes,
		ShareCount:  d.ShareCount,
		CreatedAt:   d.CreatedAt,
	}
}

// TripRepository is a MongoDB implementation of repository.TripRepository.
type TripRepository struct {
	coll *mongo.Collection
}

// NewTripRepository creates a new MongoDB trip repository.
func NewTripRepository(db *mongo.Database) *TripRepository {
	return &TripRepository{coll: db.Collection(tripsCollection)}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	doc := tripDocument{
		ID:          trip.ID,
		Title:       trip.Title,
		Description: trip.Description,
		Image:       trip.Image,
		Distance:    trip.Distance,
		Duration:    trip.Duration,
		Location:    trip.Location,
		Difficulty:  string(trip.Difficulty),
		AuthorID:    trip.AuthorID,
		Stops:       toStopDocuments(trip.Stops),
		Likes:       nonNil(trip.Likes),
		ShareCount:  trip.ShareCount,
		CreatedAt:   trip.CreatedAt,
	}
	_, err := r.coll.InsertOne(ctx, doc)
	return translateErr(err)
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	var doc tripDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translateErr(err)
	}
	return doc.toDomain(), nil
}

// GetAll retrieves all trips, newest first.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	return r.find(ctx, bson.M{})
}

// GetByAuthor retrieves the trips of one author, newest first.
func (r *TripRepository) GetByAuthor(ctx context.Context, authorID string) ([]*domain.Trip, error) {
	return r.find(ctx, bson.M{"authorId": authorID})
}

// GetByIDs retrieves the trips with the given ids, newest first.
func (r *TripRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Trip, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// CountByAuthor returns the number of trips written by authorID.
func (r *TripRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"authorId": authorID})
	return int(n), err
}

// Update replaces the editable fields and the stop list of a trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	update := bson.M{"$set": bson.M{
		"title":       trip.Title,
		"description": trip.Description,
		"image":       trip.Image,
		"distance":    trip.Distance,
		"duration":    trip.Duration,
		"location":    trip.Location,
		"difficulty":  string(trip.Difficulty),
		"stops":       toStopDocuments(trip.Stops),
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": trip.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a trip.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetLike adds or removes userID from the like set and returns the like count.
func (r *TripRepository) SetLike(ctx context.Context, tripID, userID string, liked bool) (int, error) {
	var doc tripDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": tripID},
		membershipUpdate("likes", userID, liked),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, translateErr(err)
	}
	return len(doc.Likes), nil
}

// IncrementShare bumps the share counter and returns the new value.
func (r *TripRepository) IncrementShare(ctx context.Context, tripID string) (int, error) {
	var doc tripDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": tripID},
		bson.M{"$inc": bson.M{"shareCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, translateErr(err)
	}
	return doc.ShareCount, nil
}

func (r *TripRepository) find(ctx context.Context, filter bson.M) ([]*domain.Trip, error) {
	cursor, err := r.coll.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}

	var docs []tripDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	trips := make([]*domain.Trip, 0, len(docs))
	for i := range docs {
		trips = append(trips, docs[i].toDomain())
	}
	return trips, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
