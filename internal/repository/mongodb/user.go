package mongodb

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"wanderlust/internal/domain"
	"wanderlust/internal/repository"
)

type userDocument struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	Username     string    `bson:"username"`
	Name         string    `bson:"name"`
	Bio          string    `bson:"bio"`
	Avatar       string    `bson:"avatar"`
	Followers    int       `bson:"followers"`
	Following    int       `bson:"following"`
	SavedTrips   []string  `bson:"savedTrips"`
	LikedTrips   []string  `bson:"likedTrips"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Username:     d.Username,
		Name:         d.Name,
		Bio:          d.Bio,
		Avatar:       d.Avatar,
		Followers:    d.Followers,
		Following:    d.Following,
		SavedTrips:   d.SavedTrips,
		LikedTrips:   d.LikedTrips,
		CreatedAt:    d.CreatedAt,
	}
}

// UserRepository implements repository.UserRepository on MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := userDocument{
		ID:           user.ID,
		Email:        strings.ToLower(user.Email),
		PasswordHash: user.PasswordHash,
		Username:     user.Username,
		Name:         user.Name,
		Bio:          user.Bio,
		Avatar:       user.Avatar,
		Followers:    user.Followers,
		Following:    user.Following,
		SavedTrips:   nonNil(user.SavedTrips),
		LikedTrips:   nonNil(user.LikedTrips),
		CreatedAt:    user.CreatedAt,
	}
	_, err := r.coll.InsertOne(ctx, doc)
	return translateErr(err)
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail retrieves a user by email, ignoring case.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

// GetByIDs retrieves the users with the given ids.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

// UpdateProfile persists the editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	update := bson.M{"$set": bson.M{
		"name":     user.Name,
		"username": user.Username,
		"bio":      user.Bio,
		"avatar":   user.Avatar,
	}}
	return r.updateOne(ctx, user.ID, update)
}

// SetLikedTrip adds or removes tripID from the user's liked set.
func (r *UserRepository) SetLikedTrip(ctx context.Context, userID, tripID string, liked bool) error {
	return r.updateOne(ctx, userID, membershipUpdate("likedTrips", tripID, liked))
}

// SetSavedTrip adds or removes tripID from the user's saved set.
func (r *UserRepository) SetSavedTrip(ctx context.Context, userID, tripID string, saved bool) error {
	return r.updateOne(ctx, userID, membershipUpdate("savedTrips", tripID, saved))
}

// PullTrip removes tripID from every user's liked and saved sets.
func (r *UserRepository) PullTrip(ctx context.Context, tripID string) error {
	filter := bson.M{"$or": bson.A{
		bson.M{"savedTrips": tripID},
		bson.M{"likedTrips": tripID},
	}}
	update := bson.M{"$pull": bson.M{"savedTrips": tripID, "likedTrips": tripID}}

	_, err := r.coll.UpdateMany(ctx, filter, update)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateErr(err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func membershipUpdate(field, id string, member bool) bson.M {
	if member {
		return bson.M{"$addToSet": bson.M{field: id}}
	}
	return bson.M{"$pull": bson.M{field: id}}
}

// Ensure UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)
