package tests

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wanderlust/internal/domain"
	"wanderlust/internal/mirror"
	"wanderlust/internal/seed"
	"wanderlust/internal/service"
)

const testSecret = "test-secret"

// env wires every service over in-memory repositories.
type env struct {
	users    *MockUserRepository
	trips    *MockTripRepository
	ratings  *MockRatingRepository
	comments *MockCommentRepository
	assets   *MockAssetStore
	store    *mirror.MemoryStore
	mirror   *mirror.Mirror

	tokens        *service.TokenIssuer
	directory     *service.AuthorDirectory
	notifications *service.NotificationService
	auth          *service.AuthService
	tripService   *service.TripService
	gateway       *service.TripGateway
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		users:    NewMockUserRepository(),
		trips:    NewMockTripRepository(),
		ratings:  NewMockRatingRepository(),
		comments: NewMockCommentRepository(),
		assets:   NewMockAssetStore(),
		store:    mirror.NewMemoryStore(),
	}
	e.mirror = mirror.New(e.store, mirror.DefaultKey)
	e.tokens = service.NewTokenIssuer(testSecret, time.Hour)
	e.directory = service.NewAuthorDirectory(e.users, nil)
	e.notifications = service.NewNotificationService()
	e.auth = service.NewAuthService(e.users, e.trips, e.tokens, e.assets, e.directory, bcrypt.MinCost)
	normalizer := service.NewNormalizer(e.users, e.ratings, e.comments, e.directory)
	e.tripService = service.NewTripService(e.trips, e.users, e.ratings, e.comments, normalizer, e.notifications)
	e.gateway = service.NewTripGateway(e.tripService, seed.Default(), e.mirror, e.users)
	return e
}

// register creates an account and returns its id.
func (e *env) register(t *testing.T, email string) string {
	t.Helper()
	result, err := e.auth.Register(context.Background(), email, "password123")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return result.User.ID
}

// createTrip stores a trip written by authorID and returns its id.
func (e *env) createTrip(t *testing.T, authorID, title string, stops ...service.StopInput) string {
	t.Helper()
	snap, err := e.tripService.CreateTrip(context.Background(), authorID, service.TripInput{
		Title:      title,
		Distance:   100,
		Duration:   2,
		Difficulty: domain.DifficultyEasy,
		Stops:      stops,
	})
	if err != nil {
		t.Fatalf("create trip %q: %v", title, err)
	}
	return snap.ID
}

func ptr[T any](v T) *T { return &v }
