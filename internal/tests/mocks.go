package tests

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"wanderlust/internal/domain"
	"wanderlust/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount   int32
	PullTripCallCount int32

	// Error injection
	CreateError   error
	PullTripError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = copyUser(user)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = copyUser(user)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	return copyUser(user), nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, copyUser(u))
		}
	}
	return result, nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = user.Name
	stored.Username = user.Username
	stored.Bio = user.Bio
	stored.Avatar = user.Avatar
	return nil
}

func (m *MockUserRepository) SetLikedTrip(ctx context.Context, userID, tripID string, liked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.LikedTrips = setMember(user.LikedTrips, tripID, liked)
	return nil
}

func (m *MockUserRepository) SetSavedTrip(ctx context.Context, userID, tripID string, saved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.SavedTrips = setMember(user.SavedTrips, tripID, saved)
	return nil
}

func (m *MockUserRepository) PullTrip(ctx context.Context, tripID string) error {
	atomic.AddInt32(&m.PullTripCallCount, 1)
	if m.PullTripError != nil {
		return m.PullTripError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		u.LikedTrips = setMember(u.LikedTrips, tripID, false)
		u.SavedTrips = setMember(u.SavedTrips, tripID, false)
	}
	return nil
}

// GetUser returns user for test assertions.
func (m *MockUserRepository) GetUser(id string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return copyUser(u)
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	UpdateCallCount int32

	// Error injection
	CreateError error
	DeleteError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = copyTrip(trip)
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.trips[trip.ID]; exists {
		return repository.ErrDuplicate
	}
	m.trips[trip.ID] = copyTrip(trip)
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyTrip(trip), nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	return m.filter(func(*domain.Trip) bool { return true }), nil
}

func (m *MockTripRepository) GetByAuthor(ctx context.Context, authorID string) ([]*domain.Trip, error) {
	return m.filter(func(t *domain.Trip) bool { return t.AuthorID == authorID }), nil
}

func (m *MockTripRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Trip, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return m.filter(func(t *domain.Trip) bool { return wanted[t.ID] }), nil
}

func (m *MockTripRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	trips, _ := m.GetByAuthor(ctx, authorID)
	return len(trips), nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.trips[trip.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := copyTrip(trip)
	// Like set and share counter only move through their own operations.
	updated.Likes = stored.Likes
	updated.ShareCount = stored.ShareCount
	m.trips[trip.ID] = updated
	return nil
}

func (m *MockTripRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

func (m *MockTripRepository) SetLike(ctx context.Context, tripID, userID string, liked bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[tripID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	trip.Likes = setMember(trip.Likes, userID, liked)
	return len(trip.Likes), nil
}

func (m *MockTripRepository) IncrementShare(ctx context.Context, tripID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[tripID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	trip.ShareCount++
	return trip.ShareCount, nil
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

func (m *MockTripRepository) filter(keep func(*domain.Trip) bool) []*domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		if keep(t) {
			result = append(result, copyTrip(t))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// ──────────────────────────────────────────────
// MOCK RATING REPOSITORY
// ──────────────────────────────────────────────

// MockRatingRepository is a mock implementation of RatingRepository.
type MockRatingRepository struct {
	mu      sync.RWMutex
	ratings map[string]*domain.Rating

	// Error injection
	DeleteByTripError error
}

// NewMockRatingRepository creates a new mock rating repository.
func NewMockRatingRepository() *MockRatingRepository {
	return &MockRatingRepository{
		ratings: make(map[string]*domain.Rating),
	}
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *rating
	m.ratings[rating.ID] = &copy
	return nil
}

func (m *MockRatingRepository) GetByID(ctx context.Context, id string) (*domain.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rating, ok := m.ratings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *rating
	return &copy, nil
}

func (m *MockRatingRepository) ListByTrips(ctx context.Context, tripIDs []string) ([]*domain.Rating, error) {
	wanted := make(map[string]bool, len(tripIDs))
	for _, id := range tripIDs {
		wanted[id] = true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Rating, 0)
	for _, r := range m.ratings {
		if wanted[r.TripID] {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockRatingRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ratings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.ratings, id)
	return nil
}

func (m *MockRatingRepository) DeleteByTrip(ctx context.Context, tripID string) error {
	if m.DeleteByTripError != nil {
		return m.DeleteByTripError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.ratings {
		if r.TripID == tripID {
			delete(m.ratings, id)
		}
	}
	return nil
}

// CountForTrip returns how many ratings reference tripID.
func (m *MockRatingRepository) CountForTrip(tripID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.ratings {
		if r.TripID == tripID {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────
// MOCK COMMENT REPOSITORY
// ──────────────────────────────────────────────

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mu       sync.RWMutex
	comments map[string]*domain.Comment
}

// NewMockCommentRepository creates a new mock comment repository.
func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		comments: make(map[string]*domain.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *comment
	m.comments[comment.ID] = &copy
	return nil
}

func (m *MockCommentRepository) ListByTrips(ctx context.Context, tripIDs []string) ([]*domain.Comment, error) {
	wanted := make(map[string]bool, len(tripIDs))
	for _, id := range tripIDs {
		wanted[id] = true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Comment, 0)
	for _, c := range m.comments {
		if wanted[c.TripID] {
			copy := *c
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockCommentRepository) DeleteByTrip(ctx context.Context, tripID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.comments {
		if c.TripID == tripID {
			delete(m.comments, id)
		}
	}
	return nil
}

// CountForTrip returns how many comments reference tripID.
func (m *MockCommentRepository) CountForTrip(tripID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.comments {
		if c.TripID == tripID {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────
// MOCK ASSET STORE
// ──────────────────────────────────────────────

// MockAssetStore keeps uploaded files in memory.
type MockAssetStore struct {
	mu    sync.Mutex
	files map[string][]byte

	// Error injection
	PutError error
}

// NewMockAssetStore creates a new mock asset store.
func NewMockAssetStore() *MockAssetStore {
	return &MockAssetStore{files: make(map[string][]byte)}
}

func (m *MockAssetStore) Put(ctx context.Context, folder, ext string, data []byte) (string, error) {
	if m.PutError != nil {
		return "", m.PutError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	url := fmt.Sprintf("/uploads/%s/%d%s", folder, len(m.files)+1, ext)
	m.files[url] = append([]byte(nil), data...)
	return url, nil
}

// File returns the bytes stored under url.
func (m *MockAssetStore) File(url string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[url]
	return data, ok
}

// ──────────────────────────────────────────────
// HELPERS
// ──────────────────────────────────────────────

func copyUser(u *domain.User) *domain.User {
	copy := *u
	copy.SavedTrips = append([]string(nil), u.SavedTrips...)
	copy.LikedTrips = append([]string(nil), u.LikedTrips...)
	return &copy
}

func copyTrip(t *domain.Trip) *domain.Trip {
	copy := *t
	copy.Stops = append([]domain.Stop(nil), t.Stops...)
	copy.Likes = append([]string(nil), t.Likes...)
	return &copy
}

func setMember(ids []string, id string, member bool) []string {
	out := make([]string, 0, len(ids)+1)
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	if member {
		out = append(out, id)
	}
	return out
}
