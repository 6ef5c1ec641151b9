package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wanderlust/internal/domain"
	"wanderlust/internal/repository"
)

// TripService handles stored trips and their engagement.
type TripService struct {
	tripRepo            repository.TripRepository
	userRepo            repository.UserRepository
	ratingRepo          repository.RatingRepository
	commentRepo         repository.CommentRepository
	normalizer          *Normalizer
	notificationService *NotificationService
	now                 func() time.Time
}

// NewTripService creates a new TripService.
func NewTripService(
	tripRepo repository.TripRepository,
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
	commentRepo repository.CommentRepository,
	normalizer *Normalizer,
	notificationService *NotificationService,
) *TripService {
	return &TripService{
		tripRepo:            tripRepo,
		userRepo:            userRepo,
		ratingRepo:          ratingRepo,
		commentRepo:         commentRepo,
		normalizer:          normalizer,
		notificationService: notificationService,
		now:                 time.Now,
	}
}

// StopInput contains the client-supplied fields of a stop.
type StopInput struct {
	Name        string
	Description string
	Image       string
	Location    string
	Position    int
	Lat         *float64
	Lng         *float64
}

// TripInput contains the parameters for creating a trip.
type TripInput struct {
	Title       string
	Description string
	Image       string
	Distance    float64
	Duration    float64
	Location    string
	Difficulty  domain.Difficulty
	Stops       []StopInput
}

// TripPatch contains the fields to change on a trip. Nil fields are kept;
// a non-nil Stops replaces the whole list.
type TripPatch struct {
	Title       *string
	Description *string
	Image       *string
	Distance    *float64
	Duration    *float64
	Location    *string
	Difficulty  *domain.Difficulty
	Stops       *[]StopInput
}

// CreateTrip stores a new trip written by userID.
func (s *TripService) CreateTrip(ctx context.Context, userID string, in TripInput) (*domain.TripSnapshot, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyModerate
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, difficulty)
	}

	if in.Distance < 0 || in.Duration < 0 {
		return nil, fmt.Errorf("%w: distance and duration cannot be negative", ErrInvalidInput)
	}

	trip := &domain.Trip{
		ID:          domain.NewID(),
		Title:       title,
		Description: in.Description,
		Image:       in.Image,
		Distance:    in.Distance,
		Duration:    in.Duration,
		Location:    in.Location,
		Difficulty:  difficulty,
		AuthorID:    user.ID,
		Likes:       []string{},
		CreatedAt:   s.now(),
	}

	stops, err := buildStops(in.Stops)
	if err != nil {
		return nil, err
	}
	trip.Stops = domain.NormalizeStops(trip.ID, stops)

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	return s.normalizer.Snapshot(ctx, trip, user.ID)
}

// ListTrips returns every stored trip, newest first.
func (s *TripService) ListTrips(ctx context.Context, viewerID string) ([]domain.TripSnapshot, error) {
	trips, err := s.tripRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Snapshots(ctx, trips, viewerID)
}

// ListTripsByAuthor returns the stored trips written by authorID, newest first.
func (s *TripService) ListTripsByAuthor(ctx context.Context, authorID, viewerID string) ([]domain.TripSnapshot, error) {
	if !domain.IsStoredID(authorID) {
		return []domain.TripSnapshot{}, nil
	}
	trips, err := s.tripRepo.GetByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Snapshots(ctx, trips, viewerID)
}

// ListSavedTrips returns the stored trips userID has saved, newest first.
// Saved ids that do not name a stored trip are skipped.
func (s *TripService) ListSavedTrips(ctx context.Context, userID string) ([]domain.TripSnapshot, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(user.SavedTrips))
	for _, id := range user.SavedTrips {
		if domain.IsStoredID(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []domain.TripSnapshot{}, nil
	}

	trips, err := s.tripRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Snapshots(ctx, trips, user.ID)
}

// GetTrip returns the snapshot of a stored trip.
func (s *TripService) GetTrip(ctx context.Context, tripID, viewerID string) (*domain.TripSnapshot, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return s.normalizer.Snapshot(ctx, trip, viewerID)
}

// UpdateTrip applies patch to a trip owned by userID.
func (s *TripService) UpdateTrip(ctx context.Context, userID, tripID string, patch TripPatch) (*domain.TripSnapshot, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		trip.Title = title
	}
	if patch.Description != nil {
		trip.Description = *patch.Description
	}
	if patch.Image != nil {
		trip.Image = *patch.Image
	}
	if patch.Distance != nil {
		if *patch.Distance < 0 {
			return nil, fmt.Errorf("%w: distance cannot be negative", ErrInvalidInput)
		}
		trip.Distance = *patch.Distance
	}
	if patch.Duration != nil {
		if *patch.Duration < 0 {
			return nil, fmt.Errorf("%w: duration cannot be negative", ErrInvalidInput)
		}
		trip.Duration = *patch.Duration
	}
	if patch.Location != nil {
		trip.Location = *patch.Location
	}
	if patch.Difficulty != nil {
		if !patch.Difficulty.Valid() {
			return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, *patch.Difficulty)
		}
		trip.Difficulty = *patch.Difficulty
	}
	if patch.Stops != nil {
		stops, err := buildStops(*patch.Stops)
		if err != nil {
			return nil, err
		}
		trip.Stops = domain.NormalizeStops(trip.ID, stops)
	}

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	return s.normalizer.Snapshot(ctx, trip, userID)
}

// DeleteTrip removes a trip owned by userID together with its ratings,
// its comments and every user's like and save of it.
func (s *TripService) DeleteTrip(ctx context.Context, userID, tripID string) error {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return err
	}

	if err := s.tripRepo.Delete(ctx, trip.ID); err != nil {
		return err
	}
	if err := s.ratingRepo.DeleteByTrip(ctx, trip.ID); err != nil {
		return fmt.Errorf("delete ratings of trip %s: %w", trip.ID, err)
	}
	if err := s.commentRepo.DeleteByTrip(ctx, trip.ID); err != nil {
		return fmt.Errorf("delete comments of trip %s: %w", trip.ID, err)
	}
	if err := s.userRepo.PullTrip(ctx, trip.ID); err != nil {
		return fmt.Errorf("pull trip %s from users: %w", trip.ID, err)
	}
	return nil
}

// AddStop inserts a stop at position (1-based); zero or out of range appends.
func (s *TripService) AddStop(ctx context.Context, userID, tripID string, in StopInput, position int) (*domain.TripSnapshot, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	stop, err := buildStop(in)
	if err != nil {
		return nil, err
	}
	trip.Stops = domain.InsertStop(trip.ID, trip.Stops, stop, position)

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return s.normalizer.Snapshot(ctx, trip, userID)
}

// RemoveStop deletes a stop and renumbers the rest.
func (s *TripService) RemoveStop(ctx context.Context, userID, tripID, stopID string) (*domain.TripSnapshot, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	stops, ok := domain.RemoveStop(trip.ID, trip.Stops, stopID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	trip.Stops = stops

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return s.normalizer.Snapshot(ctx, trip, userID)
}

// AddRating records a scored review of a stored trip.
func (s *TripService) AddRating(ctx context.Context, userID, tripID string, score float64, comment string) (*domain.RatingView, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment = strings.TrimSpace(comment)
	if !domain.ValidScore(score) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	if comment == "" {
		return nil, fmt.Errorf("%w: rating comment is required", ErrInvalidInput)
	}

	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		ID:        domain.NewID(),
		TripID:    trip.ID,
		UserID:    user.ID,
		Score:     score,
		Comment:   comment,
		CreatedAt: s.now(),
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripRated(ctx, trip, rating)
	}

	card := user.AuthorCard()
	view := ratingView(rating, map[string]domain.Author{user.ID: card})
	return &view, nil
}

// DeleteRating removes a rating written by userID.
func (s *TripService) DeleteRating(ctx context.Context, userID, ratingID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if !domain.IsStoredID(ratingID) {
		return repository.ErrNotFound
	}

	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating.UserID != userID {
		return ErrForbidden
	}
	return s.ratingRepo.Delete(ctx, rating.ID)
}

// AddComment records a plain comment on a stored trip.
func (s *TripService) AddComment(ctx context.Context, userID, tripID, text string) (*domain.CommentView, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", ErrInvalidInput)
	}

	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        domain.NewID(),
		TripID:    trip.ID,
		UserID:    user.ID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripCommented(ctx, trip, comment)
	}

	view := commentView(comment, map[string]domain.Author{user.ID: user.AuthorCard()})
	return &view, nil
}

// ToggleLike flips userID's like on a stored trip and returns the new state
// and like count. The trip's like set and the user's liked set move together.
func (s *TripService) ToggleLike(ctx context.Context, userID, tripID string) (bool, int, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return false, 0, err
	}

	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return false, 0, err
	}

	liked := !trip.LikedBy(user.ID)
	count, err := s.tripRepo.SetLike(ctx, trip.ID, user.ID, liked)
	if err != nil {
		return false, 0, err
	}
	if err := s.userRepo.SetLikedTrip(ctx, user.ID, trip.ID, liked); err != nil {
		return false, 0, err
	}

	if liked && s.notificationService != nil {
		_ = s.notificationService.NotifyTripLiked(ctx, trip, user.ID, count)
	}

	return liked, count, nil
}

// ToggleSave flips a stored trip in userID's saved set.
func (s *TripService) ToggleSave(ctx context.Context, userID, tripID string) (bool, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return false, err
	}

	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return false, err
	}

	saved := !user.HasSaved(trip.ID)
	if err := s.userRepo.SetSavedTrip(ctx, user.ID, trip.ID, saved); err != nil {
		return false, err
	}
	return saved, nil
}

// IncrementShare bumps the share counter of a stored trip. No identity is needed.
func (s *TripService) IncrementShare(ctx context.Context, tripID string) (int, error) {
	if !domain.IsStoredID(tripID) {
		return 0, repository.ErrNotFound
	}
	return s.tripRepo.IncrementShare(ctx, tripID)
}

func (s *TripService) getTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if !domain.IsStoredID(tripID) {
		return nil, repository.ErrNotFound
	}
	return s.tripRepo.GetByID(ctx, tripID)
}

func (s *TripService) ownedTrip(ctx context.Context, userID, tripID string) (*domain.Trip, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.AuthorID != userID {
		return nil, ErrForbidden
	}
	return trip, nil
}

func (s *TripService) requireUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func buildStops(in []StopInput) ([]domain.Stop, error) {
	stops := make([]domain.Stop, 0, len(in))
	for i, s := range in {
		stop, err := buildStop(s)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i+1, err)
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

func buildStop(in StopInput) (domain.Stop, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Stop{}, fmt.Errorf("%w: stop name is required", ErrInvalidInput)
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return domain.Stop{}, fmt.Errorf("%w: lat and lng must be given together", ErrInvalidInput)
	}
	if in.Lat != nil && (*in.Lat < -90 || *in.Lat > 90) {
		return domain.Stop{}, fmt.Errorf("%w: lat out of range", ErrInvalidInput)
	}
	if in.Lng != nil && (*in.Lng < -180 || *in.Lng > 180) {
		return domain.Stop{}, fmt.Errorf("%w: lng out of range", ErrInvalidInput)
	}
	return domain.Stop{
		Name:        name,
		Description: in.Description,
		Image:       in.Image,
		Location:    in.Location,
		Position:    in.Position,
		Lat:         in.Lat,
		Lng:         in.Lng,
	}, nil
}
