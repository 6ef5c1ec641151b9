package service

import (
	"context"
	"errors"

	"wanderlust/internal/domain"
	"wanderlust/internal/mirror"
	"wanderlust/internal/repository"
	"wanderlust/internal/seed"
)

// TripGateway routes trip reads and engagement by id shape: stored ids go to
// the TripService, every other id to the seed catalog merged with the mirror.
type TripGateway struct {
	trips    *TripService
	catalog  *seed.Catalog
	mirror   *mirror.Mirror
	userRepo repository.UserRepository
}

// NewTripGateway creates a new TripGateway.
func NewTripGateway(
	trips *TripService,
	catalog *seed.Catalog,
	m *mirror.Mirror,
	userRepo repository.UserRepository,
) *TripGateway {
	return &TripGateway{
		trips:    trips,
		catalog:  catalog,
		mirror:   m,
		userRepo: userRepo,
	}
}

// Get returns the snapshot of any trip, stored or demo.
func (g *TripGateway) Get(ctx context.Context, id, viewerID string) (*domain.TripSnapshot, error) {
	ref := domain.ParseTripRef(id)
	if ref.Stored() {
		return g.trips.GetTrip(ctx, ref.ID, viewerID)
	}

	who, err := g.identity(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	trip, author, ok := g.catalog.Get(ref.ID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	state, err := g.mirror.GetState(ctx, ref.ID, who)
	if err != nil {
		return nil, err
	}
	snap := demoSnapshot(trip, author, state)
	return &snap, nil
}

// ListDemoTrips returns every seed trip merged with its mirror state, newest first.
func (g *TripGateway) ListDemoTrips(ctx context.Context, viewerID string) ([]domain.TripSnapshot, error) {
	who, err := g.identity(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	ids := g.catalog.IDs()
	states, err := g.mirror.GetStates(ctx, ids, who)
	if err != nil {
		return nil, err
	}

	snaps := make([]domain.TripSnapshot, 0, len(ids))
	for _, id := range ids {
		trip, author, _ := g.catalog.Get(id)
		snaps = append(snaps, demoSnapshot(trip, author, states[id]))
	}
	return snaps, nil
}

// ListSavedTrips returns the stored trips the viewer saved followed by the
// demo trips saved in the mirror.
func (g *TripGateway) ListSavedTrips(ctx context.Context, viewerID string) ([]domain.TripSnapshot, error) {
	stored, err := g.trips.ListSavedTrips(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	who, err := g.identity(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	ids, err := g.mirror.SavedTrips(ctx, who)
	if err != nil {
		return nil, err
	}

	known := make([]string, 0, len(ids))
	for _, id := range ids {
		if g.catalog.Has(id) {
			known = append(known, id)
		}
	}
	if len(known) == 0 {
		return stored, nil
	}

	states, err := g.mirror.GetStates(ctx, known, who)
	if err != nil {
		return nil, err
	}
	for _, id := range known {
		trip, author, _ := g.catalog.Get(id)
		stored = append(stored, demoSnapshot(trip, author, states[id]))
	}
	return stored, nil
}

// Rate adds a rating to any trip.
func (g *TripGateway) Rate(ctx context.Context, id, viewerID string, score float64, comment string) (*domain.RatingView, error) {
	ref := domain.ParseTripRef(id)
	if ref.Stored() {
		return g.trips.AddRating(ctx, viewerID, ref.ID, score, comment)
	}

	who, err := g.demoIdentity(ctx, ref, viewerID)
	if err != nil {
		return nil, err
	}
	rating, err := g.mirror.AddRating(ctx, who, ref.ID, score, comment)
	if err != nil {
		return nil, err
	}
	view := demoRatingView(rating)
	return &view, nil
}

// Comment adds a comment to any trip.
func (g *TripGateway) Comment(ctx context.Context, id, viewerID, text string) (*domain.CommentView, error) {
	ref := domain.ParseTripRef(id)
	if ref.Stored() {
		return g.trips.AddComment(ctx, viewerID, ref.ID, text)
	}

	who, err := g.demoIdentity(ctx, ref, viewerID)
	if err != nil {
		return nil, err
	}
	comment, err := g.mirror.AddComment(ctx, who, ref.ID, text)
	if err != nil {
		return nil, err
	}
	view := demoCommentView(comment)
	return &view, nil
}

// ToggleLike flips the viewer's like on any trip.
func (g *TripGateway) ToggleLike(ctx context.Context, id, viewerID string) (bool, int, error) {
	ref := domain.ParseTripRef(id)
	if ref.Stored() {
		return g.trips.ToggleLike(ctx, viewerID, ref.ID)
	}

	who, err := g.demoIdentity(ctx, ref, viewerID)
	if err != nil {
		return false, 0, err
	}
	return g.mirror.ToggleLike(ctx, who, ref.ID)
}

// ToggleSave flips any trip in the viewer's saved set.
func (g *TripGateway) ToggleSave(ctx context.Context, id, viewerID string) (bool, error) {
	ref := domain.ParseTripRef(id)
	if ref.Stored() {
		return g.trips.ToggleSave(ctx, viewerID, ref.ID)
	}

	who, err := g.demoIdentity(ctx, ref, viewerID)
	if err != nil {
		return false, err
	}
	return g.mirror.ToggleSave(ctx, who, ref.ID)
}

// Share bumps the share counter of any trip.
func (g *TripGateway) Share(ctx context.Context, id string) (int, error) {
	ref := domain.ParseTripRef(id)
	if ref.Stored() {
		return g.trips.IncrementShare(ctx, ref.ID)
	}

	if !g.catalog.Has(ref.ID) {
		return 0, repository.ErrNotFound
	}
	return g.mirror.IncrementShare(ctx, ref.ID)
}

// demoIdentity checks the demo trip exists and resolves the acting user.
// An anonymous identity is returned as is; the mirror rejects it.
func (g *TripGateway) demoIdentity(ctx context.Context, ref domain.TripRef, viewerID string) (mirror.Identity, error) {
	if !g.catalog.Has(ref.ID) {
		return mirror.Identity{}, repository.ErrNotFound
	}
	return g.identity(ctx, viewerID)
}

// identity builds the mirror identity of viewerID. Unknown users are anonymous.
func (g *TripGateway) identity(ctx context.Context, viewerID string) (mirror.Identity, error) {
	if viewerID == "" {
		return mirror.Identity{}, nil
	}
	user, err := g.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return mirror.Identity{}, nil
		}
		return mirror.Identity{}, err
	}
	return mirror.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Avatar:   user.Avatar,
	}, nil
}

func demoSnapshot(trip domain.Trip, author *domain.Author, state mirror.State) domain.TripSnapshot {
	ratings := make([]domain.RatingView, 0, len(state.Ratings))
	for _, r := range state.Ratings {
		ratings = append(ratings, demoRatingView(r))
	}
	comments := make([]domain.CommentView, 0, len(state.Comments))
	for _, c := range state.Comments {
		comments = append(comments, demoCommentView(c))
	}

	return domain.TripSnapshot{
		ID:            trip.ID,
		Title:         trip.Title,
		Description:   trip.Description,
		Image:         trip.Image,
		Distance:      trip.Distance,
		Duration:      trip.Duration,
		Location:      trip.Location,
		Difficulty:    trip.Difficulty,
		Author:        author,
		Stops:         trip.Stops,
		Ratings:       ratings,
		Comments:      comments,
		AverageRating: state.AverageRating,
		LikesCount:    state.LikesCount,
		ShareCount:    state.ShareCount,
		LikedByMe:     state.LikedByMe,
		SavedByMe:     state.SavedByMe,
		Demo:          true,
		CreatedAt:     trip.CreatedAt,
	}
}

func demoRatingView(r mirror.Rating) domain.RatingView {
	return domain.RatingView{
		ID:        r.ID,
		TripID:    r.TripID,
		Author:    demoAuthor(r.User),
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func demoCommentView(c mirror.Comment) domain.CommentView {
	return domain.CommentView{
		ID:        c.ID,
		TripID:    c.TripID,
		Author:    demoAuthor(c.User),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func demoAuthor(a mirror.Author) *domain.Author {
	if a.ID == "" {
		return nil
	}
	return &domain.Author{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Avatar:   a.Avatar,
	}
}
