package service

import (
	"context"
	"errors"
	"sort"

	"wanderlust/internal/domain"
	"wanderlust/internal/repository"
)

// Normalizer turns stored trips into snapshots: authors resolved, stops
// ordered, engagement attached and derived fields computed.
type Normalizer struct {
	userRepo    repository.UserRepository
	ratingRepo  repository.RatingRepository
	commentRepo repository.CommentRepository
	directory   *AuthorDirectory
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer(
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
	commentRepo repository.CommentRepository,
	directory *AuthorDirectory,
) *Normalizer {
	return &Normalizer{
		userRepo:    userRepo,
		ratingRepo:  ratingRepo,
		commentRepo: commentRepo,
		directory:   directory,
	}
}

// Snapshot normalizes a single trip for viewerID.
func (n *Normalizer) Snapshot(ctx context.Context, trip *domain.Trip, viewerID string) (*domain.TripSnapshot, error) {
	snaps, err := n.Snapshots(ctx, []*domain.Trip{trip}, viewerID)
	if err != nil {
		return nil, err
	}
	return &snaps[0], nil
}

// Snapshots normalizes trips for viewerID, preserving their order.
// An empty viewerID, or one that no longer resolves, is treated as anonymous.
func (n *Normalizer) Snapshots(ctx context.Context, trips []*domain.Trip, viewerID string) ([]domain.TripSnapshot, error) {
	if len(trips) == 0 {
		return []domain.TripSnapshot{}, nil
	}

	tripIDs := make([]string, 0, len(trips))
	userIDs := make([]string, 0, len(trips))
	for _, t := range trips {
		tripIDs = append(tripIDs, t.ID)
		userIDs = append(userIDs, t.AuthorID)
	}

	ratings, err := n.ratingRepo.ListByTrips(ctx, tripIDs)
	if err != nil {
		return nil, err
	}
	comments, err := n.commentRepo.ListByTrips(ctx, tripIDs)
	if err != nil {
		return nil, err
	}

	ratingsByTrip := make(map[string][]*domain.Rating, len(trips))
	for _, r := range ratings {
		ratingsByTrip[r.TripID] = append(ratingsByTrip[r.TripID], r)
		userIDs = append(userIDs, r.UserID)
	}
	commentsByTrip := make(map[string][]*domain.Comment, len(trips))
	for _, c := range comments {
		commentsByTrip[c.TripID] = append(commentsByTrip[c.TripID], c)
		userIDs = append(userIDs, c.UserID)
	}

	authors, err := n.directory.Resolve(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	viewer, err := n.viewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	snaps := make([]domain.TripSnapshot, 0, len(trips))
	for _, t := range trips {
		snaps = append(snaps, buildSnapshot(t, ratingsByTrip[t.ID], commentsByTrip[t.ID], authors, viewer))
	}
	return snaps, nil
}

func (n *Normalizer) viewer(ctx context.Context, viewerID string) (*domain.User, error) {
	if viewerID == "" {
		return nil, nil
	}
	user, err := n.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func buildSnapshot(
	trip *domain.Trip,
	ratings []*domain.Rating,
	comments []*domain.Comment,
	authors map[string]domain.Author,
	viewer *domain.User,
) domain.TripSnapshot {
	stops := append([]domain.Stop(nil), trip.Stops...)
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Position < stops[j].Position })

	sort.SliceStable(ratings, func(i, j int) bool { return ratings[i].CreatedAt.After(ratings[j].CreatedAt) })
	sort.SliceStable(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })

	scores := make([]float64, 0, len(ratings))
	ratingViews := make([]domain.RatingView, 0, len(ratings))
	for _, r := range ratings {
		scores = append(scores, r.Score)
		ratingViews = append(ratingViews, ratingView(r, authors))
	}

	commentViews := make([]domain.CommentView, 0, len(comments))
	for _, c := range comments {
		commentViews = append(commentViews, commentView(c, authors))
	}

	snap := domain.TripSnapshot{
		ID:            trip.ID,
		Title:         trip.Title,
		Description:   trip.Description,
		Image:         trip.Image,
		Distance:      trip.Distance,
		Duration:      trip.Duration,
		Location:      trip.Location,
		Difficulty:    trip.Difficulty,
		Author:        lookupAuthor(authors, trip.AuthorID),
		Stops:         stops,
		Ratings:       ratingViews,
		Comments:      commentViews,
		AverageRating: domain.AverageRating(scores),
		LikesCount:    len(trip.Likes),
		ShareCount:    trip.ShareCount,
		CreatedAt:     trip.CreatedAt,
	}
	if viewer != nil {
		snap.LikedByMe = trip.LikedBy(viewer.ID)
		snap.SavedByMe = viewer.HasSaved(trip.ID)
	}
	return snap
}

func ratingView(r *domain.Rating, authors map[string]domain.Author) domain.RatingView {
	return domain.RatingView{
		ID:        r.ID,
		TripID:    r.TripID,
		Author:    lookupAuthor(authors, r.UserID),
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func commentView(c *domain.Comment, authors map[string]domain.Author) domain.CommentView {
	return domain.CommentView{
		ID:        c.ID,
		TripID:    c.TripID,
		Author:    lookupAuthor(authors, c.UserID),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func lookupAuthor(authors map[string]domain.Author, id string) *domain.Author {
	a, ok := authors[id]
	if !ok {
		return nil
	}
	return &a
}
