// Package mirror holds engagement state for demo trips in a single JSON blob.
// Every mutation loads the blob, edits it and saves it back without locking.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"wanderlust/internal/domain"
)

// Mirror performs demo-trip engagement against a Store.
type Mirror struct {
	store Store
	key   string
	now   func() time.Time
}

// New creates a Mirror persisting under key. An empty key selects DefaultKey.
func New(store Store, key string) *Mirror {
	if key == "" {
		key = DefaultKey
	}
	return &Mirror{
		store: store,
		key:   key,
		now:   time.Now,
	}
}

// ToggleLike flips the viewer's like on tripID and returns the new state and count.
func (m *Mirror) ToggleLike(ctx context.Context, who Identity, tripID string) (bool, int, error) {
	if who.Anonymous() {
		return false, 0, ErrLoginRequired
	}

	b, err := m.load(ctx)
	if err != nil {
		return false, 0, err
	}

	likes, liked := toggle(b.Likes[tripID], who.UserID)
	b.Likes[tripID] = likes

	m.save(ctx, b)
	return liked, len(likes), nil
}

// ToggleSave flips tripID in the viewer's saved set.
func (m *Mirror) ToggleSave(ctx context.Context, who Identity, tripID string) (bool, error) {
	if who.Anonymous() {
		return false, ErrLoginRequired
	}

	b, err := m.load(ctx)
	if err != nil {
		return false, err
	}

	saves, saved := toggle(b.Saves[who.UserID], tripID)
	b.Saves[who.UserID] = saves

	m.save(ctx, b)
	return saved, nil
}

// IncrementShare adds one to the share counter of tripID. No identity is needed.
func (m *Mirror) IncrementShare(ctx context.Context, tripID string) (int, error) {
	b, err := m.load(ctx)
	if err != nil {
		return 0, err
	}

	b.Shares[tripID]++
	count := b.Shares[tripID]

	m.save(ctx, b)
	return count, nil
}

// AddComment prepends a comment to tripID's list.
func (m *Mirror) AddComment(ctx context.Context, who Identity, tripID, text string) (Comment, error) {
	if who.Anonymous() {
		return Comment{}, ErrLoginRequired
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, ErrEmptyComment
	}

	b, err := m.load(ctx)
	if err != nil {
		return Comment{}, err
	}

	comment := Comment{
		ID:        uuid.NewString(),
		TripID:    tripID,
		User:      authorOf(who),
		Text:      text,
		CreatedAt: m.now(),
	}
	b.Comments[tripID] = append([]Comment{comment}, b.Comments[tripID]...)

	m.save(ctx, b)
	return comment, nil
}

// AddRating prepends a rating to tripID's list.
func (m *Mirror) AddRating(ctx context.Context, who Identity, tripID string, score float64, text string) (Rating, error) {
	if who.Anonymous() {
		return Rating{}, ErrLoginRequired
	}
	text = strings.TrimSpace(text)
	if !domain.ValidScore(score) || text == "" {
		return Rating{}, ErrInvalidRating
	}

	b, err := m.load(ctx)
	if err != nil {
		return Rating{}, err
	}

	rating := Rating{
		ID:        uuid.NewString(),
		TripID:    tripID,
		User:      authorOf(who),
		Score:     score,
		Comment:   text,
		CreatedAt: m.now(),
	}
	b.Ratings[tripID] = append([]Rating{rating}, b.Ratings[tripID]...)

	m.save(ctx, b)
	return rating, nil
}

// GetState derives the engagement view of tripID for viewer.
// An anonymous viewer gets false for both membership flags.
func (m *Mirror) GetState(ctx context.Context, tripID string, viewer Identity) (State, error) {
	b, err := m.load(ctx)
	if err != nil {
		return State{}, err
	}
	return b.state(tripID, viewer), nil
}

// GetStates derives the views of several trips from a single load.
func (m *Mirror) GetStates(ctx context.Context, tripIDs []string, viewer Identity) (map[string]State, error) {
	b, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	states := make(map[string]State, len(tripIDs))
	for _, id := range tripIDs {
		states[id] = b.state(id, viewer)
	}
	return states, nil
}

// SavedTrips returns the demo trip ids the viewer has saved.
func (m *Mirror) SavedTrips(ctx context.Context, viewer Identity) ([]string, error) {
	if viewer.Anonymous() {
		return nil, nil
	}
	b, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), b.Saves[viewer.UserID]...), nil
}

func (b *blob) state(tripID string, viewer Identity) State {
	ratings := append([]Rating(nil), b.Ratings[tripID]...)
	comments := append([]Comment(nil), b.Comments[tripID]...)

	scores := make([]float64, 0, len(ratings))
	for _, r := range ratings {
		scores = append(scores, r.Score)
	}

	st := State{
		Ratings:       ratings,
		Comments:      comments,
		LikesCount:    len(b.Likes[tripID]),
		ShareCount:    b.Shares[tripID],
		AverageRating: domain.AverageRating(scores),
	}
	if !viewer.Anonymous() {
		st.LikedByMe = contains(b.Likes[tripID], viewer.UserID)
		st.SavedByMe = contains(b.Saves[viewer.UserID], tripID)
	}
	return st
}

func (m *Mirror) load(ctx context.Context) (*blob, error) {
	data, err := m.store.Load(ctx, m.key)
	if err != nil {
		return nil, fmt.Errorf("load demo state: %w", err)
	}

	b, ok := decodeBlob(data)
	if !ok {
		log.Printf("[MIRROR] unreadable state under %q, starting empty", m.key)
	}
	return b, nil
}

// save persists b. Failures are logged and dropped so the caller's
// mutation still reports success.
func (m *Mirror) save(ctx context.Context, b *blob) {
	data, err := json.Marshal(b)
	if err != nil {
		log.Printf("[MIRROR] encode state: %v", err)
		return
	}
	if err := m.store.Save(ctx, m.key, data); err != nil {
		log.Printf("[MIRROR] save state under %q: %v", m.key, err)
	}
}

func authorOf(who Identity) Author {
	return Author{
		ID:       who.UserID,
		Username: who.Username,
		Name:     who.Name,
		Avatar:   who.Avatar,
	}
}
