package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
)

var (
	alice = Identity{UserID: "u-alice", Username: "alice", Name: "Alice"}
	bob   = Identity{UserID: "u-bob", Username: "bob", Name: "Bob"}
)

// gatedStore holds the first n loads until all n have read the blob,
// reproducing two tabs that start from the same snapshot.
type gatedStore struct {
	*MemoryStore

	mu      sync.Mutex
	pending int
	loaded  sync.WaitGroup
}

func newGatedStore(n int) *gatedStore {
	s := &gatedStore{MemoryStore: NewMemoryStore(), pending: n}
	s.loaded.Add(n)
	return s
}

func (s *gatedStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.MemoryStore.Load(ctx, key)

	s.mu.Lock()
	gated := s.pending > 0
	if gated {
		s.pending--
	}
	s.mu.Unlock()

	if gated {
		s.loaded.Done()
		s.loaded.Wait()
	}
	return data, err
}

type failingStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (s *failingStore) Load(ctx context.Context, key string) ([]byte, error) {
	return nil, s.loadErr
}

func (s *failingStore) Save(ctx context.Context, key string, data []byte) error {
	s.saves++
	return s.saveErr
}

func TestMirror_ToggleLikeTwiceRestoresState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := New(NewMemoryStore(), "")

	liked, count, err := m.ToggleLike(ctx, alice, "eu1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !liked || count != 1 {
		t.Fatalf("expected liked with 1 like, got liked=%v count=%d", liked, count)
	}

	liked, count, err = m.ToggleLike(ctx, alice, "eu1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if liked || count != 0 {
		t.Fatalf("expected unliked with 0 likes, got liked=%v count=%d", liked, count)
	}
}

func TestMirror_LikeIsPersistedUnderTripKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	m := New(store, "")

	if _, _, err := m.ToggleLike(ctx, alice, "eu1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := store.Load(ctx, DefaultKey)
	if err != nil || data == nil {
		t.Fatalf("expected blob under %s, err=%v", DefaultKey, err)
	}

	var raw struct {
		Likes map[string][]string `json:"likes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("blob is not json: %v", err)
	}
	if got := raw.Likes["eu1"]; len(got) != 1 || got[0] != alice.UserID {
		t.Errorf("expected likes[eu1] = [%s], got %v", alice.UserID, got)
	}

	st, err := m.GetState(ctx, "eu1", alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.LikesCount != 1 || !st.LikedByMe {
		t.Errorf("expected 1 like by viewer, got %+v", st)
	}
}

func TestMirror_IdentityScopedOperationsRequireLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &failingStore{}
	m := New(store, "")
	anon := Identity{}

	if _, _, err := m.ToggleLike(ctx, anon, "eu1"); !errors.Is(err, ErrLoginRequired) {
		t.Errorf("like: expected ErrLoginRequired, got %v", err)
	}
	if _, err := m.ToggleSave(ctx, anon, "eu1"); !errors.Is(err, ErrLoginRequired) {
		t.Errorf("save: expected ErrLoginRequired, got %v", err)
	}
	if _, err := m.AddComment(ctx, anon, "eu1", "nice"); !errors.Is(err, ErrLoginRequired) {
		t.Errorf("comment: expected ErrLoginRequired, got %v", err)
	}
	if _, err := m.AddRating(ctx, anon, "eu1", 4, "nice"); !errors.Is(err, ErrLoginRequired) {
		t.Errorf("rating: expected ErrLoginRequired, got %v", err)
	}
	if store.saves != 0 {
		t.Errorf("expected no writes, got %d", store.saves)
	}
	if ErrLoginRequired.Error() != "please login first" {
		t.Errorf("unexpected message %q", ErrLoginRequired.Error())
	}
}

func TestMirror_ShareNeedsNoIdentityAndCountsEveryCall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := New(NewMemoryStore(), "")

	const n = 7
	var last int
	for i := 0; i < n; i++ {
		count, err := m.IncrementShare(ctx, "us1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != last+1 {
			t.Fatalf("expected %d, got %d", last+1, count)
		}
		last = count
	}

	st, _ := m.GetState(ctx, "us1", Identity{})
	if st.ShareCount != n {
		t.Errorf("expected %d shares, got %d", n, st.ShareCount)
	}
}

func TestMirror_RatingsAverageAndOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := New(NewMemoryStore(), "")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	if _, err := m.AddRating(ctx, alice, "au1", 5, "stunning"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.AddRating(ctx, bob, "au1", 4, "long drive"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st, err := m.GetState(ctx, "au1", Identity{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.AverageRating != 4.5 {
		t.Errorf("expected average 4.5, got %v", st.AverageRating)
	}
	if len(st.Ratings) != 2 || st.Ratings[0].User.ID != bob.UserID {
		t.Errorf("expected newest rating first, got %+v", st.Ratings)
	}

	empty, _ := m.GetState(ctx, "as1", Identity{})
	if empty.AverageRating != 0 || len(empty.Ratings) != 0 {
		t.Errorf("expected empty state, got %+v", empty)
	}
}

func TestMirror_RejectsInvalidRatingsAndComments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := New(NewMemoryStore(), "")

	cases := []struct {
		name    string
		score   float64
		comment string
	}{
		{"below range", 0.5, "meh"},
		{"above range", 5.5, "wow"},
		{"two decimals", 4.25, "precise"},
		{"blank comment", 4, "   "},
	}
	for _, tc := range cases {
		if _, err := m.AddRating(ctx, alice, "eu2", tc.score, tc.comment); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("%s: expected ErrInvalidRating, got %v", tc.name, err)
		}
	}

	if _, err := m.AddComment(ctx, alice, "eu2", ""); !errors.Is(err, ErrEmptyComment) {
		t.Errorf("expected ErrEmptyComment, got %v", err)
	}

	c, err := m.AddComment(ctx, alice, "eu2", "  lovely coast  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Text != "lovely coast" || c.User.Username != "alice" {
		t.Errorf("unexpected comment %+v", c)
	}
}

func TestMirror_SaveIsScopedPerUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := New(NewMemoryStore(), "")

	saved, err := m.ToggleSave(ctx, alice, "us2")
	if err != nil || !saved {
		t.Fatalf("expected saved, got %v err=%v", saved, err)
	}

	st, _ := m.GetState(ctx, "us2", bob)
	if st.SavedByMe {
		t.Error("save by alice leaked to bob")
	}
	st, _ = m.GetState(ctx, "us2", alice)
	if !st.SavedByMe {
		t.Error("expected alice to see her save")
	}

	ids, _ := m.SavedTrips(ctx, alice)
	if len(ids) != 1 || ids[0] != "us2" {
		t.Errorf("expected [us2], got %v", ids)
	}
}

func TestMirror_ConcurrentSavesLoseAnUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newGatedStore(2)
	tabA := New(store, "")
	tabB := New(store, "")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := tabA.ToggleSave(ctx, alice, "eu1"); err != nil {
			t.Errorf("tab A: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := tabB.ToggleSave(ctx, bob, "eu1"); err != nil {
			t.Errorf("tab B: %v", err)
		}
	}()
	wg.Wait()

	a, _ := tabA.GetState(ctx, "eu1", alice)
	b, _ := tabA.GetState(ctx, "eu1", bob)
	if a.SavedByMe == b.SavedByMe {
		t.Fatalf("expected exactly one save to survive, got alice=%v bob=%v", a.SavedByMe, b.SavedByMe)
	}
}

func TestMirror_LoadFailurePropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("storage offline")
	m := New(&failingStore{loadErr: boom}, "")

	if _, err := m.IncrementShare(context.Background(), "eu1"); !errors.Is(err, boom) {
		t.Errorf("expected load error, got %v", err)
	}
	if _, err := m.GetState(context.Background(), "eu1", alice); !errors.Is(err, boom) {
		t.Errorf("expected load error, got %v", err)
	}
}

func TestMirror_SaveFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	store := &failingStore{saveErr: errors.New("quota exceeded")}
	m := New(store, "")

	liked, count, err := m.ToggleLike(context.Background(), alice, "eu1")
	if err != nil {
		t.Fatalf("expected success despite failed save, got %v", err)
	}
	if !liked || count != 1 {
		t.Errorf("unexpected result liked=%v count=%d", liked, count)
	}
	if store.saves != 1 {
		t.Errorf("expected one save attempt, got %d", store.saves)
	}
}

func TestMirror_CorruptBlobReadsAsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Save(ctx, "custom", []byte("{not json"))
	m := New(store, "custom")

	st, err := m.GetState(ctx, "eu1", alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.LikesCount != 0 || st.ShareCount != 0 || len(st.Comments) != 0 {
		t.Errorf("expected empty state, got %+v", st)
	}

	count, err := m.IncrementShare(ctx, "eu1")
	if err != nil || count != 1 {
		t.Errorf("expected fresh counter 1, got %d err=%v", count, err)
	}
}
