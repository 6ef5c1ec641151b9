package domain

import (
	"strings"
	"testing"
)

func TestParseTripRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want RefKind
	}{
		{"507f1f77bcf86cd799439011", RefStored},
		{"507F1F77BCF86CD799439011", RefStored},
		{"eu1", RefDemo},
		{"", RefDemo},
		{"507f1f77bcf86cd79943901", RefDemo},
		{"507f1f77bcf86cd7994390111", RefDemo},
		{"507f1f77bcf86cd79943901z", RefDemo},
		{strings.Repeat("g", 24), RefDemo},
	}

	for _, tt := range tests {
		ref := ParseTripRef(tt.id)
		if ref.Kind != tt.want {
			t.Errorf("ParseTripRef(%q) = %v, want %v", tt.id, ref.Kind, tt.want)
		}
		if ref.ID != tt.id {
			t.Errorf("ParseTripRef(%q) changed the id to %q", tt.id, ref.ID)
		}
		if ref.Stored() == ref.Demo() {
			t.Errorf("ParseTripRef(%q): stored and demo must be exclusive", tt.id)
		}
	}
}

func TestNewID_IsStored(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if !IsStoredID(id) {
			t.Fatalf("NewID returned %q which is not a stored id", id)
		}
		if seen[id] {
			t.Fatalf("NewID returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestValidScore(t *testing.T) {
	t.Parallel()

	valid := []float64{1, 1.5, 3.7, 5}
	invalid := []float64{0, 0.9, 5.1, 6, -1, 4.25, 3.333}

	for _, s := range valid {
		if !ValidScore(s) {
			t.Errorf("ValidScore(%v) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidScore(s) {
			t.Errorf("ValidScore(%v) = true, want false", s)
		}
	}
}

func TestAverageRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scores []float64
		want   float64
	}{
		{nil, 0},
		{[]float64{5}, 5},
		{[]float64{5, 4}, 4.5},
		{[]float64{5, 4, 4}, 4.3},
		{[]float64{1, 2}, 1.5},
	}

	for _, tt := range tests {
		if got := AverageRating(tt.scores); got != tt.want {
			t.Errorf("AverageRating(%v) = %v, want %v", tt.scores, got, tt.want)
		}
	}
}

func TestDifficulty_Valid(t *testing.T) {
	t.Parallel()

	for _, d := range []Difficulty{DifficultyEasy, DifficultyModerate, DifficultyHard} {
		if !d.Valid() {
			t.Errorf("%q should be valid", d)
		}
	}
	for _, d := range []Difficulty{"", "easy", "Extreme"} {
		if d.Valid() {
			t.Errorf("%q should be invalid", d)
		}
	}
}

// ──────────────────────────────────────────────
// STOPS
// ──────────────────────────────────────────────

func stopNames(stops []Stop) string {
	names := make([]string, len(stops))
	for i, s := range stops {
		names[i] = s.Name
	}
	return strings.Join(names, ",")
}

func assertNumbered(t *testing.T, tripID string, stops []Stop) {
	t.Helper()
	for i, s := range stops {
		if s.Position != i+1 {
			t.Errorf("stop %q: position %d, want %d", s.Name, s.Position, i+1)
		}
		if s.TripID != tripID {
			t.Errorf("stop %q: trip %q, want %q", s.Name, s.TripID, tripID)
		}
		if s.ID == "" {
			t.Errorf("stop %q has no id", s.Name)
		}
	}
}

func TestNormalizeStops(t *testing.T) {
	t.Parallel()

	in := []Stop{
		{Name: "c", Position: 7},
		{Name: "a"},
		{Name: "b", Position: 2, ID: "keep"},
	}
	got := NormalizeStops("trip-1", in)

	if names := stopNames(got); names != "a,b,c" {
		t.Errorf("order = %s, want a,b,c", names)
	}
	assertNumbered(t, "trip-1", got)
	if got[1].ID != "keep" {
		t.Errorf("existing id replaced with %q", got[1].ID)
	}
	if in[0].Position != 7 || in[1].TripID != "" {
		t.Error("NormalizeStops must not mutate its input")
	}

	if empty := NormalizeStops("trip-1", nil); len(empty) != 0 {
		t.Errorf("expected empty result, got %d stops", len(empty))
	}
}

func TestInsertStop(t *testing.T) {
	t.Parallel()

	base := func() []Stop {
		return NormalizeStops("t", []Stop{{Name: "a"}, {Name: "b"}, {Name: "c"}})
	}

	tests := []struct {
		position int
		want     string
	}{
		{1, "x,a,b,c"},
		{2, "a,x,b,c"},
		{4, "a,b,c,x"},
		{0, "a,b,c,x"},
		{-3, "a,b,c,x"},
		{99, "a,b,c,x"},
	}

	for _, tt := range tests {
		got := InsertStop("t", base(), Stop{Name: "x"}, tt.position)
		if names := stopNames(got); names != tt.want {
			t.Errorf("InsertStop at %d = %s, want %s", tt.position, names, tt.want)
		}
		assertNumbered(t, "t", got)
	}
}

func TestRemoveStop(t *testing.T) {
	t.Parallel()

	stops := NormalizeStops("t", []Stop{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	got, ok := RemoveStop("t", stops, stops[1].ID)
	if !ok {
		t.Fatal("expected the stop to be found")
	}
	if names := stopNames(got); names != "a,c" {
		t.Errorf("after remove = %s, want a,c", names)
	}
	assertNumbered(t, "t", got)

	same, ok := RemoveStop("t", stops, "missing")
	if ok {
		t.Error("expected missing stop to be reported")
	}
	if len(same) != 3 {
		t.Errorf("expected stops unchanged, got %d", len(same))
	}
}

// ──────────────────────────────────────────────
// USERS
// ──────────────────────────────────────────────

func TestUser_PublicHidesSecrets(t *testing.T) {
	t.Parallel()

	u := &User{
		ID:           NewID(),
		Email:        "ann@example.com",
		Username:     "ann",
		PasswordHash: "hash",
		SavedTrips:   []string{"eu1"},
		LikedTrips:   []string{"us1"},
	}

	pub := u.Public(3)
	if pub.CreatedTripsCount != 3 || pub.Username != "ann" {
		t.Errorf("unexpected public view %+v", pub)
	}
	if !u.HasSaved("eu1") || u.HasSaved("us1") {
		t.Error("HasSaved mismatch")
	}
	if !u.HasLiked("us1") || u.HasLiked("eu1") {
		t.Error("HasLiked mismatch")
	}

	card := u.AuthorCard()
	if card.ID != u.ID || card.Username != "ann" {
		t.Errorf("unexpected author card %+v", card)
	}
}

func TestTrip_LikedBy(t *testing.T) {
	t.Parallel()

	trip := &Trip{Likes: []string{"u1"}}
	if !trip.LikedBy("u1") || trip.LikedBy("u2") || trip.LikedBy("") {
		t.Error("LikedBy mismatch")
	}
}
