package domain

import "time"

// Difficulty represents how demanding a road trip is.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyHard     Difficulty = "Hard"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyHard:
		return true
	}
	return false
}

// Trip represents a road trip and its embedded stops.
// Average rating and like count are derived on read and never stored.
type Trip struct {
	ID          string
	Title       string
	Description string
	Image       string
	Distance    float64 // kilometers
	Duration    float64 // days
	Location    string
	Difficulty  Difficulty
	AuthorID    string
	Stops       []Stop
	Likes       []string // ids of users who liked the trip
	ShareCount  int
	CreatedAt   time.Time
}

// LikedBy reports whether userID is in the trip's like set.
func (t *Trip) LikedBy(userID string) bool {
	return userID != "" && containsID(t.Likes, userID)
}

// Stop represents an ordered waypoint within a trip.
type Stop struct {
	ID          string
	TripID      string
	Name        string
	Description string
	Image       string
	Location    string
	Position    int      // 1-based
	Lat         *float64 // nil when coordinates are unknown
	Lng         *float64
}
