package domain

import "time"

// User represents a registered account.
type User struct {
	ID           string
	Email        string // always stored lower-cased
	PasswordHash string
	Username     string
	Name         string
	Bio          string
	Avatar       string
	Followers    int
	Following    int
	SavedTrips   []string
	LikedTrips   []string
	CreatedAt    time.Time
}

// Author is the public card of a user embedded in trips, ratings and comments.
type Author struct {
	ID       string
	Username string
	Name     string
	Avatar   string
}

// AuthorCard returns the public card for the user.
func (u *User) AuthorCard() Author {
	return Author{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Avatar:   u.Avatar,
	}
}

// HasSaved reports whether tripID is in the user's saved set.
func (u *User) HasSaved(tripID string) bool {
	return containsID(u.SavedTrips, tripID)
}

// HasLiked reports whether tripID is in the user's liked set.
func (u *User) HasLiked(tripID string) bool {
	return containsID(u.LikedTrips, tripID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
