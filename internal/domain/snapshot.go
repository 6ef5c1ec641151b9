package domain

import "time"

// TripSnapshot is the fully resolved view of a trip returned to every consumer,
// whichever store owns it.
type TripSnapshot struct {
	ID            string
	Title         string
	Description   string
	Image         string
	Distance      float64
	Duration      float64
	Location      string
	Difficulty    Difficulty
	Author        *Author // nil when the author no longer resolves
	Stops         []Stop  // position order
	Ratings       []RatingView
	Comments      []CommentView
	AverageRating float64
	LikesCount    int
	ShareCount    int
	LikedByMe     bool
	SavedByMe     bool
	Demo          bool
	CreatedAt     time.Time
}

// RatingView is a rating with its author resolved.
type RatingView struct {
	ID        string
	TripID    string
	Author    *Author
	Score     float64
	Comment   string
	CreatedAt time.Time
}

// CommentView is a comment with its author resolved.
type CommentView struct {
	ID        string
	TripID    string
	Author    *Author
	Text      string
	CreatedAt time.Time
}

// PublicUser is the user representation safe to expose over the API.
type PublicUser struct {
	ID                string
	Email             string
	Username          string
	Name              string
	Bio               string
	Avatar            string
	Followers         int
	Following         int
	SavedTrips        []string
	LikedTrips        []string
	CreatedTripsCount int
	CreatedAt         time.Time
}

// Public strips the credential from u and attaches the authored trip count.
func (u *User) Public(createdTrips int) PublicUser {
	return PublicUser{
		ID:                u.ID,
		Email:             u.Email,
		Username:          u.Username,
		Name:              u.Name,
		Bio:               u.Bio,
		Avatar:            u.Avatar,
		Followers:         u.Followers,
		Following:         u.Following,
		SavedTrips:        append([]string(nil), u.SavedTrips...),
		LikedTrips:        append([]string(nil), u.LikedTrips...),
		CreatedTripsCount: createdTrips,
		CreatedAt:         u.CreatedAt,
	}
}
