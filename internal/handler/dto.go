package handler

import (
	"time"

	"wanderlust/internal/domain"
)

// AuthorResponse is the public card of a user.
type AuthorResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	ID                string    `json:"_id"`
	Email             string    `json:"email"`
	Username          string    `json:"username"`
	Name              string    `json:"name"`
	Bio               string    `json:"bio"`
	Avatar            string    `json:"avatar"`
	Followers         int       `json:"followers"`
	Following         int       `json:"following"`
	SavedTrips        []string  `json:"savedTrips"`
	LikedTrips        []string  `json:"likedTrips"`
	CreatedTripsCount int       `json:"createdTripsCount"`
	CreatedAt         time.Time `json:"createdAt"`
}

// StopResponse is a stop within a trip.
type StopResponse struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Location    string   `json:"location"`
	Position    int      `json:"position"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

// RatingResponse is a rating with its author card.
type RatingResponse struct {
	ID        string          `json:"_id"`
	TripID    string          `json:"trip"`
	User      *AuthorResponse `json:"user"`
	Rating    float64         `json:"rating"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CommentResponse is a comment with its author card.
type CommentResponse struct {
	ID        string          `json:"_id"`
	TripID    string          `json:"trip"`
	User      *AuthorResponse `json:"user"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TripResponse is the normalized trip returned by every trip endpoint.
type TripResponse struct {
	ID            string            `json:"_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Image         string            `json:"image"`
	Distance      float64           `json:"distance"`
	Duration      float64           `json:"duration"`
	Location      string            `json:"location"`
	Difficulty    string            `json:"difficulty"`
	Author        *AuthorResponse   `json:"author"`
	Stops         []StopResponse    `json:"stops"`
	Ratings       []RatingResponse  `json:"ratings"`
	Comments      []CommentResponse `json:"comments"`
	AverageRating float64           `json:"averageRating"`
	LikesCount    int               `json:"likesCount"`
	ShareCount    int               `json:"shareCount"`
	LikedByMe     bool              `json:"likedByMe"`
	SavedByMe     bool              `json:"savedByMe"`
	IsDemo        bool              `json:"isDemo"`
	CreatedAt     time.Time         `json:"createdAt"`
}

func toAuthorResponse(a *domain.Author) *AuthorResponse {
	if a == nil {
		return nil
	}
	return &AuthorResponse{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Avatar:   a.Avatar,
	}
}

func toUserResponse(u *domain.PublicUser) UserResponse {
	resp := UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		Username:          u.Username,
		Name:              u.Name,
		Bio:               u.Bio,
		Avatar:            u.Avatar,
		Followers:         u.Followers,
		Following:         u.Following,
		SavedTrips:        u.SavedTrips,
		LikedTrips:        u.LikedTrips,
		CreatedTripsCount: u.CreatedTripsCount,
		CreatedAt:         u.CreatedAt,
	}
	if resp.SavedTrips == nil {
		resp.SavedTrips = []string{}
	}
	if resp.LikedTrips == nil {
		resp.LikedTrips = []string{}
	}
	return resp
}

func toRatingResponse(r *domain.RatingView) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		TripID:    r.TripID,
		User:      toAuthorResponse(r.Author),
		Rating:    r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toCommentResponse(c *domain.CommentView) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TripID:    c.TripID,
		User:      toAuthorResponse(c.Author),
		Comment:   c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func toTripResponse(t *domain.TripSnapshot) TripResponse {
	resp := TripResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Image:         t.Image,
		Distance:      t.Distance,
		Duration:      t.Duration,
		Location:      t.Location,
		Difficulty:    string(t.Difficulty),
		Author:        toAuthorResponse(t.Author),
		Stops:         make([]StopResponse, 0, len(t.Stops)),
		Ratings:       make([]RatingResponse, 0, len(t.Ratings)),
		Comments:      make([]CommentResponse, 0, len(t.Comments)),
		AverageRating: t.AverageRating,
		LikesCount:    t.LikesCount,
		ShareCount:    t.ShareCount,
		LikedByMe:     t.LikedByMe,
		SavedByMe:     t.SavedByMe,
		IsDemo:        t.Demo,
		CreatedAt:     t.CreatedAt,
	}
	for _, s := range t.Stops {
		resp.Stops = append(resp.Stops, StopResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Image:       s.Image,
			Location:    s.Location,
			Position:    s.Position,
			Lat:         s.Lat,
			Lng:         s.Lng,
		})
	}
	for i := range t.Ratings {
		resp.Ratings = append(resp.Ratings, toRatingResponse(&t.Ratings[i]))
	}
	for i := range t.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(&t.Comments[i]))
	}
	return resp
}

func toTripResponses(snaps []domain.TripSnapshot) []TripResponse {
	out := make([]TripResponse, 0, len(snaps))
	for i := range snaps {
		out = append(out, toTripResponse(&snaps[i]))
	}
	return out
}
