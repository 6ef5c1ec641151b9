package mirror

import (
	"encoding/json"
	"time"
)

// Identity is the acting user, supplied by the caller.
type Identity struct {
	UserID   string
	Username string
	Name     string
	Avatar   string
}

// Anonymous reports whether no user is attached.
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

// Author is the user card stored with demo comments and ratings.
type Author struct {
	ID       string `json:"_id"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Comment is a demo-trip comment as held in the blob.
type Comment struct {
	ID        string    `json:"_id"`
	TripID    string    `json:"trip"`
	User      Author    `json:"user"`
	Text      string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Rating is a demo-trip rating as held in the blob.
type Rating struct {
	ID        string    `json:"_id"`
	TripID    string    `json:"trip"`
	User      Author    `json:"user"`
	Score     float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// State is the derived engagement view of one demo trip.
type State struct {
	Ratings       []Rating
	Comments      []Comment
	LikesCount    int
	ShareCount    int
	LikedByMe     bool
	SavedByMe     bool
	AverageRating float64
}

// blob is the whole persisted document.
type blob struct {
	Likes    map[string][]string  `json:"likes"`    // tripID -> userIDs
	Saves    map[string][]string  `json:"saves"`    // userID -> tripIDs
	Shares   map[string]int       `json:"shares"`   // tripID -> count
	Comments map[string][]Comment `json:"comments"` // tripID -> newest first
	Ratings  map[string][]Rating  `json:"ratings"`  // tripID -> newest first
}

func emptyBlob() *blob {
	return &blob{
		Likes:    make(map[string][]string),
		Saves:    make(map[string][]string),
		Shares:   make(map[string]int),
		Comments: make(map[string][]Comment),
		Ratings:  make(map[string][]Rating),
	}
}

// decodeBlob never fails: an unreadable document yields the empty state.
func decodeBlob(data []byte) (*blob, bool) {
	b := emptyBlob()
	if len(data) == 0 {
		return b, true
	}

	var decoded blob
	if err := json.Unmarshal(data, &decoded); err != nil {
		return b, false
	}

	if decoded.Likes != nil {
		b.Likes = decoded.Likes
	}
	if decoded.Saves != nil {
		b.Saves = decoded.Saves
	}
	if decoded.Shares != nil {
		b.Shares = decoded.Shares
	}
	if decoded.Comments != nil {
		b.Comments = decoded.Comments
	}
	if decoded.Ratings != nil {
		b.Ratings = decoded.Ratings
	}
	return b, true
}

func toggle(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...), false
		}
	}
	return append(ids, id), true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
