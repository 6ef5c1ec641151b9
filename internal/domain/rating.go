package domain

import (
	"math"
	"time"
)

// Rating is a scored review of a trip.
type Rating struct {
	ID        string
	TripID    string
	UserID    string
	Score     float64 // [1,5], at most one decimal place
	Comment   string
	CreatedAt time.Time
}

// Comment is a plain text remark on a trip.
type Comment struct {
	ID        string
	TripID    string
	UserID    string
	Text      string
	CreatedAt time.Time
}

const (
	MinScore = 1.0
	MaxScore = 5.0
)

// ValidScore reports whether score is within [1,5] with at most one decimal.
func ValidScore(score float64) bool {
	if math.IsNaN(score) || score < MinScore || score > MaxScore {
		return false
	}
	scaled := score * 10
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

// AverageRating returns the mean score rounded to one decimal, or 0 for no scores.
// Both the store and the demo mirror compute averages through this function.
func AverageRating(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return Round1(sum / float64(len(scores)))
}

// Round1 rounds v to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
