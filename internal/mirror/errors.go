package mirror

import "errors"

var (
	// ErrLoginRequired is returned by identity-scoped operations called without an identity.
	ErrLoginRequired = errors.New("please login first")

	// ErrInvalidRating is returned when a score is outside [1,5], has more
	// than one decimal, or comes without a comment.
	ErrInvalidRating = errors.New("rating must be between 1 and 5 and include a comment")

	// ErrEmptyComment is returned when a comment has no text.
	ErrEmptyComment = errors.New("comment is required")
)
