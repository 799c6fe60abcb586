package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Rating is an interview score from 1 to 5, or Unrated.
type Rating int

const (
	// Unrated marks an applicant who has not been scored yet.
	Unrated Rating = 0
	// MinRating is the lowest score an applicant can receive.
	MinRating Rating = 1
	// MaxRating is the highest score an applicant can receive.
	MaxRating Rating = 5
)

// ParseRating parses a score in the range 1..5.
// "N/A" (any case) parses as Unrated.
func ParseRating(s string) (Rating, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "n/a") {
		return Unrated, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Unrated, fmt.Errorf("%w: rating must be a whole number from %d to %d", ErrInvalidField, MinRating, MaxRating)
	}
	r := Rating(n)
	if r < MinRating || r > MaxRating {
		return Unrated, fmt.Errorf("%w: rating must be a whole number from %d to %d", ErrInvalidField, MinRating, MaxRating)
	}
	return r, nil
}

// Validate checks that r is either Unrated or within range.
func (r Rating) Validate() error {
	if r == Unrated || (r >= MinRating && r <= MaxRating) {
		return nil
	}
	return fmt.Errorf("%w: rating %d out of range", ErrInvalidField, int(r))
}

func (r Rating) String() string {
	if r == Unrated {
		return "N/A"
	}
	return strconv.Itoa(int(r))
}
