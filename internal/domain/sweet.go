package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// MaxRating and MinRating bound a single review's star rating.
const (
	MinRating = 1
	MaxRating = 5
)

// RatingAggregate is the running mean of all ratings a sweet has received.
// Documents written before reviews existed carry neither field; the zero value
// stands in for them.
type RatingAggregate struct {
	Average float64
	Count   int
}

// Total returns the sum of all ratings folded into the aggregate.
func (a RatingAggregate) Total() float64 {
	if a.Count <= 0 {
		return 0
	}
	return a.Average * float64(a.Count)
}

// Add folds one more rating into the aggregate.
func (a RatingAggregate) Add(rating int) RatingAggregate {
	count := a.Count
	if count < 0 {
		count = 0
	}
	next := count + 1
	return RatingAggregate{
		Average: (a.Total() + float64(rating)) / float64(next),
		Count:   next,
	}
}

// Remove takes a previously added rating back out of the aggregate.
func (a RatingAggregate) Remove(rating int) RatingAggregate {
	if a.Count <= 1 {
		return RatingAggregate{}
	}
	next := a.Count - 1
	avg := (a.Total() - float64(rating)) / float64(next)
	avg = math.Max(0, math.Min(MaxRating, avg))
	return RatingAggregate{Average: avg, Count: next}
}

// Stars is the average rounded to the nearest whole star, 0 when unrated.
func (a RatingAggregate) Stars() int {
	if a.Count <= 0 {
		return 0
	}
	return int(math.Round(a.Average))
}

// Sweet is a catalog product.
type Sweet struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Rating      RatingAggregate
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SweetDetails are the catalog fields an admin may write. The rating
// aggregate is deliberately absent.
type SweetDetails struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
}

// Validate checks the fields required for a catalog listing.
func (d SweetDetails) Validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case d.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	case strings.TrimSpace(d.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	case strings.TrimSpace(d.ImageURL) == "":
		return fmt.Errorf("%w: imageUrl is required", ErrInvalidInput)
	}
	return nil
}

// Apply copies the catalog fields onto the sweet, leaving the aggregate alone.
func (s *Sweet) Apply(d SweetDetails) {
	s.Name = strings.TrimSpace(d.Name)
	s.Description = d.Description
	s.Price = d.Price
	s.Category = strings.TrimSpace(d.Category)
	s.ImageURL = strings.TrimSpace(d.ImageURL)
}
