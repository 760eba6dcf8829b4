package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReviewKey identifies one reviewable (sweet, order) pair: "<sweetId>-<orderId>".
type ReviewKey string

// NewReviewKey builds the composite key for a line item of an order. Ids must
// not contain "-", otherwise two different pairs can share a key.
func NewReviewKey(sweetID, orderID string) ReviewKey {
	return ReviewKey(sweetID + "-" + orderID)
}

// ReviewedSet holds the keys a user has already reviewed.
type ReviewedSet map[ReviewKey]struct{}

// NewReviewedSet builds the set from a user's stored reviews.
func NewReviewedSet(reviews []*Review) ReviewedSet {
	set := make(ReviewedSet, len(reviews))
	for _, r := range reviews {
		set.Add(r.Key())
	}
	return set
}

func (s ReviewedSet) Add(k ReviewKey) { s[k] = struct{}{} }

func (s ReviewedSet) Has(k ReviewKey) bool {
	_, ok := s[k]
	return ok
}

// IsEligible decides whether a line item may be reviewed. The order status is
// checked before the reviewed set.
func IsEligible(status OrderStatus, sweetID, orderID string, reviewed ReviewedSet) bool {
	if !status.IsReviewable() {
		return false
	}
	return !reviewed.Has(NewReviewKey(sweetID, orderID))
}

// Review is a customer's rating of a sweet bought in a specific order.
type Review struct {
	ID        string
	SweetID   string
	OrderID   string
	UserID    string
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time // assigned by the store on insert
}

// Key returns the review's composite key.
func (r *Review) Key() ReviewKey {
	return NewReviewKey(r.SweetID, r.OrderID)
}

// ValidateRating checks a rating is a whole star between MinRating and MaxRating.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, MinRating, MaxRating)
	}
	return nil
}

// NewReview creates a review ready to be inserted. CreatedAt is left for the store.
func NewReview(sweetID, orderID, userID, userName, comment string, rating int) (*Review, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userID cannot be empty", ErrInvalidInput)
	}
	if sweetID == "" || orderID == "" {
		return nil, fmt.Errorf("%w: sweetID and orderID must be provided", ErrInvalidInput)
	}
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", ErrInvalidInput)
	}
	return &Review{
		SweetID:  sweetID,
		OrderID:  orderID,
		UserID:   userID,
		UserName: userName,
		Rating:   rating,
		Comment:  comment,
	}, nil
}
