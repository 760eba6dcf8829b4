package usecase

import (
	"context"
	"time"
)

// Event subjects published on the message bus.
const (
	SubjectReviewSubmitted    = "review.submitted"
	SubjectReviewDeleted      = "review.deleted"
	SubjectOrderPlaced        = "order.placed"
	SubjectOrderStatusChanged = "order.status_changed"
)

// EventPublisher publishes domain events. Publishing is best effort: callers
// log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// ReviewSubmittedEvent is the payload of SubjectReviewSubmitted.
type ReviewSubmittedEvent struct {
	ReviewID      string    `json:"reviewId"`
	SweetID       string    `json:"sweetId"`
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId"`
	Rating        int       `json:"rating"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ReviewDeletedEvent is the payload of SubjectReviewDeleted.
type ReviewDeletedEvent struct {
	ReviewID      string    `json:"reviewId"`
	SweetID       string    `json:"sweetId"`
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	DeletedAt     time.Time `json:"deletedAt"`
}

// OrderEvent is the payload of the order subjects.
type OrderEvent struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`
	At         time.Time `json:"at"`
}
