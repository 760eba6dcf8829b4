package domain

import "context"

// Transactor runs fn as one atomic unit. Repository calls made with the ctx
// handed to fn join the transaction; if fn returns an error nothing it wrote
// is kept.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

// SweetRepository defines persistence for catalog sweets.
type SweetRepository interface {
	Create(ctx context.Context, sweet *Sweet) error
	GetByID(ctx context.Context, id string) (*Sweet, error)
	// List returns all sweets ordered by name.
	List(ctx context.Context) ([]*Sweet, error)
	// UpdateDetails rewrites the catalog fields only.
	UpdateDetails(ctx context.Context, id string, details SweetDetails) (*Sweet, error)
	// UpdateRating writes averageRating and reviewCount.
	UpdateRating(ctx context.Context, id string, rating RatingAggregate) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository defines persistence for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	// List returns all orders matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) (*Order, error)
}

// ReviewRepository defines persistence for reviews.
// Create assigns ID and CreatedAt and returns ErrReviewAlreadyExists when the
// (user, sweet, order) triple is taken.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	ListByUser(ctx context.Context, userID string) ([]*Review, error)
	// List returns every review, newest first.
	List(ctx context.Context) ([]*Review, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository defines persistence for user profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	// UpsertProfile writes the self-service fields, creating the profile if needed.
	UpsertProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
}

// ContactRepository defines persistence for contact-form messages.
type ContactRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
	// List returns messages newest first.
	List(ctx context.Context) ([]*ContactMessage, error)
}

// CartRepository stores carts. Get returns an empty cart when none is stored.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, userID string) error
}

// CatalogCache keeps a copy of the sweet listing. GetSweets returns ErrNotFound on a miss.
// Invalidate bumps a generation counter; SetSweets writes only while the
// generation is still the one read before the listing was loaded, so a slow
// reader cannot put back a listing that an invalidation already dropped.
type CatalogCache interface {
	GetSweets(ctx context.Context) ([]*Sweet, error)
	Generation(ctx context.Context) (int64, error)
	SetSweets(ctx context.Context, generation int64, sweets []*Sweet) error
	Invalidate(ctx context.Context) error
}
