package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
)

// SweetRepository implements domain.SweetRepository.
type SweetRepository struct{ s *Store }

func (r *SweetRepository) Create(ctx context.Context, sweet *domain.Sweet) error {
	defer r.s.lock(ctx)()
	if sweet.ID == "" {
		sweet.ID = r.s.newID()
	} else if _, exists := r.s.sweets[sweet.ID]; exists {
		return fmt.Errorf("%w: sweet %s already exists", domain.ErrInvalidInput, sweet.ID)
	}
	now := r.s.now().UTC()
	sweet.CreatedAt, sweet.UpdatedAt = now, now
	r.s.sweets[sweet.ID] = *sweet
	return nil
}

func (r *SweetRepository) GetByID(ctx context.Context, id string) (*domain.Sweet, error) {
	defer r.s.lock(ctx)()
	sweet, ok := r.s.sweets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sweet, nil
}

func (r *SweetRepository) List(ctx context.Context) ([]*domain.Sweet, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.Sweet, 0, len(r.s.sweets))
	for _, v := range r.s.sweets {
		sweet := v
		out = append(out, &sweet)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *SweetRepository) UpdateDetails(ctx context.Context, id string, d domain.SweetDetails) (*domain.Sweet, error) {
	defer r.s.lock(ctx)()
	sweet, ok := r.s.sweets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	sweet.Apply(d)
	sweet.UpdatedAt = r.s.now().UTC()
	r.s.sweets[id] = sweet
	return &sweet, nil
}

func (r *SweetRepository) UpdateRating(ctx context.Context, id string, rating domain.RatingAggregate) error {
	defer r.s.lock(ctx)()
	sweet, ok := r.s.sweets[id]
	if !ok {
		return domain.ErrNotFound
	}
	sweet.Rating = rating
	r.s.sweets[id] = sweet
	return nil
}

func (r *SweetRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.sweets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.sweets, id)
	return nil
}

// OrderRepository implements domain.OrderRepository.
type OrderRepository struct{ s *Store }

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	defer r.s.lock(ctx)()
	if order.ID == "" {
		order.ID = r.s.newID()
	} else if _, exists := r.s.orders[order.ID]; exists {
		return fmt.Errorf("%w: order %s already exists", domain.ErrInvalidInput, order.ID)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = r.s.now().UTC()
	}
	order.UpdatedAt = order.CreatedAt
	r.s.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	defer r.s.lock(ctx)()
	order, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	order = cloneOrder(order)
	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.list(ctx, func(o domain.Order) bool { return o.UserID == userID })
}

func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	return r.list(ctx, func(o domain.Order) bool {
		return filter.Status == nil || o.Status == *filter.Status
	})
}

func (r *OrderRepository) list(ctx context.Context, keep func(domain.Order) bool) ([]*domain.Order, error) {
	defer r.s.lock(ctx)()
	out := []*domain.Order{}
	for _, v := range r.s.orders {
		if !keep(v) {
			continue
		}
		order := cloneOrder(v)
		out = append(out, &order)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	defer r.s.lock(ctx)()
	order, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = r.s.now().UTC()
	r.s.orders[id] = order
	order = cloneOrder(order)
	return &order, nil
}

// ReviewRepository implements domain.ReviewRepository.
type ReviewRepository struct{ s *Store }

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	defer r.s.lock(ctx)()
	for _, existing := range r.s.reviews {
		if existing.UserID == review.UserID && existing.SweetID == review.SweetID && existing.OrderID == review.OrderID {
			return domain.ErrReviewAlreadyExists
		}
	}
	review.ID = r.s.newID()
	review.CreatedAt = r.s.now().UTC()
	r.s.reviews[review.ID] = *review
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	defer r.s.lock(ctx)()
	review, ok := r.s.reviews[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &review, nil
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Review, error) {
	return r.list(ctx, func(rv domain.Review) bool { return rv.UserID == userID })
}

func (r *ReviewRepository) List(ctx context.Context) ([]*domain.Review, error) {
	return r.list(ctx, func(domain.Review) bool { return true })
}

func (r *ReviewRepository) list(ctx context.Context, keep func(domain.Review) bool) ([]*domain.Review, error) {
	defer r.s.lock(ctx)()
	out := []*domain.Review{}
	for _, v := range r.s.reviews {
		if !keep(v) {
			continue
		}
		review := v
		out = append(out, &review)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.reviews[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

// UserRepository implements domain.UserRepository.
type UserRepository struct{ s *Store }

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	defer r.s.lock(ctx)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.User, 0, len(r.s.users))
	for _, v := range r.s.users {
		u := v
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *UserRepository) UpsertProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	defer r.s.lock(ctx)()
	now := r.s.now().UTC()
	u, ok := r.s.users[id]
	if !ok {
		u = domain.User{ID: id, CreatedAt: now}
	}
	u.FullName = update.FullName
	u.Email = update.Email
	u.Phone = update.Phone
	u.UpdatedAt = now
	r.s.users[id] = u
	return &u, nil
}

// ContactRepository implements domain.ContactRepository.
type ContactRepository struct{ s *Store }

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	defer r.s.lock(ctx)()
	msg.ID = r.s.newID()
	msg.CreatedAt = r.s.now().UTC()
	r.s.contacts[msg.ID] = *msg
	return nil
}

func (r *ContactRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.ContactMessage, 0, len(r.s.contacts))
	for _, v := range r.s.contacts {
		m := v
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// CartRepository implements domain.CartRepository for deployments without Redis.
type CartRepository struct{ s *Store }

func (r *CartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	defer r.s.lock(ctx)()
	c, ok := r.s.carts[userID]
	if !ok {
		return domain.NewCart(userID), nil
	}
	c = cloneCart(c)
	return &c, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	defer r.s.lock(ctx)()
	r.s.carts[cart.UserID] = cloneCart(*cart)
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	defer r.s.lock(ctx)()
	delete(r.s.carts, userID)
	return nil
}
