// Package memory is an in-process implementation of the storefront
// repositories, used for local development and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/google/uuid"
)

type txKey struct{}

// Store holds every collection behind one mutex. Transactions hold the mutex
// for their whole duration, so they are serialised against each other and
// against plain repository calls.
type Store struct {
	mu       sync.Mutex
	sweets   map[string]domain.Sweet
	orders   map[string]domain.Order
	reviews  map[string]domain.Review
	users    map[string]domain.User
	contacts map[string]domain.ContactMessage
	carts    map[string]domain.Cart

	now   func() time.Time
	newID func() string
}

func NewStore() *Store {
	return &Store{
		sweets:   map[string]domain.Sweet{},
		orders:   map[string]domain.Order{},
		reviews:  map[string]domain.Review{},
		users:    map[string]domain.User{},
		contacts: map[string]domain.ContactMessage{},
		carts:    map[string]domain.Cart{},
		now:      time.Now,
		newID:    newID,
	}
}

// newID returns a random id without "-" so it can be joined into a review key.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SetClock replaces the time source used for store-assigned timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock takes the store mutex unless ctx already belongs to a transaction
// holding it.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTransaction implements domain.Transactor. A failing fn rolls every
// collection back to where it was when the transaction began.
func (s *Store) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	sweets   map[string]domain.Sweet
	orders   map[string]domain.Order
	reviews  map[string]domain.Review
	users    map[string]domain.User
	contacts map[string]domain.ContactMessage
	carts    map[string]domain.Cart
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		sweets:   copyMap(s.sweets, func(v domain.Sweet) domain.Sweet { return v }),
		orders:   copyMap(s.orders, cloneOrder),
		reviews:  copyMap(s.reviews, func(v domain.Review) domain.Review { return v }),
		users:    copyMap(s.users, func(v domain.User) domain.User { return v }),
		contacts: copyMap(s.contacts, func(v domain.ContactMessage) domain.ContactMessage { return v }),
		carts:    copyMap(s.carts, cloneCart),
	}
}

func (s *Store) restore(snap snapshot) {
	s.sweets = snap.sweets
	s.orders = snap.orders
	s.reviews = snap.reviews
	s.users = snap.users
	s.contacts = snap.contacts
	s.carts = snap.carts
}

func copyMap[V any](m map[string]V, clone func(V) V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.LineItem(nil), o.Items...)
	return o
}

func cloneCart(c domain.Cart) domain.Cart {
	c.Items = append([]domain.CartItem{}, c.Items...)
	return c
}

// PutUser writes a full profile, role included. Used to seed admins.
func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Sweets, Orders, Reviews, Users, Contacts and Carts return repositories
// backed by this store.
func (s *Store) Sweets() *SweetRepository { return &SweetRepository{s: s} }
func (s *Store) Orders() *OrderRepository { return &OrderRepository{s: s} }
func (s *Store) Reviews() *ReviewRepository { return &ReviewRepository{s: s} }
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
func (s *Store) Contacts() *ContactRepository { return &ContactRepository{s: s} }
func (s *Store) Carts() *CartRepository { return &CartRepository{s: s} }
