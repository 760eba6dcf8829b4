package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"go.uber.org/zap"
)

// CartService manages carts and turns them into orders.
type CartService struct {
	carts   domain.CartRepository
	sweets  domain.SweetRepository
	orders  domain.OrderRepository
	users   domain.UserRepository
	pub     EventPublisher
	metrics *metrics.MetricsManager
	logger  *logger.Logger
	now     func() time.Time
}

func NewCartService(
	carts domain.CartRepository,
	sweets domain.SweetRepository,
	orders domain.OrderRepository,
	users domain.UserRepository,
	pub EventPublisher,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *CartService {
	if pub == nil {
		pub = NoopPublisher{}
	}
	return &CartService{
		carts:   carts,
		sweets:  sweets,
		orders:  orders,
		users:   users,
		pub:     pub,
		metrics: m,
		logger:  log.Named("CartService"),
		now:     time.Now,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.carts.Get(ctx, userID)
}

// AddToCart adds quantity units of a catalog sweet to the user's cart.
func (s *CartService) AddToCart(ctx context.Context, userID, sweetID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	sweet, err := s.sweets.GetByID(ctx, sweetID)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.Add(sweet, quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	s.logger.Debug("Cart updated", zap.String("user_id", userID), zap.String("sweet_id", sweetID), zap.Int("quantity", quantity))
	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.carts.Delete(ctx, userID)
}

// PlaceOrder creates a Pendente order from the cart and empties it.
func (s *CartService) PlaceOrder(ctx context.Context, p *domain.Principal) (*domain.Order, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	cart, err := s.carts.Get(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	order := &domain.Order{
		UserID:     p.UserID,
		UserName:   p.DisplayName,
		Items:      cart.LineItems(),
		TotalPrice: cart.Total(),
		Status:     domain.OrderStatusPending,
		CreatedAt:  s.now().UTC(),
	}
	profile, err := s.users.GetByID(ctx, p.UserID)
	switch {
	case err == nil:
		if profile.FullName != "" {
			order.UserName = profile.FullName
		}
		order.UserEmail = profile.Email
		order.UserPhone = profile.Phone
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("load user profile: %w", err)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	if err := s.carts.Delete(ctx, p.UserID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout", zap.String("user_id", p.UserID), zap.Error(err))
	}

	s.metrics.OrderPlaced()
	s.logger.Info("Order placed", zap.String("order_id", order.ID), zap.String("user_id", p.UserID), zap.Float64("total_price", order.TotalPrice))
	if err := s.pub.Publish(ctx, SubjectOrderPlaced, OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		At:         order.CreatedAt,
	}); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("subject", SubjectOrderPlaced), zap.Error(err))
	}
	return order, nil
}
