package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"go.uber.org/zap"
)

// AdminService backs the shop administration pages. Every method assumes the
// caller already passed Authorize.
type AdminService struct {
	users    domain.UserRepository
	sweets   domain.SweetRepository
	orders   domain.OrderRepository
	contacts domain.ContactRepository
	reviews  *ReviewService
	catalog  *CatalogService
	mailer   Mailer // optional
	pub      EventPublisher
	metrics  *metrics.MetricsManager
	logger   *logger.Logger
	now      func() time.Time
}

func NewAdminService(
	users domain.UserRepository,
	sweets domain.SweetRepository,
	orders domain.OrderRepository,
	contacts domain.ContactRepository,
	reviews *ReviewService,
	catalog *CatalogService,
	mailer Mailer,
	pub EventPublisher,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *AdminService {
	if pub == nil {
		pub = NoopPublisher{}
	}
	return &AdminService{
		users:    users,
		sweets:   sweets,
		orders:   orders,
		contacts: contacts,
		reviews:  reviews,
		catalog:  catalog,
		mailer:   mailer,
		pub:      pub,
		metrics:  m,
		logger:   log.Named("AdminService"),
		now:      time.Now,
	}
}

// Authorize checks the principal's stored profile carries the admin role.
func (s *AdminService) Authorize(ctx context.Context, p *domain.Principal) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	u, err := s.users.GetByID(ctx, p.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: no profile for user %s", domain.ErrForbidden, p.UserID)
	}
	if err != nil {
		return err
	}
	if !u.IsAdmin() {
		s.logger.Warn("Non-admin user attempted admin access", zap.String("user_id", p.UserID))
		return domain.ErrForbidden
	}
	return nil
}

func (s *AdminService) ListSweets(ctx context.Context) ([]*domain.Sweet, error) {
	return s.sweets.List(ctx)
}

// CreateSweet adds a sweet to the catalog with an empty rating aggregate.
func (s *AdminService) CreateSweet(ctx context.Context, d domain.SweetDetails) (*domain.Sweet, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	sweet := &domain.Sweet{}
	sweet.Apply(d)
	if err := s.sweets.Create(ctx, sweet); err != nil {
		return nil, err
	}
	s.catalog.Invalidate(ctx)
	s.logger.Info("Sweet created", zap.String("sweet_id", sweet.ID), zap.String("name", sweet.Name))
	return sweet, nil
}

// UpdateSweet rewrites the catalog fields. The rating aggregate is untouched.
func (s *AdminService) UpdateSweet(ctx context.Context, id string, d domain.SweetDetails) (*domain.Sweet, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	sweet, err := s.sweets.UpdateDetails(ctx, id, d)
	if err != nil {
		return nil, err
	}
	s.catalog.Invalidate(ctx)
	s.logger.Info("Sweet updated", zap.String("sweet_id", id))
	return sweet, nil
}

func (s *AdminService) DeleteSweet(ctx context.Context, id string) error {
	if err := s.sweets.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.Invalidate(ctx)
	s.logger.Info("Sweet deleted", zap.String("sweet_id", id))
	return nil
}

func (s *AdminService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	return s.orders.List(ctx, filter)
}

// UpdateOrderStatus moves an order to one of the known statuses. Reaching
// Concluído invites the customer to review the order by email.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID, rawStatus string) (*domain.Order, error) {
	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	before, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if before.Status == status {
		return before, nil
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	s.metrics.OrderStatusChanged(string(status))
	s.logger.Info("Order status changed",
		zap.String("order_id", orderID),
		zap.String("from", string(before.Status)),
		zap.String("to", string(status)))

	if err := s.pub.Publish(ctx, SubjectOrderStatusChanged, OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		At:         s.now().UTC(),
	}); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("subject", SubjectOrderStatusChanged), zap.Error(err))
	}
	if status == domain.OrderStatusConcluded {
		s.inviteReview(ctx, order)
	}
	return order, nil
}

func (s *AdminService) inviteReview(ctx context.Context, order *domain.Order) {
	if s.mailer == nil {
		return
	}
	to := order.UserEmail
	if to == "" {
		u, err := s.users.GetByID(ctx, order.UserID)
		if err != nil || u.Email == "" {
			s.logger.Warn("No email address for review invitation", zap.String("order_id", order.ID), zap.Error(err))
			return
		}
		to = u.Email
	}
	subject, bodyHTML, bodyText := reviewInvitation(order)
	if err := s.mailer.Send(ctx, []string{to}, subject, bodyHTML, bodyText); err != nil {
		s.logger.Warn("Failed to send review invitation", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func reviewInvitation(order *domain.Order) (subject, bodyHTML, bodyText string) {
	subject = "Seu pedido foi concluído! Conte o que achou"
	name := order.UserName
	if name == "" {
		name = "cliente"
	}
	bodyText = fmt.Sprintf("Olá, %s!\n\nSeu pedido %s foi concluído. Acesse seu histórico de pedidos para avaliar os doces que você recebeu.\n", name, order.ID)
	bodyHTML = fmt.Sprintf("<p>Olá, %s!</p><p>Seu pedido <strong>%s</strong> foi concluído. Acesse seu histórico de pedidos para avaliar os doces que você recebeu.</p>",
		html.EscapeString(name), html.EscapeString(order.ID))
	return subject, bodyHTML, bodyText
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) ListContacts(ctx context.Context) ([]*domain.ContactMessage, error) {
	return s.contacts.List(ctx)
}

func (s *AdminService) ListReviews(ctx context.Context) ([]*domain.Review, error) {
	return s.reviews.List(ctx)
}

// DeleteReview removes a review and reconciles the sweet's rating aggregate.
func (s *AdminService) DeleteReview(ctx context.Context, reviewID string) error {
	return s.reviews.Delete(ctx, reviewID)
}
