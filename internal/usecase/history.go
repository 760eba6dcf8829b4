package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/validator"
	"go.uber.org/zap"
)

// Messages shown to the customer on the order history page.
const (
	MsgNotLoggedIn      = "Você precisa estar logado para ver seu histórico de pedidos."
	MsgLoadFailed       = "Não foi possível carregar seu histórico de pedidos."
	MsgReviewIncomplete = "Por favor, selecione uma nota e escreva um comentário."
	MsgNoSelection      = "Selecione um item para avaliar."
	MsgNotEligible      = "Este item só pode ser avaliado depois que o pedido for concluído."
	MsgAlreadyReviewed  = "Você já avaliou este item."
	MsgSubmitFailed     = "Não foi possível enviar sua avaliação. Tente novamente."
)

// View is the presentation side of an order history session. The session
// tells it what to show; it never calls back into the session.
type View interface {
	RenderOrderList(orders []OrderView)
	OpenReviewForm(sweetID, sweetName, orderID string)
	CloseReviewForm()
	MarkReviewed(sweetID, orderID string)
	ShowError(msg string)
}

// ReviewState is how a line item's review action is displayed.
type ReviewState string

const (
	ReviewStateNotEligible ReviewState = "not_eligible"
	ReviewStateReviewed    ReviewState = "reviewed"
	ReviewStateEligible    ReviewState = "eligible"
)

func reviewStateOf(status domain.OrderStatus, sweetID, orderID string, reviewed domain.ReviewedSet) ReviewState {
	if !status.IsReviewable() {
		return ReviewStateNotEligible
	}
	if !domain.IsEligible(status, sweetID, orderID, reviewed) {
		return ReviewStateReviewed
	}
	return ReviewStateEligible
}

// LineItemView is a line item annotated with its review state.
type LineItemView struct {
	SweetID     string
	Name        string
	Quantity    int
	ReviewState ReviewState
}

// OrderView is an order as rendered in the history list.
type OrderView struct {
	ID         string
	CreatedAt  time.Time
	Status     domain.OrderStatus
	TotalPrice float64
	Items      []LineItemView
}

// BuildHistory annotates every line item with its review state. Orders are
// rendered in the order given.
func BuildHistory(orders []*domain.Order, reviewed domain.ReviewedSet) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		items := make([]LineItemView, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, LineItemView{
				SweetID:     it.SweetID,
				Name:        it.Name,
				Quantity:    it.Quantity,
				ReviewState: reviewStateOf(o.Status, it.SweetID, o.ID, reviewed),
			})
		}
		views = append(views, OrderView{
			ID:         o.ID,
			CreatedAt:  o.CreatedAt,
			Status:     o.Status,
			TotalPrice: o.TotalPrice,
			Items:      items,
		})
	}
	return views
}

// ReviewInput is what the customer typed into the review form.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"notblank"`
}

// ReviewSelection is the line item whose review form is open.
type ReviewSelection struct {
	SweetID   string
	SweetName string
	OrderID   string
}

// HistoryService holds what order history sessions share.
type HistoryService struct {
	orders  domain.OrderRepository
	reviews *ReviewService
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

func NewHistoryService(orders domain.OrderRepository, reviews *ReviewService, m *metrics.MetricsManager, log *logger.Logger) *HistoryService {
	return &HistoryService{
		orders:  orders,
		reviews: reviews,
		metrics: m,
		logger:  log.Named("HistoryService"),
	}
}

// NewSession starts a logged-out session bound to view.
func (h *HistoryService) NewSession(view View) *HistorySession {
	return &HistorySession{svc: h, view: view, reviewed: domain.ReviewedSet{}}
}

// HistorySession is one customer's order history page: the loaded orders,
// the keys already reviewed and the open review form. Methods are safe for
// concurrent use.
type HistorySession struct {
	svc  *HistoryService
	view View

	mu        sync.Mutex
	principal *domain.Principal
	loaded    bool
	orders    []*domain.Order
	reviewed  domain.ReviewedSet
	selection *ReviewSelection
}

// OnSessionChanged reacts to the identity provider reporting a new current
// user. A nil principal logs the session out.
func (s *HistorySession) OnSessionChanged(ctx context.Context, p *domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p == nil {
		s.reset(nil)
		s.view.ShowError(MsgNotLoggedIn)
		return domain.ErrUnauthenticated
	}
	if s.principal == nil || s.principal.UserID != p.UserID {
		s.reset(p)
	} else {
		s.principal = p
	}
	return s.load(ctx)
}

func (s *HistorySession) reset(p *domain.Principal) {
	if s.selection != nil {
		s.view.CloseReviewForm()
	}
	s.principal = p
	s.loaded = false
	s.orders = nil
	s.reviewed = domain.ReviewedSet{}
	s.selection = nil
}

func (s *HistorySession) load(ctx context.Context) error {
	log := s.svc.logger.With(zap.String("user_id", s.principal.UserID))

	reviews, err := s.svc.reviews.ListByUser(ctx, s.principal.UserID)
	if err != nil {
		return s.loadFailed(log, "reviews", err)
	}
	orders, err := s.svc.orders.ListByUser(ctx, s.principal.UserID)
	if err != nil {
		return s.loadFailed(log, "orders", err)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	hadSelection := s.selection != nil
	s.orders = orders
	s.reviewed = domain.NewReviewedSet(reviews)
	s.selection = nil
	s.loaded = true

	if hadSelection {
		s.view.CloseReviewForm()
	}
	s.view.RenderOrderList(BuildHistory(orders, s.reviewed))

	result := "ok"
	if len(orders) == 0 {
		result = "empty"
	}
	s.svc.metrics.HistoryLoaded(result)
	log.Debug("Order history loaded", zap.Int("orders", len(orders)), zap.Int("reviewed", len(s.reviewed)))
	return nil
}

func (s *HistorySession) loadFailed(log *logger.Logger, what string, err error) error {
	s.svc.metrics.HistoryLoaded("error")
	log.Error("Failed to load order history", zap.String("stage", what), zap.Error(err))
	s.view.ShowError(MsgLoadFailed)
	return fmt.Errorf("load %s: %w", what, err)
}

// SelectForReview opens the review form for an eligible line item. sweetName
// is what the form shows; when empty the name recorded on the order is used.
func (s *HistorySession) SelectForReview(sweetID, sweetName, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	item, state, err := s.lookup(sweetID, orderID)
	if err != nil {
		return err
	}
	if err := s.requireEligible(state); err != nil {
		return err
	}

	if sweetName == "" {
		sweetName = item.Name
	}
	s.selection = &ReviewSelection{SweetID: sweetID, SweetName: sweetName, OrderID: orderID}
	s.view.OpenReviewForm(sweetID, sweetName, orderID)
	return nil
}

// CancelReview closes the review form without writing anything.
func (s *HistorySession) CancelReview() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection = nil
	s.view.CloseReviewForm()
}

// SubmitReview validates the form and commits the review for the selected
// item. Validation happens before any store access; on failure the session
// is left as it was.
func (s *HistorySession) SubmitReview(ctx context.Context, in ReviewInput) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.principal == nil {
		s.view.ShowError(MsgNotLoggedIn)
		return nil, domain.ErrUnauthenticated
	}
	if s.selection == nil {
		s.view.ShowError(MsgNoSelection)
		return nil, domain.ErrNoSelection
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validator.Validate(in); err != nil {
		s.view.ShowError(MsgReviewIncomplete)
		return nil, err
	}

	sel := *s.selection
	_, state, err := s.lookup(sel.SweetID, sel.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEligible(state); err != nil {
		return nil, err
	}

	log := s.svc.logger.With(
		zap.String("user_id", s.principal.UserID),
		zap.String("sweet_id", sel.SweetID),
		zap.String("order_id", sel.OrderID))

	userName, err := s.svc.reviews.ResolveUserName(ctx, s.principal)
	if err != nil {
		log.Error("Failed to resolve reviewer name", zap.Error(err))
		s.view.ShowError(MsgSubmitFailed)
		return nil, err
	}

	review, err := s.svc.reviews.Submit(ctx, ReviewSubmission{
		SweetID:  sel.SweetID,
		OrderID:  sel.OrderID,
		UserID:   s.principal.UserID,
		UserName: userName,
		Rating:   in.Rating,
		Comment:  in.Comment,
	})
	if err != nil {
		s.view.ShowError(MsgSubmitFailed)
		return nil, err
	}

	s.reviewed.Add(review.Key())
	s.selection = nil
	s.view.MarkReviewed(sel.SweetID, sel.OrderID)
	s.view.CloseReviewForm()
	log.Info("Review submitted from order history", zap.String("review_id", review.ID))
	return review, nil
}

// Selection returns a copy of the open review form's target, or nil.
func (s *HistorySession) Selection() *ReviewSelection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection == nil {
		return nil
	}
	sel := *s.selection
	return &sel
}

// IsReviewed reports whether the session knows the pair as reviewed.
func (s *HistorySession) IsReviewed(sweetID, orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewed.Has(domain.NewReviewKey(sweetID, orderID))
}

func (s *HistorySession) ready() error {
	if s.principal == nil {
		s.view.ShowError(MsgNotLoggedIn)
		return domain.ErrUnauthenticated
	}
	if !s.loaded {
		return domain.ErrHistoryNotLoaded
	}
	return nil
}

func (s *HistorySession) lookup(sweetID, orderID string) (domain.LineItem, ReviewState, error) {
	for _, o := range s.orders {
		if o.ID != orderID {
			continue
		}
		item, ok := o.Item(sweetID)
		if !ok {
			break
		}
		return item, reviewStateOf(o.Status, sweetID, orderID, s.reviewed), nil
	}
	s.view.ShowError(MsgNotEligible)
	return domain.LineItem{}, "", fmt.Errorf("%w: sweet %s is not part of order %s", domain.ErrNotFound, sweetID, orderID)
}

func (s *HistorySession) requireEligible(state ReviewState) error {
	switch state {
	case ReviewStateEligible:
		return nil
	case ReviewStateReviewed:
		s.view.ShowError(MsgAlreadyReviewed)
		return domain.ErrReviewAlreadyExists
	default:
		s.view.ShowError(MsgNotEligible)
		return domain.ErrNotEligible
	}
}
