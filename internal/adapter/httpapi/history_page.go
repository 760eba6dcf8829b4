package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/usecase"
	"go.uber.org/zap"
)

type historyItem struct {
	SweetID     string              `json:"sweetId"`
	Name        string              `json:"name"`
	Quantity    int                 `json:"quantity"`
	ReviewState usecase.ReviewState `json:"reviewState"`
}

type historyOrder struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"createdAt"`
	Status     string        `json:"status"`
	TotalPrice float64       `json:"totalPrice"`
	Items      []historyItem `json:"items"`
}

type reviewForm struct {
	Open      bool   `json:"open"`
	SweetID   string `json:"sweetId,omitempty"`
	SweetName string `json:"sweetName,omitempty"`
	OrderID   string `json:"orderId,omitempty"`
}

// pageState is the order history page as the client should draw it.
type pageState struct {
	Orders     []historyOrder `json:"orders"`
	ReviewForm reviewForm     `json:"reviewForm"`
	Error      string         `json:"error,omitempty"`
}

// pageView records what the session asks to display. Access is serialised by
// the owning historyPage.
type pageView struct {
	state pageState
}

func newPageView() *pageView {
	return &pageView{state: pageState{Orders: []historyOrder{}}}
}

func (v *pageView) RenderOrderList(orders []usecase.OrderView) {
	out := make([]historyOrder, len(orders))
	for i, o := range orders {
		items := make([]historyItem, len(o.Items))
		for j, it := range o.Items {
			items[j] = historyItem{SweetID: it.SweetID, Name: it.Name, Quantity: it.Quantity, ReviewState: it.ReviewState}
		}
		out[i] = historyOrder{
			ID:         o.ID,
			CreatedAt:  o.CreatedAt,
			Status:     string(o.Status),
			TotalPrice: o.TotalPrice,
			Items:      items,
		}
	}
	v.state.Orders = out
}

func (v *pageView) OpenReviewForm(sweetID, sweetName, orderID string) {
	v.state.ReviewForm = reviewForm{Open: true, SweetID: sweetID, SweetName: sweetName, OrderID: orderID}
}

func (v *pageView) CloseReviewForm() {
	v.state.ReviewForm = reviewForm{}
}

func (v *pageView) MarkReviewed(sweetID, orderID string) {
	for i := range v.state.Orders {
		if v.state.Orders[i].ID != orderID {
			continue
		}
		for j := range v.state.Orders[i].Items {
			if v.state.Orders[i].Items[j].SweetID == sweetID {
				v.state.Orders[i].Items[j].ReviewState = usecase.ReviewStateReviewed
			}
		}
	}
}

func (v *pageView) ShowError(msg string) {
	v.state.Error = msg
}

// snapshot copies the state so it can be encoded after the page is unlocked.
func (v *pageView) snapshot() pageState {
	s := v.state
	s.Orders = make([]historyOrder, len(v.state.Orders))
	for i, o := range v.state.Orders {
		o.Items = append([]historyItem(nil), o.Items...)
		s.Orders[i] = o
	}
	return s
}

// historyPage is one customer's open order history page.
type historyPage struct {
	mu       sync.Mutex
	session  *usecase.HistorySession
	view     *pageView
	lastUsed time.Time // guarded by HistoryPages.mu
}

// do runs fn against the session with a cleared error banner and returns the
// resulting page.
func (p *historyPage) do(fn func(s *usecase.HistorySession) error) (pageState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.state.Error = ""
	err := fn(p.session)
	return p.view.snapshot(), err
}

// HistoryPages keeps one history page per signed-in user. Pages idle for
// longer than ttl are dropped, and with them any half-filled review form.
type HistoryPages struct {
	svc    *usecase.HistoryService
	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger

	mu    sync.Mutex
	pages map[string]*historyPage
}

func NewHistoryPages(svc *usecase.HistoryService, ttl time.Duration, log *logger.Logger) *HistoryPages {
	return &HistoryPages{
		svc:    svc,
		ttl:    ttl,
		now:    time.Now,
		logger: log.Named("HistoryPages"),
		pages:  make(map[string]*historyPage),
	}
}

func (hp *HistoryPages) newPage() *historyPage {
	view := newPageView()
	return &historyPage{session: hp.svc.NewSession(view), view: view}
}

// open returns the user's page, creating it when there is none. A nil
// principal gets a throwaway page that only reports the logged-out state.
func (hp *HistoryPages) open(p *domain.Principal) *historyPage {
	if p == nil {
		return hp.newPage()
	}
	hp.mu.Lock()
	defer hp.mu.Unlock()

	now := hp.now()
	page, ok := hp.pages[p.UserID]
	if !ok || hp.expired(page, now) {
		page = hp.newPage()
		hp.pages[p.UserID] = page
	}
	page.lastUsed = now
	return page
}

// get returns the user's live page or nil.
func (hp *HistoryPages) get(p *domain.Principal) *historyPage {
	if p == nil {
		return hp.newPage()
	}
	hp.mu.Lock()
	defer hp.mu.Unlock()

	now := hp.now()
	page, ok := hp.pages[p.UserID]
	if !ok {
		return nil
	}
	if hp.expired(page, now) {
		delete(hp.pages, p.UserID)
		return nil
	}
	page.lastUsed = now
	return page
}

func (hp *HistoryPages) expired(page *historyPage, now time.Time) bool {
	return hp.ttl > 0 && now.Sub(page.lastUsed) > hp.ttl
}

// Sweep drops expired pages and reports how many were removed.
func (hp *HistoryPages) Sweep() int {
	hp.mu.Lock()
	defer hp.mu.Unlock()

	now := hp.now()
	removed := 0
	for id, page := range hp.pages {
		if hp.expired(page, now) {
			delete(hp.pages, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired pages every interval until ctx is done.
func (hp *HistoryPages) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := hp.Sweep(); n > 0 {
				hp.logger.Debug("Expired history pages dropped", zap.Int("count", n))
			}
		}
	}
}
