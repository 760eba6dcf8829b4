package httpapi

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/identity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/validator"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// historyResponse is the page plus whatever the last action produced.
type historyResponse struct {
	pageState
	Review *reviewResponse   `json:"review,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

type selectionRequest struct {
	SweetID   string `json:"sweetId"`
	OrderID   string `json:"orderId"`
	SweetName string `json:"sweetName"`
}

// HistoryHandler serves the order history page and its review form.
type HistoryHandler struct {
	pages  *HistoryPages
	logger *logger.Logger
}

func NewHistoryHandler(pages *HistoryPages, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{pages: pages, logger: log.Named("HistoryHTTPHandler")}
}

// HandleGetHistory (re)opens the page for the current caller and loads it.
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	p := identity.PrincipalFrom(r.Context())
	page := h.pages.open(p)
	state, err := page.do(func(s *usecase.HistorySession) error {
		return s.OnSessionChanged(r.Context(), p)
	})
	h.respond(w, r, http.StatusOK, state, nil, err)
}

func (h *HistoryHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := validator.Decode(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	state, err := page.do(func(s *usecase.HistorySession) error {
		return s.SelectForReview(req.SweetID, req.SweetName, req.OrderID)
	})
	h.respond(w, r, http.StatusOK, state, nil, err)
}

func (h *HistoryHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	state, _ := page.do(func(s *usecase.HistorySession) error {
		s.CancelReview()
		return nil
	})
	respondWithJSON(w, http.StatusOK, historyResponse{pageState: state})
}

func (h *HistoryHandler) HandleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var in usecase.ReviewInput
	if err := validator.Decode(r, &in); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	var review *domain.Review
	state, err := page.do(func(s *usecase.HistorySession) error {
		var err error
		review, err = s.SubmitReview(r.Context(), in)
		return err
	})
	h.respond(w, r, http.StatusCreated, state, review, err)
}

// page finds the caller's open page. Actions on a page that was never
// loaded, or has expired, are rejected.
func (h *HistoryHandler) page(w http.ResponseWriter, r *http.Request) (*historyPage, bool) {
	page := h.pages.get(identity.PrincipalFrom(r.Context()))
	if page == nil {
		respondError(w, h.logger, r, domain.ErrHistoryNotLoaded)
		return nil, false
	}
	return page, true
}

func (h *HistoryHandler) respond(w http.ResponseWriter, r *http.Request, okCode int, state pageState, review *domain.Review, err error) {
	if err == nil {
		resp := historyResponse{pageState: state}
		if review != nil {
			resp.Review = toReviewResponse(review)
		}
		respondWithJSON(w, okCode, resp)
		return
	}
	code, body := errorBody(h.logger, r, err)
	// The page carries the user-facing message; fall back to the error text
	// when the session had nothing to say.
	if state.Error == "" {
		state.Error = body.Error
	}
	respondWithJSON(w, code, historyResponse{pageState: state, Fields: body.Fields})
}

// SetupHistoryRoutes mounts the order history page. The routes stay outside
// RequirePrincipal so a logged-out caller still gets the page's own message.
func SetupHistoryRoutes(r chi.Router, h *HistoryHandler) {
	r.Route("/api/history", func(r chi.Router) {
		r.Get("/", h.HandleGetHistory)
		r.Post("/selection", h.HandleSelect)
		r.Delete("/selection", h.HandleCancel)
		r.Post("/reviews", h.HandleSubmitReview)
	})
}
