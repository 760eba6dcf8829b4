package httpapi

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/identity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/validator"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type sweetRequest struct {
	Name        string  `json:"name" validate:"notblank"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"notblank"`
	ImageURL    string  `json:"imageUrl" validate:"required"`
}

func (req sweetRequest) details() domain.SweetDetails {
	return domain.SweetDetails{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AdminHandler struct {
	admin  *usecase.AdminService
	logger *logger.Logger
}

func NewAdminHandler(admin *usecase.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: log.Named("AdminHTTPHandler")}
}

// requireAdmin lets through only callers whose stored profile is an admin.
func (h *AdminHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.admin.Authorize(r.Context(), identity.PrincipalFrom(r.Context())); err != nil {
			respondError(w, h.logger, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *AdminHandler) HandleListSweets(w http.ResponseWriter, r *http.Request) {
	sweets, err := h.admin.ListSweets(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toSweetResponses(sweets))
}

func (h *AdminHandler) HandleCreateSweet(w http.ResponseWriter, r *http.Request) {
	var req sweetRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	sweet, err := h.admin.CreateSweet(r.Context(), req.details())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toSweetResponse(sweet))
}

func (h *AdminHandler) HandleUpdateSweet(w http.ResponseWriter, r *http.Request) {
	var req sweetRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	sweet, err := h.admin.UpdateSweet(r.Context(), chi.URLParam(r, "sweetId"), req.details())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toSweetResponse(sweet))
}

func (h *AdminHandler) HandleDeleteSweet(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteSweet(r.Context(), chi.URLParam(r, "sweetId")); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	var filter domain.OrderFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseOrderStatus(raw)
		if err != nil {
			respondError(w, h.logger, r, err)
			return
		}
		filter.Status = &status
	}
	orders, err := h.admin.ListOrders(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) HandleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	order, err := h.admin.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderId"), req.Status)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.admin.ListContacts(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	out := make([]contactResponse, len(contacts))
	for i, c := range contacts {
		out[i] = toContactResponse(c)
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.admin.ListReviews(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	out := make([]*reviewResponse, len(reviews))
	for i, rv := range reviews {
		out[i] = toReviewResponse(rv)
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) HandleDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteReview(r.Context(), chi.URLParam(r, "reviewId")); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetupAdminRoutes mounts the back office under /api/admin.
func SetupAdminRoutes(r chi.Router, h *AdminHandler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequirePrincipal)
		r.Use(h.requireAdmin)

		r.Get("/sweets", h.HandleListSweets)
		r.Post("/sweets", h.HandleCreateSweet)
		r.Put("/sweets/{sweetId}", h.HandleUpdateSweet)
		r.Delete("/sweets/{sweetId}", h.HandleDeleteSweet)

		r.Get("/orders", h.HandleListOrders)
		r.Put("/orders/{orderId}/status", h.HandleUpdateOrderStatus)

		r.Get("/users", h.HandleListUsers)
		r.Get("/contacts", h.HandleListContacts)

		r.Get("/reviews", h.HandleListReviews)
		r.Delete("/reviews/{reviewId}", h.HandleDeleteReview)
	})
}
