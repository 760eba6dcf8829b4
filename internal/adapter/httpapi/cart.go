package httpapi

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/identity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/validator"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type addToCartRequest struct {
	SweetID  string `json:"sweetId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

type CartHandler struct {
	carts  *usecase.CartService
	logger *logger.Logger
}

func NewCartHandler(carts *usecase.CartService, log *logger.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: log.Named("CartHTTPHandler")}
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	p := identity.PrincipalFrom(r.Context())
	cart, err := h.carts.GetCart(r.Context(), p.UserID)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	p := identity.PrincipalFrom(r.Context())
	cart, err := h.carts.AddToCart(r.Context(), p.UserID, req.SweetID, req.Quantity)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	p := identity.PrincipalFrom(r.Context())
	if err := h.carts.ClearCart(r.Context(), p.UserID); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.carts.PlaceOrder(r.Context(), identity.PrincipalFrom(r.Context()))
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toOrderResponse(order))
}

// SetupCartRoutes mounts the cart and checkout. Every route needs a signed-in
// caller.
func SetupCartRoutes(r chi.Router, h *CartHandler) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePrincipal)

		r.Get("/api/cart", h.HandleGetCart)
		r.Post("/api/cart/items", h.HandleAddItem)
		r.Delete("/api/cart", h.HandleClearCart)
		r.Post("/api/orders", h.HandlePlaceOrder)
	})
}
