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

type AccountHandler struct {
	accounts *usecase.AccountService
	logger   *logger.Logger
}

func NewAccountHandler(accounts *usecase.AccountService, log *logger.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: log.Named("AccountHTTPHandler")}
}

func (h *AccountHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.Profile(r.Context(), identity.PrincipalFrom(r.Context()))
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AccountHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in usecase.ProfileInput
	if err := validator.Decode(r, &in); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	user, err := h.accounts.UpdateProfile(r.Context(), identity.PrincipalFrom(r.Context()), in)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AccountHandler) HandleSubmitContact(w http.ResponseWriter, r *http.Request) {
	var in usecase.ContactInput
	if err := validator.Decode(r, &in); err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	msg, err := h.accounts.SubmitContact(r.Context(), in)
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toContactResponse(msg))
}

func SetupAccountRoutes(r chi.Router, h *AccountHandler) {
	r.Post("/api/contacts", h.HandleSubmitContact)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePrincipal)

		r.Get("/api/me", h.HandleGetProfile)
		r.Put("/api/me", h.HandleUpdateProfile)
	})
}
