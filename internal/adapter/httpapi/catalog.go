package httpapi

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalog *usecase.CatalogService
	logger  *logger.Logger
}

func NewCatalogHandler(catalog *usecase.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: log.Named("CatalogHTTPHandler")}
}

func (h *CatalogHandler) HandleListSweets(w http.ResponseWriter, r *http.Request) {
	sweets, err := h.catalog.ListSweets(r.Context())
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toSweetResponses(sweets))
}

func (h *CatalogHandler) HandleGetSweet(w http.ResponseWriter, r *http.Request) {
	sweet, err := h.catalog.GetSweet(r.Context(), chi.URLParam(r, "sweetId"))
	if err != nil {
		respondError(w, h.logger, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toSweetResponse(sweet))
}

// SetupCatalogRoutes mounts the public catalog.
func SetupCatalogRoutes(r chi.Router, h *CatalogHandler) {
	r.Get("/api/sweets", h.HandleListSweets)
	r.Get("/api/sweets/{sweetId}", h.HandleGetSweet)
}
