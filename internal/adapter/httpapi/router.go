package httpapi

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/identity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Catalog *CatalogHandler
	Cart    *CartHandler
	Account *AccountHandler
	History *HistoryHandler
	Admin   *AdminHandler
}

// NewRouter builds the storefront HTTP API. Every request is recovered,
// traced, logged and then resolved to a principal when it carries a valid
// bearer token.
func NewRouter(serviceName string, h Handlers, verifier *identity.Verifier, m *metrics.MetricsManager, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(log))
	r.Use(middleware.HTTPTracing(serviceName))
	r.Use(middleware.RequestLogger(log, m))
	r.Use(middleware.Authenticate(verifier, log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	SetupCatalogRoutes(r, h.Catalog)
	SetupAccountRoutes(r, h.Account)
	SetupCartRoutes(r, h.Cart)
	SetupHistoryRoutes(r, h.History)
	SetupAdminRoutes(r, h.Admin)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
	})
	return r
}
