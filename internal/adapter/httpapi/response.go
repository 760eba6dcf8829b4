package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/validator"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReviewAlreadyExists),
		errors.Is(err, domain.ErrNotEligible),
		errors.Is(err, domain.ErrHistoryNotLoaded),
		errors.Is(err, domain.ErrNoSelection):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorBody describes err for the client. Internal failures are logged and
// replaced by a generic message.
func errorBody(log *logger.Logger, r *http.Request, err error) (int, errorResponse) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error("Request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		return code, errorResponse{Error: "internal server error"}
	}
	body := errorResponse{Error: err.Error()}
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		body.Error = "validation failed"
		body.Fields = verr.Fields()
	}
	return code, body
}

func respondError(w http.ResponseWriter, log *logger.Logger, r *http.Request, err error) {
	code, body := errorBody(log, r, err)
	respondWithJSON(w, code, body)
}
