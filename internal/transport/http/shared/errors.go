package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"staffpay/internal/domain/apperr"
	"staffpay/internal/domain/auth"
	"staffpay/internal/requestctx"
	"staffpay/internal/transport/http/api"
)

// WriteError maps domain error kinds onto the envelope. Unknown errors are
// logged and reported as 500 without their message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestctx.GetRequestID(r.Context())
	switch {
	case apperr.IsInvalidInput(err):
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), requestID)
	case apperr.IsNotFound(err):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", requestID)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

// DecodeJSON rejects unknown fields and trailing data.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

func FailBadBody(w http.ResponseWriter, r *http.Request, err error) {
	api.Fail(w, http.StatusBadRequest, "invalid_json", err.Error(), requestctx.GetRequestID(r.Context()))
}
