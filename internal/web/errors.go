package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, status), with status 0 to derive it
//     from the error type
//  3. Error is mapped via inventory.MapError to a user-facing message
//  4. Technical error and context are logged with the request id
//  5. The user message is returned as JSON

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/JonMunkholm/homestock/internal/inventory"
	"github.com/JonMunkholm/homestock/internal/logging"
	"github.com/JonMunkholm/homestock/internal/remote"
)

var (
	errRateLimited   = errors.New("rate limit exceeded")
	errNoFile        = errors.New("no file provided")
	errFileTooLarge  = errors.New("file too large")
	errInvalidBody   = errors.New("invalid item: request body must be JSON with name and quantity")
	errMissingItemID = errors.New("item not found: missing id")
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error and writes the user-facing message.
// A zero status is derived from the error with statusFor.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	if status == 0 {
		status = statusFor(err)
	}
	userMsg := inventory.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if status >= 500 {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	}); encErr != nil {
		slog.Error("json encode error", "error", encErr)
	}
}

// statusFor maps core error types to HTTP statuses. Upstream auth failures
// are passed through so the client can re-authenticate.
func statusFor(err error) int {
	var (
		decodeErr    *inventory.DecodeError
		submitErr    *inventory.SubmissionError
		reconcileErr *inventory.ReconcileError
		statusErr    *remote.StatusError
	)

	switch {
	case errors.Is(err, errFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, inventory.ErrUnknownFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &decodeErr):
		if inventory.MapError(err).Code == "FILE001" {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	case errors.Is(err, inventory.ErrImportInProgress):
		return http.StatusConflict
	case errors.Is(err, inventory.ErrInvalidDraft), errors.Is(err, errNoFile), errors.Is(err, errInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, inventory.ErrNotFound), errors.Is(err, errMissingItemID):
		return http.StatusNotFound
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &reconcileErr):
		return http.StatusBadGateway
	case errors.As(err, &statusErr):
		switch statusErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return statusErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &submitErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// extractHost returns the host part of a host:port address, or "" if addr
// has no port.
func extractHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return host
}
