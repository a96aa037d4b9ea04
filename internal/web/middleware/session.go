package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/homestock/internal/inventory"
	"github.com/JonMunkholm/homestock/internal/logging"
)

// HouseholdHeader names the household a request acts for.
const HouseholdHeader = "X-Household-Address"

type sessionKey struct{}

// Session returns middleware that reads the caller's bearer token and
// household address into an inventory.Session on the request context.
//
// With required set, a request missing either value is rejected with 401.
// Otherwise an incomplete session is passed through and the upstream
// decides.
func Session(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := inventory.Session{
				Token:   bearerToken(r.Header.Get("Authorization")),
				Address: strings.TrimSpace(r.Header.Get(HouseholdHeader)),
			}

			if required && (sess.Token == "" || sess.Address == "") {
				slog.Warn("session: missing credentials",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
					"has_token", sess.Token != "",
					"has_address", sess.Address != "",
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"missing session","message":"You are not logged in","code":"REQ002"}`))
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, sess)
			ctx = logging.WithHousehold(ctx, sess.Address)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the session stored by Session.
func SessionFrom(ctx context.Context) (inventory.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(inventory.Session)
	return sess, ok
}

// bearerToken extracts the token from an "Authorization: Bearer x" value.
func bearerToken(header string) string {
	const prefix = "bearer "
	header = strings.TrimSpace(header)
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
