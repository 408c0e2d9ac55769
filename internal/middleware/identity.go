package middleware

import (
	"log/slog"
	"net/http"

	"github.com/intelvestor/gateway/internal/auth"
)

// RequireAuthorization rejects requests that carry no Authorization header.
// The header's content is not inspected.
func RequireAuthorization(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				logAuthFailure(logger, r, "missing_credential")
				writeAuthError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Identity decodes the caller's claims from the Authorization header and
// stores them in the request context. Signatures are not verified.
func Identity(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logAuthFailure(logger, r, "missing_credential")
				writeAuthError(w)
				return
			}

			claims, err := auth.ReadClaims(header)
			if err != nil {
				logAuthFailure(logger, r, "malformed_credential")
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

func writeAuthError(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credential")
}
