// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package auth

import (
	"encoding/json"
	"net/http"

	xglog "github.com/ManuGH/padmeta/internal/log"
)

// Middleware rejects requests without a valid bearer token with 401.
// When anonymous is true every request is let through as AnonymousPrincipal.
func Middleware(token string, anonymous bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if anonymous {
				next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), AnonymousPrincipal)))
				return
			}

			got := ExtractToken(r)
			if !AuthorizeToken(got, token) {
				xglog.FromContext(r.Context()).Warn().
					Str(xglog.FieldEvent, "auth.rejected").
					Str("remote_addr", r.RemoteAddr).
					Bool("token_present", got != "").
					Msg("unauthorized request")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", `Bearer realm="padmeta"`)
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid or missing API key"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), NewPrincipal(got))))
		})
	}
}
