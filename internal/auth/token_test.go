// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractToken_PriorityOrder(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://example.local/track", nil)
	r.Header.Set("Authorization", "Bearer bearer-token ")
	r.Header.Set("X-API-Token", "header-token")

	if got := ExtractToken(r); got != "bearer-token" {
		t.Fatalf("ExtractToken() = %q, want %q", got, "bearer-token")
	}

	r.Header.Del("Authorization")
	if got := ExtractToken(r); got != "header-token" {
		t.Fatalf("ExtractToken() = %q, want %q", got, "header-token")
	}
}

func TestExtractToken_RejectsOtherSchemes(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://example.local/track", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := ExtractToken(r); got != "" {
		t.Fatalf("ExtractToken() = %q, want empty", got)
	}
}

func TestAuthorizeToken(t *testing.T) {
	if AuthorizeToken("secret", "secret") != true {
		t.Fatal("AuthorizeToken should accept exact match")
	}
	if AuthorizeToken("secret", "other") != false {
		t.Fatal("AuthorizeToken should reject mismatch")
	}
	if AuthorizeToken("secret", "secret-longer") != false {
		t.Fatal("AuthorizeToken should reject prefix match")
	}
	if AuthorizeToken("", "secret") != false {
		t.Fatal("AuthorizeToken should reject empty got token")
	}
	if AuthorizeToken("secret", "") != false {
		t.Fatal("AuthorizeToken should reject empty expected token")
	}
}

func TestMiddleware(t *testing.T) {
	var seen *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		anonymous  bool
		header     string
		wantStatus int
		wantAnon   bool
	}{
		{name: "valid token", header: "Bearer secret", wantStatus: http.StatusNoContent},
		{name: "wrong token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "missing token", wantStatus: http.StatusUnauthorized},
		{name: "anonymous mode", anonymous: true, wantStatus: http.StatusNoContent, wantAnon: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodDelete, "/track", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			Middleware("secret", tt.anonymous)(next).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if !strings.Contains(w.Body.String(), `"error"`) {
					t.Errorf("body = %q, want JSON error", w.Body.String())
				}
				if seen != nil {
					t.Error("handler must not run for rejected requests")
				}
				return
			}
			if seen == nil {
				t.Fatal("principal not attached")
			}
			if seen.Anonymous != tt.wantAnon {
				t.Errorf("Anonymous = %v, want %v", seen.Anonymous, tt.wantAnon)
			}
			if !tt.wantAnon && !strings.HasPrefix(seen.ID, "t_") {
				t.Errorf("ID = %q, want token-derived id", seen.ID)
			}
		})
	}
}
