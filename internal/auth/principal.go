// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Principal is the authenticated caller of a mutating endpoint.
type Principal struct {
	// ID is stable per token and safe to log.
	ID        string
	Anonymous bool
}

// AnonymousPrincipal is used when authentication is disabled.
var AnonymousPrincipal = &Principal{ID: "anonymous", Anonymous: true}

// NewPrincipal derives a principal from a validated token. The token itself
// is not retained.
func NewPrincipal(token string) *Principal {
	hash := sha256.Sum256([]byte(token))
	return &Principal{ID: "t_" + hex.EncodeToString(hash[:])[:16]}
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by the middleware, or nil.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
