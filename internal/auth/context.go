package auth

import (
	"context"

	"github.com/intelvestor/gateway/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// claimsContextKey is the context key for storing IdentityClaims.
	claimsContextKey contextKey = "identity_claims"
)

// ContextWithClaims adds identity claims to the context.
func ContextWithClaims(ctx context.Context, claims model.IdentityClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves identity claims from the context.
// The boolean is false if the identity middleware did not run.
func ClaimsFromContext(ctx context.Context) (model.IdentityClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(model.IdentityClaims)
	return claims, ok
}

// SubjectFromContext is a convenience function to get the caller's subject.
// Returns empty string if no claims are present.
func SubjectFromContext(ctx context.Context) string {
	claims, _ := ClaimsFromContext(ctx)
	return claims.Subject
}
