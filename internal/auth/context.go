package auth

import (
	"context"

	"github.com/noteplane/noteplane/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// authContextKey is the context key for storing AuthContext.
const authContextKey contextKey = "auth_context"

// ContextWithAuth adds AuthContext to the context.
func ContextWithAuth(ctx context.Context, authCtx *model.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, authCtx)
}

// AuthFromContext retrieves AuthContext from the context.
// Returns nil if not present.
func AuthFromContext(ctx context.Context) *model.AuthContext {
	authCtx, ok := ctx.Value(authContextKey).(*model.AuthContext)
	if !ok {
		return nil
	}
	return authCtx
}

// MustAuthFromContext retrieves AuthContext from the context.
// Panics if not present (use only behind the auth middleware).
func MustAuthFromContext(ctx context.Context) *model.AuthContext {
	authCtx := AuthFromContext(ctx)
	if authCtx == nil {
		panic("auth context not found - ensure auth middleware is applied")
	}
	return authCtx
}
