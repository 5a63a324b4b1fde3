package auth

import (
	"context"

	"github.com/goliatone/go-router"
)

var identityCtxKey = &contextKey{"identity"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithContext sets the Identity in the given context
func WithContext(r context.Context, identity Identity) context.Context {
	return context.WithValue(r, identityCtxKey, identity)
}

// FromContext finds the identity from the context.
func FromContext(ctx context.Context) (Identity, bool) {
	raw, ok := ctx.Value(identityCtxKey).(Identity)
	return raw, ok
}

// WithClaimsContext sets the TokenClaims in the given context
func WithClaimsContext(r context.Context, claims TokenClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the TokenClaims from the standard context
func GetClaims(ctx context.Context) (TokenClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(TokenClaims)
	return raw, ok
}

// GetRouterIdentity extracts the resolved Identity from the router
// context, where the JWT middleware stores it.
func GetRouterIdentity(ctx router.Context, key string) (Identity, bool) {
	if key == "" {
		key = "user" // Default key used by JWT middleware
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	identity, ok := raw.(Identity)
	return identity, ok
}

// IsAdmin reports whether the context carries an admin identity.
func IsAdmin(ctx context.Context) bool {
	identity, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return identity.IsAdmin()
}
