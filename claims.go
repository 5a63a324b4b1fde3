package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SubjectClaim is the registered claim carrying the identity's email.
const SubjectClaim = "sub"

// ExpirationClaim is injected by TokenService.Encode on every token.
const ExpirationClaim = "exp"

// TokenClaims is the claims set carried by a bearer token. Arbitrary
// caller-supplied keys ride along with the registered sub and exp.
type TokenClaims map[string]any

// Subject returns the sub claim, or "" when absent or not a string.
func (c TokenClaims) Subject() string {
	sub, _ := c[SubjectClaim].(string)
	return sub
}

// ExpiresAt returns the exp claim as a time. The zero time means the
// claim is absent or unreadable.
func (c TokenClaims) ExpiresAt() time.Time {
	switch exp := c[ExpirationClaim].(type) {
	case float64:
		return time.Unix(int64(exp), 0)
	case int64:
		return time.Unix(exp, 0)
	case *jwt.NumericDate:
		if exp != nil {
			return exp.Time
		}
	}
	return time.Time{}
}

// Get returns an arbitrary claim value.
func (c TokenClaims) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

func (c TokenClaims) clone() TokenClaims {
	out := make(TokenClaims, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	return out
}
