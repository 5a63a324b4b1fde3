package auth

// TokenValidator validates a raw bearer token without tying callers to
// a specific signing implementation.
type TokenValidator interface {
	Decode(tokenString string) (TokenClaims, error)
}

// TokenValidatorFunc adapts a function into a TokenValidator.
type TokenValidatorFunc func(tokenString string) (TokenClaims, error)

// Decode satisfies the TokenValidator interface.
func (f TokenValidatorFunc) Decode(tokenString string) (TokenClaims, error) {
	if f == nil {
		return nil, ErrInvalidToken
	}
	return f(tokenString)
}
