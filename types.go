package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Email() string
	IsAdmin() bool
}

// UserDirectory is the lookup capability backed by the persistence
// layer. Implementations must be safe for concurrent use and reflect
// the latest committed state. Not-found must satisfy errors.IsNotFound.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (Identity, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenService encodes and validates bearer tokens
type TokenService interface {
	Encode(claims TokenClaims, ttl time.Duration) (string, error)
	Decode(tokenString string) (TokenClaims, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetTokenTTL() time.Duration
	GetDevMode() bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
