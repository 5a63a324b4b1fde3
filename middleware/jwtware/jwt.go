// Package jwtware guards go-router routes with the auth resolution
// chain. It owns the failure-to-HTTP contract: unauthenticated
// outcomes answer 401 with a WWW-Authenticate: Bearer challenge,
// privilege failures answer 403.
package jwtware

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-router"

	auth "github.com/creditline/go-auth"
)

var (
	defaultTokenLookup       = "header:" + router.HeaderAuthorization
	ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")
)

// IdentityResolver mirrors auth.AccessResolver; it is what the
// middleware drives on every request.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, token string) (auth.Identity, error)
	CurrentAdminIdentity(ctx context.Context, token string) (auth.Identity, error)
}

type Config struct {
	// Filter skips the middleware when it returns true.
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   func(router.Context, error) error
	// Resolver is required.
	Resolver IdentityResolver
	// RequireAdmin escalates through the privilege gate.
	RequireAdmin bool
	// ContextKey is the Locals key holding the resolved identity.
	ContextKey string
	// TokenLookup has the form "header:Authorization,query:auth_token".
	TokenLookup string
	AuthScheme  string
}

// New returns a handler that extracts the bearer token, resolves the
// identity, stores it under ContextKey, and continues the chain.
func New(config ...Config) router.HandlerFunc {
	cfg := GetDefaultConfig(config...)
	return func(ctx router.Context) error {
		if cfg.Filter != nil && cfg.Filter(ctx) {
			return ctx.Next()
		}

		raw, err := ExtractRawTokenFromContext(ctx, cfg.getExtractors())
		if err != nil {
			return cfg.ErrorHandler(ctx, err)
		}

		var identity auth.Identity
		if cfg.RequireAdmin {
			identity, err = cfg.Resolver.CurrentAdminIdentity(ctx.Context(), raw)
		} else {
			identity, err = cfg.Resolver.CurrentIdentity(ctx.Context(), raw)
		}
		if err != nil {
			return cfg.ErrorHandler(ctx, err)
		}

		ctx.Locals(cfg.ContextKey, identity)

		return cfg.SuccessHandler(ctx)
	}
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Resolver == nil {
		panic("AUTH: JWT middleware configuration: Resolver is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

// DefaultErrorHandler maps resolution failures onto the HTTP contract.
// Everything that is not an explicit privilege failure is answered as
// unauthenticated, missing headers included.
func DefaultErrorHandler(c router.Context, err error) error {
	if auth.IsForbidden(err) {
		return c.Status(router.StatusForbidden).
			SendString("The user doesn't have enough privileges")
	}

	return c.SetHeader("WWW-Authenticate", "Bearer").
		Status(router.StatusUnauthorized).
		SendString("Could not validate credentials")
}

func (cfg *Config) getExtractors() []JWTExtractor {
	return GetExtractors(cfg.TokenLookup, cfg.AuthScheme)
}

func ExtractRawTokenFromContext(ctx router.Context, extractors []JWTExtractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(ctx)
		if raw != "" && err == nil {
			break
		}
	}

	return raw, err
}

func GetExtractors(tokenLookup string, authSchemes ...string) []JWTExtractor {
	extractors := make([]JWTExtractor, 0)

	authScheme := "Bearer"
	if len(authSchemes) > 0 {
		authScheme = authSchemes[0]
	}

	// header:Authorization,query:auth_token
	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, jwtFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, jwtFromQuery(parts[1]))
		}
	}

	return extractors
}

type JWTExtractor func(c router.Context) (string, error)

// jwtFromHeader returns a function that extracts token from the request header.
func jwtFromHeader(header string, authScheme string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		a := c.GetString(header, "")
		l := len(authScheme)
		if l == 0 {
			return "", ErrJWTMissingOrMalformed
		}
		authScheme = strings.TrimSpace(authScheme)
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:]), nil
		}
		return "", ErrJWTMissingOrMalformed
	}
}

// jwtFromQuery returns a function that extracts token from the query string.
func jwtFromQuery(param string) func(c router.Context) (string, error) {
	return func(c router.Context) (string, error) {
		token := c.Query(param, "")
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}
