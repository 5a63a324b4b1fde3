package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrInvalidCredentials is returned for unknown emails and wrong
// passwords alike. Keeping the two outcomes identical prevents
// account enumeration through the login endpoint.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrInvalidToken covers bad signatures, malformed structure, and
// expiry. The distinction only exists in debug logs.
var ErrInvalidToken = errors.New("invalid or expired token", errors.CategoryAuth).
	WithTextCode("INVALID_TOKEN").
	WithCode(errors.CodeUnauthorized)

// ErrMissingSubject is returned when a decoded token carries no sub claim.
var ErrMissingSubject = errors.New("token has no subject", errors.CategoryAuth).
	WithTextCode("MISSING_SUBJECT").
	WithCode(errors.CodeUnauthorized)

// ErrIdentityNotFound is returned when a token subject no longer
// resolves to a user, e.g. a deleted account with a still-valid token.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned by the admin gate for authenticated
// identities without the admin flag. Never conflated with the
// unauthenticated errors above.
var ErrForbidden = errors.New("the user doesn't have enough privileges", errors.CategoryAuthz).
	WithTextCode("FORBIDDEN").
	WithCode(errors.CodeForbidden)

// ErrMismatchedHashAndPassword signals a failed bcrypt comparison.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryAuth).
	WithTextCode("EMPTY_PASSWORD")

// IsUnauthenticated reports whether err should surface as a 401 with a
// WWW-Authenticate: Bearer challenge.
func IsUnauthenticated(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryAuth
	}
	return false
}

// IsForbidden reports whether err should surface as a 403.
func IsForbidden(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryAuthz
	}
	return false
}

// IsTokenExpiredError will check for expired tokens. Used on log paths
// only; callers are handed the collapsed ErrInvalidToken.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
