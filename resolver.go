package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// AccessResolver recovers the live identity behind a bearer token and
// layers the admin gate on top. Every call re-enters the chain from
// unauthenticated; nothing is cached between requests.
type AccessResolver struct {
	tokens    TokenValidator
	directory UserDirectory
	logger    Logger
}

// NewAccessResolver returns a resolver bound to a token validator and
// a user directory.
func NewAccessResolver(tokens TokenValidator, directory UserDirectory) *AccessResolver {
	return &AccessResolver{
		tokens:    tokens,
		directory: directory,
		logger:    defLogger{},
	}
}

func (r *AccessResolver) WithLogger(logger Logger) *AccessResolver {
	r.logger = logger
	return r
}

// CurrentIdentity decodes the token and re-resolves its subject
// against the directory. The returned identity is live, not a
// snapshot from issuance time, so a deleted or demoted account is
// reflected immediately. Every failure is unauthenticated.
func (r *AccessResolver) CurrentIdentity(ctx context.Context, token string) (Identity, error) {
	claims, err := r.tokens.Decode(token)
	if err != nil {
		if IsTokenExpiredError(err) {
			r.logger.Debug("CurrentIdentity rejected expired token")
		}
		return nil, asUnauthenticated(err)
	}

	subject := claims.Subject()
	if subject == "" {
		return nil, ErrMissingSubject
	}

	user, err := r.directory.FindByEmail(ctx, subject)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		r.logger.Error("CurrentIdentity directory lookup error: %v", err)
		return nil, asUnauthenticated(err)
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	return NewIdentityFromUser(user), nil
}

// CurrentAdminIdentity is CurrentIdentity plus the privilege gate. A
// valid identity without the admin flag gets ErrForbidden, never an
// unauthenticated error.
func (r *AccessResolver) CurrentAdminIdentity(ctx context.Context, token string) (Identity, error) {
	identity, err := r.CurrentIdentity(ctx, token)
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin() {
		return nil, ErrForbidden
	}

	return identity, nil
}

// asUnauthenticated keeps auth-category errors as-is and forces
// anything else (cancelled lookups, infrastructure failures) into the
// unauthenticated bucket so no partial identity state leaks out.
func asUnauthenticated(err error) error {
	if IsUnauthenticated(err) {
		return err
	}
	return errors.Wrap(err, errors.CategoryAuth, "could not validate credentials").
		WithTextCode(ErrInvalidToken.TextCode).
		WithCode(errors.CodeUnauthorized)
}
