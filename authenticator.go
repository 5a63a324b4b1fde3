package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Auther authenticates credentials against the user directory and, via
// Login, issues bearer tokens for the resulting identity.
type Auther struct {
	directory UserDirectory
	tokens    TokenService
	logger    Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(directory UserDirectory, cfg Config) *Auther {
	return &Auther{
		directory: directory,
		tokens:    NewTokenServiceFromConfig(cfg, defLogger{}),
		logger:    defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService overrides the token service used by Login.
func (s *Auther) WithTokenService(tokens TokenService) *Auther {
	if tokens != nil {
		s.tokens = tokens
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// Authenticate resolves (email, password) into an identity. Unknown
// email and wrong password both come back as ErrInvalidCredentials;
// the caller cannot tell which one happened.
func (s *Auther) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	user, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Authenticate directory lookup error: %v", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return NewIdentityFromUser(user), nil
}

// Login authenticates and issues a token with sub set to the
// identity's email. No token is ever issued on a failure path.
func (s *Auther) Login(ctx context.Context, email, password string) (string, error) {
	identity, err := s.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Debug("Login rejected for %s", email)
		return "", err
	}

	token, err := s.tokens.Encode(TokenClaims{SubjectClaim: identity.Email()}, 0)
	if err != nil {
		s.logger.Error("Login token issuance error: %v", err)
		return "", err
	}

	return token, nil
}
