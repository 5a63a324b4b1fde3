package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// DefaultTokenTTL is the expiry window applied when the caller does
// not supply one.
const DefaultTokenTTL = 30 * time.Minute

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	tokenTTL   time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService instance. The signing key
// is fixed for the lifetime of the service; there is no rotation, a
// single active key both issues and validates.
func NewTokenService(signingKey []byte, tokenTTL time.Duration, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// NewTokenServiceFromConfig wires a TokenService from validated config.
func NewTokenServiceFromConfig(cfg Config, logger Logger) TokenService {
	return NewTokenService([]byte(cfg.GetSigningKey()), cfg.GetTokenTTL(), logger)
}

// Encode copies the claims, injects exp = now UTC + ttl, and signs the
// result with HS256. A sub claim is not required at issuance; the
// consumer rejects subjectless tokens instead.
func (ts *TokenServiceImpl) Encode(claims TokenClaims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = ts.tokenTTL
	}

	payload := jwt.MapClaims(claims.clone())
	payload[ExpirationClaim] = jwt.NewNumericDate(time.Now().UTC().Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

// Decode parses and validates a token string. Signature mismatch,
// malformed structure, and expiry all collapse into ErrInvalidToken.
func (ts *TokenServiceImpl) Decode(tokenString string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService decode unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			ts.logger.Debug("TokenService decode rejected expired token")
		}
		return nil, errors.Wrap(err, ErrInvalidToken.Category, ErrInvalidToken.Message).
			WithTextCode(ErrInvalidToken.TextCode)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return TokenClaims(claims), nil
	}

	ts.logger.Error("TokenService decode could not map claims")
	return nil, ErrInvalidToken
}
