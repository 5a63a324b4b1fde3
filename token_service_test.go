package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/creditline/go-auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key")

// signToken bypasses Encode so tests can craft already-expired or
// foreign-key tokens.
func signToken(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestTokenServiceEncodeDecode(t *testing.T) {
	service := auth.NewTokenService(testSigningKey, 0, nil)

	t.Run("round trip preserves claims and injects exp", func(t *testing.T) {
		ttl := 15 * time.Minute
		before := time.Now().UTC()

		token, err := service.Encode(auth.TokenClaims{
			"sub":    "a@x.com",
			"tenant": "acme",
		}, ttl)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.Decode(token)
		require.NoError(t, err)

		assert.Equal(t, "a@x.com", claims.Subject())
		tenant, _ := claims.Get("tenant")
		assert.Equal(t, "acme", tenant)

		exp := claims.ExpiresAt()
		assert.WithinDuration(t, before.Add(ttl), exp, 5*time.Second)
	})

	t.Run("zero ttl falls back to the 30 minute default", func(t *testing.T) {
		before := time.Now().UTC()

		token, err := service.Encode(auth.TokenClaims{"sub": "a@x.com"}, 0)
		require.NoError(t, err)

		claims, err := service.Decode(token)
		require.NoError(t, err)
		assert.WithinDuration(t, before.Add(auth.DefaultTokenTTL), claims.ExpiresAt(), 5*time.Second)
	})

	t.Run("encode does not mutate the input claims", func(t *testing.T) {
		input := auth.TokenClaims{"sub": "a@x.com"}
		_, err := service.Encode(input, time.Minute)
		require.NoError(t, err)

		_, hasExp := input.Get("exp")
		assert.False(t, hasExp)
	})

	t.Run("subjectless claims encode fine", func(t *testing.T) {
		token, err := service.Encode(auth.TokenClaims{"tenant": "acme"}, time.Minute)
		require.NoError(t, err)

		claims, err := service.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "", claims.Subject())
	})
}

func TestTokenServiceDecodeFailures(t *testing.T) {
	service := auth.NewTokenService(testSigningKey, 0, nil)

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSigningKey, jwt.MapClaims{
			"sub": "a@x.com",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		claims, err := service.Decode(token)
		assert.Nil(t, claims)
		assert.Error(t, err)
		assert.True(t, auth.IsUnauthenticated(err))
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		token := signToken(t, []byte("some-other-key"), jwt.MapClaims{
			"sub": "a@x.com",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := service.Decode(token)
		assert.Error(t, err)
		assert.True(t, auth.IsUnauthenticated(err))
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := service.Encode(auth.TokenClaims{"sub": "a@x.com"}, time.Hour)
		require.NoError(t, err)

		// Flip a single character in the payload segment.
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		payload := []byte(parts[1])
		if payload[0] == 'A' {
			payload[0] = 'B'
		} else {
			payload[0] = 'A'
		}
		tampered := parts[0] + "." + string(payload) + "." + parts[2]

		_, err = service.Decode(tampered)
		assert.Error(t, err)
		assert.True(t, auth.IsUnauthenticated(err))
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := service.Decode("not-a-token")
		assert.Error(t, err)
		assert.True(t, auth.IsUnauthenticated(err))
	})

	t.Run("expired and tampered collapse into the same failure", func(t *testing.T) {
		expired := signToken(t, testSigningKey, jwt.MapClaims{
			"sub": "a@x.com",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		_, expiredErr := service.Decode(expired)

		_, tamperedErr := service.Decode("not-a-token")

		require.Error(t, expiredErr)
		require.Error(t, tamperedErr)
		assert.True(t, auth.IsUnauthenticated(expiredErr))
		assert.True(t, auth.IsUnauthenticated(tamperedErr))
		assert.False(t, auth.IsForbidden(expiredErr))
		assert.False(t, auth.IsForbidden(tamperedErr))
	})
}

func TestTokenValidatorFunc(t *testing.T) {
	called := false
	validator := auth.TokenValidatorFunc(func(token string) (auth.TokenClaims, error) {
		called = true
		return auth.TokenClaims{"sub": token}, nil
	})

	claims, err := validator.Decode("a@x.com")
	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "a@x.com", claims.Subject())

	var nilValidator auth.TokenValidatorFunc
	_, err = nilValidator.Decode("anything")
	assert.Error(t, err)
}
