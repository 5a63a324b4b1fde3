package auth

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// InsecureDevSigningKey is the development fallback secret. It is only
// usable when dev mode is explicitly enabled; LoadConfig refuses to
// start a process that would sign production tokens with it.
const InsecureDevSigningKey = "your-secret-key"

// SigningMethodHS256 is the only supported algorithm identifier.
const SigningMethodHS256 = "HS256"

// EnvConfig is the process-wide auth configuration, sourced from the
// environment once at startup and immutable afterwards.
type EnvConfig struct {
	SigningKey      string `env:"AUTH_SIGNING_KEY"`
	SigningMethod   string `env:"AUTH_SIGNING_METHOD" envDefault:"HS256"`
	TokenTTLMinutes int    `env:"AUTH_TOKEN_TTL_MINUTES" envDefault:"30"`
	DevMode         bool   `env:"AUTH_DEV_MODE" envDefault:"false"`
}

var _ Config = (*EnvConfig)(nil)

// LoadConfig parses the environment and validates the result. It fails
// rather than warns on a missing secret outside dev mode.
func LoadConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to parse auth environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the signing invariants. A process without an
// explicit secret may only come up in dev mode, where the insecure
// default is substituted.
func (c *EnvConfig) Validate() error {
	if c.SigningMethod != SigningMethodHS256 {
		return errors.New("unsupported signing method: "+c.SigningMethod, errors.CategoryInternal).
			WithTextCode("UNSUPPORTED_SIGNING_METHOD")
	}

	if c.SigningKey == "" || c.SigningKey == InsecureDevSigningKey {
		if !c.DevMode {
			return errors.New("no signing key configured; set AUTH_SIGNING_KEY or enable AUTH_DEV_MODE", errors.CategoryInternal).
				WithTextCode("MISSING_SIGNING_KEY")
		}
		c.SigningKey = InsecureDevSigningKey
	}

	if c.TokenTTLMinutes <= 0 {
		c.TokenTTLMinutes = int(DefaultTokenTTL / time.Minute)
	}

	return nil
}

func (c *EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *EnvConfig) GetSigningMethod() string {
	return c.SigningMethod
}

func (c *EnvConfig) GetTokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

func (c *EnvConfig) GetDevMode() bool {
	return c.DevMode
}
