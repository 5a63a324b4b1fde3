package auth_test

import (
	"context"
	"time"

	"github.com/creditline/go-auth"
	"github.com/stretchr/testify/mock"
)

// MockDirectory implements auth.UserDirectory
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)

	var user *auth.User
	if raw := args.Get(0); raw != nil {
		user = raw.(*auth.User)
	}
	return user, args.Error(1)
}

// TestIdentity is a plain Identity value for tests
type TestIdentity struct {
	id      string
	email   string
	isAdmin bool
}

func (t TestIdentity) ID() string    { return t.id }
func (t TestIdentity) Email() string { return t.email }
func (t TestIdentity) IsAdmin() bool { return t.isAdmin }

// MockLogger implements auth.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// testConfig implements auth.Config without touching the environment
type testConfig struct {
	signingKey string
	ttlMinutes int
}

func (c testConfig) GetSigningKey() string {
	if c.signingKey == "" {
		return "test-signing-key"
	}
	return c.signingKey
}

func (c testConfig) GetSigningMethod() string { return auth.SigningMethodHS256 }

func (c testConfig) GetTokenTTL() time.Duration {
	return time.Duration(c.ttlMinutes) * time.Minute
}

func (c testConfig) GetDevMode() bool { return true }
