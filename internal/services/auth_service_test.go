package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*fakeUserStore, *AuthService) {
	users := &fakeUserStore{}
	svc := NewAuthService(users, AuthServiceConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}, nil)
	return users, svc
}

func TestRegisterAndAuthenticate(t *testing.T) {
	_, svc := newAuthFixture()

	user, token, err := svc.Register(context.Background(), "alice", "hunter2", "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "hunter2", user.PasswordHash)

	resolved, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, svc := newAuthFixture()

	_, _, err := svc.Register(context.Background(), "alice", "hunter2", "")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "alice", "other", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	_, svc := newAuthFixture()

	registered, _, err := svc.Register(context.Background(), "bob", "s3cret", "")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "bob", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), "bob", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsGarbageAndForgedTokens(t *testing.T) {
	_, svc := newAuthFixture()

	user, err := svc.Authenticate(context.Background(), "not-a-token")
	require.NoError(t, err)
	assert.Nil(t, user)

	// Token signed with a different secret.
	otherStore := &fakeUserStore{}
	other := NewAuthService(otherStore, AuthServiceConfig{JWTSecret: "different", TokenTTL: time.Hour}, nil)
	_, forged, err := other.Register(context.Background(), "eve", "pw", "")
	require.NoError(t, err)

	user, err = svc.Authenticate(context.Background(), forged)
	require.NoError(t, err)
	assert.Nil(t, user)
}
