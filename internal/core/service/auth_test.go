package service_test

import (
	"errors"
	"testing"

	"github.com/muxury/storefront/internal/core/domain"
	"github.com/muxury/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testSession() domain.Session {
	return domain.Session{
		User: domain.User{
			ID:        "u1",
			Email:     "ava@example.com",
			FirstName: "Ava",
			LastName:  "Stone",
			Role:      "customer",
		},
		Credentials: domain.Credentials{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
		},
	}
}

func TestAuthLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		provider := new(MockAuthProvider)
		provider.On("Login", t.Context(), "ava@example.com", "secret").
			Return(testSession(), nil)

		kv := newFakeKV()
		auth := service.NewAuth(provider, kv)

		user, err := auth.Login(t.Context(), "ava@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)

		got, ok := auth.User()
		require.True(t, ok)
		assert.Equal(t, "ava@example.com", got.Email)

		_, stored := kv.Load("muxury-credentials")
		assert.True(t, stored)
	})

	t.Run("FailureLeavesNoPartialState", func(t *testing.T) {
		provider := new(MockAuthProvider)
		provider.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.Session{}, errors.New("invalid credentials"))

		kv := newFakeKV()
		auth := service.NewAuth(provider, kv)

		_, err := auth.Login(t.Context(), "ava@example.com", "wrong")
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid credentials")

		_, ok := auth.User()
		assert.False(t, ok)
		assert.False(t, auth.Loading())

		_, stored := kv.Load("muxury-credentials")
		assert.False(t, stored)
	})
}

func TestAuthRegister(t *testing.T) {
	t.Run("DoesNotAuthenticate", func(t *testing.T) {
		provider := new(MockAuthProvider)
		form := domain.RegisterForm{
			FirstName: "Ava",
			LastName:  "Stone",
			Email:     "ava@example.com",
			Password:  "secret",
		}
		provider.On("Register", t.Context(), form).
			Return("check your inbox to verify your email", nil)

		auth := service.NewAuth(provider, newFakeKV())

		message, err := auth.Register(t.Context(), form)
		require.NoError(t, err)
		assert.Contains(t, message, "verify")

		_, ok := auth.User()
		assert.False(t, ok)
	})

	t.Run("FailureSurfacesMessage", func(t *testing.T) {
		provider := new(MockAuthProvider)
		provider.On("Register", mock.Anything, mock.Anything).
			Return("", errors.New("email already registered"))

		auth := service.NewAuth(provider, newFakeKV())

		_, err := auth.Register(t.Context(), domain.RegisterForm{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "already registered")
	})
}

func TestAuthLogout(t *testing.T) {
	t.Run("RevokesAndClears", func(t *testing.T) {
		provider := new(MockAuthProvider)
		provider.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(testSession(), nil)
		provider.On("Logout", t.Context(), "refresh-1").Return(nil)

		kv := newFakeKV()
		auth := service.NewAuth(provider, kv)
		_, err := auth.Login(t.Context(), "ava@example.com", "secret")
		require.NoError(t, err)

		auth.Logout(t.Context())

		_, ok := auth.User()
		assert.False(t, ok)
		_, stored := kv.Load("muxury-credentials")
		assert.False(t, stored)
		provider.AssertExpectations(t)
	})

	t.Run("RevokeFailureStillClearsLocally", func(t *testing.T) {
		provider := new(MockAuthProvider)
		provider.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(testSession(), nil)
		provider.On("Logout", mock.Anything, mock.Anything).
			Return(errors.New("network unreachable"))

		kv := newFakeKV()
		auth := service.NewAuth(provider, kv)
		_, err := auth.Login(t.Context(), "ava@example.com", "secret")
		require.NoError(t, err)

		auth.Logout(t.Context())

		_, ok := auth.User()
		assert.False(t, ok)
		_, stored := kv.Load("muxury-credentials")
		assert.False(t, stored)
	})
}

func TestAuthRestore(t *testing.T) {
	t.Run("NoStoredCredentialsStaysAnonymous", func(t *testing.T) {
		provider := new(MockAuthProvider)
		auth := service.NewAuth(provider, newFakeKV())

		auth.Restore(t.Context())

		_, ok := auth.User()
		assert.False(t, ok)
		provider.AssertNotCalled(t, "CurrentUser", mock.Anything, mock.Anything)
	})

	t.Run("ValidToken", func(t *testing.T) {
		kv := newFakeKV()
		require.NoError(t, kv.Save("muxury-credentials",
			[]byte(`{"access_token":"access-1","refresh_token":"refresh-1"}`)))

		provider := new(MockAuthProvider)
		provider.On("CurrentUser", t.Context(), "access-1").
			Return(testSession().User, nil)

		auth := service.NewAuth(provider, kv)
		auth.Restore(t.Context())

		user, ok := auth.User()
		require.True(t, ok)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("ExpiredTokenRefreshesOnce", func(t *testing.T) {
		kv := newFakeKV()
		require.NoError(t, kv.Save("muxury-credentials",
			[]byte(`{"access_token":"stale","refresh_token":"refresh-1"}`)))

		provider := new(MockAuthProvider)
		provider.On("CurrentUser", t.Context(), "stale").
			Return(domain.User{}, errors.New("unauthorized"))
		provider.On("Refresh", t.Context(), "refresh-1").
			Return("access-2", nil)
		provider.On("CurrentUser", t.Context(), "access-2").
			Return(testSession().User, nil)

		auth := service.NewAuth(provider, kv)
		auth.Restore(t.Context())

		_, ok := auth.User()
		require.True(t, ok)

		data, stored := kv.Load("muxury-credentials")
		require.True(t, stored)
		assert.Contains(t, string(data), "access-2")
	})

	t.Run("RefreshFailureFallsBackToAnonymous", func(t *testing.T) {
		kv := newFakeKV()
		require.NoError(t, kv.Save("muxury-credentials",
			[]byte(`{"access_token":"stale","refresh_token":"stale"}`)))

		provider := new(MockAuthProvider)
		provider.On("CurrentUser", mock.Anything, mock.Anything).
			Return(domain.User{}, errors.New("unauthorized"))
		provider.On("Refresh", mock.Anything, mock.Anything).
			Return("", errors.New("unauthorized"))

		auth := service.NewAuth(provider, kv)
		auth.Restore(t.Context())

		_, ok := auth.User()
		assert.False(t, ok)
		_, stored := kv.Load("muxury-credentials")
		assert.False(t, stored)
	})

	t.Run("MalformedCredentialsStaysAnonymous", func(t *testing.T) {
		kv := newFakeKV()
		require.NoError(t, kv.Save("muxury-credentials", []byte("][")))

		provider := new(MockAuthProvider)
		auth := service.NewAuth(provider, kv)
		auth.Restore(t.Context())

		_, ok := auth.User()
		assert.False(t, ok)
	})
}
