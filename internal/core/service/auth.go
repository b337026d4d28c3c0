package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/muxury/storefront/internal/core/domain"
	"github.com/muxury/storefront/internal/core/port"
)

var _ port.SessionManager = (*Auth)(nil)

const credentialsStorageKey = "muxury-credentials"

// Auth owns the session state machine: anonymous, loading, authenticated.
//
// Transitions are atomic. A failed collaborator call leaves the state
// exactly as it was before the call, the error carries the backend's
// user-displayable message.
type Auth struct {
	mu            sync.Mutex
	user          domain.User
	authenticated bool
	loading       bool
	provider      port.AuthProvider
	kv            port.KVStore
}

func NewAuth(provider port.AuthProvider, kv port.KVStore) *Auth {
	return &Auth{provider: provider, kv: kv}
}

// Restore attempts to revive a persisted session: no stored credentials
// means anonymous immediately, otherwise the identity is fetched from the
// collaborator with one transparent token refresh on failure. Any
// remaining failure clears the credentials and falls back to anonymous.
func (a *Auth) Restore(ctx context.Context) {
	const op = "Auth.Restore"
	log := slog.With("op", op)

	creds, ok := a.loadCredentials()
	if !ok {
		return
	}

	a.setLoading(true)
	defer a.setLoading(false)

	user, err := a.provider.CurrentUser(ctx, creds.AccessToken)
	if err != nil {
		access, refreshErr := a.provider.Refresh(ctx, creds.RefreshToken)
		if refreshErr != nil {
			log.Warn("session restore failed, logging out", "err", err)
			a.clearSession()
			return
		}
		creds.AccessToken = access
		user, err = a.provider.CurrentUser(ctx, creds.AccessToken)
		if err != nil {
			log.Warn("session restore failed after refresh, logging out",
				"err", err)
			a.clearSession()
			return
		}
		a.saveCredentials(creds)
	}

	a.mu.Lock()
	a.user = user
	a.authenticated = true
	a.mu.Unlock()
	log.Info("session restored", "email", user.Email)
}

// Login authenticates against the collaborator. On success the identity
// and tokens are stored in one step, on failure the prior state is kept
// and the error surfaces for display.
func (a *Auth) Login(ctx context.Context, email, password string) (domain.User, error) {
	const op = "Auth.Login"

	a.setLoading(true)
	defer a.setLoading(false)

	session, err := a.provider.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	a.mu.Lock()
	a.user = session.User
	a.authenticated = true
	a.mu.Unlock()
	a.saveCredentials(session.Credentials)

	return session.User, nil
}

// Register submits the form but does not authenticate: the backend
// requires verification before the first login. The confirmation message
// is returned for display.
func (a *Auth) Register(ctx context.Context, form domain.RegisterForm) (string, error) {
	const op = "Auth.Register"

	a.setLoading(true)
	defer a.setLoading(false)

	message, err := a.provider.Register(ctx, form)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return message, nil
}

// Logout revokes the refresh token best-effort and always clears the
// local session, collaborator failures are swallowed.
func (a *Auth) Logout(ctx context.Context) {
	const op = "Auth.Logout"

	if creds, ok := a.loadCredentials(); ok && creds.RefreshToken != "" {
		if err := a.provider.Logout(ctx, creds.RefreshToken); err != nil {
			slog.Warn("failed to revoke refresh token", "op", op, "err", err)
		}
	}
	a.clearSession()
}

func (a *Auth) User() (domain.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user, a.authenticated
}

func (a *Auth) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func (a *Auth) setLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}

func (a *Auth) clearSession() {
	const op = "Auth.clearSession"

	a.mu.Lock()
	a.user = domain.User{}
	a.authenticated = false
	a.mu.Unlock()

	if err := a.kv.Remove(credentialsStorageKey); err != nil {
		slog.Error("failed to remove credentials", "op", op, "err", err)
	}
}

type storedCredentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (a *Auth) loadCredentials() (domain.Credentials, bool) {
	const op = "Auth.loadCredentials"

	data, ok := a.kv.Load(credentialsStorageKey)
	if !ok {
		return domain.Credentials{}, false
	}

	var sc storedCredentials
	if err := json.Unmarshal(data, &sc); err != nil {
		slog.Warn("malformed persisted credentials", "op", op, "err", err)
		return domain.Credentials{}, false
	}
	if sc.AccessToken == "" {
		return domain.Credentials{}, false
	}
	return domain.Credentials{
		AccessToken:  sc.AccessToken,
		RefreshToken: sc.RefreshToken,
	}, true
}

func (a *Auth) saveCredentials(creds domain.Credentials) {
	const op = "Auth.saveCredentials"

	data, _ := json.Marshal(storedCredentials{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
	})
	if err := a.kv.Save(credentialsStorageKey, data); err != nil {
		slog.Error("failed to persist credentials", "op", op, "err", err)
	}
}
