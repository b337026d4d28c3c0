package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/muxury/storefront/internal/core/domain"
	"github.com/muxury/storefront/internal/core/port"
	"github.com/muxury/storefront/pkg/retry"
)

var _ port.AuthProvider = (*Client)(nil)

var ErrUnauthorized = errors.New("unauthorized")

const requestTimeout = 15 * time.Second

// An APIError carries the backend's user-displayable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("auth backend: %d: %s", e.Status, e.Message)
}

type (
	userPayload struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
		Role      string `json:"role"`
		Avatar    string `json:"avatar"`
	}

	// The backend wraps every response in a message+data envelope.
	envelope struct {
		Message string `json:"message"`
		Data    struct {
			User         *userPayload `json:"user"`
			AccessToken  string       `json:"accessToken"`
			RefreshToken string       `json:"refreshToken"`
		} `json:"data"`
	}
)

// Client is the HTTP collaborator for the excluded auth backend.
type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string) Client {
	return Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: requestTimeout},
	}
}

func (c Client) Login(
	ctx context.Context, email, password string,
) (domain.Session, error) {
	const op = "authapi.Login"

	body := map[string]string{"email": email, "password": password}
	env, err := c.post(ctx, "/auth/login", body, "")
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if env.Data.User == nil || env.Data.AccessToken == "" {
		return domain.Session{}, fmt.Errorf(
			"%s: backend response without user or tokens", op,
		)
	}

	return domain.Session{
		User: toUser(*env.Data.User),
		Credentials: domain.Credentials{
			AccessToken:  env.Data.AccessToken,
			RefreshToken: env.Data.RefreshToken,
		},
	}, nil
}

func (c Client) Register(
	ctx context.Context, form domain.RegisterForm,
) (string, error) {
	const op = "authapi.Register"

	body := map[string]string{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"email":     form.Email,
		"password":  form.Password,
		"phone":     form.Phone,
	}
	env, err := c.post(ctx, "/auth/register", body, "")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return env.Message, nil
}

func (c Client) Logout(ctx context.Context, refreshToken string) error {
	const op = "authapi.Logout"

	body := map[string]string{"refreshToken": refreshToken}
	if _, err := c.post(ctx, "/auth/logout", body, ""); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Client) CurrentUser(
	ctx context.Context, accessToken string,
) (domain.User, error) {
	const op = "authapi.CurrentUser"

	env, err := c.get(ctx, "/auth/me", accessToken)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if env.Data.User == nil {
		return domain.User{}, fmt.Errorf("%s: backend response without user", op)
	}
	return toUser(*env.Data.User), nil
}

// Refresh exchanges the refresh token for a fresh access token.
// Transient transport failures are retried, backend rejections are not.
func (c Client) Refresh(
	ctx context.Context, refreshToken string,
) (string, error) {
	const op = "authapi.Refresh"

	body := map[string]string{"refreshToken": refreshToken}

	var env envelope
	cfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.Exponential(200 * time.Millisecond),
		ShouldRetry: func(err error) bool {
			var apiErr *APIError
			return !errors.As(err, &apiErr)
		},
	}
	err := retry.Do(ctx, cfg, func() error {
		var doErr error
		env, doErr = c.post(ctx, "/auth/refresh", body, "")
		return doErr
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if env.Data.AccessToken == "" {
		return "", fmt.Errorf("%s: backend response without access token", op)
	}
	return env.Data.AccessToken, nil
}

func (c Client) post(
	ctx context.Context, path string, body any, accessToken string,
) (envelope, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return envelope{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data),
	)
	if err != nil {
		return envelope{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, accessToken)
}

func (c Client) get(
	ctx context.Context, path string, accessToken string,
) (envelope, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+path, nil,
	)
	if err != nil {
		return envelope{}, err
	}
	return c.do(req, accessToken)
}

func (c Client) do(req *http.Request, accessToken string) (envelope, error) {
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return envelope{}, err
	}
	defer res.Body.Close()

	var env envelope
	err = json.NewDecoder(res.Body).Decode(&env)
	if err != nil && !errors.Is(err, io.EOF) && res.StatusCode < 300 {
		return envelope{}, err
	}

	if res.StatusCode >= 300 {
		apiErr := &APIError{Status: res.StatusCode, Message: env.Message}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(res.StatusCode)
		}
		if res.StatusCode == http.StatusUnauthorized {
			return envelope{}, fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
		}
		return envelope{}, apiErr
	}
	return env, nil
}

func toUser(p userPayload) domain.User {
	return domain.User{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Role:      p.Role,
		Avatar:    p.Avatar,
	}
}
