package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/go-resty/resty/v2"
)

const serverService = "chat-server"

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SignUp implements [ServerAdapter]. It POSTs the credentials to
// /api/auth/signup and stores the returned token.
func (h *httpServerAdapter) SignUp(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	return h.authenticate(ctx, "/api/auth/signup", creds)
}

// SignIn implements [ServerAdapter].
func (h *httpServerAdapter) SignIn(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	return h.authenticate(ctx, "/api/auth/signin", creds)
}

// SignInWithProvider implements [ServerAdapter].
func (h *httpServerAdapter) SignInWithProvider(ctx context.Context, cred models.ProviderCredential) (models.AuthResult, error) {
	return h.authenticate(ctx, "/api/auth/provider", cred)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.AuthResult, error) {
	var result models.AuthResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return models.AuthResult{}, transportError(serverService, err)
	}
	if err = mapHTTPError(serverService, resp); err != nil {
		return models.AuthResult{}, err
	}

	token := result.Token
	if token == "" {
		if token, err = utils.ParseBearerToken(resp.Header().Get("Authorization")); err != nil {
			return models.AuthResult{}, fmt.Errorf("parse bearer token: %w", err)
		}
		result.Token = token
	}

	h.SetToken(token)
	return result, nil
}

// SignOut implements [ServerAdapter].
func (h *httpServerAdapter) SignOut(ctx context.Context) error {
	defer h.SetToken("")

	resp, err := h.authedRequest(ctx).Post("/api/auth/signout")
	if err != nil {
		return transportError(serverService, err)
	}

	return mapHTTPError(serverService, resp)
}

// GetProfile implements [ServerAdapter].
func (h *httpServerAdapter) GetProfile(ctx context.Context) (models.UserProfile, error) {
	var profile models.UserProfile

	resp, err := h.authedRequest(ctx).
		SetResult(&profile).
		Get("/api/user/profile")
	if err != nil {
		return models.UserProfile{}, transportError(serverService, err)
	}
	if err = mapHTTPError(serverService, resp); err != nil {
		return models.UserProfile{}, err
	}

	return profile, nil
}

// UpdateSettings implements [ServerAdapter].
func (h *httpServerAdapter) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.UserSettings, error) {
	var settings models.UserSettings

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		SetResult(&settings).
		Patch("/api/user/settings")
	if err != nil {
		return models.UserSettings{}, transportError(serverService, err)
	}
	if err = mapHTTPError(serverService, resp); err != nil {
		return models.UserSettings{}, err
	}

	return settings, nil
}

// UpdateProfile implements [ServerAdapter].
func (h *httpServerAdapter) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.UserProfile, error) {
	var profile models.UserProfile

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		SetResult(&profile).
		Patch("/api/user/profile")
	if err != nil {
		return models.UserProfile{}, transportError(serverService, err)
	}
	if err = mapHTTPError(serverService, resp); err != nil {
		return models.UserProfile{}, err
	}

	return profile, nil
}

// RegisterPushToken implements [ServerAdapter].
func (h *httpServerAdapter) RegisterPushToken(ctx context.Context, token string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.PushTokenRequest{Token: token}).
		Put("/api/user/push-token")
	if err != nil {
		return transportError(serverService, err)
	}

	return mapHTTPError(serverService, resp)
}

// Version implements [ServerAdapter].
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", transportError(serverService, err)
	}
	if err = mapHTTPError(serverService, resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
