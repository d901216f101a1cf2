package adapter

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
)

const identityService = "identity"

// identityToolkitAdapter implements [IdentityProvider] over the Identity
// Toolkit REST API (accounts:signUp, accounts:signInWithPassword,
// accounts:signInWithIdp, accounts:update).
type identityToolkitAdapter struct {
	client *utils.HTTPClient
	apiKey string
	logger *logger.Logger
}

// NewIdentityAdapter constructs an [IdentityProvider] for endpoint.
func NewIdentityAdapter(endpoint config.Endpoint, cfg config.Adapter, logger *logger.Logger) IdentityProvider {
	return &identityToolkitAdapter{
		client: utils.NewHTTPClient(strings.TrimRight(endpoint.BaseURL, "/"), cfg.RequestTimeout),
		apiKey: endpoint.APIKey,
		logger: logger,
	}
}

type identityResponse struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoUrl"`
	EmailVerified bool   `json:"emailVerified"`
	ProviderID    string `json:"providerId"`
	IDToken       string `json:"idToken"`
}

func (r identityResponse) identity(providerID string) models.Identity {
	if r.ProviderID != "" {
		providerID = r.ProviderID
	}
	return models.Identity{
		UID:           r.LocalID,
		Email:         r.Email,
		DisplayName:   r.DisplayName,
		PhotoURL:      r.PhotoURL,
		EmailVerified: r.EmailVerified,
		ProviderID:    providerID,
	}
}

// SignUp implements [IdentityProvider].
func (a *identityToolkitAdapter) SignUp(ctx context.Context, creds models.Credentials) (models.Identity, error) {
	var created identityResponse
	err := a.call(ctx, "/v1/accounts:signUp", map[string]any{
		"email":             creds.Email,
		"password":          creds.Password,
		"returnSecureToken": true,
	}, &created)
	if err != nil {
		return models.Identity{}, err
	}

	identity := created.identity(models.ProviderPassword)
	if creds.DisplayName == "" {
		return identity, nil
	}

	var updated identityResponse
	err = a.call(ctx, "/v1/accounts:update", map[string]any{
		"idToken":           created.IDToken,
		"displayName":       creds.DisplayName,
		"returnSecureToken": false,
	}, &updated)
	if err != nil {
		// the account exists at this point, only the name is missing
		a.logger.Err(err).Str("func", "*identityToolkitAdapter.SignUp").Str("uid", identity.UID).Msg("error setting display name")
		return identity, nil
	}
	identity.DisplayName = creds.DisplayName

	return identity, nil
}

// SignIn implements [IdentityProvider].
func (a *identityToolkitAdapter) SignIn(ctx context.Context, email, password string) (models.Identity, error) {
	var resp identityResponse
	err := a.call(ctx, "/v1/accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return models.Identity{}, err
	}

	return resp.identity(models.ProviderPassword), nil
}

// SignInWithIdp implements [IdentityProvider]. Either the OAuth id token or
// the access token of the provider is forwarded.
func (a *identityToolkitAdapter) SignInWithIdp(ctx context.Context, cred models.ProviderCredential) (models.Identity, error) {
	postBody := url.Values{}
	postBody.Set("providerId", cred.ProviderID)
	if cred.IDToken != "" {
		postBody.Set("id_token", cred.IDToken)
	}
	if cred.AccessToken != "" {
		postBody.Set("access_token", cred.AccessToken)
	}

	var resp identityResponse
	err := a.call(ctx, "/v1/accounts:signInWithIdp", map[string]any{
		"postBody":            postBody.Encode(),
		"requestUri":          "http://localhost",
		"returnSecureToken":   true,
		"returnIdpCredential": true,
	}, &resp)
	if err != nil {
		return models.Identity{}, err
	}

	return resp.identity(cred.ProviderID), nil
}

func (a *identityToolkitAdapter) call(ctx context.Context, path string, body, result any) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("key", a.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(result).
		Post(path)
	if err != nil {
		return transportError(identityService, err)
	}

	if err = mapHTTPError(identityService, resp); err != nil {
		return classifyIdentityError(err)
	}

	return nil
}

// classifyIdentityError maps the provider error codes callers act upon.
func classifyIdentityError(err error) error {
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		return err
	}

	msg := upstream.Err.Error()
	switch {
	case strings.Contains(msg, "EMAIL_EXISTS"):
		return errors.Join(ErrEmailExists, err)
	case strings.Contains(msg, "INVALID_PASSWORD"),
		strings.Contains(msg, "EMAIL_NOT_FOUND"),
		strings.Contains(msg, "INVALID_LOGIN_CREDENTIALS"),
		strings.Contains(msg, "USER_DISABLED"):
		return errors.Join(ErrInvalidCredentials, err)
	default:
		return err
	}
}
