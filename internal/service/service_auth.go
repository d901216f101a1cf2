package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/adapter"
	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
)

// authService is the concrete implementation of AuthService.
// Credentials are checked by the identity provider; this service only keeps
// profiles and presence in step and issues its own HS256 session tokens.
type authService struct {
	identity adapter.IdentityProvider
	accounts AccountService
	profiles store.ProfileRepository
	revoker  store.TokenRevoker

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService. The returned service is safe for
// concurrent use; all state is read-only after construction.
func NewAuthService(
	identity adapter.IdentityProvider,
	accounts AccountService,
	profiles store.ProfileRepository,
	revoker store.TokenRevoker,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		identity:      identity,
		accounts:      accounts,
		profiles:      profiles,
		revoker:       revoker,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           time.Now,
		logger:        logger,
	}
}

// SignUp registers the account with the identity provider and creates the
// profile right away instead of waiting for the identity webhook.
func (a *authService) SignUp(ctx context.Context, credentials models.Credentials) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	identity, err := a.identity.SignUp(ctx, credentials)
	if err != nil {
		log.Err(err).Str("func", "*authService.SignUp").Str("email", credentials.Email).Msg("identity provider rejected sign-up")
		return models.AuthResult{}, err
	}

	profile, err := a.accounts.OnIdentityCreated(ctx, identity)
	if err != nil {
		return models.AuthResult{}, err
	}

	return a.issue(ctx, profile)
}

// SignIn verifies the password and starts a session. A profile missing for
// a known identity is created on the spot.
func (a *authService) SignIn(ctx context.Context, credentials models.Credentials) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	identity, err := a.identity.SignIn(ctx, credentials.Email, credentials.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.SignIn").Str("email", credentials.Email).Msg("identity provider rejected sign-in")
		return models.AuthResult{}, err
	}

	profile, err := a.profiles.Get(ctx, identity.UID)
	if errors.Is(err, store.ErrProfileNotFound) {
		profile, err = a.accounts.OnIdentityCreated(ctx, identity)
	}
	if err != nil {
		return models.AuthResult{}, mapStoreError(err)
	}

	return a.startSession(ctx, profile)
}

// SignInWithProvider implements [AuthService]. The first provider sign-in of
// an identity creates its profile through the same conditional create as the
// identity webhook.
func (a *authService) SignInWithProvider(ctx context.Context, credential models.ProviderCredential) (models.AuthResult, error) {
	identity, err := a.identity.SignInWithIdp(ctx, credential)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.SignInWithProvider").Str("provider", credential.ProviderID).Msg("identity provider rejected sign-in")
		return models.AuthResult{}, err
	}

	profile, err := a.accounts.OnIdentityCreated(ctx, identity)
	if err != nil {
		return models.AuthResult{}, err
	}

	return a.startSession(ctx, profile)
}

// SignOut implements [AuthService]. The token is revoked for the rest of its
// lifetime. A profile deleted in the meantime does not fail the sign-out.
func (a *authService) SignOut(ctx context.Context, token models.Token) error {
	log := logger.FromContext(ctx)

	if err := a.revoker.Revoke(ctx, token.ID, token.TTL(a.now())); err != nil {
		log.Err(err).Str("func", "*authService.SignOut").Msg("error revoking token")
		return fmt.Errorf("error revoking token: %w", err)
	}

	err := a.profiles.SetPresence(ctx, token.UID, models.StatusOffline, time.Time{})
	if err != nil && !errors.Is(err, store.ErrProfileNotFound) {
		log.Err(err).Str("func", "*authService.SignOut").Str("uid", token.UID).Msg("error setting presence")
		return fmt.Errorf("error setting presence: %w", err)
	}

	return nil
}

// ParseToken validates a raw JWT string. Any validation failure is
// normalised to ErrTokenIsExpiredOrInvalid. When the revocation store is
// unreachable the token is accepted and the failure logged.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	revoked, err := a.revoker.IsRevoked(ctx, token.ID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.ParseToken").Msg("revocation check failed")
		return token, nil
	}
	if revoked {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) startSession(ctx context.Context, profile models.UserProfile) (models.AuthResult, error) {
	now := a.now().UTC()
	if err := a.profiles.SetPresence(ctx, profile.UID, models.StatusOnline, now); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.startSession").Str("uid", profile.UID).Msg("error setting presence")
		return models.AuthResult{}, mapStoreError(err)
	}

	profile.Status = models.StatusOnline
	profile.LastLogin = now

	return a.issue(ctx, profile)
}

func (a *authService) issue(ctx context.Context, profile models.UserProfile) (models.AuthResult, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, profile.UID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.issue").Msg("error creating token")
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.AuthResult{Token: token.SignedString, Profile: MaskSecrets(profile)}, nil
}
