package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/crypto"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/settings"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/models"
)

type accountService struct {
	profiles store.ProfileRepository
	now      func() time.Time
	logger   *logger.Logger
}

// NewAccountService returns the identity lifecycle handler.
func NewAccountService(profiles store.ProfileRepository, logger *logger.Logger) AccountService {
	return &accountService{
		profiles: profiles,
		now:      time.Now,
		logger:   logger,
	}
}

// OnIdentityCreated implements [AccountService]. The insert is conditional
// on the uid, so a redelivered event never overwrites a profile the user
// already changed.
func (s *accountService) OnIdentityCreated(ctx context.Context, identity models.Identity) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	if identity.UID == "" {
		log.Error().Str("func", "*accountService.OnIdentityCreated").Msg("identity without uid")
		return models.UserProfile{}, ErrInvalidDataProvided
	}

	apiKey, err := crypto.GenerateAPIKey()
	if err != nil {
		return models.UserProfile{}, err
	}

	now := s.now().UTC()
	profile := models.UserProfile{
		UID:           identity.UID,
		Email:         identity.Email,
		DisplayName:   identity.DisplayName,
		PhotoURL:      identity.PhotoURL,
		EmailVerified: identity.EmailVerified,
		Status:        models.StatusOnline,
		Role:          models.RoleUser,
		Settings:      settings.Defaults(now),
		CreatedAt:     now,
		LastLogin:     now,
		Contacts:      []string{},
		BlockedUsers:  []string{},
		APIKey:        apiKey,
	}

	created, err := s.profiles.Create(ctx, profile)
	if err != nil {
		log.Err(err).Str("func", "*accountService.OnIdentityCreated").Str("uid", identity.UID).Msg("error creating profile")
		return models.UserProfile{}, fmt.Errorf("error creating profile: %w", err)
	}

	if created {
		log.Info().Str("func", "*accountService.OnIdentityCreated").Str("uid", identity.UID).Msg("profile created")
		return profile, nil
	}

	existing, err := s.profiles.Get(ctx, identity.UID)
	if err != nil {
		return models.UserProfile{}, mapStoreError(err)
	}

	log.Debug().Str("func", "*accountService.OnIdentityCreated").Str("uid", identity.UID).Msg("profile already existed")
	return existing, nil
}

// OnIdentityDeleted implements [AccountService].
func (s *accountService) OnIdentityDeleted(ctx context.Context, uid string) error {
	if uid == "" {
		return ErrInvalidDataProvided
	}

	if err := s.profiles.Delete(ctx, uid); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.OnIdentityDeleted").Str("uid", uid).Msg("error deleting profile")
		return fmt.Errorf("error deleting profile: %w", err)
	}

	return nil
}
