// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-chat-core/internal/crypto"
	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/settings"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/internal/validators"
	"github.com/MKhiriev/go-chat-core/models"
)

// MaskedSecret replaces secrets in profiles returned to clients. Sending it
// back in a settings patch keeps the stored secret.
const MaskedSecret = "********"

type profileService struct {
	profiles  store.ProfileRepository
	validator validators.Validator
	sealer    crypto.Sealer
	events    EventPublisher
	logger    *logger.Logger
}

func NewProfileService(profiles store.ProfileRepository, sealer crypto.Sealer, publisher EventPublisher, logger *logger.Logger) ProfileService {
	return &profileService{
		profiles:  profiles,
		validator: validators.NewSettingsValidator(),
		sealer:    sealer,
		events:    publisher,
		logger:    logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, uid string) (models.UserProfile, error) {
	p, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return models.UserProfile{}, mapStoreError(err)
	}
	return MaskSecrets(p), nil
}

// UpdateSettings implements [ProfileService]. The merge runs inside the
// repository transaction so concurrent patches of one uid are applied one
// after another instead of overwriting each other.
func (s *profileService) UpdateSettings(ctx context.Context, uid string, patch models.SettingsPatch) (models.UserSettings, error) {
	log := logger.FromContext(ctx)

	updated, err := s.profiles.Update(ctx, uid, func(p *models.UserProfile) error {
		next, err := settings.Apply(ctx, s.validator, p.Settings, patch)
		if err != nil {
			return err
		}

		next.Translation.ServiceKey, err = s.sealServiceKey(p.Settings.Translation.ServiceKey, next.Translation.ServiceKey)
		if err != nil {
			return err
		}

		p.Settings = next
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*profileService.UpdateSettings").Str("uid", uid).Msg("settings were not updated")
		return models.UserSettings{}, mapStoreError(err)
	}

	masked := MaskSecrets(updated)
	s.publishUpdate(ctx, masked)

	return masked.Settings, nil
}

// UpdateProfile implements [ProfileService].
func (s *profileService) UpdateProfile(ctx context.Context, uid string, patch models.ProfilePatch) (models.UserProfile, error) {
	updated, err := s.profiles.Update(ctx, uid, func(p *models.UserProfile) error {
		current := models.ProfilePatch{
			DisplayName:    p.DisplayName,
			PhotoURL:       p.PhotoURL,
			ProfileDetails: p.ProfileDetails,
		}
		if err := mergo.Merge(&current, patch, mergo.WithOverride); err != nil {
			return fmt.Errorf("error merging profile patch: %w", err)
		}

		p.DisplayName = current.DisplayName
		p.PhotoURL = current.PhotoURL
		p.ProfileDetails = current.ProfileDetails
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileService.UpdateProfile").Str("uid", uid).Msg("profile was not updated")
		return models.UserProfile{}, mapStoreError(err)
	}

	masked := MaskSecrets(updated)
	s.publishUpdate(ctx, masked)

	return masked, nil
}

func (s *profileService) SetPushToken(ctx context.Context, uid, token string) error {
	_, err := s.profiles.Update(ctx, uid, func(p *models.UserProfile) error {
		p.PushToken = token
		return nil
	})
	return mapStoreError(err)
}

// sealServiceKey returns the value to store for a translation key that
// changed from stored to next.
func (s *profileService) sealServiceKey(stored, next string) (string, error) {
	switch {
	case next == "":
		return "", nil
	case next == MaskedSecret || next == stored:
		return stored, nil
	}

	sealed, err := s.sealer.Seal(next)
	if err != nil {
		return "", fmt.Errorf("error sealing translation key: %w", err)
	}
	return sealed, nil
}

func (s *profileService) publishUpdate(ctx context.Context, p models.UserProfile) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.ProfileUpdated, p.UID, p); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileService.publishUpdate").Msg("profile update was not published")
	}
}

// MaskSecrets hides the stored translation service key.
func MaskSecrets(p models.UserProfile) models.UserProfile {
	if p.Settings.Translation.ServiceKey != "" {
		p.Settings.Translation.ServiceKey = MaskedSecret
	}
	return p
}
