package store

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
)

// cachedProfileRepository puts a cache-aside layer in front of a
// [ProfileRepository]. Reads fill the cache and every write invalidates the
// entry after the underlying repository returns. Cache failures never fail
// the call.
type cachedProfileRepository struct {
	ProfileRepository
	cache  ProfileCache
	logger *logger.Logger
}

// NewCachedProfileRepository wraps repo with cache.
func NewCachedProfileRepository(repo ProfileRepository, cache ProfileCache, logger *logger.Logger) ProfileRepository {
	return &cachedProfileRepository{
		ProfileRepository: repo,
		cache:             cache,
		logger:            logger,
	}
}

func (r *cachedProfileRepository) Get(ctx context.Context, uid string) (models.UserProfile, error) {
	p, err := r.cache.Get(ctx, uid)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		r.logger.Warn().Err(err).Str("func", "*cachedProfileRepository.Get").Str("uid", uid).Msg("profile cache read failed, falling back to database")
	}

	p, err = r.ProfileRepository.Get(ctx, uid)
	if err != nil {
		return models.UserProfile{}, err
	}

	if err = r.cache.Set(ctx, p); err != nil {
		r.logger.Warn().Err(err).Str("func", "*cachedProfileRepository.Get").Str("uid", uid).Msg("error caching profile")
	}

	return p, nil
}

func (r *cachedProfileRepository) Update(ctx context.Context, uid string, mutate func(p *models.UserProfile) error) (models.UserProfile, error) {
	p, err := r.ProfileRepository.Update(ctx, uid, mutate)
	if err != nil {
		return models.UserProfile{}, err
	}
	r.invalidate(ctx, uid)
	return p, nil
}

func (r *cachedProfileRepository) SetPresence(ctx context.Context, uid string, status models.PresenceStatus, lastLogin time.Time) error {
	if err := r.ProfileRepository.SetPresence(ctx, uid, status, lastLogin); err != nil {
		return err
	}
	r.invalidate(ctx, uid)
	return nil
}

func (r *cachedProfileRepository) Delete(ctx context.Context, uid string) error {
	if err := r.ProfileRepository.Delete(ctx, uid); err != nil {
		return err
	}
	r.invalidate(ctx, uid)
	return nil
}

func (r *cachedProfileRepository) invalidate(ctx context.Context, uid string) {
	if err := r.cache.Delete(ctx, uid); err != nil {
		r.logger.Warn().Err(err).Str("func", "*cachedProfileRepository.invalidate").Str("uid", uid).Msg("error invalidating cached profile")
	}
}
