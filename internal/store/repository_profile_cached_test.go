package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileCache struct {
	items   map[string]models.UserProfile
	getErr  error
	deleted []string
}

func newFakeProfileCache() *fakeProfileCache {
	return &fakeProfileCache{items: map[string]models.UserProfile{}}
}

func (c *fakeProfileCache) Get(_ context.Context, uid string) (models.UserProfile, error) {
	if c.getErr != nil {
		return models.UserProfile{}, c.getErr
	}
	p, ok := c.items[uid]
	if !ok {
		return models.UserProfile{}, ErrCacheMiss
	}
	return p, nil
}

func (c *fakeProfileCache) Set(_ context.Context, p models.UserProfile) error {
	c.items[p.UID] = p
	return nil
}

func (c *fakeProfileCache) Delete(_ context.Context, uid string) error {
	delete(c.items, uid)
	c.deleted = append(c.deleted, uid)
	return nil
}

type fakeProfileRepo struct {
	ProfileRepository
	profile models.UserProfile
	gets    int
	err     error
}

func (r *fakeProfileRepo) Get(context.Context, string) (models.UserProfile, error) {
	r.gets++
	return r.profile, r.err
}

func (r *fakeProfileRepo) Update(_ context.Context, _ string, mutate func(p *models.UserProfile) error) (models.UserProfile, error) {
	if r.err != nil {
		return models.UserProfile{}, r.err
	}
	p := r.profile
	if err := mutate(&p); err != nil {
		return models.UserProfile{}, err
	}
	r.profile = p
	return p, nil
}

func (r *fakeProfileRepo) SetPresence(context.Context, string, models.PresenceStatus, time.Time) error {
	return r.err
}

func (r *fakeProfileRepo) Delete(context.Context, string) error {
	return r.err
}

// TestCachedProfileRepository_ReadThrough verifies that the second read is
// served from the cache.
func TestCachedProfileRepository_ReadThrough(t *testing.T) {
	inner := &fakeProfileRepo{profile: models.UserProfile{UID: "u1", DisplayName: "Ann"}}
	cache := newFakeProfileCache()
	repo := NewCachedProfileRepository(inner, cache, logger.Nop())

	for range 2 {
		p, err := repo.Get(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ann", p.DisplayName)
	}
	assert.Equal(t, 1, inner.gets)
}

// TestCachedProfileRepository_CacheFailureFallsBack verifies that a broken
// cache does not break reads.
func TestCachedProfileRepository_CacheFailureFallsBack(t *testing.T) {
	inner := &fakeProfileRepo{profile: models.UserProfile{UID: "u1"}}
	cache := newFakeProfileCache()
	cache.getErr = errors.New("connection refused")
	repo := NewCachedProfileRepository(inner, cache, logger.Nop())

	_, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets)
}

// TestCachedProfileRepository_NotFoundIsNotCached verifies that misses of the
// database are returned and not stored.
func TestCachedProfileRepository_NotFoundIsNotCached(t *testing.T) {
	inner := &fakeProfileRepo{err: ErrProfileNotFound}
	cache := newFakeProfileCache()
	repo := NewCachedProfileRepository(inner, cache, logger.Nop())

	_, err := repo.Get(context.Background(), "u1")
	require.ErrorIs(t, err, ErrProfileNotFound)
	assert.Empty(t, cache.items)
}

// TestCachedProfileRepository_WritesInvalidate verifies that every write
// drops the cached entry.
func TestCachedProfileRepository_WritesInvalidate(t *testing.T) {
	inner := &fakeProfileRepo{profile: models.UserProfile{UID: "u1"}}
	cache := newFakeProfileCache()
	repo := NewCachedProfileRepository(inner, cache, logger.Nop())
	ctx := context.Background()

	_, err := repo.Update(ctx, "u1", func(p *models.UserProfile) error { p.DisplayName = "B"; return nil })
	require.NoError(t, err)
	require.NoError(t, repo.SetPresence(ctx, "u1", models.StatusAway, time.Time{}))
	require.NoError(t, repo.Delete(ctx, "u1"))

	assert.Equal(t, []string{"u1", "u1", "u1"}, cache.deleted)
}

// TestCachedProfileRepository_FailedWriteKeepsCache verifies that a failed
// write leaves the cache alone.
func TestCachedProfileRepository_FailedWriteKeepsCache(t *testing.T) {
	inner := &fakeProfileRepo{err: errors.New("db down")}
	cache := newFakeProfileCache()
	repo := NewCachedProfileRepository(inner, cache, logger.Nop())

	require.Error(t, repo.Delete(context.Background(), "u1"))
	assert.Empty(t, cache.deleted)
}
