package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/settings"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/models"
)

// memProfiles is an in-memory store.ProfileRepository. Update holds a lock
// for the whole read-modify-write, like the row lock of the SQL repository.
type memProfiles struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
	creates  int
}

func newMemProfiles(profiles ...models.UserProfile) *memProfiles {
	m := &memProfiles{profiles: make(map[string]models.UserProfile)}
	for _, p := range profiles {
		m.profiles[p.UID] = p
	}
	return m
}

func (m *memProfiles) Create(_ context.Context, p models.UserProfile) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if _, ok := m.profiles[p.UID]; ok {
		return false, nil
	}
	m.profiles[p.UID] = p
	return true, nil
}

func (m *memProfiles) Get(_ context.Context, uid string) (models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[uid]
	if !ok {
		return models.UserProfile{}, store.ErrProfileNotFound
	}
	return p, nil
}

func (m *memProfiles) Update(_ context.Context, uid string, mutate func(p *models.UserProfile) error) (models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[uid]
	if !ok {
		return models.UserProfile{}, store.ErrProfileNotFound
	}
	if err := mutate(&p); err != nil {
		return models.UserProfile{}, err
	}
	m.profiles[uid] = p
	return p, nil
}

func (m *memProfiles) SetPresence(_ context.Context, uid string, status models.PresenceStatus, lastLogin time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[uid]
	if !ok {
		return store.ErrProfileNotFound
	}
	p.Status = status
	if !lastLogin.IsZero() {
		p.LastLogin = lastLogin
	}
	m.profiles[uid] = p
	return nil
}

func (m *memProfiles) Delete(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, uid)
	return nil
}

func (m *memProfiles) stored(uid string) models.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profiles[uid]
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, topic events.Topic, id string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events.Event{Topic: topic, ID: id, Payload: payload})
	return r.err
}

func (r *recordingPublisher) published() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// memDedup is an in-memory store.Deduplicator.
type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemDedup() *memDedup {
	return &memDedup{seen: make(map[string]bool)}
}

func (d *memDedup) FirstSeen(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func (d *memDedup) Forget(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, key)
	return nil
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testProfile(uid string) models.UserProfile {
	return models.UserProfile{
		UID:          uid,
		Email:        uid + "@example.com",
		DisplayName:  "User " + uid,
		Status:       models.StatusOnline,
		Role:         models.RoleUser,
		Settings:     settings.Defaults(testNow),
		CreatedAt:    testNow,
		LastLogin:    testNow,
		Contacts:     []string{},
		BlockedUsers: []string{},
	}
}

func fixedClock() func() time.Time {
	return func() time.Time { return testNow }
}
