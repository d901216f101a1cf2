// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/adapter"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
)

const (
	subscriberBuffer = 32
	watchRetryDelay  = 3 * time.Second
)

type subscription struct {
	ch   chan models.SessionState
	done chan struct{}
	once sync.Once
}

// clientSession owns the session state. opMu serializes operations, mu
// guards state and subscribers. All state changes go through set.
type clientSession struct {
	adapter  adapter.ServerAdapter
	sessions store.SessionStore
	watcher  adapter.ProfileWatcher

	opMu sync.Mutex

	mu     sync.Mutex
	state  models.SessionState
	subs   map[int]*subscription
	nextID int
	closed bool

	watchCancel context.CancelFunc
	watchWG     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSession returns a signed-out session. sessions and watcher may be
// nil: the session is then not persisted and profile pushes are not followed.
func NewClientSession(serverAdapter adapter.ServerAdapter, sessions store.SessionStore, watcher adapter.ProfileWatcher, logger *logger.Logger) ClientSession {
	return &clientSession{
		adapter:  serverAdapter,
		sessions: sessions,
		watcher:  watcher,
		subs:     make(map[int]*subscription),
		logger:   logger,
	}
}

func (s *clientSession) SignIn(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, func(ctx context.Context) (models.AuthResult, error) {
		return s.adapter.SignIn(ctx, models.Credentials{Email: email, Password: password})
	})
}

func (s *clientSession) SignUp(ctx context.Context, email, password, displayName string) error {
	return s.authenticate(ctx, func(ctx context.Context) (models.AuthResult, error) {
		return s.adapter.SignUp(ctx, models.Credentials{Email: email, Password: password, DisplayName: displayName})
	})
}

func (s *clientSession) SignInWithProvider(ctx context.Context, credential models.ProviderCredential) error {
	return s.authenticate(ctx, func(ctx context.Context) (models.AuthResult, error) {
		return s.adapter.SignInWithProvider(ctx, credential)
	})
}

func (s *clientSession) SignInWithGoogle(ctx context.Context, idToken string) error {
	return s.SignInWithProvider(ctx, models.ProviderCredential{ProviderID: models.ProviderGoogle, IDToken: idToken})
}

func (s *clientSession) SignInWithFacebook(ctx context.Context, accessToken string) error {
	return s.SignInWithProvider(ctx, models.ProviderCredential{ProviderID: models.ProviderFacebook, AccessToken: accessToken})
}

func (s *clientSession) authenticate(ctx context.Context, call func(ctx context.Context) (models.AuthResult, error)) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.begin()

	result, err := call(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.persist(ctx, result.Profile.UID, result.Token)
	s.succeed(&result.Profile)
	s.startWatch(result.Token)

	return nil
}

// SignOut implements [ClientSession]. The user is cleared whatever the
// server answers; a server failure is still reported.
func (s *clientSession) SignOut(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.begin()
	s.stopWatch()

	err := s.adapter.SignOut(ctx)

	if s.sessions != nil {
		if clearErr := s.sessions.Clear(ctx); clearErr != nil {
			s.logger.Err(clearErr).Str("func", "*clientSession.SignOut").Msg("error clearing saved session")
		}
	}

	msg := ""
	if err != nil {
		msg = err.Error()
	}
	s.set(func(st *models.SessionState) {
		st.User = nil
		st.Loading = false
		st.Error = msg
	})

	return err
}

func (s *clientSession) UpdateSettings(ctx context.Context, patch models.SettingsPatch) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	user := s.currentUser()
	if user == nil {
		s.begin()
		return s.fail(ErrNotSignedIn)
	}

	s.begin()

	updated, err := s.adapter.UpdateSettings(ctx, patch)
	if err != nil {
		return s.fail(err)
	}

	user.Settings = updated
	s.succeed(user)
	return nil
}

func (s *clientSession) UpdateProfile(ctx context.Context, patch models.ProfilePatch) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.currentUser() == nil {
		s.begin()
		return s.fail(ErrNotSignedIn)
	}

	s.begin()

	updated, err := s.adapter.UpdateProfile(ctx, patch)
	if err != nil {
		return s.fail(err)
	}

	s.succeed(&updated)
	return nil
}

// Restore implements [ClientSession]. A saved token the server no longer
// accepts is dropped.
func (s *clientSession) Restore(ctx context.Context) error {
	if s.sessions == nil {
		return nil
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	saved, err := s.sessions.Load(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	s.begin()
	s.adapter.SetToken(saved.Token)

	profile, err := s.adapter.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			s.adapter.SetToken("")
			_ = s.sessions.Clear(ctx)
		}
		return s.fail(err)
	}

	s.succeed(&profile)
	s.startWatch(saved.Token)
	return nil
}

func (s *clientSession) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.state)
}

// Subscribe implements [ClientSession].
func (s *clientSession) Subscribe(fn func(models.SessionState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}

	sub := &subscription{
		ch:   make(chan models.SessionState, subscriberBuffer),
		done: make(chan struct{}),
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = sub

	sub.ch <- snapshot(s.state)
	go sub.loop(fn)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		sub.stop()
	}
}

// Close stops profile pushes and every subscriber.
func (s *clientSession) Close() {
	s.opMu.Lock()
	s.stopWatch()
	s.opMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, sub := range s.subs {
		delete(s.subs, id)
		sub.stop()
	}
}

func (s *clientSession) begin() {
	s.set(func(st *models.SessionState) {
		st.Loading = true
		st.Error = ""
	})
}

func (s *clientSession) succeed(user *models.UserProfile) {
	s.set(func(st *models.SessionState) {
		st.User = user
		st.Loading = false
	})
}

func (s *clientSession) fail(err error) error {
	s.set(func(st *models.SessionState) {
		st.Error = err.Error()
		st.Loading = false
	})
	return err
}

// set is the single writer of the session state.
func (s *clientSession) set(mutate func(st *models.SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.state)
	for _, sub := range s.subs {
		sub.push(snapshot(s.state))
	}
}

func (s *clientSession) currentUser() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// applyRemote takes a profile pushed by the server for the signed-in user.
func (s *clientSession) applyRemote(p models.UserProfile) {
	s.mu.Lock()
	current := s.state.User
	s.mu.Unlock()

	if current == nil || current.UID != p.UID {
		return
	}

	s.set(func(st *models.SessionState) {
		if st.User != nil && st.User.UID == p.UID {
			st.User = &p
		}
	})
}

func (s *clientSession) persist(ctx context.Context, uid, token string) {
	if s.sessions == nil || token == "" {
		return
	}
	if uid == "" {
		uid, _ = utils.ParseUIDFromJWT(token)
	}

	if err := s.sessions.Save(ctx, store.LocalSession{UID: uid, Token: token}); err != nil {
		s.logger.Err(err).Str("func", "*clientSession.persist").Msg("error saving session")
	}
}

// startWatch and stopWatch run under opMu.
func (s *clientSession) startWatch(token string) {
	if s.watcher == nil {
		return
	}
	s.stopWatch()

	ctx, cancel := context.WithCancel(context.Background())
	s.watchCancel = cancel
	s.watchWG.Add(1)

	go func() {
		defer s.watchWG.Done()
		for {
			err := s.watcher.Watch(ctx, token, s.applyRemote)
			if ctx.Err() != nil || errors.Is(err, adapter.ErrUnauthorized) {
				return
			}
			if err != nil {
				s.logger.Err(err).Str("func", "*clientSession.startWatch").Msg("profile stream dropped")
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(watchRetryDelay):
			}
		}
	}()
}

func (s *clientSession) stopWatch() {
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	s.watchWG.Wait()
}

// push never blocks the writer. A subscriber that falls behind loses its
// oldest pending state.
func (sub *subscription) push(st models.SessionState) {
	for {
		select {
		case <-sub.done:
			return
		case sub.ch <- st:
			return
		default:
		}

		select {
		case <-sub.ch:
		default:
		}
	}
}

func (sub *subscription) loop(fn func(models.SessionState)) {
	for {
		select {
		case <-sub.done:
			return
		case st := <-sub.ch:
			fn(st)
		}
	}
}

func (sub *subscription) stop() {
	sub.once.Do(func() { close(sub.done) })
}

func snapshot(st models.SessionState) models.SessionState {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
