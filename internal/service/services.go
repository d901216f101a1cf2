package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/adapter"
	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/crypto"
	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/media"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/internal/workers"
	"github.com/MKhiriev/go-chat-core/models"
)

// ErrUnexpectedPayload is returned by subscribers given an event of the
// wrong payload type.
var ErrUnexpectedPayload = errors.New("unexpected event payload")

// Externals are the outbound collaborators of the server services.
type Externals struct {
	Identity   adapter.IdentityProvider
	Push       adapter.PushSender
	Translator adapter.Translator
	Frames     media.FrameExtractor
}

type Services struct {
	AccountService  AccountService
	AuthService     AuthService
	ProfileService  ProfileService
	ChatService     ChatService
	MessagePipeline MessagePipeline
	CallNotifier    CallNotifier
	MediaService    MediaService
	Janitor         Janitor
	AppInfoService  AppInfoService
}

func NewServices(
	storages *store.Storages,
	ext Externals,
	bus *events.Bus,
	sealer crypto.Sealer,
	cfg config.StructuredConfig,
	build models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	accounts := NewAccountService(storages.Profiles, logger)
	auth := NewAuthService(ext.Identity, accounts, storages.Profiles, storages.Revoker, cfg.App, logger)
	profiles := NewProfileService(storages.Profiles, sealer, bus, logger)
	chat := NewChatService(storages.Messages, storages.Calls, storages.Stories, bus, logger)

	return &Services{
		AccountService:  accounts,
		AuthService:     NewAuthValidationService().Wrap(auth),
		ProfileService:  NewProfileValidationService().Wrap(profiles),
		ChatService:     NewChatValidationService().Wrap(chat),
		MessagePipeline: NewMessagePipeline(storages.Profiles, storages.Messages, ext.Translator, ext.Push, storages.Dedup, sealer, cfg.Workers, logger),
		CallNotifier:    NewCallNotifier(storages.Profiles, ext.Push, storages.Dedup, logger),
		MediaService:    NewMediaService(storages.Objects, cfg.Storage.Objects.Bucket, ext.Frames, logger),
		Janitor:         NewJanitor(storages.Objects, storages.Stories, cfg.Workers.TempMaxAge, logger),
		AppInfoService:  appInfo,
	}, nil
}

// Subscribe registers the side effect handlers on bus. Each one is a
// separate subscriber, so a failing translation never holds back a push.
func (s *Services) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.MessageCreated, stepTranslate, handle(s.MessagePipeline.Translate))
	bus.Subscribe(events.MessageCreated, stepNotify, handle(s.MessagePipeline.Notify))
	bus.Subscribe(events.CallCreated, stepNotifyCall, handle(s.CallNotifier.Notify))
	bus.Subscribe(events.ObjectFinalized, "thumbnail", handle(s.MediaService.OnObjectFinalized))
}

// Jobs returns the janitor's periodic sweeps.
func (s *Services) Jobs(cfg config.Workers, log *logger.Logger) []workers.Worker {
	return []workers.Worker{
		workers.NewPeriodicJob("temp-sweep", cfg.TempSweepInterval, func(ctx context.Context, now time.Time) error {
			_, err := s.Janitor.SweepTempObjects(ctx, now)
			return err
		}, log),
		workers.NewPeriodicJob("story-sweep", cfg.StorySweepInterval, func(ctx context.Context, now time.Time) error {
			_, err := s.Janitor.SweepExpiredStories(ctx, now)
			return err
		}, log),
	}
}

func handle[T any](fn func(context.Context, T) error) events.Handler {
	return func(ctx context.Context, e events.Event) error {
		payload, ok := e.Payload.(T)
		if !ok {
			return fmt.Errorf("%w: %T", ErrUnexpectedPayload, e.Payload)
		}
		return fn(ctx, payload)
	}
}
