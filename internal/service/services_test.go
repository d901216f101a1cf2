package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPipeline records the message ids each step saw.
type recordingPipeline struct {
	mu         sync.Mutex
	translated []string
	notified   []string
}

func (r *recordingPipeline) Translate(_ context.Context, msg models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.translated = append(r.translated, msg.ID)
	return nil
}

func (r *recordingPipeline) Notify(_ context.Context, msg models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notified = append(r.notified, msg.ID)
	return assert.AnError
}

type recordingCalls struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingCalls) Notify(_ context.Context, call models.Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call.ID)
	return nil
}

func testStorages() *store.Storages {
	return &store.Storages{Profiles: newMemProfiles()}
}

// TestHandle_PayloadMismatch verifies a wrong payload type is reported
// instead of calling the handler.
func TestHandle_PayloadMismatch(t *testing.T) {
	called := false
	h := handle(func(context.Context, models.Message) error {
		called = true
		return nil
	})

	err := h(context.Background(), events.Event{Payload: models.Call{ID: "c1"}})
	assert.ErrorIs(t, err, ErrUnexpectedPayload)
	assert.False(t, called)

	require.NoError(t, h(context.Background(), events.Event{Payload: models.Message{ID: "m1"}}))
	assert.True(t, called)
}

// TestServices_Subscribe verifies that every side effect is wired to its
// topic and that one failing step does not affect the others.
func TestServices_Subscribe(t *testing.T) {
	bus := events.NewBus(time.Second, logger.Nop())
	pipeline := &recordingPipeline{}
	calls := &recordingCalls{}

	s := &Services{
		MessagePipeline: pipeline,
		CallNotifier:    calls,
		MediaService:    NewMediaService(nil, "", nil, logger.Nop()),
	}
	s.Subscribe(bus)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, events.MessageCreated, "m1", models.Message{ID: "m1"}))
	require.NoError(t, bus.Publish(ctx, events.CallCreated, "c1", models.Call{ID: "c1"}))
	require.NoError(t, bus.Publish(ctx, events.ObjectFinalized, "o1", models.StoredObject{Name: "temp/o1.png"}))
	require.NoError(t, bus.Close(ctx))

	assert.Equal(t, []string{"m1"}, pipeline.translated)
	assert.Equal(t, []string{"m1"}, pipeline.notified)
	assert.Equal(t, []string{"c1"}, calls.calls)
}

// TestNewServices_BuildsEverything verifies the server services are
// assembled from storages and externals.
func TestNewServices_BuildsEverything(t *testing.T) {
	bus := events.NewBus(0, logger.Nop())
	cfg := config.StructuredConfig{
		App:     config.App{TokenSignKey: "k", TokenIssuer: "i", TokenDuration: time.Hour},
		Workers: config.Workers{TempSweepInterval: time.Hour, StorySweepInterval: time.Minute},
	}

	s, err := NewServices(testStorages(), Externals{}, bus, nil, cfg, models.NewAppBuildInfo("1.2.3", "", ""), logger.Nop())
	require.NoError(t, err)

	assert.NotNil(t, s.AuthService)
	assert.NotNil(t, s.Janitor)

	assert.Equal(t, "1.2.3", s.AppInfoService.GetAppVersion(context.Background()))

	jobs := s.Jobs(cfg.Workers, logger.Nop())
	require.Len(t, jobs, 2)
	assert.Equal(t, "temp-sweep", jobs[0].Name())
	assert.Equal(t, "story-sweep", jobs[1].Name())
}

// TestNewServices_RequiresVersion verifies a build without a version is
// rejected.
func TestNewServices_RequiresVersion(t *testing.T) {
	_, err := NewServices(testStorages(), Externals{}, events.NewBus(0, logger.Nop()), nil, config.StructuredConfig{}, models.AppBuildInfo{}, logger.Nop())
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}
