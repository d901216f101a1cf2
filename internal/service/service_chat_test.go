package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/mock"
	"github.com/MKhiriev/go-chat-core/internal/validators"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixedIDs struct{ id string }

func (f fixedIDs) Generate() string { return f.id }

type chatDeps struct {
	messages  *mock.MockMessageRepository
	calls     *mock.MockCallRepository
	stories   *mock.MockStoryRepository
	publisher *recordingPublisher
}

func newTestChatSvc(t *testing.T) (*chatService, chatDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := chatDeps{
		messages:  mock.NewMockMessageRepository(ctrl),
		calls:     mock.NewMockCallRepository(ctrl),
		stories:   mock.NewMockStoryRepository(ctrl),
		publisher: &recordingPublisher{},
	}

	svc := NewChatService(deps.messages, deps.calls, deps.stories, deps.publisher, logger.Nop()).(*chatService)
	svc.ids = fixedIDs{id: "id-1"}
	svc.now = fixedClock()
	return svc, deps
}

// ── messages ────────────────────────────────────────────────────────────────

// TestCreateMessage_StoresAndPublishes verifies the stored message and the
// message.created event.
func TestCreateMessage_StoresAndPublishes(t *testing.T) {
	svc, deps := newTestChatSvc(t)

	want := models.Message{
		ID:           "id-1",
		SenderID:     "alice",
		ReceiverID:   "bob",
		Text:         "hello",
		Language:     "en",
		Translations: map[string]string{},
		CreatedAt:    testNow,
	}
	deps.messages.EXPECT().Create(gomock.Any(), want).Return(nil)

	got, err := svc.CreateMessage(context.Background(), "alice", models.CreateMessageRequest{ReceiverID: "bob", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	published := deps.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.MessageCreated, published[0].Topic)
	assert.Equal(t, "id-1", published[0].ID)
	assert.Equal(t, want, published[0].Payload)
}

// TestCreateMessage_StorageFailureNoEvent verifies nothing is published when
// the write fails.
func TestCreateMessage_StorageFailureNoEvent(t *testing.T) {
	svc, deps := newTestChatSvc(t)
	deps.messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)

	_, err := svc.CreateMessage(context.Background(), "alice", models.CreateMessageRequest{ReceiverID: "bob", Text: "hi"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, deps.publisher.published())
}

// TestCreateMessage_PublishFailureIgnored verifies the committed message is
// returned even when the event is lost.
func TestCreateMessage_PublishFailureIgnored(t *testing.T) {
	svc, deps := newTestChatSvc(t)
	deps.publisher.err = events.ErrClosed
	deps.messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.CreateMessage(context.Background(), "alice", models.CreateMessageRequest{ReceiverID: "bob", Text: "hi", Language: "de"})
	assert.NoError(t, err)
}

// TestChatValidation covers request validation and self-addressing.
func TestChatValidation(t *testing.T) {
	inner, _ := newTestChatSvc(t)
	svc := NewChatValidationService().Wrap(inner)
	ctx := context.Background()

	_, err := svc.CreateMessage(ctx, "alice", models.CreateMessageRequest{ReceiverID: "alice", Text: "me"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.CreateMessage(ctx, "alice", models.CreateMessageRequest{ReceiverID: "bob"})
	assert.ErrorIs(t, err, validators.ErrValidation)

	_, err = svc.CreateCall(ctx, "alice", models.CreateCallRequest{ReceiverID: "alice", Type: models.CallAudio})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.CreateCall(ctx, "alice", models.CreateCallRequest{ReceiverID: "bob", Type: "hologram"})
	assert.ErrorIs(t, err, validators.ErrValidation)

	_, err = svc.CreateStory(ctx, "alice", models.CreateStoryRequest{MediaPath: "stories/a.jpg", TTL: 8 * 24 * time.Hour})
	assert.ErrorIs(t, err, validators.ErrValidation)
}

// ── calls and stories ───────────────────────────────────────────────────────

// TestCreateCall_Publishes verifies call.created carries the call.
func TestCreateCall_Publishes(t *testing.T) {
	svc, deps := newTestChatSvc(t)
	deps.calls.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	call, err := svc.CreateCall(context.Background(), "alice", models.CreateCallRequest{ReceiverID: "bob", Type: models.CallVideo})
	require.NoError(t, err)
	assert.Equal(t, "alice", call.CallerID)

	published := deps.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.CallCreated, published[0].Topic)
	assert.Equal(t, call, published[0].Payload)
}

// TestCreateStory_TTL verifies the default and explicit expiry.
func TestCreateStory_TTL(t *testing.T) {
	svc, deps := newTestChatSvc(t)
	deps.stories.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	story, err := svc.CreateStory(context.Background(), "alice", models.CreateStoryRequest{MediaPath: "stories/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(DefaultStoryTTL), story.ExpiresAt)

	story, err = svc.CreateStory(context.Background(), "alice", models.CreateStoryRequest{MediaPath: "stories/a.jpg", TTL: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(time.Hour), story.ExpiresAt)
	assert.Empty(t, deps.publisher.published())
}
