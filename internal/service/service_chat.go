package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/settings"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
)

// DefaultStoryTTL applies when a story request carries no TTL.
const DefaultStoryTTL = 24 * time.Hour

type idGenerator interface {
	Generate() string
}

type chatService struct {
	messages store.MessageRepository
	calls    store.CallRepository
	stories  store.StoryRepository
	events   EventPublisher
	ids      idGenerator
	now      func() time.Time
	logger   *logger.Logger
}

func NewChatService(
	messages store.MessageRepository,
	calls store.CallRepository,
	stories store.StoryRepository,
	publisher EventPublisher,
	logger *logger.Logger,
) ChatService {
	return &chatService{
		messages: messages,
		calls:    calls,
		stories:  stories,
		events:   publisher,
		ids:      utils.NewUUIDGenerator(),
		now:      time.Now,
		logger:   logger,
	}
}

// CreateMessage stores the message and then publishes message.created. A
// failed publish is logged: the message is already committed.
func (s *chatService) CreateMessage(ctx context.Context, senderID string, req models.CreateMessageRequest) (models.Message, error) {
	lang := req.Language
	if lang == "" {
		lang = settings.DefaultLanguage
	}

	msg := models.Message{
		ID:           s.ids.Generate(),
		SenderID:     senderID,
		ReceiverID:   req.ReceiverID,
		Text:         req.Text,
		Language:     lang,
		Translations: map[string]string{},
		CreatedAt:    s.now().UTC(),
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.CreateMessage").Msg("error creating message")
		return models.Message{}, fmt.Errorf("error creating message: %w", err)
	}

	s.publish(ctx, events.MessageCreated, msg.ID, msg)
	return msg, nil
}

func (s *chatService) CreateCall(ctx context.Context, callerID string, req models.CreateCallRequest) (models.Call, error) {
	call := models.Call{
		ID:         s.ids.Generate(),
		CallerID:   callerID,
		ReceiverID: req.ReceiverID,
		Type:       req.Type,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.calls.Create(ctx, call); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.CreateCall").Msg("error creating call")
		return models.Call{}, fmt.Errorf("error creating call: %w", err)
	}

	s.publish(ctx, events.CallCreated, call.ID, call)
	return call, nil
}

func (s *chatService) CreateStory(ctx context.Context, uid string, req models.CreateStoryRequest) (models.Story, error) {
	ttl := req.TTL
	if ttl <= 0 {
		ttl = DefaultStoryTTL
	}

	now := s.now().UTC()
	story := models.Story{
		ID:        s.ids.Generate(),
		UserID:    uid,
		MediaPath: req.MediaPath,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.stories.Create(ctx, story); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.CreateStory").Msg("error creating story")
		return models.Story{}, mapStoreError(err)
	}

	return story, nil
}

func (s *chatService) publish(ctx context.Context, topic events.Topic, id string, payload any) {
	if err := s.events.Publish(ctx, topic, id, payload); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.publish").Str("topic", string(topic)).Msg("event was not published")
	}
}
