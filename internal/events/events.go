// Package events is the in-process event bus that decouples primary writes
// from their side effects.
//
// Every subscriber of a topic runs on its own goroutine, so a slow or failing
// translation never delays a push notification for the same message. Handler
// panics are recovered and logged. Handlers receive a context detached from
// the publisher's cancellation: the HTTP request that caused an event may
// finish long before its side effects do.
package events

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
)

// Topic names an event stream.
type Topic string

const (
	IdentityCreated Topic = "identity.created"
	IdentityDeleted Topic = "identity.deleted"
	MessageCreated  Topic = "message.created"
	CallCreated     Topic = "call.created"
	ObjectFinalized Topic = "object.finalized"
	ProfileUpdated  Topic = "profile.updated"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("event bus is closed")

// Event is a published payload. ID identifies the underlying record and is
// what subscribers deduplicate on.
type Event struct {
	Topic       Topic
	ID          string
	Payload     any
	PublishedAt time.Time
}

// Handler processes one event. A returned error is logged with the
// subscriber name.
type Handler func(ctx context.Context, e Event) error

type subscriber struct {
	name    string
	handler Handler
}

// Bus fans events out to subscribers.
type Bus struct {
	mu      sync.RWMutex
	subs    map[Topic][]subscriber
	closed  bool
	wg      sync.WaitGroup
	timeout time.Duration
	logger  *logger.Logger
}

// NewBus returns a bus whose handlers are bounded by timeout. A zero timeout
// means no deadline.
func NewBus(timeout time.Duration, log *logger.Logger) *Bus {
	return &Bus{
		subs:    make(map[Topic][]subscriber),
		timeout: timeout,
		logger:  log,
	}
}

// Subscribe registers handler for topic under name. Names appear in logs
// and in deduplication keys.
func (b *Bus) Subscribe(topic Topic, name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs[topic] = append(b.subs[topic], subscriber{name: name, handler: handler})
}

// Publish delivers payload to every subscriber of topic asynchronously.
// It returns once all deliveries are scheduled.
func (b *Bus) Publish(ctx context.Context, topic Topic, id string, payload any) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	e := Event{Topic: topic, ID: id, Payload: payload, PublishedAt: time.Now()}
	base := context.WithoutCancel(ctx)

	for _, s := range b.subs[topic] {
		b.wg.Add(1)
		go b.deliver(base, s, e)
	}

	return nil
}

func (b *Bus) deliver(ctx context.Context, s subscriber, e Event) {
	defer b.wg.Done()

	log := b.logger.With().
		Str("topic", string(e.Topic)).
		Str("subscriber", s.name).
		Str("event_id", e.ID).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("func", "Bus.deliver").
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("event handler panicked")
		}
	}()

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	ctx = log.WithContext(ctx)
	if err := s.handler(ctx, e); err != nil {
		log.Err(err).Str("func", "Bus.deliver").Msg("event handler failed")
		return
	}

	log.Debug().Str("func", "Bus.deliver").Msg("event handled")
}

// Closed reports whether Close has been called.
func (b *Bus) Closed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// Close rejects new events and waits for in-flight handlers or ctx.
func (b *Bus) Close(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
