// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/adapter"
	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/crypto"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/settings"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/models"
	"golang.org/x/text/language"
)

// Deduplication step names. The event id is appended to form the key.
const (
	stepTranslate  = "translate"
	stepNotify     = "notify"
	stepNotifyCall = "notify-call"
)

// messagePipeline runs the side effects of message.created. Translate and
// Notify are subscribed separately and share nothing but read-only
// collaborators.
type messagePipeline struct {
	profiles   store.ProfileRepository
	messages   store.MessageRepository
	translator adapter.Translator
	push       adapter.PushSender
	dedup      store.Deduplicator
	sealer     crypto.Sealer

	// quota is the number of server-paid translations per window. Zero
	// disables the quota.
	quota  int
	window time.Duration

	now    func() time.Time
	logger *logger.Logger
}

func NewMessagePipeline(
	profiles store.ProfileRepository,
	messages store.MessageRepository,
	translator adapter.Translator,
	push adapter.PushSender,
	dedup store.Deduplicator,
	sealer crypto.Sealer,
	cfg config.Workers,
	logger *logger.Logger,
) MessagePipeline {
	return &messagePipeline{
		profiles:   profiles,
		messages:   messages,
		translator: translator,
		push:       push,
		dedup:      dedup,
		sealer:     sealer,
		quota:      cfg.TranslationQuota,
		window:     cfg.TranslationWindow,
		now:        time.Now,
		logger:     logger,
	}
}

// Translate appends the translation into the receiver's language. Messages
// already in that language, messages without text or receiver and users
// over quota are skipped. A failed translation is neither charged nor marked
// as processed.
func (p *messagePipeline) Translate(ctx context.Context, msg models.Message) (err error) {
	log := logger.FromContext(ctx)

	if msg.Text == "" || msg.ReceiverID == "" {
		return nil
	}
	if !firstSeen(ctx, p.dedup, stepTranslate, msg.ID) {
		return nil
	}
	defer forgetOnError(ctx, p.dedup, stepTranslate, msg.ID, &err)

	receiver, err := p.profiles.Get(ctx, msg.ReceiverID)
	if err != nil {
		return fmt.Errorf("error loading receiver: %w", mapStoreError(err))
	}

	target := receiver.Settings.Language
	if target == "" {
		target = settings.DefaultLanguage
	}
	if SameLanguage(msg.Language, target) {
		return nil
	}

	apiKey, charged, err := p.translationKey(ctx, receiver)
	if errors.Is(err, ErrQuotaExceeded) {
		log.Info().Str("func", "*messagePipeline.Translate").Str("uid", receiver.UID).Msg("translation quota exceeded, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	if err = p.translate(ctx, msg, target, apiKey); err != nil {
		if charged != nil {
			p.refundQuota(ctx, receiver.UID, *charged)
		}
		return err
	}

	log.Debug().Str("func", "*messagePipeline.Translate").Str("target", target).Msg("message translated")
	return nil
}

func (p *messagePipeline) translate(ctx context.Context, msg models.Message, target, apiKey string) error {
	translated, err := p.translator.Translate(ctx, msg.Text, target, apiKey)
	if err != nil {
		return fmt.Errorf("error translating message: %w", err)
	}

	if err = p.messages.AppendTranslation(ctx, msg.ID, target, translated); err != nil {
		return fmt.Errorf("error storing translation: %w", mapStoreError(err))
	}
	return nil
}

// translationKey returns the receiver's own key, or "" for the server key
// after charging one unit of the receiver's quota. charged is the start of
// the quota window the unit was taken from, nil when nothing was charged.
func (p *messagePipeline) translationKey(ctx context.Context, receiver models.UserProfile) (key string, charged *time.Time, err error) {
	if sealed := receiver.Settings.Translation.ServiceKey; sealed != "" {
		key, err = p.sealer.Open(sealed)
		if err == nil {
			return key, nil, nil
		}
		logger.FromContext(ctx).Err(err).Str("func", "*messagePipeline.translationKey").Str("uid", receiver.UID).Msg("stored translation key is unreadable, using server key")
	}

	if p.quota <= 0 {
		return "", nil, nil
	}

	updated, err := p.profiles.Update(ctx, receiver.UID, func(profile *models.UserProfile) error {
		return chargeQuota(&profile.Settings.Translation, p.quota, p.window, p.now().UTC())
	})
	if err != nil {
		return "", nil, err
	}

	window := updated.Settings.Translation.LastReset
	return "", &window, nil
}

// refundQuota gives back a unit charged in the window starting at charged.
// Failures are logged only: the translation error is what the caller reports.
func (p *messagePipeline) refundQuota(ctx context.Context, uid string, charged time.Time) {
	_, err := p.profiles.Update(ctx, uid, func(profile *models.UserProfile) error {
		refundQuota(&profile.Settings.Translation, charged)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*messagePipeline.refundQuota").Str("uid", uid).Msg("failed to refund translation quota")
	}
}

// chargeQuota counts one translation, starting a new window first when the
// current one has elapsed.
func chargeQuota(t *models.TranslationSettings, quota int, window time.Duration, now time.Time) error {
	if window > 0 && now.Sub(t.LastReset) >= window {
		t.UsageCount = 0
		t.LastReset = now
	}
	if t.UsageCount >= quota {
		return ErrQuotaExceeded
	}
	t.UsageCount++
	return nil
}

// refundQuota undoes one chargeQuota. A window that rolled over since the
// charge already dropped the unit.
func refundQuota(t *models.TranslationSettings, charged time.Time) {
	if t.LastReset.Equal(charged) && t.UsageCount > 0 {
		t.UsageCount--
	}
}

// Notify pushes the message to the receiver's device. Receivers without a
// registered device are skipped.
func (p *messagePipeline) Notify(ctx context.Context, msg models.Message) (err error) {
	if msg.ReceiverID == "" || msg.SenderID == "" {
		return nil
	}
	if !firstSeen(ctx, p.dedup, stepNotify, msg.ID) {
		return nil
	}
	defer forgetOnError(ctx, p.dedup, stepNotify, msg.ID, &err)

	return notify(ctx, p.profiles, p.push, msg.SenderID, msg.ReceiverID, func(sender models.UserProfile) (models.Notification, map[string]string) {
		return models.Notification{
				Title: sender.SenderName(),
				Body:  msg.Text,
				Icon:  avatar(sender),
			}, map[string]string{
				"type":      models.NotificationTypeMessage,
				"senderId":  msg.SenderID,
				"messageId": msg.ID,
			}
	})
}

type callNotifier struct {
	profiles store.ProfileRepository
	push     adapter.PushSender
	dedup    store.Deduplicator
	logger   *logger.Logger
}

func NewCallNotifier(profiles store.ProfileRepository, push adapter.PushSender, dedup store.Deduplicator, logger *logger.Logger) CallNotifier {
	return &callNotifier{profiles: profiles, push: push, dedup: dedup, logger: logger}
}

// Notify rings the receiver's device.
func (n *callNotifier) Notify(ctx context.Context, call models.Call) (err error) {
	if call.ReceiverID == "" || call.CallerID == "" {
		return nil
	}
	if !firstSeen(ctx, n.dedup, stepNotifyCall, call.ID) {
		return nil
	}
	defer forgetOnError(ctx, n.dedup, stepNotifyCall, call.ID, &err)

	return notify(ctx, n.profiles, n.push, call.CallerID, call.ReceiverID, func(caller models.UserProfile) (models.Notification, map[string]string) {
		return models.Notification{
				Title: fmt.Sprintf("Incoming %s Call", call.Type),
				Body:  caller.SenderName() + " is calling...",
				Icon:  avatar(caller),
			}, map[string]string{
				"type":     models.NotificationTypeCall,
				"callerId": call.CallerID,
				"callId":   call.ID,
				"callType": string(call.Type),
			}
	})
}

func notify(
	ctx context.Context,
	profiles store.ProfileRepository,
	push adapter.PushSender,
	fromUID, toUID string,
	build func(from models.UserProfile) (models.Notification, map[string]string),
) error {
	log := logger.FromContext(ctx)

	receiver, err := profiles.Get(ctx, toUID)
	if err != nil {
		return fmt.Errorf("error loading receiver: %w", mapStoreError(err))
	}
	if receiver.PushToken == "" {
		return nil
	}

	sender, err := profiles.Get(ctx, fromUID)
	if err != nil {
		return fmt.Errorf("error loading sender: %w", mapStoreError(err))
	}

	notification, data := build(sender)
	err = push.Send(ctx, models.PushMessage{
		Token:        receiver.PushToken,
		Notification: notification,
		Data:         data,
	})
	if errors.Is(err, adapter.ErrInvalidPushToken) {
		log.Warn().Err(err).Str("func", "notify").Str("uid", toUID).Msg("push token was rejected")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error sending push: %w", err)
	}

	return nil
}

// firstSeen reports whether step has not processed id yet. A failing dedup
// store lets the event through.
func firstSeen(ctx context.Context, dedup store.Deduplicator, step, id string) bool {
	if id == "" {
		return true
	}

	ok, err := dedup.FirstSeen(ctx, step+":"+id)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "firstSeen").Str("step", step).Msg("dedup store failed, processing anyway")
		return true
	}
	return ok
}

// forgetOnError releases the dedup key of a step that failed so the next
// delivery of the event retries it.
func forgetOnError(ctx context.Context, dedup store.Deduplicator, step, id string, err *error) {
	if *err == nil || id == "" {
		return
	}
	if ferr := dedup.Forget(ctx, step+":"+id); ferr != nil {
		logger.FromContext(ctx).Warn().Err(ferr).Str("func", "forgetOnError").Str("step", step).Msg("failed to release dedup key")
	}
}

func avatar(p models.UserProfile) string {
	if p.PhotoURL != "" {
		return p.PhotoURL
	}
	return models.DefaultAvatar
}

// SameLanguage compares two language tags after canonicalization. Tags that
// do not parse are compared case-insensitively.
func SameLanguage(a, b string) bool {
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	return ta == tb
}
