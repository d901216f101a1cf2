package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── messages ──────────────────────────────────────────────────────────────────

// TestMessageCreate_DefaultsTranslations verifies that a nil translations map
// is stored as an empty JSON object.
func TestMessageCreate_DefaultsTranslations(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMessageRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO messages").
		WithArgs("m1", "a", "b", "hello", "en", "{}", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), models.Message{ID: "m1", SenderID: "a", ReceiverID: "b", Text: "hello", Language: "en"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageCreate_Duplicate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMessageRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO messages").
		WithArgs(anyArgs(7)...).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.Create(context.Background(), models.Message{ID: "m1"})
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestMessageGet(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMessageRepository(db, logger.Nop())
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .* FROM messages WHERE id = \\$1").
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows(messageColumns).
			AddRow("m1", "a", "b", "hello", "en", `{"fr":"bonjour"}`, now))

	m, err := repo.Get(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "hello", m.Text)
	assert.Equal(t, map[string]string{"fr": "bonjour"}, m.Translations)
	assert.Equal(t, now, m.CreatedAt)

	mock.ExpectQuery("SELECT .* FROM messages").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(messageColumns))

	_, err = repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrMessageNotFound)
}

// TestMessageAppendTranslation verifies the additive update and the not
// found case.
func TestMessageAppendTranslation(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewMessageRepository(db, logger.Nop())

	mock.ExpectExec("UPDATE messages SET translations = translations \\|\\| jsonb_build_object").
		WithArgs("fr", "bonjour", "m1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.AppendTranslation(context.Background(), "m1", "fr", "bonjour"))

	mock.ExpectExec("UPDATE messages").
		WithArgs("fr", "bonjour", "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.AppendTranslation(context.Background(), "gone", "fr", "bonjour"), ErrMessageNotFound)
}

// ── calls ─────────────────────────────────────────────────────────────────────

func TestCallCreateAndGet(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCallRepository(db, logger.Nop())
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO calls").
		WithArgs("c1", "a", "b", "video", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), models.Call{
		ID: "c1", CallerID: "a", ReceiverID: "b", Type: models.CallVideo, CreatedAt: now,
	}))

	mock.ExpectQuery("SELECT .* FROM calls WHERE id = \\$1").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(callColumns).AddRow("c1", "a", "b", "video", now))

	c, err := repo.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, models.CallVideo, c.Type)

	mock.ExpectQuery("SELECT .* FROM calls").
		WithArgs("none").
		WillReturnRows(sqlmock.NewRows(callColumns))
	_, err = repo.Get(context.Background(), "none")
	require.ErrorIs(t, err, ErrCallNotFound)
}

// ── stories ───────────────────────────────────────────────────────────────────

// TestStoryCreate_UnknownUser verifies that a foreign key violation maps to
// the missing profile sentinel.
func TestStoryCreate_UnknownUser(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewStoryRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO stories").
		WithArgs(anyArgs(5)...).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	err := repo.Create(context.Background(), models.Story{ID: "s1", UserID: "ghost"})
	require.ErrorIs(t, err, ErrProfileNotFound)
}

// TestStoryDeleteExpired_Idempotent verifies that a second sweep for the same
// instant removes nothing and still succeeds.
func TestStoryDeleteExpired_Idempotent(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewStoryRepository(db, logger.Nop())
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("DELETE FROM stories WHERE expires_at <= \\$1").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM stories WHERE expires_at <= \\$1").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, n)
}
