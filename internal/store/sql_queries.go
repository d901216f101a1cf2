package store

import (
	"time"

	"github.com/MKhiriev/go-chat-core/models"
	sq "github.com/Masterminds/squirrel"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var profileColumns = []string{
	"uid",
	"email",
	"display_name",
	"photo_url",
	"email_verified",
	"status",
	"role",
	"settings",
	"details",
	"contacts",
	"blocked_users",
	"api_key",
	"push_token",
	"created_at",
	"last_login",
}

var messageColumns = []string{"id", "sender_id", "receiver_id", "text", "language", "translations", "created_at"}

var callColumns = []string{"id", "caller_id", "receiver_id", "type", "created_at"}

var storyColumns = []string{"id", "user_id", "media_path", "created_at", "expires_at"}

// ── users ────────────────────────────────────────────────────────────────────

// buildInsertProfileQuery writes a new profile unless the uid is taken. A
// conflicting row is left untouched so retried creation events are no-ops.
func buildInsertProfileQuery(p models.UserProfile, cols encodedProfile) (string, []any, error) {
	return psql.Insert("users").
		Columns(profileColumns...).
		Values(
			p.UID,
			p.Email,
			p.DisplayName,
			p.PhotoURL,
			p.EmailVerified,
			string(p.Status),
			string(p.Role),
			cols.settings,
			cols.details,
			cols.contacts,
			cols.blockedUsers,
			p.APIKey,
			p.PushToken,
			p.CreatedAt,
			p.LastLogin,
		).
		Suffix("ON CONFLICT (uid) DO NOTHING").
		ToSql()
}

func buildSelectProfileQuery(uid string, forUpdate bool) (string, []any, error) {
	q := psql.Select(profileColumns...).
		From("users").
		Where(sq.Eq{"uid": uid})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	return q.ToSql()
}

// buildUpdateProfileQuery writes back the columns a profile mutation may
// change. Identity columns (uid, email, created_at, api_key) are immutable.
func buildUpdateProfileQuery(p models.UserProfile, cols encodedProfile) (string, []any, error) {
	return psql.Update("users").
		SetMap(map[string]any{
			"display_name":  p.DisplayName,
			"photo_url":     p.PhotoURL,
			"settings":      cols.settings,
			"details":       cols.details,
			"contacts":      cols.contacts,
			"blocked_users": cols.blockedUsers,
			"push_token":    p.PushToken,
		}).
		Where(sq.Eq{"uid": p.UID}).
		ToSql()
}

func buildSetPresenceQuery(uid string, status models.PresenceStatus, lastLogin time.Time) (string, []any, error) {
	q := psql.Update("users").Set("status", string(status))
	if !lastLogin.IsZero() {
		q = q.Set("last_login", lastLogin)
	}
	return q.Where(sq.Eq{"uid": uid}).ToSql()
}

func buildDeleteProfileQuery(uid string) (string, []any, error) {
	return psql.Delete("users").Where(sq.Eq{"uid": uid}).ToSql()
}

// ── messages ─────────────────────────────────────────────────────────────────

func buildInsertMessageQuery(m models.Message, translations string) (string, []any, error) {
	return psql.Insert("messages").
		Columns(messageColumns...).
		Values(m.ID, m.SenderID, m.ReceiverID, m.Text, m.Language, translations, m.CreatedAt).
		ToSql()
}

func buildSelectMessageQuery(id string) (string, []any, error) {
	return psql.Select(messageColumns...).From("messages").Where(sq.Eq{"id": id}).ToSql()
}

// buildAppendTranslationQuery adds or replaces a single language key of the
// translations object. Other keys and the original text are not touched.
func buildAppendTranslationQuery(id, lang, text string) (string, []any, error) {
	return psql.Update("messages").
		Set("translations", sq.Expr("translations || jsonb_build_object(?::text, ?::text)", lang, text)).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// ── calls ────────────────────────────────────────────────────────────────────

func buildInsertCallQuery(c models.Call) (string, []any, error) {
	return psql.Insert("calls").
		Columns(callColumns...).
		Values(c.ID, c.CallerID, c.ReceiverID, string(c.Type), c.CreatedAt).
		ToSql()
}

func buildSelectCallQuery(id string) (string, []any, error) {
	return psql.Select(callColumns...).From("calls").Where(sq.Eq{"id": id}).ToSql()
}

// ── stories ──────────────────────────────────────────────────────────────────

func buildInsertStoryQuery(s models.Story) (string, []any, error) {
	return psql.Insert("stories").
		Columns(storyColumns...).
		Values(s.ID, s.UserID, s.MediaPath, s.CreatedAt, s.ExpiresAt).
		ToSql()
}

func buildDeleteExpiredStoriesQuery(now time.Time) (string, []any, error) {
	return psql.Delete("stories").Where(sq.LtOrEq{"expires_at": now}).ToSql()
}
