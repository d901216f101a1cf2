package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	sq "github.com/Masterminds/squirrel"
)

// localSessionID is the key of the only row in the sessions table.
const localSessionID = 1

type sqliteSessionStore struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionStore constructs a [SessionStore] over the client's SQLite file.
// At most one session is stored; Save replaces it.
func NewSessionStore(db *DB, logger *logger.Logger) SessionStore {
	return &sqliteSessionStore{db: db, logger: logger}
}

func (s *sqliteSessionStore) Save(ctx context.Context, session LocalSession) error {
	if session.SavedAt.IsZero() {
		session.SavedAt = time.Now()
	}

	query, args, err := sq.Insert("sessions").
		Columns("id", "uid", "token", "saved_at").
		Values(localSessionID, session.UID, session.Token, session.SavedAt.UTC()).
		Suffix("ON CONFLICT (id) DO UPDATE SET uid = excluded.uid, token = excluded.token, saved_at = excluded.saved_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqliteSessionStore.Save").Msg("error saving local session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteSessionStore) Load(ctx context.Context) (LocalSession, error) {
	query, args, err := sq.Select("uid", "token", "saved_at").
		From("sessions").
		Where(sq.Eq{"id": localSessionID}).
		ToSql()
	if err != nil {
		return LocalSession{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var session LocalSession
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&session.UID, &session.Token, &session.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LocalSession{}, ErrLocalSessionNotFound
		}
		return LocalSession{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

func (s *sqliteSessionStore) Clear(ctx context.Context) error {
	query, args, err := sq.Delete("sessions").Where(sq.Eq{"id": localSessionID}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqliteSessionStore.Clear").Msg("error clearing local session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
