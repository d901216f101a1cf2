package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/jackc/pgerrcode"
)

type messageRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewMessageRepository constructs a [MessageRepository] backed by db.
func NewMessageRepository(db *DB, logger *logger.Logger) MessageRepository {
	logger.Debug().Msg("creating message repository")
	return &messageRepository{db: db, logger: logger}
}

func (r *messageRepository) Create(ctx context.Context, m models.Message) error {
	if m.Translations == nil {
		m.Translations = map[string]string{}
	}
	translations, err := encodeJSON(m.Translations)
	if err != nil {
		return err
	}

	query, args, err := buildInsertMessageQuery(m, translations)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*messageRepository.Create").Msg("error inserting message")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *messageRepository) Get(ctx context.Context, id string) (models.Message, error) {
	query, args, err := buildSelectMessageQuery(id)
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var m models.Message
	var translations []byte
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Language, &translations, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Message{}, ErrMessageNotFound
		}
		return models.Message{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	m.Translations = map[string]string{}
	if len(translations) > 0 {
		if err = json.Unmarshal(translations, &m.Translations); err != nil {
			return models.Message{}, fmt.Errorf("%w: translations: %w", ErrScanningRow, err)
		}
	}

	return m, nil
}

// AppendTranslation stores text under translations[lang]. Entries for other
// languages are preserved.
func (r *messageRepository) AppendTranslation(ctx context.Context, id, lang, text string) error {
	query, args, err := buildAppendTranslationQuery(id, lang, text)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*messageRepository.AppendTranslation").Msg("error appending translation")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrMessageNotFound
	}

	return nil
}
