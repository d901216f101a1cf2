package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/jackc/pgerrcode"
)

type callRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCallRepository(db *DB, logger *logger.Logger) CallRepository {
	logger.Debug().Msg("creating call repository")
	return &callRepository{db: db, logger: logger}
}

func (r *callRepository) Create(ctx context.Context, c models.Call) error {
	query, args, err := buildInsertCallQuery(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*callRepository.Create").Msg("error inserting call")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *callRepository) Get(ctx context.Context, id string) (models.Call, error) {
	query, args, err := buildSelectCallQuery(id)
	if err != nil {
		return models.Call{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var c models.Call
	var callType string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CallerID, &c.ReceiverID, &callType, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Call{}, ErrCallNotFound
		}
		return models.Call{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	c.Type = models.CallType(callType)

	return c, nil
}
