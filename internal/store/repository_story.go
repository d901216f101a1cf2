// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/jackc/pgerrcode"
)

type storyRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewStoryRepository(db *DB, logger *logger.Logger) StoryRepository {
	logger.Debug().Msg("creating story repository")
	return &storyRepository{db: db, logger: logger}
}

func (r *storyRepository) Create(ctx context.Context, s models.Story) error {
	query, args, err := buildInsertStoryQuery(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*storyRepository.Create").Msg("error inserting story")
		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return ErrProfileNotFound
		case pgerrcode.UniqueViolation:
			return ErrAlreadyExists
		default:
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// DeleteExpired removes every story with expires_at <= now. Running it twice
// for the same instant deletes nothing the second time.
func (r *storyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredStoriesQuery(now)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*storyRepository.DeleteExpired").Msg("error deleting expired stories")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return res.RowsAffected()
}
