package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer. Currently it holds only
// the persisted session; additional repositories can be added here as the
// feature set grows.
type ClientStorages struct {
	// Sessions keeps the bearer token so a restarted client can resume.
	Sessions SessionStore

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file and its schema if they do not yet exist.
//  2. Constructs and returns a [ClientStorages] value wired to a fresh
//     [SessionStore].
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		Sessions: NewSessionStore(db, logger),
		db:       db,
	}, nil
}

// Close closes the local database.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
