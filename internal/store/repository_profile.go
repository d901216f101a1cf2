package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
)

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository] over the "users" table.
//
// Settings, enrichment details and the contact lists are JSONB columns. The
// settings document is always written whole, so readers never observe a
// partially merged document.
type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ProfileRepository] backed by db.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// encodedProfile holds the JSONB columns of a profile.
type encodedProfile struct {
	settings     string
	details      string
	contacts     string
	blockedUsers string
}

func encodeProfile(p models.UserProfile) (encodedProfile, error) {
	var (
		out encodedProfile
		err error
	)

	if out.settings, err = encodeJSON(p.Settings); err != nil {
		return out, err
	}
	if out.details, err = encodeJSON(p.ProfileDetails); err != nil {
		return out, err
	}
	if out.contacts, err = encodeJSON(nonNil(p.Contacts)); err != nil {
		return out, err
	}
	if out.blockedUsers, err = encodeJSON(nonNil(p.BlockedUsers)); err != nil {
		return out, err
	}

	return out, nil
}

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return string(data), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.UserProfile, error) {
	var p models.UserProfile
	var status, role string
	var settings, details, contacts, block []byte

	err := row.Scan(
		&p.UID,
		&p.Email,
		&p.DisplayName,
		&p.PhotoURL,
		&p.EmailVerified,
		&status,
		&role,
		&settings,
		&details,
		&contacts,
		&block,
		&p.APIKey,
		&p.PushToken,
		&p.CreatedAt,
		&p.LastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserProfile{}, ErrProfileNotFound
		}
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	p.Status = models.PresenceStatus(status)
	p.Role = models.Role(role)

	columns := []struct {
		name string
		data []byte
		dest any
	}{
		{"settings", settings, &p.Settings},
		{"details", details, &p.ProfileDetails},
		{"contacts", contacts, &p.Contacts},
		{"blocked_users", block, &p.BlockedUsers},
	}
	for _, c := range columns {
		if len(c.data) == 0 {
			continue
		}
		if err := json.Unmarshal(c.data, c.dest); err != nil {
			return models.UserProfile{}, fmt.Errorf("%w: column %s: %w", ErrScanningRow, c.name, err)
		}
	}

	return p, nil
}

// Create implements [ProfileRepository]. The insert is conditional on the
// uid being free.
func (r *profileRepository) Create(ctx context.Context, p models.UserProfile) (bool, error) {
	log := logger.FromContext(ctx)

	cols, err := encodeProfile(p)
	if err != nil {
		return false, err
	}

	query, args, err := buildInsertProfileQuery(p, cols)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.Create").Str("pg_code", postgresError(err)).Msg("error inserting profile")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected == 1, nil
}

// Get implements [ProfileRepository].
func (r *profileRepository) Get(ctx context.Context, uid string) (models.UserProfile, error) {
	query, args, err := buildSelectProfileQuery(uid, false)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, args...))
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		logger.FromContext(ctx).Err(err).Str("func", "*profileRepository.Get").Msg("error reading profile")
	}
	return p, err
}

// Update implements [ProfileRepository]. The SELECT ... FOR UPDATE row lock
// serializes concurrent read-modify-write cycles on the same uid.
func (r *profileRepository) Update(ctx context.Context, uid string, mutate func(p *models.UserProfile) error) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	var updated models.UserProfile
	err := r.db.inTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildSelectProfileQuery(uid, true)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		current, err := scanProfile(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return err
		}

		if err = mutate(&current); err != nil {
			return err
		}
		current.UID = uid

		cols, err := encodeProfile(current)
		if err != nil {
			return err
		}

		query, args, err = buildUpdateProfileQuery(current, cols)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*profileRepository.Update").Str("pg_code", postgresError(err)).Msg("error updating profile")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		updated = current
		return nil
	})
	if err != nil {
		return models.UserProfile{}, err
	}

	return updated, nil
}

// SetPresence implements [ProfileRepository].
func (r *profileRepository) SetPresence(ctx context.Context, uid string, status models.PresenceStatus, lastLogin time.Time) error {
	query, args, err := buildSetPresenceQuery(uid, status, lastLogin)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileRepository.SetPresence").Msg("error updating presence")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// Delete implements [ProfileRepository].
func (r *profileRepository) Delete(ctx context.Context, uid string) error {
	query, args, err := buildDeleteProfileQuery(uid)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileRepository.Delete").Msg("error deleting profile")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
