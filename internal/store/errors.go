package store

import "errors"

// Sentinel errors returned by repositories to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrProfileNotFound is returned when no users row matches the uid.
	ErrProfileNotFound = errors.New("profile was not found")

	// ErrMessageNotFound is returned when no messages row matches the id.
	ErrMessageNotFound = errors.New("message was not found")

	// ErrCallNotFound is returned when no calls row matches the id.
	ErrCallNotFound = errors.New("call was not found")

	// ErrObjectNotFound is returned when the object key does not exist in
	// the bucket.
	ErrObjectNotFound = errors.New("object was not found")

	// ErrCacheMiss is returned by [ProfileCache.Get] when nothing is cached.
	ErrCacheMiss = errors.New("cache miss")

	// ErrLocalSessionNotFound is returned by the client session store when
	// no session was saved.
	ErrLocalSessionNotFound = errors.New("local session not found")

	// ErrAlreadyExists is returned on primary key conflicts of inserts that
	// are not conditional.
	ErrAlreadyExists = errors.New("record already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrEncodingColumn       = errors.New("failed to encode jsonb column")
)
