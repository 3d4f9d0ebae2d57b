package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is the common ancestor of every "record does not exist"
	// error; the more specific sentinels below wrap it.
	ErrNotFound = errors.New("record was not found")

	// ErrDuplicateEmail is returned when creating or updating a user fails
	// because another account already owns the email address.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a lookup by id or email matches no
	// user record.
	ErrNoUserWasFound = wrapNotFound("no user was found")

	// ErrTaskNotFound is returned when a task id matches no task record.
	ErrTaskNotFound = wrapNotFound("task was not found")

	// ErrProjectNotFound is returned when a project id matches no project
	// record.
	ErrProjectNotFound = wrapNotFound("project was not found")

	// ErrAttachmentNotFound is returned when an attachment key does not
	// resolve to a stored object.
	ErrAttachmentNotFound = wrapNotFound("attachment was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrStoringAttachment is returned when the attachment backend cannot
	// write, open or remove an object.
	ErrStoringAttachment = errors.New("attachment storage error")
)

type notFoundError struct {
	msg string
}

func wrapNotFound(msg string) error {
	return &notFoundError{msg: msg}
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Unwrap() error { return ErrNotFound }
