package shared

import "errors"

// Domain errors shared between the repository, service, and handler layers.
// Handlers map these onto HTTP statuses.
var (
	// ErrUserNotFound is returned by the user store when no user matches the
	// account number. The auth service folds it into ErrInvalidCredentials so
	// login responses don't leak which accounts exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both an unknown account number and a wrong
	// password at login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateAccount is returned when registering an account number that
	// is already taken.
	ErrDuplicateAccount = errors.New("account number already registered")

	// ErrTransactionNotFound is returned for an unknown transaction id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotVerified is returned when a SWIFT submission is attempted on a
	// transaction that has not been verified yet.
	ErrNotVerified = errors.New("transaction must be verified before submission")
)
