package services

import (
	"errors"
	"fmt"
)

// ErrUserMismatch means the session user presenting a token is not the user
// the token was minted for. Surfaced in the same class as a bad signature:
// the client should request a fresh link.
var ErrUserMismatch = errors.New("token is bound to a different user")

// QuotaExceededError carries current usage so support staff can tell a
// customer exactly where they stand.
type QuotaExceededError struct {
	Used  int
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("download limit reached: %d of %d used", e.Used, e.Limit)
}

// StorageError wraps an audit-write or pointer-resolution failure. These are
// operational errors: the download is denied (fail closed) and the error is
// logged, unlike the expected authorization denials above.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
