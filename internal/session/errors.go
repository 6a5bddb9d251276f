package session

import (
	"errors"

	"github.com/SPS-2025/school-portal-service/internal/identity"
)

// Operation error taxonomy. Credential-level kinds are owned by the
// identity package and re-exported here so callers match on one surface.
var (
	ErrInvalidCredentials  = identity.ErrInvalidCredentials
	ErrDuplicateAccount    = identity.ErrDuplicateAccount
	ErrProviderUnreachable = identity.ErrProviderUnreachable

	ErrNotAuthenticated   = errors.New("no user logged in")
	ErrProfileWriteFailed = errors.New("failed to write profile document")
	ErrTeacherKeyInvalid  = errors.New("teacher access key does not match")
)

// IsAuthFailure reports whether err is a credential or session failure, as
// opposed to a store or provider outage.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrTeacherKeyInvalid)
}

// IsConflict reports whether err is a duplicate-account conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateAccount)
}
