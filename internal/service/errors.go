// Package service provides the authorization core and business logic.
package service

import (
	"errors"
	"fmt"
)

// Service errors. Handlers translate these to HTTP status codes; no
// authorization decision is made outside this layer.
var (
	// ErrInvalidCredentials covers unknown emails and wrong passwords
	// uniformly, so login cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoteNotFound is returned both when a note is absent and when it
	// belongs to another tenant. Never a Forbidden, to prevent tenant
	// enumeration via status codes.
	ErrNoteNotFound = errors.New("note not found")

	// ErrForbidden indicates an authenticated caller is not permitted to
	// perform the operation. The reason is never detailed to the caller.
	ErrForbidden = errors.New("not permitted")

	// ErrTenantNotFound indicates the tenant record backing an operation
	// is missing.
	ErrTenantNotFound = errors.New("tenant not found")
)

// QuotaExceededError is returned when a create is rejected under the
// tenant's plan limit. It carries the observed count and the limit so the
// boundary can present both to the user.
type QuotaExceededError struct {
	CurrentCount int
	Limit        int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("note limit reached: %d of %d notes used", e.CurrentCount, e.Limit)
}
