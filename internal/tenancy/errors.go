// Package tenancy resolves the active tenant for a caller and guards every
// tenant-scoped record access against cross-tenant leakage.
package tenancy

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrUnauthorized indicates a request with no valid caller identity.
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "authentication required"
}

// ErrNotFound indicates an absent record or tenant. Deliberately generic:
// the message never reveals whether the id exists under another tenant.
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrAccessDenied indicates a cross-tenant access attempt or a tenant switch
// the caller is not affiliated with.
type ErrAccessDenied struct {
	TenantID uuid.UUID
}

func (e *ErrAccessDenied) Error() string {
	return "access denied"
}
