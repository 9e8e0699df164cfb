package tenancy

import (
	"reflect"

	"github.com/google/uuid"
)

// Owned is any record that carries an owning tenant id.
type Owned interface {
	OwningTenant() uuid.UUID
}

// Authorize checks a fetched record against the resolved active tenant.
// An absent record yields ErrNotFound; a tenant mismatch yields
// ErrAccessDenied. Failure is terminal for the request: callers must return
// the error as-is and perform no partial work.
//
// resource names the record kind for the not-found message ("job",
// "candidate", ...); it never includes ids, so responses leak no existence
// details across tenants.
func Authorize(record Owned, activeTenant uuid.UUID, resource string) error {
	if record == nil || isNilPointer(record) {
		return &ErrNotFound{Resource: resource}
	}
	if record.OwningTenant() != activeTenant {
		return &ErrAccessDenied{TenantID: activeTenant}
	}
	return nil
}

// isNilPointer catches typed-nil interface values: a (*types.Job)(nil) stored
// in an Owned interface compares non-nil as an interface but is still an
// absent record.
func isNilPointer(record Owned) bool {
	v := reflect.ValueOf(record)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
