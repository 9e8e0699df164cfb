package tenancy

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/thegranduke/ATS-sub001/internal/store"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// Resolver derives the single active tenant for a caller and manages the
// session-held active-tenant field.
type Resolver struct {
	users    store.UserStore
	tenants  store.TenantStore
	sessions store.SessionStore
}

// NewResolver creates a Resolver over the given collaborator stores.
func NewResolver(users store.UserStore, tenants store.TenantStore, sessions store.SessionStore) *Resolver {
	return &Resolver{
		users:    users,
		tenants:  tenants,
		sessions: sessions,
	}
}

// Resolve returns the tenant id the caller is authorized to act as.
//
// The session's requested tenant (from an earlier switch) is honored when the
// caller is still affiliated with it. A stale request falls back silently to
// the primary tenant: losing access to a previously selected tenant is a
// non-fatal condition, not a request failure. Affiliation is currently the
// primary tenant only; multi-affiliation is an unimplemented extension point.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	user, err := r.users.GetUser(ctx, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return uuid.Nil, &ErrUnauthorized{}
	}

	requested, err := r.sessions.ActiveTenant(ctx, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load session tenant: %w", err)
	}
	if requested == uuid.Nil || requested == user.TenantID {
		return user.TenantID, nil
	}

	if r.affiliated(user, requested) {
		return requested, nil
	}

	// Stale switch: the caller no longer belongs to the requested tenant.
	log.Printf("[tenancy] stale requested tenant for user %s, falling back to primary", userID)
	return user.TenantID, nil
}

// SwitchTenant verifies the caller may act as the target tenant and persists
// it as the session's active tenant. Unlike Resolve, a failed verification is
// an explicit ErrAccessDenied.
func (r *Resolver) SwitchTenant(ctx context.Context, userID, target uuid.UUID) (*types.Tenant, error) {
	user, err := r.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, &ErrUnauthorized{}
	}

	tenant, err := r.tenants.GetTenant(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, &ErrNotFound{Resource: "tenant"}
	}

	if !r.affiliated(user, target) {
		return nil, &ErrAccessDenied{TenantID: target}
	}

	if err := r.sessions.SetActiveTenant(ctx, userID, target); err != nil {
		return nil, fmt.Errorf("failed to persist active tenant: %w", err)
	}
	return tenant, nil
}

// ListTenants returns the tenants the caller may act as.
func (r *Resolver) ListTenants(ctx context.Context, userID uuid.UUID) ([]types.Tenant, error) {
	user, err := r.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, &ErrUnauthorized{}
	}
	return r.tenants.ListTenantsByIDs(ctx, []uuid.UUID{user.TenantID})
}

// ActiveTenant resolves the caller's active tenant and returns the full record.
func (r *Resolver) ActiveTenant(ctx context.Context, userID uuid.UUID) (*types.Tenant, error) {
	tenantID, err := r.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	tenant, err := r.tenants.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, &ErrNotFound{Resource: "tenant"}
	}
	return tenant, nil
}

// affiliated reports whether the user may act as the tenant.
// Currently affiliation means the primary tenant only.
func (r *Resolver) affiliated(user *types.User, tenantID uuid.UUID) bool {
	return user.TenantID == tenantID
}
