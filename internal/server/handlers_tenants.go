package server

import (
	"encoding/json"
	"net/http"

	"github.com/thegranduke/ATS-sub001/internal/metrics"
	"github.com/thegranduke/ATS-sub001/internal/server/middleware"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// handleListTenants returns the tenants the caller may act as.
func (s *Server) handleListTenants(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tenants, err := s.resolver.ListTenants(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"tenants": tenants})
}

// handleActiveTenant returns the caller's resolved active tenant.
func (s *Server) handleActiveTenant(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tenant, err := s.resolver.ActiveTenant(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"tenant": tenant})
}

// handleSwitchTenant pins the caller's session to a tenant. Unlike stale-tenant
// fallback during resolution, a disallowed target here is an explicit 403.
func (s *Server) handleSwitchTenant(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.SwitchTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := s.resolver.SwitchTenant(r.Context(), userID, req.TenantID)
	if err != nil {
		metrics.RecordTenantSwitch("denied")
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	metrics.RecordTenantSwitch("ok")
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"tenant":  tenant,
	})
}
