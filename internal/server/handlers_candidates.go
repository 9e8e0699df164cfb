package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/thegranduke/ATS-sub001/internal/lifecycle"
	"github.com/thegranduke/ATS-sub001/internal/metrics"
	"github.com/thegranduke/ATS-sub001/internal/server/middleware"
	"github.com/thegranduke/ATS-sub001/internal/tenancy"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// handleListCandidates returns the active tenant's candidates.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tenantID, err := s.resolver.Resolve(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidates, err := s.stores.Candidates.ListCandidates(r.Context(), tenantID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list candidates")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"candidates": candidates})
}

// handleCandidateTransitions returns the candidate's current status and the
// edges out of it.
func (s *Server) handleCandidateTransitions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	candidateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	tenantID, err := s.resolver.Resolve(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidate, err := s.stores.Candidates.GetCandidate(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to fetch candidate")
		return
	}
	if err := tenancy.Authorize(candidate, tenantID, "candidate"); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"currentStatus":      candidate.Status,
		"allowedTransitions": lifecycle.AllowedCandidateTransitions(candidate.Status),
		"transitionRules":    lifecycle.CandidateTransitionRules(),
	})
}

// handleUpdateCandidateStatus applies a lifecycle transition to a candidate.
func (s *Server) handleUpdateCandidateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	candidateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	var req types.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	proposed, err := types.ParseCandidateStatus(req.Status)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tenantID, err := s.resolver.Resolve(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	change, err := s.engine.ApplyCandidateTransition(r.Context(), tenantID, candidateID, proposed, userID, req.Reason)
	if err != nil {
		metrics.RecordStatusTransition(types.EntityCandidate, "rejected")
		s.transitionError(w, err)
		return
	}

	metrics.RecordStatusTransition(types.EntityCandidate, "applied")
	s.jsonResponse(w, http.StatusOK, appliedTransitionResponse(change))
}

// handleCandidateHistory returns the candidate's applied transitions, oldest first.
func (s *Server) handleCandidateHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	candidateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	tenantID, err := s.resolver.Resolve(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidate, err := s.stores.Candidates.GetCandidate(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to fetch candidate")
		return
	}
	if err := tenancy.Authorize(candidate, tenantID, "candidate"); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	changes, err := s.stores.Audit.ListStatusChanges(r.Context(), tenantID, candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list status changes")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"history": changes})
}
