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

// handleListJobs returns the active tenant's jobs.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
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

	jobs, err := s.stores.Jobs.ListJobs(r.Context(), tenantID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleJobTransitions returns the job's current status and the edges out of it.
func (s *Server) handleJobTransitions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	tenantID, err := s.resolver.Resolve(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	job, err := s.stores.Jobs.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to fetch job")
		return
	}
	if err := tenancy.Authorize(job, tenantID, "job"); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"currentStatus":      job.Status,
		"allowedTransitions": lifecycle.AllowedJobTransitions(job.Status),
		"transitionRules":    lifecycle.JobTransitionRules(),
	})
}

// handleUpdateJobStatus applies a lifecycle transition to a job.
func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
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

	proposed, err := types.ParseJobStatus(req.Status)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tenantID, err := s.resolver.Resolve(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	change, err := s.engine.ApplyJobTransition(r.Context(), tenantID, jobID, proposed, userID, req.Reason)
	if err != nil {
		metrics.RecordStatusTransition(types.EntityJob, "rejected")
		s.transitionError(w, err)
		return
	}

	metrics.RecordStatusTransition(types.EntityJob, "applied")
	s.jsonResponse(w, http.StatusOK, appliedTransitionResponse(change))
}

// transitionError writes the error payload for a failed transition. Invalid
// edges carry the allowed set so clients can render the valid next statuses.
func (s *Server) transitionError(w http.ResponseWriter, err error) {
	if invalid, ok := err.(*lifecycle.ErrInvalidTransition); ok {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":              invalid.Error(),
			"allowedTransitions": invalid.Allowed,
		})
		return
	}
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

func appliedTransitionResponse(change *types.StatusChange) map[string]any {
	return map[string]any{
		"success":        true,
		"previousStatus": change.From,
		"newStatus":      change.To,
		"changedBy":      change.ChangedBy,
		"changedAt":      change.ChangedAt,
		"reason":         change.Reason,
	}
}
