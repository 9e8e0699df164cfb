package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/thegranduke/ATS-sub001/internal/analytics"
	"github.com/thegranduke/ATS-sub001/internal/metrics"
	"github.com/thegranduke/ATS-sub001/internal/report"
	"github.com/thegranduke/ATS-sub001/internal/schemas"
	"github.com/thegranduke/ATS-sub001/internal/server/middleware"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// maxReportBodyBytes bounds custom report definitions.
const maxReportBodyBytes = 64 * 1024

// handleHiringMetrics serves the headline dashboard report.
func (s *Server) handleHiringMetrics(w http.ResponseWriter, r *http.Request) {
	s.serveNamedReport(w, r, "hiring-metrics", func(cols report.Collections, window analytics.DateRange) any {
		return report.BuildHiringMetrics(cols, window)
	})
}

// handlePipelineAnalytics serves the pipeline funnel report.
func (s *Server) handlePipelineAnalytics(w http.ResponseWriter, r *http.Request) {
	s.serveNamedReport(w, r, "pipeline-analytics", func(cols report.Collections, window analytics.DateRange) any {
		return report.BuildPipelineAnalytics(cols, window)
	})
}

// handleSourcePerformance serves the candidate-source report.
func (s *Server) handleSourcePerformance(w http.ResponseWriter, r *http.Request) {
	s.serveNamedReport(w, r, "source-performance", func(cols report.Collections, window analytics.DateRange) any {
		return report.BuildSourcePerformance(cols, window)
	})
}

// handleTimeToHire serves the time-to-hire distribution report.
func (s *Server) handleTimeToHire(w http.ResponseWriter, r *http.Request) {
	s.serveNamedReport(w, r, "time-to-hire", func(cols report.Collections, window analytics.DateRange) any {
		return report.BuildTimeToHire(cols, window)
	})
}

// serveNamedReport runs the shared resolve/window/filter/load pipeline and
// hands the scoped collections to one report builder.
func (s *Server) serveNamedReport(w http.ResponseWriter, r *http.Request, name string, build func(report.Collections, analytics.DateRange) any) {
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

	window, err := windowFromQuery(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	filters := filtersFromQuery(r)

	cols, err := s.loadCollections(r.Context(), tenantID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load report data")
		return
	}

	metrics.RecordReportBuild(name)
	s.jsonResponse(w, http.StatusOK, build(cols.Apply(filters, nil), window))
}

// handleCustomReport computes a caller-defined report. The definition is
// validated structurally against the JSON schema before decoding; unknown
// metric names survive validation and are skipped by the builder.
func (s *Server) handleCustomReport(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxReportBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := schemas.ValidateCustomReport(body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.CustomReportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var window *analytics.DateRange
	if req.DateRange != nil {
		resolved, err := resolveWindow(req.DateRange.Period, req.DateRange.StartDate, req.DateRange.EndDate)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		window = &resolved
	}

	tenantID, err := s.resolver.Resolve(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	cols, err := s.loadCollections(r.Context(), tenantID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load report data")
		return
	}

	built, err := report.Build(r.Context(), report.Input{
		Name:    req.Name,
		Metrics: req.Metrics,
		Filters: req.Filters,
		GroupBy: req.GroupBy,
		Window:  window,
	}, cols)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	metrics.RecordReportBuild("custom")
	s.jsonResponse(w, http.StatusOK, built)
}

// loadCollections fetches the four tenant-scoped collections concurrently.
func (s *Server) loadCollections(ctx context.Context, tenantID uuid.UUID) (report.Collections, error) {
	var cols report.Collections
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		jobs, err := s.stores.Jobs.ListJobs(ctx, tenantID)
		cols.Jobs = jobs
		return err
	})
	g.Go(func() error {
		candidates, err := s.stores.Candidates.ListCandidates(ctx, tenantID)
		cols.Candidates = candidates
		return err
	})
	g.Go(func() error {
		views, err := s.stores.Events.ListJobViews(ctx, tenantID)
		cols.Views = views
		return err
	})
	g.Go(func() error {
		funnel, err := s.stores.Events.ListFunnelRecords(ctx, tenantID)
		cols.Funnel = funnel
		return err
	})

	if err := g.Wait(); err != nil {
		return report.Collections{}, err
	}
	return cols, nil
}

// windowFromQuery resolves the period/startDate/endDate query parameters into
// a reporting window, defaulting to the last 30 days.
func windowFromQuery(r *http.Request) (analytics.DateRange, error) {
	period := r.URL.Query().Get("period")
	if period == "" && r.URL.Query().Get("startDate") == "" {
		period = analytics.Period30d
	}
	return resolveWindow(period, r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
}

func resolveWindow(period, startDate, endDate string) (analytics.DateRange, error) {
	var start, end *time.Time
	if startDate != "" {
		ts, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return analytics.DateRange{}, &analytics.ErrBadDateRange{Reason: "startDate must be YYYY-MM-DD"}
		}
		start = &ts
	}
	if endDate != "" {
		ts, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return analytics.DateRange{}, &analytics.ErrBadDateRange{Reason: "endDate must be YYYY-MM-DD"}
		}
		// Half-open window: include the whole end day.
		ts = ts.AddDate(0, 0, 1)
		end = &ts
	}
	return analytics.ResolveDateRange(period, start, end, time.Now().UTC())
}

// filtersFromQuery collects the recognized report filters present in the query.
func filtersFromQuery(r *http.Request) map[string]string {
	filters := make(map[string]string)
	for _, key := range []string{report.FilterJobID, report.FilterDepartment, report.FilterJobType, report.FilterStatus, report.FilterSource} {
		if value := r.URL.Query().Get(key); value != "" {
			filters[key] = value
		}
	}
	if len(filters) == 0 {
		return nil
	}
	return filters
}
