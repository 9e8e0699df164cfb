package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SwitchTenantRequest is the body of POST /api/tenants/switch.
type SwitchTenantRequest struct {
	TenantID uuid.UUID `json:"tenantId" validate:"required"`
}

// UpdateStatusRequest is the body of PATCH /api/jobs/{id}/status and
// PATCH /api/candidates/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// DateRangeRequest carries an optional reporting window. Period takes
// precedence over the explicit dates unless it is "custom".
type DateRangeRequest struct {
	Period    string `json:"period,omitempty" validate:"omitempty,oneof=7d 30d 90d 1y custom"`
	StartDate string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// CustomReportRequest is the body of POST /api/reports/custom. Unknown metric
// names are skipped during report building (saved report configs must keep
// working after a metric is renamed); filter keys are validated strictly.
type CustomReportRequest struct {
	Name      string            `json:"name,omitempty" validate:"max=120"`
	Metrics   []string          `json:"metrics" validate:"required,min=1,dive,min=1"`
	Filters   map[string]string `json:"filters,omitempty"`
	GroupBy   string            `json:"groupBy,omitempty"`
	DateRange *DateRangeRequest `json:"dateRange,omitempty"`
}

// Validate validates the SwitchTenantRequest using the validator.
func (r *SwitchTenantRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateStatusRequest using the validator.
func (r *UpdateStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CustomReportRequest using the validator.
func (r *CustomReportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
