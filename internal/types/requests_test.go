package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSwitchTenantRequest_Validate(t *testing.T) {
	req := &SwitchTenantRequest{TenantID: uuid.New()}
	assert.NoError(t, req.Validate())

	empty := &SwitchTenantRequest{}
	assert.Error(t, empty.Validate())
}

func TestUpdateStatusRequest_Validate(t *testing.T) {
	req := &UpdateStatusRequest{Status: "active"}
	assert.NoError(t, req.Validate())

	withReason := &UpdateStatusRequest{Status: "rejected", Reason: "position filled"}
	assert.NoError(t, withReason.Validate())

	missing := &UpdateStatusRequest{Reason: "no status"}
	assert.Error(t, missing.Validate())
}

func TestCustomReportRequest_Validate(t *testing.T) {
	req := &CustomReportRequest{
		Name:    "Quarterly funnel",
		Metrics: []string{"jobCount", "conversionRate"},
		Filters: map[string]string{"department": "Engineering"},
		GroupBy: "department",
	}
	assert.NoError(t, req.Validate())
}

func TestCustomReportRequest_Validate_RequiresMetrics(t *testing.T) {
	req := &CustomReportRequest{Metrics: nil}
	assert.Error(t, req.Validate())

	emptyList := &CustomReportRequest{Metrics: []string{}}
	assert.Error(t, emptyList.Validate())
}

func TestDateRangeRequest_PeriodTokens(t *testing.T) {
	valid := validRange("30d")
	assert.NoError(t, valid.Validate())

	invalid := validRange("45d")
	assert.Error(t, invalid.Validate())
}

func validRange(period string) *CustomReportRequest {
	return &CustomReportRequest{
		Metrics:   []string{"jobCount"},
		DateRange: &DateRangeRequest{Period: period},
	}
}
