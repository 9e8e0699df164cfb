package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/thegranduke/ATS-sub001/internal/analytics"
	"github.com/thegranduke/ATS-sub001/internal/lifecycle"
	"github.com/thegranduke/ATS-sub001/internal/report"
	"github.com/thegranduke/ATS-sub001/internal/schemas"
	"github.com/thegranduke/ATS-sub001/internal/store"
	"github.com/thegranduke/ATS-sub001/internal/tenancy"
	"github.com/thegranduke/ATS-sub001/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}
	if errors.Is(err, store.ErrStaleStatus) {
		return http.StatusConflict
	}

	switch err.(type) {
	case *tenancy.ErrUnauthorized:
		return http.StatusUnauthorized
	case *tenancy.ErrAccessDenied:
		return http.StatusForbidden
	case *tenancy.ErrNotFound:
		return http.StatusNotFound
	case *lifecycle.ErrInvalidTransition,
		*types.ErrUnknownStatus,
		*report.ErrUnknownFilter,
		*report.ErrUnknownGroupField,
		*analytics.ErrBadDateRange,
		*schemas.ValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
