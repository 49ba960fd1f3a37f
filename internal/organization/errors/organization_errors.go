package organizationerrors

import (
	"net/http"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"
)

var (
	ErrOrganizationNotFound = apperror.New(
		apperror.CodeNotFound,
		"organization not found",
		http.StatusNotFound,
	)
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrInvalidOrganizationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid organization id",
		http.StatusBadRequest,
	)
	ErrUnsupportedCountry = apperror.New(
		apperror.CodeInvalidInput,
		"country has no statutory rule table",
		http.StatusBadRequest,
	)
)
