package employeeerrors

import (
	"net/http"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeNotFound,
		"Employee is not active",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists in this organization",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidOrganizationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid organization ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrUnsupportedCountry = apperror.New(
		apperror.CodeInvalidInput,
		"No statutory rules are defined for this country",
		http.StatusBadRequest,
	)
)
