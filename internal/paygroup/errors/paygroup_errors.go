package paygrouperrors

import (
	"net/http"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"
)

var (
	ErrPayGroupNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pay group not found",
		http.StatusNotFound,
	)
	ErrInvalidPayGroupID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid pay group ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidExchangeRate = apperror.New(
		apperror.CodeInvalidInput,
		"Exchange rate must be greater than zero",
		http.StatusBadRequest,
	)
)
