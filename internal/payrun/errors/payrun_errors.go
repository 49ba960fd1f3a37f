package payrunerrors

import (
	"net/http"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"
)

var (
	ErrPayRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pay run not found",
		http.StatusNotFound,
	)
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pay run entry not found",
		http.StatusNotFound,
	)
	ErrInvalidPayRunID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid pay run ID",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrOverlappingPeriod = apperror.New(
		apperror.CodeConflict,
		"A pay run already exists for this pay group in an overlapping period",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Pay run status does not allow this operation",
		http.StatusConflict,
	)
	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"Only draft pay runs can be deleted",
		http.StatusConflict,
	)
	ErrEmptyPayGroup = apperror.New(
		apperror.CodeInvalidInput,
		"Pay group has no active employees",
		http.StatusUnprocessableEntity,
	)
)
