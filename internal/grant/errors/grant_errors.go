package granterrors

import (
	"net/http"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"
)

var (
	ErrGrantNotFound = apperror.New(
		apperror.CodeNotFound,
		"access grant not found",
		http.StatusNotFound,
	)
	ErrUnknownPermission = apperror.New(
		apperror.CodeInvalidInput,
		"unknown permission key",
		http.StatusBadRequest,
	)
	ErrMultipleTargets = apperror.New(
		apperror.CodeInvalidInput,
		"a grant may target at most one of company, user or role",
		http.StatusBadRequest,
	)
	ErrInvalidTargetID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid target id",
		http.StatusBadRequest,
	)
	ErrInvalidOrganizationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid organization id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
)
