package autherrors

import (
	"net/http"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not generate token",
		http.StatusInternalServerError,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrUserInactive = apperror.New(
		apperror.CodeForbidden,
		"User account is deactivated",
		http.StatusForbidden,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
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
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"Email is already registered",
		http.StatusConflict,
	)
)
