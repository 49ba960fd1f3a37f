package expatriateerrors

import (
	"net/http"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"
)

var (
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"Daily rate and exchange rate must be greater than zero",
		http.StatusBadRequest,
	)
	ErrUnsupportedTaxCountry = apperror.New(
		apperror.CodeInvalidInput,
		"No statutory rules are defined for this tax country",
		http.StatusBadRequest,
	)
)
