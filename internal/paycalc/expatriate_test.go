package paycalc_test

import (
	"testing"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paycalc"

	"github.com/stretchr/testify/assert"
)

func TestCalculateExpatriate_DualCurrency(t *testing.T) {
	result, err := paycalc.CalculateExpatriate(paycalc.ExpatriateInput{
		DailyRate:       200,
		DaysWorked:      22,
		Allowances:      600,
		ForeignCurrency: "USD",
		ExchangeRate:    3_700,
		TaxCountry:      paycalc.CountryUganda,
	})
	assert.NoError(t, err)

	assert.Equal(t, float64(5_000), result.GrossForeign)
	assert.Equal(t, result.GrossForeign-sumValues(result.Deductions), result.NetForeign)

	// Gross and net convert through one multiplication each, so the
	// round-trip identity holds exactly.
	assert.Equal(t, result.NetForeign*3_700, result.NetLocal)
	assert.Equal(t, result.GrossForeign*3_700, result.GrossLocal)
	assert.Equal(t, "USD", result.ForeignCurrency)
}

func TestCalculateExpatriate_TaxCountryModelApplied(t *testing.T) {
	result, err := paycalc.CalculateExpatriate(paycalc.ExpatriateInput{
		DailyRate:    2_500,
		DaysWorked:   20,
		ExchangeRate: 1,
		TaxCountry:   paycalc.CountryKenya,
	})
	assert.NoError(t, err)

	// Foreign gross of 50,000 taxed under Kenya statutory rules.
	assert.InDelta(t, 7_383.35, result.Deductions["PAYE"], 0.001)
	assert.Equal(t, float64(1_200), result.Deductions["NHIF"])
}

func TestCalculateExpatriate_InvalidRates(t *testing.T) {
	_, err := paycalc.CalculateExpatriate(paycalc.ExpatriateInput{
		DailyRate:    0,
		DaysWorked:   20,
		ExchangeRate: 3_700,
		TaxCountry:   paycalc.CountryUganda,
	})
	assert.ErrorIs(t, err, paycalc.ErrInvalidRate)

	_, err = paycalc.CalculateExpatriate(paycalc.ExpatriateInput{
		DailyRate:    200,
		DaysWorked:   20,
		ExchangeRate: -1,
		TaxCountry:   paycalc.CountryUganda,
	})
	assert.ErrorIs(t, err, paycalc.ErrInvalidRate)
}

func TestCalculateExpatriate_UnsupportedTaxCountry(t *testing.T) {
	_, err := paycalc.CalculateExpatriate(paycalc.ExpatriateInput{
		DailyRate:    200,
		DaysWorked:   20,
		ExchangeRate: 3_700,
		TaxCountry:   "XX",
	})
	assert.ErrorIs(t, err, paycalc.ErrUnsupportedCountry)
}

func sumValues(values map[string]float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
