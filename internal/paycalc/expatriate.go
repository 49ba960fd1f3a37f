package paycalc

// ExpatriateInput drives the dual-currency calculation: pay is set in a
// foreign currency and converted to local currency at the exchange rate
// configured for the pay group at calculation time. No live FX lookup.
type ExpatriateInput struct {
	DailyRate       float64
	DaysWorked      float64
	Allowances      float64
	ForeignCurrency string
	ExchangeRate    float64
	TaxCountry      Country
}

type ExpatriateResult struct {
	GrossForeign    float64            `json:"gross_foreign"`
	NetForeign      float64            `json:"net_foreign"`
	GrossLocal      float64            `json:"gross_local"`
	NetLocal        float64            `json:"net_local"`
	Deductions      map[string]float64 `json:"deductions"`
	DailyRate       float64            `json:"daily_rate"`
	DaysWorked      float64            `json:"days_worked"`
	ForeignCurrency string             `json:"foreign_currency"`
	ExchangeRate    float64            `json:"exchange_rate"`
}

// CalculateExpatriate computes foreign-currency pay taxed under the tax
// country's statutory model, then converts gross and net to local currency
// with a single multiplication each so the two never diverge by rounding.
func CalculateExpatriate(input ExpatriateInput) (ExpatriateResult, error) {
	if input.DailyRate <= 0 || input.ExchangeRate <= 0 {
		return ExpatriateResult{}, ErrInvalidRate
	}

	grossForeign := input.DailyRate*input.DaysWorked + input.Allowances

	taxed, err := Calculate(Input{
		Classification: ClassificationLocal,
		PayType:        PayTypeSalary,
		PayRate:        grossForeign,
		Country:        input.TaxCountry,
	})
	if err != nil {
		return ExpatriateResult{}, err
	}

	netForeign := grossForeign - taxed.TotalDeductions

	return ExpatriateResult{
		GrossForeign:    grossForeign,
		NetForeign:      netForeign,
		GrossLocal:      grossForeign * input.ExchangeRate,
		NetLocal:        netForeign * input.ExchangeRate,
		Deductions:      taxed.Deductions,
		DailyRate:       input.DailyRate,
		DaysWorked:      input.DaysWorked,
		ForeignCurrency: input.ForeignCurrency,
		ExchangeRate:    input.ExchangeRate,
	}, nil
}
