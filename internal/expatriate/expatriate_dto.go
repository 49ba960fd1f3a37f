package expatriate

type CalculateRequest struct {
	DailyRate       float64 `json:"daily_rate" binding:"required"`
	DaysWorked      float64 `json:"days_worked" binding:"required,gt=0"`
	Allowances      float64 `json:"allowances"`
	ForeignCurrency string  `json:"foreign_currency" binding:"required,len=3"`
	ExchangeRate    float64 `json:"exchange_rate" binding:"required"`
	TaxCountry      string  `json:"tax_country" binding:"required,len=2"`
}
