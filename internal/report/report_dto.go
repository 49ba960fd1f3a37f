package report

type PayrollSummaryRequest struct {
	CompanyID string `form:"company_id" binding:"required,uuid"`
	From      string `form:"from" binding:"required"`
	To        string `form:"to" binding:"required"`
}

type PayrollSummaryResponse struct {
	CompanyID      string  `json:"company_id"`
	From           string  `json:"from"`
	To             string  `json:"to"`
	RunCount       int64   `json:"run_count"`
	EmployeeCount  int64   `json:"employee_count"`
	TotalGross     float64 `json:"total_gross"`
	TotalDeduction float64 `json:"total_deduction"`
	TotalNet       float64 `json:"total_net"`
	TotalEmployer  float64 `json:"total_employer"`
}
