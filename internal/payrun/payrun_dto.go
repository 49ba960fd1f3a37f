package payrun

type CreatePayRunRequest struct {
	PayGroupID  string `json:"pay_group_id" binding:"required,uuid"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

type LineItemInput struct {
	Type   string  `json:"type" binding:"required,oneof=benefit allowance deduction"`
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// MemberInput carries the per-employee variables the pay group itself
// cannot know: time worked and one-off line items for this period.
type MemberInput struct {
	HoursWorked     float64         `json:"hours_worked"`
	PiecesCompleted float64         `json:"pieces_completed"`
	DaysWorked      float64         `json:"days_worked"`
	LineItems       []LineItemInput `json:"line_items"`
}

type ProcessPayRunRequest struct {
	Members map[string]MemberInput `json:"members"`
}

type PayRunResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	CompanyID      string  `json:"company_id"`
	PayGroupID     string  `json:"pay_group_id"`
	PeriodStart    string  `json:"period_start"`
	PeriodEnd      string  `json:"period_end"`
	Status         string  `json:"status"`
	CreatedBy      string  `json:"created_by"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	ApprovedAt     *string `json:"approved_at,omitempty"`
	PaidAt         *string `json:"paid_at,omitempty"`
	TotalGross     float64 `json:"total_gross"`
	TotalDeduction float64 `json:"total_deduction"`
	TotalNet       float64 `json:"total_net"`
	TotalEmployer  float64 `json:"total_employer"`
	EntryCount     int     `json:"entry_count,omitempty"`
}

type PayRunEntryResponse struct {
	ID                    string             `json:"id"`
	PayRunID              string             `json:"pay_run_id"`
	EmployeeID            string             `json:"employee_id"`
	EmployeeName          string             `json:"employee_name"`
	Currency              string             `json:"currency"`
	GrossPay              float64            `json:"gross_pay"`
	TotalDeductions       float64            `json:"total_deductions"`
	NetPay                float64            `json:"net_pay"`
	EmployerContributions float64            `json:"employer_contributions"`
	ExchangeRate          float64            `json:"exchange_rate"`
	NetPayLocal           float64            `json:"net_pay_local"`
	Deductions            map[string]float64 `json:"deductions,omitempty"`
	HasPayslip            bool               `json:"has_payslip"`
}
