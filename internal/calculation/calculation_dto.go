package calculation

import "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paycalc"

type CustomDeductionInput struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Type   string  `json:"type" binding:"required,oneof=benefit allowance deduction"`
}

// CalculateRequest carries per-invocation overrides; anything left unset
// falls back to the employee's stored pay parameters.
type CalculateRequest struct {
	EmployeeID        string                 `json:"employee_id" binding:"required"`
	PayRunID          string                 `json:"pay_run_id"`
	HoursWorked       *float64               `json:"hours_worked"`
	PiecesCompleted   *float64               `json:"pieces_completed"`
	PayRate           *float64               `json:"pay_rate"`
	PayType           *string                `json:"pay_type" binding:"omitempty,oneof=hourly piece_rate salary"`
	EmployeeType      *string                `json:"employee_type" binding:"omitempty,oneof=local expatriate"`
	Country           *string                `json:"country" binding:"omitempty,len=2"`
	CustomDeductions  []CustomDeductionInput `json:"custom_deductions"`
	BenefitDeductions float64                `json:"benefit_deductions"`
}

type EmployeeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CalculateResponse mirrors the calculator contract consumed by the UI;
// it deliberately bypasses the shared response envelope.
type CalculateResponse struct {
	Success  bool           `json:"success"`
	Data     paycalc.Result `json:"data"`
	Employee EmployeeRef    `json:"employee"`
}
