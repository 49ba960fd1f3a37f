// Package paycalc implements the statutory payroll calculation engine:
// gross pay derivation, per-country statutory deductions, employer-side
// contributions and net pay. All functions are pure; callers supply every
// input and the static rule tables carry the country configuration.
package paycalc

import "errors"

type Classification string

const (
	ClassificationLocal      Classification = "local"
	ClassificationExpatriate Classification = "expatriate"
)

type PayType string

const (
	PayTypeHourly    PayType = "hourly"
	PayTypePieceRate PayType = "piece_rate"
	PayTypeSalary    PayType = "salary"
)

type LineItemType string

const (
	LineItemBenefit   LineItemType = "benefit"
	LineItemAllowance LineItemType = "allowance"
	LineItemDeduction LineItemType = "deduction"
)

// LineItem is a caller-supplied pay component. Benefits are taxable and
// raise gross pay, allowances raise net pay without entering the taxable
// base, deductions reduce net pay.
type LineItem struct {
	Name   string       `json:"name"`
	Amount float64      `json:"amount"`
	Type   LineItemType `json:"type"`
}

// Input carries everything a single calculation needs. It is constructed
// fresh per call and never mutated by the engine.
type Input struct {
	Classification    Classification
	PayType           PayType
	PayRate           float64
	HoursWorked       float64
	PiecesCompleted   float64
	Country           Country
	LineItems         []LineItem
	BenefitDeductions float64
}

type BreakdownKind string

const (
	BreakdownAddition  BreakdownKind = "addition"
	BreakdownDeduction BreakdownKind = "deduction"
)

// BreakdownLine mirrors one addition or deduction applied during the
// calculation, in application order, for audit and payslip display.
type BreakdownLine struct {
	Description string        `json:"description"`
	Amount      float64       `json:"amount"`
	Kind        BreakdownKind `json:"kind"`
}

type Result struct {
	GrossPay              float64            `json:"gross_pay"`
	TotalDeductions       float64            `json:"total_deductions"`
	NetPay                float64            `json:"net_pay"`
	EmployerContributions float64            `json:"employer_contributions"`
	Deductions            map[string]float64 `json:"deductions"`
	Breakdown             []BreakdownLine    `json:"breakdown"`
}

// ExpatriateFlatRate is applied to expatriate gross pay as the sole tax
// deduction. Expatriates are exempt from local social security, so the
// employer side is always zero on this path.
const ExpatriateFlatRate = 0.15

var (
	ErrUnsupportedCountry = errors.New("unsupported country code")
	ErrInvalidPayType     = errors.New("invalid pay type")
	ErrInvalidRate        = errors.New("rate must be positive")
)
