package payrun

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusProcessed = "PROCESSED"
	StatusApproved  = "APPROVED"
	StatusPaid      = "PAID"
)

type PayRun struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_org_status"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	PayGroupID     uuid.UUID `gorm:"type:uuid;not null;index:idx_group_period"`

	PeriodStart time.Time `gorm:"type:date;not null;index:idx_group_period"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:idx_group_period"`

	Status    string    `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_org_status"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	ApprovedBy          *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt          *time.Time `gorm:"index"`
	ProcessedAt         *time.Time
	PaidAt              *time.Time `gorm:"index"`
	PayslipsGeneratedAt *time.Time

	TotalGross     float64 `gorm:"type:numeric(18,4);not null;default:0"`
	TotalDeduction float64 `gorm:"type:numeric(18,4);not null;default:0"`
	TotalNet       float64 `gorm:"type:numeric(18,4);not null;default:0"`
	TotalEmployer  float64 `gorm:"type:numeric(18,4);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Entries []PayRunEntry `gorm:"foreignKey:PayRunID"`
}

func (PayRun) TableName() string {
	return "pay_runs"
}

type PayRunEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayRunID       uuid.UUID `gorm:"type:uuid;not null;index:idx_run_employee,unique"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index:idx_run_employee,unique"`
	EmployeeName   string    `gorm:"type:varchar(255);not null"`
	Currency       string    `gorm:"type:char(3);not null"`

	GrossPay              float64 `gorm:"type:numeric(18,4);not null"`
	TotalDeductions       float64 `gorm:"type:numeric(18,4);not null"`
	NetPay                float64 `gorm:"type:numeric(18,4);not null"`
	EmployerContributions float64 `gorm:"type:numeric(18,4);not null"`

	// NetPayLocal is NetPay converted by the pay group's exchange rate;
	// equal to NetPay for local-currency groups.
	ExchangeRate float64 `gorm:"type:numeric(18,6);not null;default:1"`
	NetPayLocal  float64 `gorm:"type:numeric(18,4);not null"`

	Deductions datatypes.JSON `gorm:"type:jsonb"`
	Breakdown  datatypes.JSON `gorm:"type:jsonb"`

	PayslipPDF         []byte     `gorm:"type:bytea"`
	PayslipGeneratedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayRunEntry) TableName() string {
	return "pay_run_entries"
}
