package employee

import (
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paycalc"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID              `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID              `gorm:"type:uuid;not null;index"`
	CompanyID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	PayGroupID     *uuid.UUID             `gorm:"type:uuid;index"`
	FullName       string                 `gorm:"type:varchar(255);not null"`
	Email          string                 `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	EmployeeNumber string                 `gorm:"type:varchar(32);not null;uniqueIndex:uq_employee_number"`
	Classification paycalc.Classification `gorm:"type:varchar(16);not null"`
	PayType        paycalc.PayType        `gorm:"type:varchar(16);not null"`
	PayRate        float64                `gorm:"type:numeric(18,4);not null"`
	Country        string                 `gorm:"type:char(2);not null"`
	Active         bool                   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
