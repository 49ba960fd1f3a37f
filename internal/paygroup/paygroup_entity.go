package paygroup

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

type PayGroup struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Currency       string    `gorm:"type:char(3);not null"`
	Frequency      Frequency `gorm:"type:varchar(16);not null"`
	// ExchangeRate converts the group currency into the company's local
	// currency; 1 for local-currency groups.
	ExchangeRate float64 `gorm:"type:numeric(18,6);not null;default:1"`
	IsDefault    bool    `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (PayGroup) TableName() string {
	return "pay_groups"
}
