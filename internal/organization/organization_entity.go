package organization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization is the tenant root. Companies, employees, pay groups, pay
// runs and grants all hang off one organization.
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(120);not null"`
	Country   string    `gorm:"type:varchar(2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Company is an operating entity within an organization. Company-scoped
// access grants narrow to members of one company.
type Company struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(120);not null"`
	Country        string    `gorm:"type:varchar(2);not null"`
	Currency       string    `gorm:"type:varchar(3);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
