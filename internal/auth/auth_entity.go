package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyID      *uuid.UUID `gorm:"type:uuid;index"` // nil for organization-level users
	Name           string     `gorm:"type:varchar(255);not null"`
	Email          string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	Password       string     `gorm:"type:varchar(255);not null"`
	Active         bool       `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
