package grant

import (
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"

	"github.com/google/uuid"
)

// AccessGrant is the persisted form of access.Grant. Target columns are
// mutually exclusive; all NULL means the grant applies to every eligible
// user in the organization.
type AccessGrant struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ScopeType      string    `gorm:"type:varchar(20);not null;default:'action'"`
	ScopeKey       string    `gorm:"type:varchar(80);not null;index"`
	Effect         string    `gorm:"type:varchar(10);not null"`

	CompanyID *uuid.UUID `gorm:"type:uuid"`
	UserID    *uuid.UUID `gorm:"type:uuid"`
	RoleID    *uuid.UUID `gorm:"type:uuid"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AccessGrant) TableName() string {
	return "access_grants"
}

// toResolverGrant flattens the row into the pure resolver's shape.
func (g AccessGrant) toResolverGrant() access.Grant {
	out := access.Grant{
		ID:             g.ID.String(),
		OrganizationID: g.OrganizationID.String(),
		ScopeType:      access.ScopeType(g.ScopeType),
		ScopeKey:       g.ScopeKey,
		Effect:         access.Effect(g.Effect),
	}
	if g.CompanyID != nil {
		out.CompanyID = g.CompanyID.String()
	}
	if g.UserID != nil {
		out.UserID = g.UserID.String()
	}
	if g.RoleID != nil {
		out.RoleID = g.RoleID.String()
	}
	return out
}

// Role is an organization-defined role. Key matches one of the built-in
// role keys for the default-permission tier; custom keys only ever match
// explicit grants.
type Role struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Key            string    `gorm:"type:varchar(40);not null"`
	Name           string    `gorm:"type:varchar(80);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserRole assigns a role to a user.
type UserRole struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID uuid.UUID `gorm:"type:uuid;primaryKey"`
}
