package tenant

import "gorm.io/gorm"

// Scope restricts a query to one organization. Every tenant-owned table
// carries an organization_id column.
func Scope(organizationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationID)
	}
}

// CompanyScope additionally narrows to one company within the organization.
func CompanyScope(organizationID, companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ? AND company_id = ?", organizationID, companyID)
	}
}
