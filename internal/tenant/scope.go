package tenant

import "gorm.io/gorm"

// Scope restricts a query to a single company partition. Every repository
// query must be chained through it (or filter company_id explicitly).
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
