package specification

import "gorm.io/gorm"

// Specification is a composable query predicate. Repositories apply each
// given specification to the base query in order.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
