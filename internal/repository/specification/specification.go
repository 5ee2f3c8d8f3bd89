package specification

import "gorm.io/gorm"

// Specification narrows a template query: owner, id, name filter or page.
// Repositories apply them in order, so paging goes last.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
