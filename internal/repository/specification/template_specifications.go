package specification

import (
	"strings"

	"gorm.io/gorm"
)

// NameContains matches templates whose name contains Query, case-insensitively
type NameContains struct {
	Query string
}

func (s NameContains) Apply(db *gorm.DB) *gorm.DB {
	q := strings.TrimSpace(s.Query)
	if q == "" {
		return db
	}
	return db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
}
