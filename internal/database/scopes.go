package database

import (
	"gorm.io/gorm"

	"github.com/reserfast/reserfast-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// ActiveIn restricts a query to rows of table whose active flag is set.
func ActiveIn(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".active = ?", true)
	}
}
