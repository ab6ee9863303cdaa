package database

import (
	"time"

	"gorm.io/gorm"
)

// Limit caps a list query; n <= 0 leaves it unbounded.
func Limit(n int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if n <= 0 {
			return db
		}
		return db.Limit(n)
	}
}

// OnDate filters column to a single calendar day when day is set.
func OnDate(column string, day *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if day == nil {
			return db
		}
		return db.Where(column+" = ?", *day)
	}
}
