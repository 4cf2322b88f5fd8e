package db

import (
	"fmt" // Error wrapping

	"finance_tracker/internal/config" // Driver names
	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Migrate performs automatic migration for the ledger schema
func Migrate(db *gorm.DB, driver string) error {
	if driver == config.DriverMySQL {
		// Binary collation keeps category matching exact and case-sensitive
		db = db.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin")
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err := db.AutoMigrate(&domain.User{}, &domain.Transaction{}, &domain.Budget{}, &domain.RecurringTransaction{})
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
