// Package db opens the local SQLite database backing the holdings snapshot.
package db

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wealthwise_gateway/internal/feature/portfolio/adapters"
)

// OpenDB opens the snapshot database at GATEWAY_DB_PATH (default
// wealthwise.db) and migrates the snapshot schema.
func OpenDB() *gorm.DB {
	path := os.Getenv("GATEWAY_DB_PATH")
	if path == "" {
		path = "wealthwise.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("DB open failed: %v", err)
	}

	if err := db.AutoMigrate(&adapters.HoldingModel{}); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
