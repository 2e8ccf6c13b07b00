// Package storetest opens throwaway sqlite databases for tests.
package storetest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/khanghh/kwaitlist/model"
	"github.com/khanghh/kwaitlist/model/query"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// NewDB opens a private in-memory database with every model migrated. The
// pool is capped at one connection since each sqlite memory connection is a
// separate database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NewQuery returns the generated query set over a fresh NewDB database.
func NewQuery(t testing.TB) *query.Query {
	t.Helper()
	return query.Use(NewDB(t))
}
