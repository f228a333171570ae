// Package dbtest opens throwaway sqlite databases with the full schema
// migrated, for service and handler tests.
package dbtest

import (
	"fmt"
	"testing"
	"tourbook/src/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite database: %s", err.Error())
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("accessing inner db instance: %s", err.Error())
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(gdb); err != nil {
		t.Fatalf("error migration: %s", err.Error())
	}
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return gdb
}
