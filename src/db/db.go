package db

import (
	"log"
	"time"
	"tourbook/src/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// queryLogger writes slow queries and errors through the standard logger,
// which main points at the rotating log file.
func queryLogger() logger.Interface {
	return logger.New(log.Default(), logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func GetDb() *gorm.DB {
	if db != nil {
		return db
	}
	conn, err := gorm.Open(postgres.Open(config.GetDSN()), &gorm.Config{Logger: queryLogger()})
	if err != nil {
		log.Printf("[DB] Error connecting to database: %s\n", err.Error())
		panic(err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		log.Fatalf("[DB] Error establishing connection to database: %s\n", err.Error())
	}
	sqlDB.SetMaxIdleConns(config.DatabaseMaxIdleConns())
	sqlDB.SetMaxOpenConns(config.DatabaseMaxOpenConns())
	sqlDB.SetConnMaxLifetime(time.Hour)

	db = conn
	return conn
}

// NewDB replaces the shared handle. Tests use it to inject sqlite or sqlmock.
func NewDB(newdb *gorm.DB) {
	db = newdb
}
