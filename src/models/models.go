package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// All returns every model managed by AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Tour{},
		&Booking{},
		&Payment{},
		&Coupon{},
		&AdminLog{},
		&Notification{},
		&Review{},
		&WishlistItem{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
