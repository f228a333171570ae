package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistItem struct {
	ID        uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_tour" json:"user_id"`
	TourID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_tour" json:"tour_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Tour *Tour `gorm:"foreignKey:TourID" json:"tour,omitempty"`
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	newID(&w.ID)
	return nil
}
