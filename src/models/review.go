package models

import (
	"tourbook/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a traveler's rating of a tour. A user reviews a tour at most once.
type Review struct {
	ID        uuid.UUID          `gorm:"primarykey;type:uuid" json:"id"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_tour" json:"user_id"`
	TourID    uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_user_tour" json:"tour_id"`
	BookingID *uuid.UUID         `gorm:"type:uuid" json:"booking_id,omitempty"`
	Rating    int                `gorm:"not null" json:"rating"`
	Title     string             `json:"title,omitempty"`
	Comment   string             `gorm:"not null" json:"comment"`
	Status    types.ReviewStatus `gorm:"not null;index" json:"status"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	types.Timestamps
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	if r.Status == "" {
		r.Status = types.REVIEW_PENDING
	}
	return nil
}
