package models

import (
	"time"
	"tourbook/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Booking struct {
	ID               uuid.UUID           `gorm:"primarykey;type:uuid" json:"id"`
	UserID           uuid.UUID           `gorm:"type:uuid;index;not null" json:"user_id"`
	TourID           uuid.UUID           `gorm:"type:uuid;index;not null" json:"tour_id"`
	NumberOfPeople   int                 `gorm:"not null" json:"number_of_people"`
	TotalPrice       decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"total_price"`
	BookingDate      time.Time           `json:"booking_date"`
	StartDate        *time.Time          `json:"start_date,omitempty"`
	Status           types.BookingStatus `gorm:"not null;index" json:"status"`
	PaymentStatus    types.PaymentStatus `gorm:"not null" json:"payment_status"`
	PaymentMethod    string              `json:"payment_method,omitempty"`
	PaymentReference *string             `gorm:"index" json:"payment_reference,omitempty"`
	PaymentDate      *time.Time          `json:"payment_date,omitempty"`
	TravelerInfo     types.TravelerInfo  `gorm:"serializer:json" json:"traveler_info"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tour *Tour `gorm:"foreignKey:TourID" json:"tour,omitempty"`

	types.Timestamps
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	newID(&b.ID)
	return nil
}
