package models

import (
	"time"
	"tourbook/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is the local record of a gateway payment intent. Amounts are in
// the currency's minor unit.
type Payment struct {
	ID                uuid.UUID           `gorm:"primarykey;type:uuid" json:"id"`
	BookingID         *uuid.UUID          `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	PaymentIntentID   string              `gorm:"uniqueIndex;not null" json:"payment_intent_id"`
	Amount            int64               `gorm:"not null" json:"amount"`
	Currency          string              `json:"currency"`
	Status            types.PaymentStatus `gorm:"not null;index" json:"status"`
	GatewayStatus     string              `json:"gateway_status,omitempty"`
	PaymentMethodType string              `json:"payment_method_type,omitempty"`
	CardBrand         string              `json:"card_brand,omitempty"`
	CardLast4         string              `json:"card_last4,omitempty"`
	CouponCode        *string             `json:"coupon_code,omitempty"`
	PaidAt            *time.Time          `json:"paid_at,omitempty"`
	RefundAmount      *int64              `json:"refund_amount,omitempty"`
	RefundID          *string             `json:"refund_id,omitempty"`
	RefundedAt        *time.Time          `json:"refunded_at,omitempty"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`

	types.Timestamps
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
