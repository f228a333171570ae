package models

import (
	"strings"
	"time"
	"tourbook/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon codes are stored uppercase. Percentage values are fractions, so
// 0.10 is ten percent.
type Coupon struct {
	ID              uuid.UUID           `gorm:"primarykey;type:uuid" json:"id"`
	Code            string              `gorm:"uniqueIndex;not null" json:"code"`
	Name            string              `json:"name,omitempty"`
	Description     string              `json:"description,omitempty"`
	DiscountType    types.DiscountType  `gorm:"not null" json:"discount_type"`
	DiscountValue   decimal.Decimal     `gorm:"type:numeric(10,4);not null" json:"discount_value"`
	MinimumAmount   decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"minimum_amount"`
	MaximumDiscount decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"maximum_discount"`
	UsageLimit      *int                `json:"usage_limit,omitempty"`
	UsedCount       int                 `gorm:"not null" json:"used_count"`
	IsActive        bool                `gorm:"not null" json:"is_active"`
	ValidFrom       time.Time           `json:"valid_from"`
	ValidUntil      *time.Time          `json:"valid_until,omitempty"`
	CreatedBy       *uuid.UUID          `gorm:"type:uuid" json:"created_by,omitempty"`

	types.Timestamps
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	newID(&c.ID)
	c.Code = strings.ToUpper(c.Code)
	if c.ValidFrom.IsZero() {
		c.ValidFrom = time.Now()
	}
	return nil
}
