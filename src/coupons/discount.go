package coupons

import (
	"time"
	"tourbook/src/models"
	"tourbook/src/types"

	"github.com/shopspring/decimal"
)

// ComputeDiscount returns the discount coupon c grants on subtotal. The
// result is capped by the coupon's maximum discount, never exceeds the
// subtotal and is rounded to cents.
func ComputeDiscount(c *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	var raw decimal.Decimal
	switch c.DiscountType {
	case types.DISCOUNT_PERCENTAGE:
		raw = subtotal.Mul(c.DiscountValue)
	default:
		raw = c.DiscountValue
	}
	if c.MaximumDiscount.Valid && raw.GreaterThan(c.MaximumDiscount.Decimal) {
		raw = c.MaximumDiscount.Decimal
	}
	raw = decimal.Min(raw, subtotal)
	if raw.IsNegative() {
		raw = decimal.Zero
	}
	discount := raw.Round(2)
	if discount.GreaterThan(subtotal) {
		discount = subtotal.RoundDown(2)
	}
	return discount
}

// Check reports why c cannot be applied to subtotal at now, or nil.
func Check(c *models.Coupon, subtotal decimal.Decimal, now time.Time) error {
	if !c.IsActive {
		return ErrInactive
	}
	if !c.ValidFrom.IsZero() && now.Before(c.ValidFrom) {
		return ErrNotYetValid
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return ErrExpired
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return ErrUsageLimit
	}
	minimum := decimal.Zero
	if c.MinimumAmount.Valid {
		minimum = c.MinimumAmount.Decimal
	}
	if subtotal.LessThan(minimum) {
		return ErrBelowMinimum.Withf("minimum order amount of $%s required for this coupon", minimum.StringFixed(2))
	}
	return nil
}
