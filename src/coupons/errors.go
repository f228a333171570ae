package coupons

import "tourbook/src/types"

var (
	ErrInvalidCode     = types.NewRuleError("invalid coupon code")
	ErrInactive        = types.NewRuleError("coupon is not active")
	ErrNotYetValid     = types.NewRuleError("coupon is not valid yet")
	ErrExpired         = types.NewRuleError("coupon has expired")
	ErrUsageLimit      = types.NewRuleError("coupon usage limit reached")
	ErrBelowMinimum    = types.NewRuleError("minimum order amount not met")
	ErrInvalidSubtotal = types.NewValidationError("subtotal must be greater than zero")
	ErrCouponNotFound  = types.NewNotFoundError("coupon not found")
	ErrDuplicateCode   = types.NewRuleError("coupon code already exists")
	ErrCodeRequired    = types.NewValidationError("coupon code is required")
	ErrInvalidType     = types.NewValidationError("discount type must be either 'percentage' or 'fixed'")
	ErrValueRequired   = types.NewValidationError("discount value is required")
	ErrInvalidValue    = types.NewValidationError("discount value must be greater than zero")
	ErrPercentageRange = types.NewValidationError("percentage discount must be a fraction no greater than 1")
	ErrInvalidValidity = types.NewValidationError("valid_until must be after valid_from")
	ErrNegativeAmount  = types.NewValidationError("minimum amount and maximum discount cannot be negative")
)
