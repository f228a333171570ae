package payments

import "tourbook/src/types"

var (
	ErrPaymentNotFound = types.NewNotFoundError("payment not found")
	ErrBookingNotFound = types.NewNotFoundError("booking not found")
	ErrAdminRequired   = types.NewForbiddenError("admin access required")
	ErrNotOwner        = types.NewForbiddenError("you can only pay for your own bookings")
	ErrBookingCanceled = types.NewRuleError("cannot pay for a cancelled booking")
	ErrAlreadySettled  = types.NewRuleError("booking payment is not pending")
	ErrAmountTooSmall  = types.NewRuleError("amount after discount is below the minimum charge")
	ErrNotRefundable   = types.NewRuleError("can only refund successful payments")
	ErrGatewayFailure  = types.NewGatewayError("payment gateway request failed")
	ErrRefundFailed    = types.NewGatewayError("refund was not accepted by the payment gateway")
	ErrSyncListFailed  = types.NewGatewayError("failed to sync payments")
)
