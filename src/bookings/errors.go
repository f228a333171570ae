package bookings

import "tourbook/src/types"

var (
	ErrTourNotFound         = types.NewNotFoundError("tour not found")
	ErrTourUnavailable      = types.NewRuleError("tour is not available for booking")
	ErrGroupTooLarge        = types.NewRuleError("number of people exceeds the tour's maximum group size")
	ErrBookingNotFound      = types.NewNotFoundError("booking not found")
	ErrAdminRequired        = types.NewForbiddenError("only administrators can change booking status")
	ErrPaymentAdminRequired = types.NewForbiddenError("only administrators can change payment status")
	ErrNotOwner             = types.NewForbiddenError("you can only manage your own bookings")
	ErrNothingToUpdate      = types.NewValidationError("status or payment_status is required")
	ErrInvalidStatus        = types.NewValidationError("invalid status value")
	ErrInvalidPaymentStatus = types.NewValidationError("invalid payment status value")
	ErrPaymentTransition    = types.NewRuleError("payment status transition not allowed")
	ErrAlreadyCanceled      = types.NewRuleError("booking is already cancelled")
	ErrNoStartDate          = types.NewRuleError("booking has no start date and cannot be cancelled")
	ErrCancellationWindow   = types.NewRuleError("cannot cancel booking within 24 hours of travel date")
)
