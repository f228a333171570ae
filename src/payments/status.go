package payments

import "tourbook/src/types"

const (
	GatewaySucceeded = "succeeded"
	GatewayCanceled  = "canceled"
)

// MapGatewayStatus translates a gateway payment status. Only terminal
// gateway states are mapped; the boolean is false for everything else.
func MapGatewayStatus(status string) (types.PaymentStatus, bool) {
	switch status {
	case GatewaySucceeded:
		return types.PAYMENT_PAID, true
	case GatewayCanceled:
		return types.PAYMENT_FAILED, true
	}
	return "", false
}

// Outcome is the effect of recording a gateway status against a payment.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeIgnored   Outcome = "ignored"
)
