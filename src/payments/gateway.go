package payments

import (
	"context"
	"time"
)

// GatewayPayment is a payment intent as the gateway reports it. Amount is
// in minor units.
type GatewayPayment struct {
	ID           string
	Amount       int64
	Currency     string
	Status       string
	BookingID    string
	MethodType   string
	CardBrand    string
	CardLast4    string
	ClientSecret string
}

type GatewayRefund struct {
	ID     string
	Status string
	Amount int64
}

type IntentRequest struct {
	Amount         int64
	Currency       string
	BookingID      string
	UserID         string
	CouponCode     string
	IdempotencyKey string
}

// Gateway is the payment provider.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*GatewayPayment, error)
	RetrievePayment(ctx context.Context, paymentIntentID string) (*GatewayPayment, error)
	// CreateRefund refunds amount, or the whole payment when amount is nil.
	CreateRefund(ctx context.Context, paymentIntentID string, amount *int64) (*GatewayRefund, error)
	ListRecentPayments(ctx context.Context, since time.Time, limit int) ([]GatewayPayment, error)
}
