package payments

import (
	"context"
	"time"
	"tourbook/src/lib"

	"github.com/stripe/stripe-go/v82"
)

type StripeGateway struct {
	client *stripe.Client
}

// NewStripeGateway wraps c, or the shared client when c is nil.
func NewStripeGateway(c *stripe.Client) *StripeGateway {
	if c == nil {
		c = lib.GetStripeClient()
	}
	return &StripeGateway{client: c}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*GatewayPayment, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("booking_id", req.BookingID)
	params.AddMetadata("user_id", req.UserID)
	if req.CouponCode != "" {
		params.AddMetadata("coupon_code", req.CouponCode)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	pi, err := g.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	return fromPaymentIntent(pi), nil
}

func (g *StripeGateway) RetrievePayment(ctx context.Context, paymentIntentID string) (*GatewayPayment, error) {
	params := &stripe.PaymentIntentRetrieveParams{}
	params.AddExpand("payment_method")
	pi, err := g.client.V1PaymentIntents.Retrieve(ctx, paymentIntentID, params)
	if err != nil {
		return nil, err
	}
	return fromPaymentIntent(pi), nil
}

func (g *StripeGateway) CreateRefund(ctx context.Context, paymentIntentID string, amount *int64) (*GatewayRefund, error) {
	params := &stripe.RefundCreateParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	if amount != nil {
		params.Amount = stripe.Int64(*amount)
	}
	r, err := g.client.V1Refunds.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	return &GatewayRefund{ID: r.ID, Status: string(r.Status), Amount: r.Amount}, nil
}

func (g *StripeGateway) ListRecentPayments(ctx context.Context, since time.Time, limit int) ([]GatewayPayment, error) {
	params := &stripe.PaymentIntentListParams{
		CreatedRange: &stripe.RangeQueryParams{
			GreaterThanOrEqual: since.Unix(),
		},
	}
	params.Limit = stripe.Int64(int64(limit))
	params.AddExpand("data.payment_method")

	payments := make([]GatewayPayment, 0, limit)
	for pi, err := range g.client.V1PaymentIntents.List(ctx, params) {
		if err != nil {
			return nil, err
		}
		payments = append(payments, *fromPaymentIntent(pi))
		if len(payments) >= limit {
			break
		}
	}
	return payments, nil
}

func fromPaymentIntent(pi *stripe.PaymentIntent) *GatewayPayment {
	gp := &GatewayPayment{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		BookingID:    pi.Metadata["booking_id"],
		ClientSecret: pi.ClientSecret,
	}
	if pm := pi.PaymentMethod; pm != nil {
		gp.MethodType = string(pm.Type)
		if pm.Card != nil {
			gp.CardBrand = string(pm.Card.Brand)
			gp.CardLast4 = pm.Card.Last4
		}
	}
	return gp
}
