package lib

import (
	"tourbook/src/config"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

// GetStripeClient lazily builds the shared client from STRIPE_SECRET_KEY.
func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	backends := stripe.NewBackends(nil)
	retries := config.StripeMaxNetworkRetries()
	backends.API = stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		MaxNetworkRetries: &retries,
	})
	stripeClient = stripe.NewClient(config.StripeSecretKey(), stripe.WithBackends(backends))
	return stripeClient
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}
