package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"tourbook/src/config"
	"tourbook/src/lib"
	"tourbook/src/payments"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// webhookOutcome maps a payment intent event to the local payment status.
// The intent's own status decides: a declined card leaves the intent
// retryable, so payment_failed alone changes nothing.
func webhookOutcome(eventType string, pi *stripe.PaymentIntent) (types.PaymentStatus, bool) {
	switch eventType {
	case "payment_intent.succeeded", "payment_intent.canceled", "payment_intent.payment_failed":
		return payments.MapGatewayStatus(string(pi.Status))
	}
	return "", false
}

func stripeWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), config.StripeWebhookSecret())
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		log.Printf("[StripeEvent] %s %s\n", event.ID, event.Type)

		rdb := lib.GetRedisClient()
		if !lib.ClaimEvent(ctx, rdb, event.ID) {
			log.Printf("[StripeEvent] %s already processed\n", event.ID)
			ctx.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		switch event.Type {
		case "payment_intent.succeeded", "payment_intent.canceled", "payment_intent.payment_failed":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				log.Printf("[Stripe] Error parsing PaymentIntent: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
				return
			}
			status, ok := webhookOutcome(string(event.Type), &pi)
			if !ok {
				break
			}
			outcome, err := paymentService().RecordOutcome(ctx, pi.ID, status)
			if err != nil {
				lib.ReleaseEvent(ctx, rdb, event.ID)
				respondError(ctx, "StripeEvent", err)
				return
			}
			log.Printf("[PaymentIntent] %s -> %s (%s)\n", pi.ID, status, outcome)
		default:
			log.Printf("[StripeEvent] Unhandled event type %s\n", event.Type)
		}
		ctx.JSON(http.StatusOK, gin.H{"received": true})
	})
	return apiv1
}
