package main

import (
	"net/http"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
)

func checkoutHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/checkout/apply-coupon", func(ctx *gin.Context) {
			var body types.ApplyCouponRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res, err := couponService().Apply(ctx, body.CouponCode, *body.Subtotal)
			if err != nil {
				respondError(ctx, "Coupon", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"discount":    res.Discount.InexactFloat64(),
				"coupon_code": res.CouponCode,
				"type":        res.Type,
			})
		}).
		POST("/checkout/create-payment-intent", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var body types.CreatePaymentIntentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res, err := paymentService().CreateIntent(ctx, actor, body)
			if err != nil {
				respondError(ctx, "Payment", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"client_secret":     res.ClientSecret,
				"payment_intent_id": res.PaymentIntentID,
				"amount":            res.Amount,
				"currency":          res.Currency,
				"discount":          res.Discount.InexactFloat64(),
				"coupon_code":       res.CouponCode,
			})
		})
	return g
}
