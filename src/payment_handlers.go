package main

import (
	"net/http"
	"time"
	"tourbook/src/payments"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/payments", func(ctx *gin.Context) {
			var query struct {
				Status string `form:"status,omitempty"`
				Since  string `form:"since,omitempty" binding:"omitempty,datetime=2006-01-02"`
				Page   int    `form:"page,omitempty" binding:"omitempty,min=1"`
				Size   int    `form:"size,omitempty" binding:"omitempty,min=1,max=100"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter := payments.ListFilter{Status: query.Status, Page: query.Page, Size: query.Size}
			if query.Since != "" {
				since, _ := time.Parse(time.DateOnly, query.Since)
				filter.Since = &since
			}
			list, err := paymentService().List(ctx, filter)
			if err != nil {
				respondError(ctx, "Payment", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": list, "count": len(list)})
		}).
		POST("/payments/sync", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			report, err := paymentService().Sync(ctx, actor)
			if err != nil {
				respondError(ctx, "PaymentSync", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"message":   "Payments synced",
				"processed": report.Processed,
				"created":   report.Created,
				"updated":   report.Updated,
				"errors":    report.Errors,
			})
		}).
		POST("/payments/:id/refund", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.RefundRequestBody
			if ctx.Request.ContentLength != 0 {
				if err := ctx.ShouldBindJSON(&body); err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
			refund, err := paymentService().Refund(ctx, actor, uuid.MustParse(params.ID), body.Amount)
			if err != nil {
				respondError(ctx, "Refund", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Refund processed successfully", "refund": refund})
		})
	return g
}
