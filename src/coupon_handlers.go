package main

import (
	"net/http"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func couponHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/coupons", func(ctx *gin.Context) {
			coupons, err := couponService().List(ctx)
			if err != nil {
				respondError(ctx, "Coupon", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": coupons, "count": len(coupons)})
		}).
		GET("/coupons/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			coupon, err := couponService().Get(ctx, uuid.MustParse(params.ID))
			if err != nil {
				respondError(ctx, "Coupon", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": coupon})
		}).
		POST("/coupons", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var body types.CouponRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			coupon, err := couponService().Create(ctx, actor, body)
			if err != nil {
				respondError(ctx, "Coupon", err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": coupon})
		}).
		PUT("/coupons/:id", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CouponRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			coupon, err := couponService().Update(ctx, actor, uuid.MustParse(params.ID), body)
			if err != nil {
				respondError(ctx, "Coupon", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": coupon})
		}).
		PATCH("/coupons/:id/toggle", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ToggleCouponRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			coupon, err := couponService().Toggle(ctx, actor, uuid.MustParse(params.ID), *body.IsActive)
			if err != nil {
				respondError(ctx, "Coupon", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": coupon})
		}).
		DELETE("/coupons/:id", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := couponService().Delete(ctx, actor, uuid.MustParse(params.ID)); err != nil {
				respondError(ctx, "Coupon", err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
