package main

import (
	"net/http"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := bookingService().Create(ctx, actor, body)
			if err != nil {
				respondError(ctx, "Booking", err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			bookings, err := bookingService().List(ctx, actor)
			if err != nil {
				respondError(ctx, "Booking", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := bookingService().Get(ctx, actor, uuid.MustParse(params.ID))
			if err != nil {
				respondError(ctx, "Booking", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PATCH("/bookings", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var body types.UpdateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := bookingService().Update(ctx, actor, body)
			if err != nil {
				respondError(ctx, "Booking", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PATCH("/bookings/:id/cancel", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := bookingService().Cancel(ctx, actor, uuid.MustParse(params.ID))
			if err != nil {
				respondError(ctx, "Booking", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking, "message": "Booking cancelled successfully"})
		})
	return g
}

func adminBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.PATCH("/bookings/:id/status", func(ctx *gin.Context) {
		actor, ok := actorOrAbort(ctx)
		if !ok {
			return
		}
		var params types.UUIDRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateBookingStatusRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		booking, err := bookingService().UpdateStatus(ctx, actor, uuid.MustParse(params.ID), body.Status)
		if err != nil {
			respondError(ctx, "Booking", err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": booking})
	})
	return g
}
