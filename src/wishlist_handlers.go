package main

import (
	"net/http"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func wishlistHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/wishlist", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			items, err := wishlistService().List(ctx, actor.UserID)
			if err != nil {
				respondError(ctx, "Wishlist", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
		}).
		POST("/wishlist", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var body types.WishlistRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			item, added, err := wishlistService().Add(ctx, actor.UserID, body.TourID)
			if err != nil {
				respondError(ctx, "Wishlist", err)
				return
			}
			if !added {
				ctx.JSON(http.StatusOK, gin.H{"data": item, "message": "Tour already in wishlist"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": item, "message": "Added to wishlist"})
		}).
		DELETE("/wishlist/:id", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := wishlistService().Remove(ctx, actor.UserID, uuid.MustParse(params.ID)); err != nil {
				respondError(ctx, "Wishlist", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
		})
	return g
}
