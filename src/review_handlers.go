package main

import (
	"net/http"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func listReviews(ctx *gin.Context) {
	var filters types.ReviewQueryFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reviews, err := reviewService().List(ctx, filters)
	if err != nil {
		respondError(ctx, "Review", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": reviews, "count": len(reviews)})
}

func deleteReview(ctx *gin.Context) {
	actor, ok := actorOrAbort(ctx)
	if !ok {
		return
	}
	var params types.UUIDRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := reviewService().Delete(ctx, actor, uuid.MustParse(params.ID)); err != nil {
		respondError(ctx, "Review", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

func publicReviewRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.GET("/reviews", listReviews)
	return apiv1
}

func reviewHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reviews", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var body types.CreateReviewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			review, err := reviewService().Create(ctx, actor, body)
			if err != nil {
				respondError(ctx, "Review", err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": review})
		}).
		DELETE("/reviews/:id", deleteReview)
	return g
}

func adminReviewHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		PATCH("/reviews/:id/status", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateReviewStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			review, err := reviewService().UpdateStatus(ctx, actor, uuid.MustParse(params.ID), body.Status)
			if err != nil {
				respondError(ctx, "Review", err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": review})
		}).
		DELETE("/reviews/:id", deleteReview)
	return g
}
