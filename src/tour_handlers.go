package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"tourbook/src/common"
	"tourbook/src/db"
	"tourbook/src/models"
	"tourbook/src/models/scopes"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// filterTours applies the catalogue filters. Inactive tours are hidden
// unless includeInactive is set.
func filterTours(q *gorm.DB, f types.TourQueryFilters, includeInactive bool) *gorm.DB {
	if !includeInactive {
		q = q.Where("status = ?", types.TOUR_ACTIVE)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(l)+"%")
	}
	if lo, err := decimal.NewFromString(f.MinPrice); err == nil {
		q = q.Where("price_per_person >= ?", lo)
	}
	if hi, err := decimal.NewFromString(f.MaxPrice); err == nil {
		q = q.Where("price_per_person <= ?", hi)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	return q
}

func listTours(ctx *gin.Context, includeInactive bool) {
	var filters types.TourQueryFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var tours []models.Tour
	db := db.GetDb()
	if err := filterTours(db.WithContext(ctx).Model(&models.Tour{}), filters, includeInactive).
		Scopes(scopes.Newest).
		Find(&tours).
		Error; err != nil {
		log.Printf("[Tour] Error listing tours: %s\n", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": tours, "count": len(tours)})
}

func publicTourRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.
		GET("/tours", func(ctx *gin.Context) {
			listTours(ctx, false)
		}).
		GET("/tours/:id", func(ctx *gin.Context) {
			ref := ctx.Param("id")
			q := db.GetDb().WithContext(ctx).Where("status = ?", types.TOUR_ACTIVE)
			if id, err := uuid.Parse(ref); err == nil {
				q = q.Scopes(scopes.WithID(id))
			} else {
				q = q.Where("slug = ?", ref)
			}
			var tour models.Tour
			if err := q.First(&tour).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "tour not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tour})
		})
	return apiv1
}

func tourAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/tours", func(ctx *gin.Context) {
			listTours(ctx, true)
		}).
		POST("/tours", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var body types.CreateTourRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !body.PricePerPerson.IsPositive() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "price_per_person must be positive"})
				return
			}
			tour := models.Tour{
				Name:           body.Name,
				Description:    body.Description,
				Location:       body.Location,
				Duration:       body.Duration,
				PricePerPerson: body.PricePerPerson.Round(2),
				MaxGroupSize:   body.MaxGroupSize,
				StartDates:     body.StartDates,
				Included:       body.Included,
				NotIncluded:    body.NotIncluded,
				Featured:       body.Featured,
				CreatedBy:      &actor.UserID,
			}
			db := db.GetDb()
			if err := db.WithContext(ctx).Create(&tour).Error; err != nil {
				log.Printf("[Tour] Error creating tour: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			common.Audit(ctx, common.NewDBAuditor(db), actor.UserID, fmt.Sprintf("Created tour %s", tour.Name), "Tour", tour.ID.String())
			ctx.JSON(http.StatusCreated, gin.H{"data": tour})
		}).
		PATCH("/tours/:id/status", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateTourStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status := types.TourStatus(body.Status)
			if !status.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid tour status"})
				return
			}
			id := uuid.MustParse(params.ID)
			db := db.GetDb()
			res := db.WithContext(ctx).Model(&models.Tour{}).Scopes(scopes.WithID(id)).Update("status", status)
			if res.Error != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "tour not found"})
				return
			}
			common.Audit(ctx, common.NewDBAuditor(db), actor.UserID, fmt.Sprintf("Updated tour status to %s", status), "Tour", id.String())
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id, "status": status}})
		})
	return g
}
