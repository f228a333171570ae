package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"tourbook/src/common"
	"tourbook/src/db"
	"tourbook/src/models"
	"tourbook/src/models/scopes"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type pageQuery struct {
	Page int `form:"page,omitempty" binding:"omitempty,min=1"`
	Size int `form:"size,omitempty" binding:"omitempty,min=1,max=100"`
}

// visibleTo limits notifications to those addressed to adminID or to
// every admin.
func visibleTo(adminID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(admin_id IS NULL OR admin_id = ?)", adminID)
	}
}

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/logs", func(ctx *gin.Context) {
			var query struct {
				pageQuery
				Entity string `form:"entity,omitempty"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			q := db.GetDb().WithContext(ctx).Model(&models.AdminLog{})
			if query.Entity != "" {
				q = q.Where("affected_entity = ?", query.Entity)
			}
			var logs []models.AdminLog
			if err := q.
				Scopes(scopes.Newest, scopes.Paginate(query.Page, query.Size)).
				Find(&logs).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": logs, "count": len(logs)})
		}).
		GET("/notifications", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var query struct {
				pageQuery
				Unread bool `form:"unread,omitempty"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			base := db.WithContext(ctx).Model(&models.Notification{}).Scopes(visibleTo(actor.UserID))
			var unread int64
			if err := base.Session(&gorm.Session{}).Where("is_read = ?", false).Count(&unread).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			q := base.Session(&gorm.Session{})
			if query.Unread {
				q = q.Where("is_read = ?", false)
			}
			var notifications []models.Notification
			if err := q.
				Scopes(scopes.Newest, scopes.Paginate(query.Page, query.Size)).
				Find(&notifications).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications, "count": len(notifications), "unread": unread})
		}).
		PATCH("/notifications/read-all", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var body struct {
				IDs []uuid.UUID `json:"ids,omitempty"`
			}
			if ctx.Request.ContentLength != 0 {
				if err := ctx.ShouldBindJSON(&body); err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
			q := db.GetDb().WithContext(ctx).
				Model(&models.Notification{}).
				Scopes(visibleTo(actor.UserID)).
				Where("is_read = ?", false)
			if len(body.IDs) > 0 {
				q = q.Scopes(scopes.WithIDs(body.IDs...))
			}
			res := q.Update("is_read", true)
			if res.Error != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
		}).
		PATCH("/notifications/:id/read", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res := db.GetDb().WithContext(ctx).
				Model(&models.Notification{}).
				Scopes(scopes.WithID(uuid.MustParse(params.ID)), visibleTo(actor.UserID)).
				Update("is_read", true)
			if res.Error != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PATCH("/users/:id/role", func(ctx *gin.Context) {
			actor, ok := actorOrAbort(ctx)
			if !ok {
				return
			}
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateUserRoleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			role := types.Role(body.Role)
			if !role.Valid() {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
				return
			}
			id := uuid.MustParse(params.ID)
			db := db.GetDb()
			var user models.User
			if err := db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if err := db.WithContext(ctx).Model(&user).Update("role", role).Error; err != nil {
				log.Printf("[User] Error updating role of %s: %s\n", id, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			user.Role = role
			common.Audit(ctx, common.NewDBAuditor(db), actor.UserID, fmt.Sprintf("Changed role of %s to %s", user.Email, role), "User", id.String())
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		})
	return g
}
