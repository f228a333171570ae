package middlewares

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"tourbook/src/config"
	"tourbook/src/db"
	"tourbook/src/models"
	"tourbook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthMiddleware verifies the bearer token, loads the user it names and
// stores the caller on the context.
func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	reqToken, found := strings.CutPrefix(bearerToken, "Bearer ")
	if !found || reqToken == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return config.JWTSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		if errors.Is(err, jwt.ErrSignatureInvalid) || errors.Is(err, jwt.ErrTokenMalformed) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}
	var user models.User
	if err := db.GetDb().
		Model(&models.User{}).
		Where("id = ?", uid).
		First(&user).
		Error; err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}
	ctx.Set("id", user.ID)
	ctx.Set("email", user.Email)
	ctx.Set("role", user.Role)
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(ctx *gin.Context) {
	actor, ok := GetActor(ctx)
	if !ok || !actor.IsAdmin() {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
}

// GetActor returns the caller stored by AuthMiddleware.
func GetActor(ctx *gin.Context) (types.Actor, bool) {
	id, ok := ctx.Get("id")
	if !ok {
		return types.Actor{}, false
	}
	uid, ok := id.(uuid.UUID)
	if !ok {
		return types.Actor{}, false
	}
	role, _ := ctx.Get("role")
	r, _ := role.(types.Role)
	return types.Actor{UserID: uid, Role: r}, true
}
