package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"time"
	"tourbook/src/boot"
	"tourbook/src/bookings"
	"tourbook/src/common"
	"tourbook/src/config"
	"tourbook/src/coupons"
	"tourbook/src/db"
	"tourbook/src/middlewares"
	"tourbook/src/payments"
	"tourbook/src/reviews"
	"tourbook/src/types"
	"tourbook/src/wishlist"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api/v1"
)

// bookableDateValidatorFunc accepts start dates that have not passed yet.
var bookableDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}

// registerValidators configures request binding: unknown JSON fields are
// rejected and the custom tags are registered.
func registerValidators() {
	binding.EnableDecoderDisallowUnknownFields = true
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
	}
}

var newGateway = func() payments.Gateway {
	return payments.NewStripeGateway(nil)
}

func bookingService() *bookings.Service {
	d := db.GetDb()
	return bookings.NewService(d, common.NewDBNotifier(d), common.NewDBAuditor(d))
}

func couponService() *coupons.Service {
	d := db.GetDb()
	return coupons.NewService(d, common.NewDBAuditor(d))
}

func reviewService() *reviews.Service {
	d := db.GetDb()
	return reviews.NewService(d, common.NewDBAuditor(d))
}

func wishlistService() *wishlist.Service {
	return wishlist.NewService(db.GetDb())
}

func paymentService() *payments.Service {
	d := db.GetDb()
	return payments.NewService(d, newGateway(), couponService(), common.NewDBNotifier(d), common.NewDBAuditor(d)).
		WithCurrency(config.PaymentCurrency()).
		WithItemTimeout(config.PaymentSyncItemTimeout())
}

// respondError writes err with the status its kind maps to.
func respondError(ctx *gin.Context, tag string, err error) {
	status := types.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s\n", tag, err.Error())
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func actorOrAbort(ctx *gin.Context) (types.Actor, bool) {
	actor, ok := middlewares.GetActor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return actor, ok
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		if config.MaintenanceMode() {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

// registerRoutes mounts every API route on router.
func registerRoutes(router *gin.Engine) {
	stripeWebhookRoute(router)
	publicTourRoutes(router)
	publicReviewRoutes(router)

	authorized := apiv1Group(router)
	authorized.Use(middlewares.AuthMiddleware)
	{
		authorized = bookingHandlers(authorized)
		authorized = checkoutHandlers(authorized)
		authorized = reviewHandlers(authorized)
		authorized = wishlistHandlers(authorized)

		admin := authorized.Group("/admin")
		admin.Use(middlewares.RequireAdmin)
		admin = adminBookingHandlers(admin)
		admin = paymentHandlers(admin)
		admin = couponHandlers(admin)
		admin = tourAdminHandlers(admin)
		admin = adminReviewHandlers(admin)
		adminHandlers(admin)
	}
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	if err := os.MkdirAll(path.Dir(apiLogs), 0o755); err != nil {
		log.Printf("Error creating log directory: %s\n", err.Error())
	}
	f, err := os.Create(apiLogs)
	if err != nil {
		log.Printf("Error creating %s: %s\n", apiLogs, err.Error())
		gin.DefaultWriter = os.Stdout
	} else {
		gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := config.APIEnv()
	if apiEnv == string(types.Local) {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()
	boot.InitScheduler(paymentService().ScheduledSync)
	defer boot.StopScheduler()

	router := setupRouter()

	appHost := config.AppHost()
	if apiEnv == string(types.Local) {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			if appHost == "" {
				return false
			}
			match, _ := regexp.MatchString(regexp.QuoteMeta(appHost), origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	registerValidators()
	router = maintenanceModeMiddleware(router)
	registerRoutes(router)

	if err := router.Run(); err != nil {
		log.Fatalf("Server exited: %s\n", err.Error())
	}
}
