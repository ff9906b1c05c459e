package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mercatto/account-service/internal/api/handler"
	"github.com/mercatto/account-service/internal/api/middleware"
	"github.com/mercatto/account-service/internal/core/ports"
	"github.com/mercatto/account-service/internal/core/service"
	mongostore "github.com/mercatto/account-service/internal/infrastructure/db/mongo"
	redisstore "github.com/mercatto/account-service/internal/infrastructure/db/redis"
)

const tokenTTL = 30 * 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier ports.Notifier, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	addressRepo := mongostore.NewAddressRepository(db)
	verificationRepo := mongostore.NewVerificationRepository(db)

	var revocations ports.TokenRevoker
	if rdb != nil {
		revocations = redisstore.NewRevocationStore(rdb)
	}

	addressService := service.NewAddressService(addressRepo, log)
	userService := service.NewUserService(userRepo, addressRepo, addressService, revocations, log)
	verificationService := service.NewVerificationService(verificationRepo, userRepo, addressRepo, notifier, log)
	authService := service.NewAuthService(userRepo, addressRepo, userService, verificationService, jwtSecret, tokenTTL, log)

	authHandler := handler.NewAuthHandler(authService, verificationService)
	userHandler := handler.NewUserHandler(userService)

	authRequired := middleware.Auth(jwtSecret, revocations)
	selfOnly := middleware.SelfOnly()

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/verify-email", authHandler.VerifyEmail)
	e.POST("/auth/resend-verification", authHandler.ResendVerification)

	// --- User routes (bearer token required) ---
	users := e.Group("/users", authRequired)
	users.GET("/profile", userHandler.Profile)
	users.GET("/:id", userHandler.GetByID)
	users.PUT("/:id", userHandler.Update, selfOnly)
	users.DELETE("/:id", userHandler.Delete, selfOnly)
	users.PUT("/:id/seller-status", userHandler.UpdateSellerStatus)

	// --- Address routes (self-only) ---
	users.POST("/:id/addresses", userHandler.AddAddress, selfOnly)
	users.PUT("/:id/addresses/:addressId", userHandler.UpdateAddress, selfOnly)
	users.PUT("/:id/addresses/:addressId/default", userHandler.SetDefaultAddress, selfOnly)
	users.DELETE("/:id/addresses/:addressId", userHandler.RemoveAddress, selfOnly)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
