package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bloodlink/donation-system/internal/api/handler"
	"github.com/bloodlink/donation-system/internal/api/middleware"
	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
	"github.com/bloodlink/donation-system/internal/core/service"
	infraMongo "github.com/bloodlink/donation-system/internal/infrastructure/db/mongo"
	infraRedis "github.com/bloodlink/donation-system/internal/infrastructure/db/redis"
)

// Dependencies carries the externally constructed pieces the router wires
// into handlers.
type Dependencies struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Hasher   ports.PasswordHasher
	Notifier ports.Notifier
	Mail     ports.MailQueue
	Log      zerolog.Logger

	JWTSecret     string
	JWTTTL        time.Duration
	OTPTTL        time.Duration
	StatsCacheTTL time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blooddonation"))

	// --- Repositories ---
	userRepo := infraMongo.NewUserRepository(deps.Mongo)
	donationRepo := infraMongo.NewDonationRepository(deps.Mongo)
	requestRepo := infraMongo.NewRequestRepository(deps.Mongo)
	appointmentRepo := infraMongo.NewAppointmentRepository(deps.Mongo)
	statsCache := infraRedis.NewStatsCache(deps.Redis, deps.StatsCacheTTL)

	// --- Services ---
	tokens := service.NewTokenIssuer(deps.JWTSecret, deps.JWTTTL)
	otp := service.NewOTPManager(userRepo, deps.Notifier, deps.OTPTTL, deps.Log)
	authService := service.NewAuthService(userRepo, deps.Hasher, otp, tokens, deps.Mail, deps.Log)
	donationService := service.NewDonationService(donationRepo, userRepo, deps.Log)
	requestService := service.NewRequestService(requestRepo, userRepo, deps.Log)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo, deps.Log)
	statsService := service.NewStatsService(userRepo, appointmentRepo, requestRepo, donationRepo, statsCache, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	donationHandler := handler.NewDonationHandler(donationService)
	requestHandler := handler.NewRequestHandler(requestService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	adminHandler := handler.NewAdminHandler(statsService)

	authMiddleware := middleware.Auth(tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/verify-otp", authHandler.VerifyOTP)
	e.POST("/auth/request-reset", authHandler.RequestPasswordReset)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// --- Donation routes ---
	donations := e.Group("/v1/donations", authMiddleware)
	donations.POST("", donationHandler.Create)
	donations.GET("", donationHandler.List)
	donations.GET("/recent", donationHandler.Recent)
	donations.GET("/eligibility", donationHandler.Eligibility)
	donations.GET("/count/:blood_type", donationHandler.AvailableCount)
	donations.GET("/:id", donationHandler.Get)
	donations.PATCH("/:id", donationHandler.Update, adminOnly)
	donations.DELETE("/:id", donationHandler.Delete, adminOnly)
	donations.PATCH("/:id/use", donationHandler.MarkUsed, adminOnly)

	// --- Donor directory ---
	e.GET("/v1/donors", donationHandler.Donors, authMiddleware)

	// --- Request routes ---
	requests := e.Group("/v1/requests", authMiddleware)
	requests.POST("", requestHandler.Create)
	requests.GET("", requestHandler.List)
	requests.GET("/recent", requestHandler.Recent)
	requests.GET("/overdue", requestHandler.Overdue)
	requests.GET("/urgent/count", requestHandler.UrgentCount)
	requests.GET("/count/:status", requestHandler.CountByStatus)
	requests.GET("/:id", requestHandler.Get)
	requests.PATCH("/:id", requestHandler.Update, adminOnly)
	requests.DELETE("/:id", requestHandler.Delete, adminOnly)
	requests.PATCH("/:id/fulfill", requestHandler.Fulfill, adminOnly)
	// Cancel stays open to any authenticated user; the service enforces
	// the owner-or-admin rule.
	requests.PATCH("/:id/cancel", requestHandler.Cancel)

	// --- Appointment routes ---
	appointments := e.Group("/v1/appointments", authMiddleware)
	appointments.POST("", appointmentHandler.Create)
	appointments.GET("", appointmentHandler.List)
	appointments.PATCH("/:id/status", appointmentHandler.UpdateStatus, adminOnly)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authMiddleware, adminOnly)
	admin.GET("/stats", adminHandler.Stats)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
