package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LindiweBraids/booking-api/internal/audit"
	"github.com/LindiweBraids/booking-api/internal/config"
	"github.com/LindiweBraids/booking-api/internal/eventcache"
	"github.com/LindiweBraids/booking-api/internal/gateway"
	"github.com/LindiweBraids/booking-api/internal/handlers"
	infraRepo "github.com/LindiweBraids/booking-api/internal/infra/repository"
	"github.com/LindiweBraids/booking-api/internal/middleware"
	"github.com/LindiweBraids/booking-api/internal/notify"
	"github.com/LindiweBraids/booking-api/internal/storage"
	ucBooking "github.com/LindiweBraids/booking-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	notifier *notify.Notifier,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	gatewayClient := gateway.New(cfg.PaymentAPIURL, cfg.PaymentSecretKey, cfg.WebhookSecret)

	var dedup *eventcache.Cache
	if cfg.RedisAddr != "" {
		dedup = eventcache.New(cfg.RedisAddr)
	}

	var photoStorage *storage.S3Storage
	if cfg.S3Bucket != "" {
		photoStorage = storage.NewS3(cfg)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		gatewayClient,
		auditDispatcher,
		cfg.CallbackURL,
		cfg.Timezone,
	)

	confirmPaymentUC := ucBooking.NewConfirmPayment(
		bookingRepo,
		notifier,
		auditDispatcher,
		dedup,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	bookingHandler := handlers.NewBookingHandler(createBookingUC)
	webhookHandler := handlers.NewWebhookHandler(gatewayClient, confirmPaymentUC)
	stylePhotoHandler := handlers.NewStylePhotoHandler(bookingRepo, photoStorage)
	adminBookingsHandler := handlers.NewAdminBookingsHandler(bookingRepo, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.POST("/bookings", bookingHandler.Create)
			publicAPI.POST("/bookings/:id/style-photo", stylePhotoHandler.Upload)
		}

		// ------------------------------
		// WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/payments", webhookHandler.Handle)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE (STAFF)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/bookings", adminBookingsHandler.ListByDate)
			secured.GET("/me/bookings/:id", adminBookingsHandler.Get)
			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
