// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"villabook/internal/admin"
	"villabook/internal/bookings"
	"villabook/internal/inventory"
	"villabook/internal/notifications"
	"villabook/internal/payments"
	"villabook/internal/pricing"
	"villabook/internal/shared/config"
	"villabook/internal/shared/database"
	"villabook/pkg/cache"
	"villabook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	logger   *logger.Logger
	notifier bookings.NotificationSender

	// Built during SetupRoutes, reused by the retention job
	bookingRepo bookings.Repository
	pricingRepo pricing.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier bookings.NotificationSender) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		logger:   logger.GetDefault(),
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	cacheService := cache.NewService(r.db.GetRedisClient())
	inventoryService := inventory.NewDefaultService()

	// Pricing
	r.pricingRepo = pricing.NewRepository(r.db.GetPostgreSQL())
	pricingService := pricing.NewService(r.pricingRepo, inventoryService, cacheService, r.logger)
	pricingController := pricing.NewController(pricingService, cacheService)

	// Bookings
	r.bookingRepo = bookings.NewRepository(r.db.GetPostgreSQL())
	blocking := make([]bookings.Status, 0, len(r.config.Booking.BlockingStatuses))
	for _, s := range r.config.Booking.BlockingStatuses {
		blocking = append(blocking, bookings.Status(s))
	}
	resolver := bookings.NewResolver(r.bookingRepo, inventoryService, blocking)
	gateway := payments.NewClient(r.config.Gateway, r.logger)
	bookingService := bookings.NewService(
		r.bookingRepo,
		resolver,
		inventoryService,
		pricingService,
		gateway,
		r.notifier,
		r.config.Booking,
		r.logger,
	)
	bookingController := bookings.NewController(bookingService)

	// Payments webhook
	paymentController := payments.NewController(bookingService, cacheService, r.config.Gateway, r.logger)

	// Admin session
	adminController := admin.NewController(admin.NewService(r.config))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		inventory.SetupInventoryRoutes(api, inventory.NewController(inventory.Default(), inventory.DefaultGuestLimits()))
		pricing.SetupPricingRoutes(api, pricingController)
		bookings.SetupBookingRoutes(api, bookingController)
		payments.SetupPaymentRoutes(api, paymentController)

		admin.SetupAdminRoutes(api, adminController)
		bookings.SetupAdminBookingRoutes(api, bookingController, r.config)
		pricing.SetupAdminPricingRoutes(api, pricingController, r.config)
	}
}

// RetentionJob builds the retention job over the wired repositories. Must
// be called after SetupRoutes.
func (r *Router) RetentionJob() *bookings.RetentionJob {
	return bookings.NewRetentionJob(r.bookingRepo, r.pricingRepo, r.config.Booking, r.logger)
}

// NotificationConsumer builds the Kafka consumer when notifications are enabled
func (r *Router) NotificationConsumer() (*notifications.Consumer, error) {
	return notifications.NewConsumer(&notifications.ConsumerConfig{
		Brokers: r.config.Kafka.Brokers,
		GroupID: "villabook-notification-workers",
		Topic:   r.config.Kafka.Topic,
	}, notifications.LogDelivery{Logger: r.logger}, r.logger)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "villabook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "villabook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
