// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ticketly/internal/bookings"
	"ticketly/internal/events"
	"ticketly/internal/holds"
	"ticketly/internal/pricing"
	"ticketly/internal/promos"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/pkg/cache"

	"github.com/shopspring/decimal"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier bookings.Notifier

	// Shared across slices after setup
	cacheService   cache.Service
	eventService   events.Service
	promoService   promos.Service
	holdEngine     *holds.Engine
	bookingService bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
	}
}

// SetNotifier wires the booking event publisher before SetupRoutes runs.
func (r *Router) SetNotifier(notifier bookings.Notifier) {
	r.notifier = notifier
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	if cache.IsInitialized() {
		r.cacheService = cache.NewService(cache.Client())
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Order matters: events first, the rest hang services off it.
		r.setupEventRoutes(api)
		r.setupPromoRoutes(api)
		r.setupHoldRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)
	if r.cacheService != nil {
		eventService.SetCacheService(r.cacheService)
	}
	eventController := events.NewController(eventService)

	r.eventService = eventService
	events.SetupEventRoutes(rg, eventController)
}

func (r *Router) setupPromoRoutes(rg *gin.RouterGroup) {
	promoRepo := promos.NewRepository(r.db.GetPostgreSQL())
	promoService := promos.NewService(promoRepo)
	if r.cacheService != nil {
		promoService.SetCacheService(r.cacheService)
	}
	promoController := promos.NewController(promoService)

	r.promoService = promoService
	promos.SetupPromoRoutes(rg, promoController)
}

func (r *Router) setupHoldRoutes(rg *gin.RouterGroup) {
	r.holdEngine = holds.NewEngine(r.db.GetRedisClient(), r.config.Redis.SeatHoldTTL)
	r.eventService.SetHeldSeatsProvider(r.holdEngine)

	holdService := holds.NewService(r.holdEngine, r.eventService)
	holdController := holds.NewController(holdService)
	holds.SetupHoldRoutes(rg, holdController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	r.eventService.SetBookedSeatsProvider(bookingRepo)

	rates := pricing.Rates{
		Tax:        decimal.NewFromFloat(r.config.Pricing.TaxRate),
		ServiceFee: decimal.NewFromFloat(r.config.Pricing.ServiceFeeRate),
	}

	bookingService := bookings.NewService(bookingRepo, r.eventService, r.holdEngine, r.promoService, rates)
	if r.notifier != nil {
		bookingService.SetNotifier(r.notifier)
	}
	bookingController := bookings.NewController(bookingService)

	r.bookingService = bookingService
	bookings.SetupBookingRoutes(rg, bookingController)
}
