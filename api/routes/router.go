package routes

import (
	"net/http"
	"time"

	"ticketly/internal/auth"
	"ticketly/internal/bookings"
	"ticketly/internal/events"
	"ticketly/internal/notifications"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/shows"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.NotificationProducer
	log      *logger.Logger

	// Shared repositories, built once and reused across modules
	authRepo  auth.Repository
	eventRepo events.Repository
	showRepo  shows.Repository
	cache     cache.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.NotificationProducer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
		log:      logger.GetDefault(),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	r.authRepo = auth.NewRepository(r.db.GetPostgreSQL())
	r.eventRepo = events.NewRepository(r.db.GetPostgreSQL())
	r.showRepo = shows.NewRepository(r.db.GetPostgreSQL())
	r.cache = cache.NewService(r.db.GetRedisClient())

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupEventRoutes(api)
		r.setupShowRoutes(api)
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

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.authRepo, r.config, r.log)
	authController := auth.NewController(authService)
	auth.RegisterRoutes(rg, authController)
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventService := events.NewService(r.eventRepo, r.cache, r.log)
	eventController := events.NewController(eventService)
	events.RegisterRoutes(rg, eventController)
}

func (r *Router) setupShowRoutes(rg *gin.RouterGroup) {
	showService := shows.NewService(r.showRepo, r.eventRepo, r.cache, r.log)
	showController := shows.NewController(showService)
	shows.RegisterRoutes(rg, showController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	guard := bookings.NewRedisSeatGuard(r.db.GetRedisClient())
	catalog := bookings.NewCatalog(r.eventRepo, r.showRepo)

	publisher := notifications.NewRedisEventPublisher(r.db.GetRedisClient())
	notifier := notifications.NewBookingNotifier(r.producer, publisher, r.authRepo, r.eventRepo, r.showRepo)

	bookingService := bookings.NewService(bookingRepo, guard, catalog, notifier, r.log)
	bookingController := bookings.NewController(bookingService)
	bookings.RegisterRoutes(rg, bookingController)
}
