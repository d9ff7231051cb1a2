// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"reelpass/internal/auth"
	"reelpass/internal/booking"
	"reelpass/internal/movies"
	"reelpass/internal/notifications"
	"reelpass/internal/screenings"
	"reelpass/internal/seats"
	"reelpass/internal/shared/config"
	"reelpass/internal/shared/database"
	"reelpass/internal/shared/middleware"
	"reelpass/internal/tickets"
	"reelpass/pkg/cache"
	"reelpass/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config     *config.Config
	db         *database.DB
	dispatcher notifications.Dispatcher
	logger     *logger.Logger

	cacheService     cache.Service
	screeningService screenings.Service
	ticketService    tickets.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, dispatcher notifications.Dispatcher, log *logger.Logger) *Router {
	return &Router{
		config:     cfg,
		db:         db,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	r.cacheService = cache.NewService(r.db.GetRedis())

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupCatalogRoutes(api)
		r.setupBookingRoutes(api)
		r.setupTicketRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "reelpass-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "reelpass-backend",
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

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupCatalogRoutes configures the public movie and screening catalog
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	movieService := movies.NewService(movieRepo, r.cacheService)
	movieController := movies.NewController(movieService)
	movies.RegisterRoutes(rg, movieController)

	screeningRepo := screenings.NewRepository(r.db.GetPostgreSQL())
	r.screeningService = screenings.NewService(screeningRepo, r.cacheService)
	screeningController := screenings.NewController(r.screeningService)
	screenings.RegisterRoutes(rg, screeningController)
}

// setupBookingRoutes configures the seat selection and payment flow.
// Runs under optional auth: guests book with an email, members get
// their tickets attached to the account.
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL())
	r.ticketService = tickets.NewService(ticketRepo, r.dispatcher, r.logger)

	seatService := seats.NewService(r.config.Hall)
	bookingService := booking.NewService(r.screeningService, seatService, r.ticketService, r.logger)
	bookingController := booking.NewController(bookingService)

	flow := rg.Group("")
	flow.Use(middleware.OptionalAuthWithConfig(r.config))
	booking.RegisterRoutes(flow, bookingController)
}

// setupTicketRoutes configures guest and member ticket management
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketController := tickets.NewController(r.ticketService)

	tickets.RegisterGuestRoutes(rg, ticketController)

	protected := rg.Group("")
	protected.Use(middleware.JWTAuthWithConfig(r.config))
	tickets.RegisterUserRoutes(protected, ticketController)
}
