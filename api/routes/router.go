package routes

import (
	"net/http"
	"time"

	"seatly/internal/auth"
	"seatly/internal/notifications"
	"seatly/internal/reservations"
	"seatly/internal/seats"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/internal/shared/middleware"
	"seatly/internal/statistics"
	"seatly/internal/users"
	"seatly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	producer     notifications.Producer
}

// NewRouter creates a new router instance. cacheService and producer are
// optional; nil disables caching and event publishing.
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, producer notifications.Producer) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cacheService,
		producer:     producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupDomainRoutes(api)
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
				"service":   "seatly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
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

	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	userService := users.NewService(userRepo)
	userController := users.NewController(userService)
	users.NewRouter(userController, middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin()).SetupRoutes(rg)
}

// setupDomainRoutes wires seats, reservations and statistics together. The
// seat availability engine reads reservation windows through an adapter, and
// the reservation lifecycle consults the seat catalog before booking.
func (r *Router) setupDomainRoutes(rg *gin.RouterGroup) {
	gormDB := r.db.GetPostgreSQL()

	seatRepo := seats.NewRepository(gormDB)
	reservationRepo := reservations.NewRepository(gormDB)

	seatService := seats.NewService(seatRepo, reservations.NewAvailabilitySource(reservationRepo), r.cacheService, r.producer)
	reservationService := reservations.NewService(reservationRepo, seatService, r.cacheService, r.producer)

	seatController := seats.NewController(seatService)
	seats.NewRouter(seatController, r.config).SetupRoutes(rg)

	reservationController := reservations.NewController(reservationService)
	reservations.NewRouter(reservationController, r.config).SetupRoutes(rg)

	statisticsRepo := statistics.NewRepository(gormDB)
	statisticsService := statistics.NewService(statisticsRepo, r.cacheService)
	statisticsController := statistics.NewController(statisticsService)
	statistics.NewRouter(statisticsController, r.config).SetupRoutes(rg)
}
