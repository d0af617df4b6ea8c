package statistics

import (
	"seatly/internal/shared/config"
	"seatly/internal/shared/middleware"
	"seatly/internal/users"

	"github.com/gin-gonic/gin"
)

// Router handles statistics routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new statistics router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers statistics routes; all require authentication and
// per-user lookups are limited to staff.
func (statisticsRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	statistics := rg.Group("/statistics")
	statistics.Use(middleware.JWTAuthWithConfig(statisticsRouter.config))
	{
		statistics.GET("/me", statisticsRouter.controller.GetMine)

		staff := statistics.Group("")
		staff.Use(middleware.RequireRoles(users.RoleLibrarian, users.RoleAdmin))
		{
			staff.GET("/users/:id", statisticsRouter.controller.GetForUser)
		}
	}
}
