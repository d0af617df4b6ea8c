package seats

import (
	"seatly/internal/shared/config"
	"seatly/internal/shared/middleware"
	"seatly/internal/users"

	"github.com/gin-gonic/gin"
)

// Router handles seat-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new seat router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all seat routes. Catalog reads are public; access
// control changes require an authenticated ADMIN.
func (seatRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	seats := rg.Group("/seats")
	{
		seats.GET("", seatRouter.controller.List)
		seats.GET("/:id", seatRouter.controller.GetByID)
		seats.GET("/:id/availability", seatRouter.controller.GetAvailability)

		admin := seats.Group("")
		admin.Use(middleware.JWTAuthWithConfig(seatRouter.config))
		admin.Use(middleware.RequireRoles(users.RoleAdmin))
		{
			admin.POST("/:id/block", seatRouter.controller.Block)
			admin.POST("/:id/unblock", seatRouter.controller.Unblock)
		}
	}
}
