package reservations

import (
	"seatly/internal/shared/config"
	"seatly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles reservation-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new reservation router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all reservation routes; every route requires a
// valid access token.
func (reservationRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	reservations := rg.Group("/reservations")
	reservations.Use(middleware.JWTAuthWithConfig(reservationRouter.config))
	{
		reservations.POST("", reservationRouter.controller.Create)
		reservations.GET("", reservationRouter.controller.List)
		reservations.GET("/:id", reservationRouter.controller.GetByID)
		reservations.POST("/:id/cancel", reservationRouter.controller.Cancel)
		reservations.POST("/:id/activate", reservationRouter.controller.Activate)
	}
}
