package users

import (
	"github.com/gin-gonic/gin"
)

// Router handles user profile routes. The auth middlewares are injected by
// the route wiring because the shared middleware package depends on this one.
type Router struct {
	controller *Controller
	auth       gin.HandlerFunc
	adminOnly  gin.HandlerFunc
}

func NewRouter(controller *Controller, auth, adminOnly gin.HandlerFunc) *Router {
	return &Router{
		controller: controller,
		auth:       auth,
		adminOnly:  adminOnly,
	}
}

// SetupRoutes registers all user routes. Reads and edits are available to the
// account owner; deletion is admin only.
func (userRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	usersGroup := rg.Group("/users")
	usersGroup.Use(userRouter.auth)
	{
		usersGroup.GET("/:id", userRouter.controller.GetByID)
		usersGroup.PATCH("/:id", userRouter.controller.Update)
		usersGroup.DELETE("/:id", userRouter.adminOnly, userRouter.controller.Delete)
	}
}
