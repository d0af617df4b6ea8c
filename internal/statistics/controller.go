package statistics

import (
	"net/http"

	"seatly/internal/shared/apperrors"
	"seatly/internal/shared/middleware"
	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetMine returns the authenticated user's own usage summary.
func (c *Controller) GetMine(ctx *gin.Context) {
	principal, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	stats, err := c.service.GetUserStatistics(ctx.Request.Context(), principal.UserID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Statistics retrieved successfully", stats, nil)
}

// GetForUser returns any user's summary; the route is staff-gated.
func (c *Controller) GetForUser(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidInput("invalid user id: %s", ctx.Param("id")))
		return
	}

	stats, err := c.service.GetUserStatistics(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Statistics retrieved successfully", stats, nil)
}
