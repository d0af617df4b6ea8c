package seats

import (
	"net/http"
	"time"

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

func (c *Controller) List(ctx *gin.Context) {
	seatList, err := c.service.ListSeats(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved successfully", seatList, nil)
}

func (c *Controller) GetByID(ctx *gin.Context) {
	seatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidInput("invalid seat id: %s", ctx.Param("id")))
		return
	}

	seat, err := c.service.GetSeat(ctx.Request.Context(), seatID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seat retrieved successfully", seat, nil)
}

// GetAvailability returns the free/occupied slot cover for one calendar day.
// The date query parameter uses YYYY-MM-DD; missing means today.
func (c *Controller) GetAvailability(ctx *gin.Context) {
	seatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidInput("invalid seat id: %s", ctx.Param("id")))
		return
	}

	date := time.Now()
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.RespondError(ctx, apperrors.InvalidInput("invalid date %q, expected YYYY-MM-DD", raw))
			return
		}
		date = parsed
	}

	slots, err := c.service.GetAvailableTimeSlots(ctx.Request.Context(), seatID, date)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully", slots, nil)
}

func (c *Controller) Block(ctx *gin.Context) {
	c.setBlocked(ctx, true)
}

func (c *Controller) Unblock(ctx *gin.Context) {
	c.setBlocked(ctx, false)
}

func (c *Controller) setBlocked(ctx *gin.Context, blocked bool) {
	principal, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	seatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidInput("invalid seat id: %s", ctx.Param("id")))
		return
	}

	var seat *Seat
	if blocked {
		seat, err = c.service.Block(ctx.Request.Context(), seatID, principal)
	} else {
		seat, err = c.service.Unblock(ctx.Request.Context(), seatID, principal)
	}
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	message := "Seat unblocked successfully"
	if blocked {
		message = "Seat blocked successfully"
	}
	response.RespondJSON(ctx, "success", http.StatusOK, message, seat, nil)
}
