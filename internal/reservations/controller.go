package reservations

import (
	"net/http"

	"seatly/internal/shared/apperrors"
	"seatly/internal/shared/middleware"
	"seatly/internal/shared/utils/response"
	"seatly/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) Create(ctx *gin.Context) {
	principal, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	var req CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	seatID, err := uuid.Parse(req.SeatID)
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidInput("invalid seat id: %s", req.SeatID))
		return
	}

	reservation, err := c.service.Create(ctx.Request.Context(), principal, seatID, req.StartTime, req.EndTime)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	if reservation == nil {
		// Privileged principals do not book seats; acknowledge and move on.
		response.RespondJSON(ctx, "success", http.StatusOK, "No reservation created for staff account", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation created successfully", reservation, nil)
}

func (c *Controller) Cancel(ctx *gin.Context) {
	principal, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	reservationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidInput("invalid reservation id: %s", ctx.Param("id")))
		return
	}

	reservation, err := c.service.Cancel(ctx.Request.Context(), principal, reservationID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation cancelled successfully", reservation, nil)
}

func (c *Controller) Activate(ctx *gin.Context) {
	principal, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	reservationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidInput("invalid reservation id: %s", ctx.Param("id")))
		return
	}

	reservation, err := c.service.Activate(ctx.Request.Context(), principal, reservationID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation activated successfully", reservation, nil)
}

func (c *Controller) GetByID(ctx *gin.Context) {
	principal, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	reservationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidInput("invalid reservation id: %s", ctx.Param("id")))
		return
	}

	reservation, err := c.service.GetByID(ctx.Request.Context(), reservationID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	if reservation.UserID != principal.UserID && !principal.Role.IsPrivileged() {
		response.RespondError(ctx, apperrors.Forbidden("you may only view your own reservations"))
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation retrieved successfully", reservation, nil)
}

// List returns reservations filtered by user_id or seat_id. Regular users
// are pinned to their own history; staff may query any user or seat.
func (c *Controller) List(ctx *gin.Context) {
	principal, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	query, err := buildListQuery(ctx, principal)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	reservationList, err := c.service.List(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", reservationList, nil)
}

func buildListQuery(ctx *gin.Context, principal users.Principal) (ListQuery, error) {
	userParam := ctx.Query("user_id")
	seatParam := ctx.Query("seat_id")

	if userParam != "" && seatParam != "" {
		return ListQuery{}, apperrors.InvalidInput("filter by user_id or seat_id, not both")
	}

	if !principal.Role.IsPrivileged() {
		// Regular users see only their own reservations regardless of the
		// filters they send.
		userID := principal.UserID
		if seatParam != "" || (userParam != "" && userParam != userID.String()) {
			return ListQuery{}, apperrors.Forbidden("you may only list your own reservations")
		}
		return ListQuery{UserID: &userID}, nil
	}

	switch {
	case userParam != "":
		userID, err := uuid.Parse(userParam)
		if err != nil {
			return ListQuery{}, apperrors.InvalidInput("invalid user id: %s", userParam)
		}
		return ListQuery{UserID: &userID}, nil
	case seatParam != "":
		seatID, err := uuid.Parse(seatParam)
		if err != nil {
			return ListQuery{}, apperrors.InvalidInput("invalid seat id: %s", seatParam)
		}
		return ListQuery{SeatID: &seatID}, nil
	default:
		return ListQuery{}, nil
	}
}
