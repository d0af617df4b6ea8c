package users

import (
	"net/http"

	"seatly/internal/shared/apperrors"
	"seatly/internal/shared/utils/response"

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

func (c *Controller) GetByID(ctx *gin.Context) {
	principal, userID, ok := c.principalAndID(ctx)
	if !ok {
		return
	}

	user, err := c.service.GetUser(ctx.Request.Context(), userID, principal)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "User retrieved successfully", user, nil)
}

func (c *Controller) Update(ctx *gin.Context) {
	principal, userID, ok := c.principalAndID(ctx)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	user, err := c.service.UpdateUser(ctx.Request.Context(), userID, &req, principal)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "User updated successfully", user, nil)
}

func (c *Controller) Delete(ctx *gin.Context) {
	principal, userID, ok := c.principalAndID(ctx)
	if !ok {
		return
	}

	user, err := c.service.DeleteUser(ctx.Request.Context(), userID, principal)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "User deleted successfully", user, nil)
}

func (c *Controller) principalAndID(ctx *gin.Context) (Principal, uuid.UUID, bool) {
	principal, err := PrincipalFromContext(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return Principal{}, uuid.Nil, false
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, apperrors.InvalidInput("invalid user id: %s", ctx.Param("id")))
		return Principal{}, uuid.Nil, false
	}

	return principal, userID, true
}
