package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/user/usecases"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type UserHandler struct {
	listUseCase       *usecases.ListUsersUseCase
	updateRoleUseCase *usecases.UpdateUserRoleUseCase
	logger            logger.Interface
}

func NewUserHandler(
	listUC *usecases.ListUsersUseCase,
	updateRoleUC *usecases.UpdateUserRoleUseCase,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUseCase:       listUC,
		updateRoleUseCase: updateRoleUC,
		logger:            logger,
	}
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *UserHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListUsersQuery{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication")
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid user ID")
		return
	}

	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.updateRoleUseCase.Execute(c.Request.Context(), usecases.UpdateUserRoleCommand{
		UserID:  userID,
		Role:    req.Role,
		ActorID: actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("user role updated", "user_id", userID, "role", result.Role, "actor_id", actorID)
	utils.SuccessResponse(c, http.StatusOK, "role updated", result)
}
