package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type TicketHandler struct {
	createUseCase  *usecases.CreateTicketUseCase
	updateUseCase  *usecases.UpdateTicketUseCase
	deleteUseCase  *usecases.DeleteTicketUseCase
	getUseCase     *usecases.GetTicketUseCase
	listUseCase    *usecases.ListTicketsUseCase
	historyUseCase *usecases.GetHistoryUseCase
	watchUseCase   *usecases.WatchTicketUseCase
	unwatchUseCase *usecases.UnwatchTicketUseCase
	logger         logger.Interface
}

func NewTicketHandler(
	createUC *usecases.CreateTicketUseCase,
	updateUC *usecases.UpdateTicketUseCase,
	deleteUC *usecases.DeleteTicketUseCase,
	getUC *usecases.GetTicketUseCase,
	listUC *usecases.ListTicketsUseCase,
	historyUC *usecases.GetHistoryUseCase,
	watchUC *usecases.WatchTicketUseCase,
	unwatchUC *usecases.UnwatchTicketUseCase,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createUseCase:  createUC,
		updateUseCase:  updateUC,
		deleteUseCase:  deleteUC,
		getUseCase:     getUC,
		listUseCase:    listUC,
		historyUseCase: historyUC,
		watchUseCase:   watchUC,
		unwatchUseCase: unwatchUC,
		logger:         logger,
	}
}

type CreateTicketRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	Priority    string     `json:"priority"`
	Type        string     `json:"type"`
	AssigneeID  *uint      `json:"assignee_id"`
	Watchers    []uint     `json:"watchers"`
	DueAt       *time.Time `json:"due_at"`
}

// buildUpdateCommand turns a partial patch body into an update command.
// The raw JSON is kept as a map so that an absent field and an explicit
// null can be told apart for the nullable assignee and due date fields.
func buildUpdateCommand(raw map[string]json.RawMessage) (usecases.UpdateTicketCommand, error) {
	var cmd usecases.UpdateTicketCommand

	for _, field := range []struct {
		key  string
		dest **string
	}{
		{"title", &cmd.Title},
		{"description", &cmd.Description},
		{"status", &cmd.Status},
		{"priority", &cmd.Priority},
		{"type", &cmd.Type},
	} {
		value, present := raw[field.key]
		if !present {
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return cmd, errors.NewValidationError(field.key + " must be a string")
		}
		*field.dest = &s
	}

	if value, present := raw["assignee_id"]; present {
		cmd.SetAssignee = true
		if string(value) != "null" {
			var id uint
			if err := json.Unmarshal(value, &id); err != nil || id == 0 {
				return cmd, errors.NewValidationError("assignee_id must be a positive integer or null")
			}
			cmd.AssigneeID = &id
		}
	}

	if value, present := raw["due_at"]; present {
		cmd.SetDueAt = true
		if string(value) != "null" {
			var due time.Time
			if err := json.Unmarshal(value, &due); err != nil {
				return cmd, errors.NewValidationError("due_at must be an RFC 3339 timestamp or null")
			}
			cmd.DueAt = &due
		}
	}

	return cmd, nil
}

func (h *TicketHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateTicketCommand{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Type:        req.Type,
		ReporterID:  userID,
		AssigneeID:  req.AssigneeID,
		Watchers:    req.Watchers,
		DueAt:       req.DueAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "ticket created")
}

func (h *TicketHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication")
		return
	}
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	raw := map[string]json.RawMessage{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd, err := buildUpdateCommand(raw)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	cmd.TicketID = ticketID
	cmd.ActorID = userID
	cmd.ActorRole = currentRole(c)

	result, err := h.updateUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ticket updated", result)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication")
		return
	}
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		TicketID:  ticketID,
		ActorID:   userID,
		ActorRole: currentRole(c),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *TicketHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication")
		return
	}
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetTicketQuery{
		TicketID:  ticketID,
		ActorID:   userID,
		ActorRole: currentRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TicketHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication")
		return
	}

	reportedBy, ok := parseUintQuery(c, "reported_by")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid reported_by")
		return
	}
	assignedTo, ok := parseUintQuery(c, "assigned_to")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid assigned_to")
		return
	}
	watchingUser, ok := parseUintQuery(c, "watching_user")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid watching_user")
		return
	}

	pagination := utils.ParsePagination(c)

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		ActorID:      userID,
		ActorRole:    currentRole(c),
		Status:       c.Query("status"),
		Priority:     c.Query("priority"),
		Type:         c.Query("type"),
		ReportedBy:   reportedBy,
		AssignedTo:   assignedTo,
		WatchingUser: watchingUser,
		Search:       c.Query("search"),
		Page:         pagination.Page,
		PageSize:     pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

func (h *TicketHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication")
		return
	}
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	entries, err := h.historyUseCase.Execute(c.Request.Context(), usecases.GetHistoryQuery{
		TicketID:  ticketID,
		ActorID:   userID,
		ActorRole: currentRole(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", entries)
}

func (h *TicketHandler) Watch(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication")
		return
	}
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	if err := h.watchUseCase.Execute(c.Request.Context(), usecases.WatchTicketCommand{
		TicketID:  ticketID,
		UserID:    userID,
		ActorRole: currentRole(c),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "watching ticket", nil)
}

func (h *TicketHandler) Unwatch(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication")
		return
	}
	ticketID, ok := parseIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	if err := h.unwatchUseCase.Execute(c.Request.Context(), usecases.UnwatchTicketCommand{
		TicketID: ticketID,
		UserID:   userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "stopped watching ticket", nil)
}
