package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/report/usecases"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type ReportHandler struct {
	reportUseCase *usecases.GetTicketReportUseCase
	logger        logger.Interface
}

func NewReportHandler(reportUC *usecases.GetTicketReportUseCase, logger logger.Interface) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUC,
		logger:        logger,
	}
}

func (h *ReportHandler) TicketReport(c *gin.Context) {
	startDate, ok := parseTimeQuery(c, "start_date")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid start_date")
		return
	}
	endDate, ok := parseTimeQuery(c, "end_date")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid end_date")
		return
	}

	result, err := h.reportUseCase.Execute(c.Request.Context(), usecases.GetTicketReportQuery{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
