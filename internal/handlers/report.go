// internal/handlers/report.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/provenance-backend/internal/i18n"
	"github.com/javajoker/provenance-backend/internal/services"
	"github.com/javajoker/provenance-backend/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// POST /api/report
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	var req services.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyReportMissingFields))
		return
	}

	userID, _ := utils.GetUserIDFromContext(c)
	if err := h.reportService.SubmitReport(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, i18n.KeyReportSubmitted)
}
