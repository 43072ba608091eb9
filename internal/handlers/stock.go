// internal/handlers/stock.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/provenance-backend/internal/i18n"
	"github.com/javajoker/provenance-backend/internal/services"
	"github.com/javajoker/provenance-backend/internal/utils"
)

type StockHandler struct {
	stockService *services.StockService
}

func NewStockHandler(stockService *services.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// POST /api/stock
func (h *StockHandler) RecordStock(c *gin.Context) {
	var req services.RecordStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyStockMissingFields))
		return
	}

	if err := h.stockService.RecordStock(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, i18n.KeyStockUpdated)
}
