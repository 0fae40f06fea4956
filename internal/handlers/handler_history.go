package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fundline/mca_backend/internal/core/ports/services"
	"github.com/fundline/mca_backend/internal/dto"
	"github.com/fundline/mca_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// historyHandler handles HTTP requests for recorded processing runs.
type historyHandler struct {
	historyService portssvc.HistorySvcFacade
}

// newHistoryHandler creates a new historyHandler.
func newHistoryHandler(hs portssvc.HistorySvcFacade) *historyHandler {
	return &historyHandler{
		historyService: hs,
	}
}

// registerHistoryRoutes registers all history-related routes.
func registerHistoryRoutes(rg *gin.RouterGroup, historyService portssvc.HistorySvcFacade) {
	h := newHistoryHandler(historyService)

	history := rg.Group("/history")
	{
		history.GET("", h.listHistory)
		history.GET("/export", h.exportHistory)
	}
}

func (h *historyHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessName := c.Query("business")

	records, err := h.historyService.ListHistory(c.Request.Context(), businessName)
	if err != nil {
		logger.Error("Failed to list history from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	logger.Info("History listed successfully", slog.Int("count", len(records)))
	c.JSON(http.StatusOK, gin.H{"history": dto.ToListHistoryResponse(records)})
}

func (h *historyHandler) exportHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessName := c.Query("business")

	records, err := h.historyService.ListHistory(c.Request.Context(), businessName)
	if err != nil {
		logger.Error("Failed to list history for export", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="processing_history.csv"`)
	if err := dto.WriteHistoryCSV(c.Writer, records); err != nil {
		logger.Error("Failed to write history CSV", slog.String("error", err.Error()))
	}
}
