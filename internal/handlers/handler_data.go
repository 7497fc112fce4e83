package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bookease/bookease/internal/core/ports/services"
	"github.com/bookease/bookease/internal/middleware"
)

// dataHandler handles the CSV import/export boundary.
type dataHandler struct {
	reconcilerService portssvc.ReconcilerService
}

// registerDataRoutes registers the import/export routes.
func registerDataRoutes(rg *gin.RouterGroup, reconcilerService portssvc.ReconcilerService) {
	h := &dataHandler{reconcilerService: reconcilerService}

	data := rg.Group("/data")
	{
		data.GET("/export.csv", h.exportCSV)
		data.POST("/import", h.importCSV)
	}
}

// exportCSV streams every journal entry as flat CSV rows.
func (h *dataHandler) exportCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="bookease-export.csv"`)
	c.Status(http.StatusOK)

	rows, err := h.reconcilerService.ExportRecords(c.Request.Context(), c.Writer)
	if err != nil {
		// Headers are already out; all we can do is log and abort.
		logger.Error("Failed to export records", slog.String("error", err.Error()))
		c.Abort()
		return
	}

	logger.Info("Export finished", slog.Int("rows", rows))
}

// importCSV reads a CSV body and reconciles it against the store.
func (h *dataHandler) importCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reconcilerService.ImportRecords(c.Request.Context(), c.Request.Body)
	if err != nil {
		logger.Error("Failed to import records", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read import data: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
