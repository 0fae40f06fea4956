package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/fundline/mca_backend/internal/adapters/plaidexport"
	"github.com/fundline/mca_backend/internal/apperrors"
	"github.com/fundline/mca_backend/internal/core/domain"
	portssvc "github.com/fundline/mca_backend/internal/core/ports/services"
	"github.com/fundline/mca_backend/internal/dto"
	"github.com/fundline/mca_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// processingHandler handles transaction upload and aggregation requests.
type processingHandler struct {
	processingService portssvc.ProcessingSvcFacade
	maxUploadBytes    int64
}

// newProcessingHandler creates a new processingHandler.
func newProcessingHandler(ps portssvc.ProcessingSvcFacade, maxUploadBytes int64) *processingHandler {
	return &processingHandler{
		processingService: ps,
		maxUploadBytes:    maxUploadBytes,
	}
}

// registerProcessingRoutes registers all processing-related routes.
func registerProcessingRoutes(rg *gin.RouterGroup, processingService portssvc.ProcessingSvcFacade, maxUploadBytes int64) {
	h := newProcessingHandler(processingService, maxUploadBytes)

	processing := rg.Group("/processing")
	{
		processing.POST("/run", h.runProcessing)
		processing.POST("/export/summary", h.exportSummary)
		processing.POST("/export/transactions", h.exportTransactions)
	}
}

// runBatch binds the request form, parses every uploaded export and runs the
// batch. Files that fail to parse become failures on the result rather than
// aborting the run.
func (h *processingHandler) runBatch(c *gin.Context) (*domain.BatchResult, *dto.ProcessRunRequest, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProcessRunRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind processing run request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return nil, nil, false
	}

	period, err := req.ResolvePeriod(time.Now().UTC())
	if err != nil {
		logger.Warn("Invalid period in processing run request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	form, err := c.MultipartForm()
	if err != nil {
		logger.Warn("Failed to read multipart form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
		return nil, nil, false
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one transaction export file is required"})
		return nil, nil, false
	}

	var exports []domain.TransactionExport
	var parseFailures []domain.BatchFailure
	for _, fileHeader := range files {
		export, perr := h.parseUpload(fileHeader)
		if perr != nil {
			logger.Warn("Failed to parse uploaded export",
				slog.String("filename", fileHeader.Filename),
				slog.String("error", perr.Error()))
			parseFailures = append(parseFailures, domain.BatchFailure{
				Filename: fileHeader.Filename,
				Reason:   perr.Error(),
			})
			continue
		}
		exports = append(exports, *export)
	}

	logger.Info("Processing run started",
		slog.String("period_type", req.PeriodType),
		slog.Int("file_count", len(files)),
		slog.Int("parse_failures", len(parseFailures)))

	result, err := h.processingService.ProcessBatch(c.Request.Context(), exports, period, req.PersistHistory)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidPeriod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to process batch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transactions"})
		}
		return nil, nil, false
	}

	// Parse failures come first so per-file problems are easy to spot.
	result.Failures = append(parseFailures, result.Failures...)
	return result, &req, true
}

// parseUpload opens one uploaded file and decodes it, enforcing the size cap.
func (h *processingHandler) parseUpload(fileHeader *multipart.FileHeader) (*domain.TransactionExport, error) {
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		return nil, apperrors.NewParseError(fileHeader.Filename,
			fmt.Errorf("file exceeds maximum upload size of %d bytes", h.maxUploadBytes))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewParseError(fileHeader.Filename, err)
	}
	defer file.Close()

	return plaidexport.Parse(fileHeader.Filename, file)
}

func (h *processingHandler) runProcessing(c *gin.Context) {
	result, req, ok := h.runBatch(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Processing run completed",
		slog.Int("result_count", len(result.Results)),
		slog.Int("failure_count", len(result.Failures)))
	c.JSON(http.StatusOK, dto.ToBatchProcessResponse(result, req.IncludeTransactions))
}

func (h *processingHandler) exportSummary(c *gin.Context) {
	result, _, ok := h.runBatch(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="processing_summary.csv"`)
	if err := dto.WriteSummaryCSV(c.Writer, result.Results); err != nil {
		logger.Error("Failed to write summary CSV", slog.String("error", err.Error()))
	}
}

func (h *processingHandler) exportTransactions(c *gin.Context) {
	result, _, ok := h.runBatch(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="categorized_transactions.csv"`)
	if err := dto.WriteTransactionsCSV(c.Writer, result.Transactions); err != nil {
		logger.Error("Failed to write transactions CSV", slog.String("error", err.Error()))
	}
}
