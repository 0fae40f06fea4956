package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fundline/mca_backend/internal/apperrors"
	portssvc "github.com/fundline/mca_backend/internal/core/ports/services"
	"github.com/fundline/mca_backend/internal/dto"
	"github.com/fundline/mca_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// businessHandler handles HTTP requests related to business configuration.
type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
}

// newBusinessHandler creates a new businessHandler.
func newBusinessHandler(bs portssvc.BusinessSvcFacade) *businessHandler {
	return &businessHandler{
		businessService: bs,
	}
}

// registerBusinessRoutes registers all business-related routes.
func registerBusinessRoutes(rg *gin.RouterGroup, businessService portssvc.BusinessSvcFacade) {
	h := newBusinessHandler(businessService)

	businesses := rg.Group("/businesses")
	{
		businesses.POST("", h.upsertBusiness)
		businesses.GET("", h.listBusinesses)
		businesses.GET("/:name", h.getBusiness)
		businesses.PUT("/:name", h.updatePercentage)
		businesses.DELETE("/:name", h.deleteBusiness)
	}
}

func (h *businessHandler) upsertBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for upsert business request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to upsert business", slog.String("business_name", req.Name))

	business, err := h.businessService.UpsertBusiness(c.Request.Context(), req, apiUpdater)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Business upsert rejected by validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert business in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save business"})
		}
		return
	}

	logger.Info("Business upserted successfully", slog.String("business_name", business.Name))
	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

func (h *businessHandler) getBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	business, err := h.businessService.GetBusiness(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Business not found", slog.String("business_name", name))
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		} else {
			logger.Error("Failed to get business from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve business"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

func (h *businessHandler) listBusinesses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	businesses, err := h.businessService.ListBusinesses(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list businesses from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list businesses"})
		return
	}

	logger.Info("Businesses listed successfully", slog.Int("count", len(businesses)))
	c.JSON(http.StatusOK, gin.H{"businesses": dto.ToListBusinessResponse(businesses)})
}

func (h *businessHandler) updatePercentage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	var req dto.UpdatePercentageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update percentage request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// The update path must not create a business that was never configured.
	if _, err := h.businessService.GetBusiness(c.Request.Context(), name); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Business not found for percentage update", slog.String("business_name", name))
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		} else {
			logger.Error("Failed to get business from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update business"})
		}
		return
	}

	upsertReq := dto.UpsertBusinessRequest{Name: name, Percentage: req.Percentage}
	business, err := h.businessService.UpsertBusiness(c.Request.Context(), upsertReq, apiUpdater)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Percentage update rejected by validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update percentage in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update business"})
		}
		return
	}

	logger.Info("Business percentage updated", slog.String("business_name", name))
	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

func (h *businessHandler) deleteBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	err := h.businessService.DeleteBusiness(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Business not found for deletion", slog.String("business_name", name))
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		} else {
			logger.Error("Failed to delete business in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete business"})
		}
		return
	}

	logger.Info("Business deleted successfully", slog.String("business_name", name))
	c.Status(http.StatusNoContent)
}
