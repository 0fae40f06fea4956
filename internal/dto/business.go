package dto

import (
	"time"

	"github.com/fundline/mca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertBusinessRequest defines the data needed to configure a business.
// Percentage defaults to zero when omitted; the service validates the range.
type UpsertBusinessRequest struct {
	Name       string          `json:"name" binding:"required"`
	Percentage decimal.Decimal `json:"processingPercentage"`
}

// UpdatePercentageRequest updates only the processing percentage.
type UpdatePercentageRequest struct {
	Percentage decimal.Decimal `json:"processingPercentage"`
}

// BusinessResponse defines the data returned for a configured business.
type BusinessResponse struct {
	Name          string          `json:"name"`
	Percentage    decimal.Decimal `json:"processingPercentage"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToBusinessResponse converts a domain BusinessRecord to its response DTO.
func ToBusinessResponse(b *domain.BusinessRecord) BusinessResponse {
	return BusinessResponse{
		Name:          b.Name,
		Percentage:    b.Percentage,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBusinessResponse converts a slice of BusinessRecords to response DTOs.
func ToListBusinessResponse(businesses []domain.BusinessRecord) []BusinessResponse {
	res := make([]BusinessResponse, len(businesses))
	for i := range businesses {
		res[i] = ToBusinessResponse(&businesses[i])
	}
	return res
}
