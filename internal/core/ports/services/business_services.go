package services

import (
	"context"

	"github.com/fundline/mca_backend/internal/core/domain"
	"github.com/fundline/mca_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// BusinessReaderSvc defines read operations for business configuration.
type BusinessReaderSvc interface {
	// GetBusiness retrieves a configured business by name.
	GetBusiness(ctx context.Context, name string) (*domain.BusinessRecord, error)

	// ListBusinesses retrieves all configured businesses.
	ListBusinesses(ctx context.Context) ([]domain.BusinessRecord, error)

	// GetPercentage returns the configured processing percentage for a
	// business, or apperrors.ErrNotFound when it is not configured.
	GetPercentage(ctx context.Context, name string) (decimal.Decimal, error)
}

// BusinessWriterSvc defines write operations for business configuration.
type BusinessWriterSvc interface {
	// UpsertBusiness creates the business or updates its percentage.
	UpsertBusiness(ctx context.Context, req dto.UpsertBusinessRequest, updatedBy string) (*domain.BusinessRecord, error)

	// DeleteBusiness removes a business by name.
	DeleteBusiness(ctx context.Context, name string) error
}

// BusinessSvcFacade combines all business-related service interfaces.
type BusinessSvcFacade interface {
	BusinessReaderSvc
	BusinessWriterSvc
}
