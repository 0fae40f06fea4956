package repositories

import (
	"context"

	"github.com/fundline/mca_backend/internal/core/domain"
)

// BusinessReader defines read operations for business configuration data.
type BusinessReader interface {
	// FindBusinessByName retrieves a business by its canonical name.
	// Returns apperrors.ErrNotFound when the business is not configured.
	FindBusinessByName(ctx context.Context, name string) (*domain.BusinessRecord, error)

	// ListBusinesses retrieves all configured businesses ordered by name.
	ListBusinesses(ctx context.Context) ([]domain.BusinessRecord, error)
}

// BusinessWriter defines write operations for business configuration data.
type BusinessWriter interface {
	// UpsertBusiness inserts the business or updates its percentage when the
	// name already exists.
	UpsertBusiness(ctx context.Context, business domain.BusinessRecord) error

	// DeleteBusiness removes a business by name.
	// Returns apperrors.ErrNotFound when no such business exists.
	DeleteBusiness(ctx context.Context, name string) error
}

// BusinessRepositoryFacade combines all business repository interfaces.
type BusinessRepositoryFacade interface {
	BusinessReader
	BusinessWriter
}
