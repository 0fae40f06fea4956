package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fundline/mca_backend/internal/apperrors"
	"github.com/fundline/mca_backend/internal/core/domain"
	portsrepo "github.com/fundline/mca_backend/internal/core/ports/repositories"
	portssvc "github.com/fundline/mca_backend/internal/core/ports/services"
	"github.com/fundline/mca_backend/internal/dto"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

var percentageUpperBound = decimal.NewFromInt(100)

// businessService implements the BusinessSvcFacade interface.
// Percentage lookups are cached because a batch run hits the same handful of
// businesses over and over; the cache is invalidated on every write.
type businessService struct {
	BaseService
	businessRepo portsrepo.BusinessRepositoryFacade
	percentCache *gocache.Cache
	now          func() time.Time
}

// BusinessServiceOption is a functional option for configuring the business service
type BusinessServiceOption func(*businessService)

// WithPercentageCacheTTL overrides how long percentage lookups are cached.
func WithPercentageCacheTTL(ttl time.Duration) BusinessServiceOption {
	return func(s *businessService) {
		s.percentCache = gocache.New(ttl, 2*ttl)
	}
}

// WithBusinessClock overrides the clock used for audit timestamps.
func WithBusinessClock(now func() time.Time) BusinessServiceOption {
	return func(s *businessService) {
		s.now = now
	}
}

// NewBusinessService creates a new business service with the provided options
func NewBusinessService(repo portsrepo.BusinessRepositoryFacade, options ...BusinessServiceOption) portssvc.BusinessSvcFacade {
	svc := &businessService{
		businessRepo: repo,
		percentCache: gocache.New(5*time.Minute, 10*time.Minute),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure businessService implements the BusinessSvcFacade interface
var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

// UpsertBusiness creates the business or updates its processing percentage.
func (s *businessService) UpsertBusiness(ctx context.Context, req dto.UpsertBusinessRequest, updatedBy string) (*domain.BusinessRecord, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: business name must not be empty", apperrors.ErrValidation)
	}
	if req.Percentage.IsNegative() || req.Percentage.GreaterThan(percentageUpperBound) {
		return nil, fmt.Errorf("%w: processing percentage must be between 0 and 100, got %s", apperrors.ErrValidation, req.Percentage)
	}

	now := s.now()
	record := domain.BusinessRecord{
		BusinessID: uuid.NewString(),
		Name:       name,
		Percentage: req.Percentage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: updatedBy,
		},
	}

	if err := s.businessRepo.UpsertBusiness(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to upsert business", slog.String("business_name", name))
		return nil, fmt.Errorf("failed to upsert business %s: %w", name, err)
	}
	s.percentCache.Delete(name)

	saved, err := s.businessRepo.FindBusinessByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to reload business %s: %w", name, err)
	}

	s.LogInfo(ctx, "Business configuration saved",
		slog.String("business_name", name),
		slog.String("percentage", saved.Percentage.String()))
	return saved, nil
}

// DeleteBusiness removes a business configuration by name.
func (s *businessService) DeleteBusiness(ctx context.Context, name string) error {
	if err := s.businessRepo.DeleteBusiness(ctx, name); err != nil {
		return err
	}
	s.percentCache.Delete(name)
	s.LogInfo(ctx, "Business configuration deleted", slog.String("business_name", name))
	return nil
}

// GetBusiness retrieves a configured business by name.
func (s *businessService) GetBusiness(ctx context.Context, name string) (*domain.BusinessRecord, error) {
	return s.businessRepo.FindBusinessByName(ctx, name)
}

// ListBusinesses retrieves all configured businesses.
func (s *businessService) ListBusinesses(ctx context.Context) ([]domain.BusinessRecord, error) {
	return s.businessRepo.ListBusinesses(ctx)
}

// GetPercentage returns the configured processing percentage for a business.
func (s *businessService) GetPercentage(ctx context.Context, name string) (decimal.Decimal, error) {
	if cached, found := s.percentCache.Get(name); found {
		return cached.(decimal.Decimal), nil
	}

	business, err := s.businessRepo.FindBusinessByName(ctx, name)
	if err != nil {
		return decimal.Zero, err
	}

	s.percentCache.Set(name, business.Percentage, gocache.DefaultExpiration)
	return business.Percentage, nil
}
