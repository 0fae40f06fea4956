package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fundline/mca_backend/internal/apperrors"
	"github.com/fundline/mca_backend/internal/core/domain"
	portsrepo "github.com/fundline/mca_backend/internal/core/ports/repositories"
	portssvc "github.com/fundline/mca_backend/internal/core/ports/services"
	"github.com/fundline/mca_backend/internal/utils/categorize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// processingService implements the ProcessingSvcFacade interface. It holds
// only immutable configuration (the rule set and a clock), so one instance
// can serve concurrent batches.
type processingService struct {
	BaseService
	businessSvc portssvc.BusinessReaderSvc
	historyRepo portsrepo.HistoryWriter
	ruleSet     *categorize.RuleSet
	now         func() time.Time
}

// ProcessingServiceOption is a functional option for configuring the processing service
type ProcessingServiceOption func(*processingService)

// WithRuleSet overrides the categorization rule table.
func WithRuleSet(ruleSet *categorize.RuleSet) ProcessingServiceOption {
	return func(s *processingService) {
		s.ruleSet = ruleSet
	}
}

// WithProcessingClock overrides the clock used for run dates.
func WithProcessingClock(now func() time.Time) ProcessingServiceOption {
	return func(s *processingService) {
		s.now = now
	}
}

// NewProcessingService creates a new processing service with the provided options
func NewProcessingService(businessSvc portssvc.BusinessReaderSvc, historyRepo portsrepo.HistoryWriter, options ...ProcessingServiceOption) portssvc.ProcessingSvcFacade {
	svc := &processingService{
		businessSvc: businessSvc,
		historyRepo: historyRepo,
		ruleSet:     categorize.DefaultRuleSet(),
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure processingService implements the ProcessingSvcFacade interface
var _ portssvc.ProcessingSvcFacade = (*processingService)(nil)

// Aggregate computes one business's calculation result over a period.
func (s *processingService) Aggregate(ctx context.Context, txns []domain.Transaction, businessName string, percentage decimal.Decimal, period domain.Period) (*domain.CalculationResult, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	categorized := s.ruleSet.CategorizeAll(txns, businessName, "")
	return s.aggregateCategorized(categorized, businessName, percentage, period), nil
}

// aggregateCategorized sums revenue-labeled amounts inside the period and
// applies the processing percentage. The period must already be validated.
func (s *processingService) aggregateCategorized(txns []domain.CategorizedTransaction, businessName string, percentage decimal.Decimal, period domain.Period) *domain.CalculationResult {
	totalIncome := decimal.Zero
	count := 0
	dailyIncome := make(map[time.Time]decimal.Decimal)

	for _, txn := range txns {
		if !period.Contains(txn.Date) || !txn.Label.IsRevenue() {
			continue
		}
		amount := txn.Amount.Abs()
		totalIncome = totalIncome.Add(amount)
		count++

		day := time.Date(txn.Date.Year(), txn.Date.Month(), txn.Date.Day(), 0, 0, 0, 0, time.UTC)
		dailyIncome[day] = dailyIncome[day].Add(amount)
	}

	totalIncome = totalIncome.Round(2)
	amountToProcess := totalIncome.Mul(percentage).Div(oneHundred).Round(2)

	days := period.Days()
	breakdown := make([]domain.DailyIncome, len(days))
	for i, day := range days {
		breakdown[i] = domain.DailyIncome{Date: day, Income: dailyIncome[day].Round(2)}
	}

	return &domain.CalculationResult{
		BusinessName:      businessName,
		Period:            period,
		TotalIncome:       totalIncome,
		PercentageApplied: percentage,
		AmountToProcess:   amountToProcess,
		TransactionCount:  count,
		DailyBreakdown:    breakdown,
	}
}

// ProcessBatch aggregates every parsed export over the same period. Files
// resolving to the same business are merged before aggregation, mirroring a
// business that uploads one export per account. Failures are collected per
// business; one misconfigured business never blocks the others.
func (s *processingService) ProcessBatch(ctx context.Context, exports []domain.TransactionExport, period domain.Period, persist bool) (*domain.BatchResult, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	type businessBatch struct {
		name     string
		filename string
		txns     []domain.CategorizedTransaction
	}
	var order []string
	batches := make(map[string]*businessBatch)

	for _, export := range exports {
		categorized := s.ruleSet.CategorizeAll(export.Transactions, export.BusinessName, export.Filename)
		batch, seen := batches[export.BusinessName]
		if !seen {
			batch = &businessBatch{name: export.BusinessName, filename: export.Filename}
			batches[export.BusinessName] = batch
			order = append(order, export.BusinessName)
		}
		batch.txns = append(batch.txns, categorized...)
	}

	result := &domain.BatchResult{}
	runDate := truncateToDay(s.now())

	for _, name := range order {
		batch := batches[name]

		for _, txn := range batch.txns {
			if period.Contains(txn.Date) {
				result.Transactions = append(result.Transactions, txn)
			}
		}

		percentage, err := s.businessSvc.GetPercentage(ctx, name)
		if err != nil {
			reason := fmt.Sprintf("failed to look up processing percentage: %v", err)
			if errors.Is(err, apperrors.ErrNotFound) {
				reason = fmt.Sprintf("%v for business %q", apperrors.ErrMissingPercentage, name)
				s.LogWarn(ctx, "Business has no configured percentage, skipping",
					slog.String("business_name", name))
			} else {
				s.LogError(ctx, err, "Percentage lookup failed", slog.String("business_name", name))
			}
			result.Failures = append(result.Failures, domain.BatchFailure{
				Filename:     batch.filename,
				BusinessName: name,
				Reason:       reason,
			})
			continue
		}

		calc := s.aggregateCategorized(batch.txns, name, percentage, period)

		if persist {
			if err := s.recordHistory(ctx, calc, runDate); err != nil {
				s.LogError(ctx, err, "Failed to record processing history", slog.String("business_name", name))
				result.Failures = append(result.Failures, domain.BatchFailure{
					Filename:     batch.filename,
					BusinessName: name,
					Reason:       fmt.Sprintf("failed to record history: %v", err),
				})
				continue
			}
		}

		result.Results = append(result.Results, *calc)
		s.LogInfo(ctx, "Business aggregated",
			slog.String("business_name", name),
			slog.String("total_income", calc.TotalIncome.String()),
			slog.String("amount_to_process", calc.AmountToProcess.String()),
			slog.Int("transaction_count", calc.TransactionCount))
	}

	return result, nil
}

func (s *processingService) recordHistory(ctx context.Context, calc *domain.CalculationResult, runDate time.Time) error {
	record := domain.ProcessingRecord{
		RecordID:         uuid.NewString(),
		BusinessName:     calc.BusinessName,
		RunDate:          runDate,
		IncomeAmount:     calc.TotalIncome,
		ProcessingAmount: calc.AmountToProcess,
		PeriodStart:      calc.Period.Start,
		PeriodEnd:        calc.Period.End,
		TransactionCount: calc.TransactionCount,
		CreatedAt:        s.now(),
	}
	return s.historyRepo.SaveProcessingRecord(ctx, record)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
