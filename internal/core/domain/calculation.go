package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyIncome is one entry of the zero-filled per-day income breakdown.
type DailyIncome struct {
	Date   time.Time       `json:"date"`
	Income decimal.Decimal `json:"income"`
}

// CalculationResult is the outcome of aggregating a business's categorized
// transactions over a period. It is immutable once produced; the history
// store appends it with a creation timestamp supplied by the caller.
type CalculationResult struct {
	BusinessName      string          `json:"businessName"`
	Period            Period          `json:"period"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`       // Income + Special Inflow, 2dp
	PercentageApplied decimal.Decimal `json:"percentageApplied"` // in [0, 100]
	AmountToProcess   decimal.Decimal `json:"amountToProcess"`   // TotalIncome * pct / 100, 2dp half-up
	TransactionCount  int             `json:"transactionCount"`  // revenue transactions in window
	DailyBreakdown    []DailyIncome   `json:"dailyBreakdown"`    // one entry per day, ascending
}

// ProcessingRecord is a persisted history row for one processing run.
type ProcessingRecord struct {
	RecordID         string          `json:"recordID"`
	BusinessName     string          `json:"businessName"`
	RunDate          time.Time       `json:"runDate"`
	IncomeAmount     decimal.Decimal `json:"incomeAmount"`
	ProcessingAmount decimal.Decimal `json:"processingAmount"`
	PeriodStart      time.Time       `json:"periodStart"`
	PeriodEnd        time.Time       `json:"periodEnd"`
	TransactionCount int             `json:"transactionCount"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// TransactionExport is one parsed upload: the accounts and sign-normalized
// transactions of a single export file, plus the business identity derived
// for it.
type TransactionExport struct {
	Filename     string        `json:"filename"`
	BusinessName string        `json:"businessName"`
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
}

// BatchFailure reports why one business in a batch produced no result.
// A failure never aborts the rest of the batch.
type BatchFailure struct {
	Filename     string `json:"filename"`
	BusinessName string `json:"businessName"`
	Reason       string `json:"reason"`
}

// BatchResult aggregates the per-business outcomes of one processing run.
type BatchResult struct {
	Results      []CalculationResult      `json:"results"`
	Failures     []BatchFailure           `json:"failures"`
	Transactions []CategorizedTransaction `json:"transactions"`
}
