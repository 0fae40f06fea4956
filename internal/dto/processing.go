package dto

import (
	"time"

	"github.com/fundline/mca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProcessRunRequest carries the form fields of a processing run. Files arrive
// alongside it as multipart uploads.
type ProcessRunRequest struct {
	PeriodType          string `form:"periodType" binding:"required,periodpreset"`
	StartDate           string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate             string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	IncludeTransactions bool   `form:"includeTransactions"`
	PersistHistory      bool   `form:"persistHistory"`
}

// ResolvePeriod turns the request's preset and optional custom bounds into a
// concrete interval relative to now.
func (r ProcessRunRequest) ResolvePeriod(now time.Time) (domain.Period, error) {
	var start, end time.Time
	if r.StartDate != "" {
		start, _ = time.ParseInLocation(time.DateOnly, r.StartDate, time.UTC)
	}
	if r.EndDate != "" {
		end, _ = time.ParseInLocation(time.DateOnly, r.EndDate, time.UTC)
	}
	return domain.ResolvePeriod(domain.PeriodPreset(r.PeriodType), start, end, now)
}

// DailyIncomeResponse is one entry of the per-day breakdown.
type DailyIncomeResponse struct {
	Date   string          `json:"date"`
	Income decimal.Decimal `json:"income"`
}

// CalculationResultResponse is the per-business outcome of a run.
type CalculationResultResponse struct {
	BusinessName      string                `json:"businessName"`
	PeriodStart       string                `json:"periodStart"`
	PeriodEnd         string                `json:"periodEnd"`
	TotalIncome       decimal.Decimal       `json:"totalIncome"`
	PercentageApplied decimal.Decimal       `json:"percentageApplied"`
	AmountToProcess   decimal.Decimal       `json:"amountToProcess"`
	TransactionCount  int                   `json:"transactionCount"`
	DailyBreakdown    []DailyIncomeResponse `json:"dailyBreakdown"`
}

// BatchFailureResponse reports one business that produced no result.
type BatchFailureResponse struct {
	Filename     string `json:"filename"`
	BusinessName string `json:"businessName,omitempty"`
	Reason       string `json:"reason"`
}

// CategorizedTransactionResponse is the per-transaction detail row.
type CategorizedTransactionResponse struct {
	TransactionID    string          `json:"transactionID"`
	AccountID        string          `json:"accountID"`
	BusinessName     string          `json:"businessName"`
	Date             string          `json:"date"`
	Description      string          `json:"description"`
	MerchantName     string          `json:"merchantName,omitempty"`
	DetailedCategory string          `json:"detailedCategory,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Label            string          `json:"category"`
}

// BatchTotalsResponse sums a run across businesses.
type BatchTotalsResponse struct {
	BusinessCount    int             `json:"businessCount"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalToProcess   decimal.Decimal `json:"totalToProcess"`
	FailureCount     int             `json:"failureCount"`
	TransactionCount int             `json:"transactionCount"`
}

// BatchProcessResponse is the full response of a processing run.
type BatchProcessResponse struct {
	Results      []CalculationResultResponse      `json:"results"`
	Failures     []BatchFailureResponse           `json:"failures"`
	Totals       BatchTotalsResponse              `json:"totals"`
	Transactions []CategorizedTransactionResponse `json:"transactions,omitempty"`
}

// HistoryRecordResponse is one persisted processing run.
type HistoryRecordResponse struct {
	RecordID         string          `json:"recordID"`
	BusinessName     string          `json:"businessName"`
	RunDate          string          `json:"runDate"`
	IncomeAmount     decimal.Decimal `json:"incomeAmount"`
	ProcessingAmount decimal.Decimal `json:"processingAmount"`
	PeriodStart      string          `json:"periodStart"`
	PeriodEnd        string          `json:"periodEnd"`
	TransactionCount int             `json:"transactionCount"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToCalculationResultResponse converts a domain CalculationResult.
func ToCalculationResultResponse(r *domain.CalculationResult) CalculationResultResponse {
	breakdown := make([]DailyIncomeResponse, len(r.DailyBreakdown))
	for i, day := range r.DailyBreakdown {
		breakdown[i] = DailyIncomeResponse{
			Date:   day.Date.Format(time.DateOnly),
			Income: day.Income,
		}
	}
	return CalculationResultResponse{
		BusinessName:      r.BusinessName,
		PeriodStart:       r.Period.Start.Format(time.DateOnly),
		PeriodEnd:         r.Period.End.Format(time.DateOnly),
		TotalIncome:       r.TotalIncome,
		PercentageApplied: r.PercentageApplied,
		AmountToProcess:   r.AmountToProcess,
		TransactionCount:  r.TransactionCount,
		DailyBreakdown:    breakdown,
	}
}

// ToCategorizedTransactionResponse converts one categorized transaction.
func ToCategorizedTransactionResponse(t domain.CategorizedTransaction) CategorizedTransactionResponse {
	return CategorizedTransactionResponse{
		TransactionID:    t.TransactionID,
		AccountID:        t.AccountID,
		BusinessName:     t.BusinessName,
		Date:             t.Date.Format(time.DateOnly),
		Description:      t.Description,
		MerchantName:     t.MerchantName,
		DetailedCategory: t.DetailedCategory,
		Amount:           t.Amount,
		Label:            string(t.Label),
	}
}

// ToBatchProcessResponse converts a BatchResult, optionally including the
// per-transaction detail rows.
func ToBatchProcessResponse(br *domain.BatchResult, includeTransactions bool) BatchProcessResponse {
	resp := BatchProcessResponse{
		Results:  make([]CalculationResultResponse, len(br.Results)),
		Failures: make([]BatchFailureResponse, len(br.Failures)),
	}

	totalIncome := decimal.Zero
	totalToProcess := decimal.Zero
	for i := range br.Results {
		resp.Results[i] = ToCalculationResultResponse(&br.Results[i])
		totalIncome = totalIncome.Add(br.Results[i].TotalIncome)
		totalToProcess = totalToProcess.Add(br.Results[i].AmountToProcess)
		resp.Totals.TransactionCount += br.Results[i].TransactionCount
	}
	for i, failure := range br.Failures {
		resp.Failures[i] = BatchFailureResponse{
			Filename:     failure.Filename,
			BusinessName: failure.BusinessName,
			Reason:       failure.Reason,
		}
	}
	resp.Totals.BusinessCount = len(br.Results)
	resp.Totals.FailureCount = len(br.Failures)
	resp.Totals.TotalIncome = totalIncome
	resp.Totals.TotalToProcess = totalToProcess

	if includeTransactions {
		resp.Transactions = make([]CategorizedTransactionResponse, len(br.Transactions))
		for i, txn := range br.Transactions {
			resp.Transactions[i] = ToCategorizedTransactionResponse(txn)
		}
	}
	return resp
}

// ToHistoryRecordResponse converts a persisted processing record.
func ToHistoryRecordResponse(rec *domain.ProcessingRecord) HistoryRecordResponse {
	return HistoryRecordResponse{
		RecordID:         rec.RecordID,
		BusinessName:     rec.BusinessName,
		RunDate:          rec.RunDate.Format(time.DateOnly),
		IncomeAmount:     rec.IncomeAmount,
		ProcessingAmount: rec.ProcessingAmount,
		PeriodStart:      rec.PeriodStart.Format(time.DateOnly),
		PeriodEnd:        rec.PeriodEnd.Format(time.DateOnly),
		TransactionCount: rec.TransactionCount,
		CreatedAt:        rec.CreatedAt,
	}
}

// ToListHistoryResponse converts a slice of processing records.
func ToListHistoryResponse(records []domain.ProcessingRecord) []HistoryRecordResponse {
	res := make([]HistoryRecordResponse, len(records))
	for i := range records {
		res[i] = ToHistoryRecordResponse(&records[i])
	}
	return res
}
