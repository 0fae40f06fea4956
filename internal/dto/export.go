package dto

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/fundline/mca_backend/internal/core/domain"
)

// WriteSummaryCSV writes the per-business summary of a run as CSV.
func WriteSummaryCSV(w io.Writer, results []domain.CalculationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"business_name", "period_start", "period_end", "total_income", "processing_percentage", "amount_to_process", "transaction_count"}); err != nil {
		return err
	}
	for i := range results {
		r := &results[i]
		record := []string{
			r.BusinessName,
			r.Period.Start.Format(time.DateOnly),
			r.Period.End.Format(time.DateOnly),
			r.TotalIncome.StringFixed(2),
			r.PercentageApplied.String(),
			r.AmountToProcess.StringFixed(2),
			strconv.Itoa(r.TransactionCount),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTransactionsCSV writes the per-transaction detail of a run as CSV.
func WriteTransactionsCSV(w io.Writer, txns []domain.CategorizedTransaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"business_name", "filename", "transaction_id", "account_id", "date", "description", "merchant_name", "detailed_category", "amount", "category"}); err != nil {
		return err
	}
	for _, t := range txns {
		record := []string{
			t.BusinessName,
			t.Filename,
			t.TransactionID,
			t.AccountID,
			t.Date.Format(time.DateOnly),
			t.Description,
			t.MerchantName,
			t.DetailedCategory,
			t.Amount.StringFixed(2),
			string(t.Label),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistoryCSV writes processing history records as CSV.
func WriteHistoryCSV(w io.Writer, records []domain.ProcessingRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_date", "business_name", "income_amount", "processing_amount", "period_start", "period_end", "transaction_count"}); err != nil {
		return err
	}
	for i := range records {
		rec := &records[i]
		row := []string{
			rec.RunDate.Format(time.DateOnly),
			rec.BusinessName,
			rec.IncomeAmount.StringFixed(2),
			rec.ProcessingAmount.StringFixed(2),
			rec.PeriodStart.Format(time.DateOnly),
			rec.PeriodEnd.Format(time.DateOnly),
			strconv.Itoa(rec.TransactionCount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
