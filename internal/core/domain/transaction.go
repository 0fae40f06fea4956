package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single parsed bank feed record. It is immutable once
// parsed; categorization never mutates it.
//
// Amount is sign-normalized at the ingestion boundary so that money flowing
// into the business is positive and money flowing out is negative,
// independent of the source feed's convention.
type Transaction struct {
	TransactionID    string          `json:"transactionID"`
	AccountID        string          `json:"accountID"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`  // feed "name" field
	MerchantName     string          `json:"merchantName"` // may be empty
	RawCategory      []string        `json:"rawCategory"`  // broad->narrow taxonomy from the feed
	DetailedCategory string          `json:"detailedCategory"`
	Amount           decimal.Decimal `json:"amount"` // inflow positive, outflow negative
}

// IsInflow reports whether money moved into the business.
func (t Transaction) IsInflow() bool {
	return t.Amount.IsPositive()
}

// IsOutflow reports whether money moved out of the business.
func (t Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// CategorizedTransaction pairs a transaction with its assigned label and the
// business it was attributed to, for detail display and export.
type CategorizedTransaction struct {
	Transaction
	Label        CategoryLabel `json:"label"`
	BusinessName string        `json:"businessName"`
	Filename     string        `json:"filename"`
}
