package domain

import "github.com/shopspring/decimal"

// BusinessRecord holds the operator-configured processing percentage for a
// business. Name is the canonical business identity and the unique key.
type BusinessRecord struct {
	BusinessID string          `json:"businessID"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"processingPercentage"` // in [0, 100]
	AuditFields
}
