package domain

import "github.com/shopspring/decimal"

// AccountBalances carries the balances reported by the source feed.
// Balances are display context only; the core never derives totals from them.
type AccountBalances struct {
	Available decimal.Decimal `json:"available"`
	Current   decimal.Decimal `json:"current"`
}

// Account describes a bank account present in a transaction export.
type Account struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Subtype   string          `json:"subtype"`
	Balances  AccountBalances `json:"balances"`
}
