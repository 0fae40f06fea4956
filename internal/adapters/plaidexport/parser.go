// Package plaidexport parses Plaid-style JSON transaction exports into domain
// records. It is the ingestion boundary: malformed records are rejected here,
// and transaction amounts are sign-normalized here so the rest of the system
// only ever sees "money in is positive".
package plaidexport

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fundline/mca_backend/internal/apperrors"
	"github.com/fundline/mca_backend/internal/core/domain"
	"github.com/fundline/mca_backend/internal/utils/bizname"
	"github.com/shopspring/decimal"
)

type rawBalances struct {
	Available *decimal.Decimal `json:"available"`
	Current   *decimal.Decimal `json:"current"`
}

type rawAccount struct {
	AccountID string      `json:"account_id"`
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Subtype   string      `json:"subtype"`
	Balances  rawBalances `json:"balances"`
}

type rawTransaction struct {
	TransactionID    string           `json:"transaction_id"`
	AccountID        string           `json:"account_id"`
	Date             string           `json:"date"`
	Name             string           `json:"name"`
	MerchantName     string           `json:"merchant_name"`
	Category         []string         `json:"category"`
	DetailedCategory string           `json:"personal_finance_category.detailed"`
	Amount           *decimal.Decimal `json:"amount"`
}

type rawExport struct {
	Accounts     []rawAccount     `json:"accounts"`
	Transactions []rawTransaction `json:"transactions"`
}

// Parse decodes one export file. The export must carry at least one account
// and a transactions array; any transaction missing a required field makes
// the whole file fail with a *apperrors.ParseError naming it, so a bad file
// never silently contributes partial data to a batch.
func Parse(filename string, r io.Reader) (*domain.TransactionExport, error) {
	var raw rawExport
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, apperrors.NewParseError(filename, fmt.Errorf("invalid JSON: %w", err))
	}
	if len(raw.Accounts) == 0 {
		return nil, apperrors.NewParseError(filename, fmt.Errorf("export contains no accounts"))
	}

	accounts := make([]domain.Account, len(raw.Accounts))
	for i, acct := range raw.Accounts {
		if acct.AccountID == "" {
			return nil, apperrors.NewParseError(filename, fmt.Errorf("account %d is missing account_id", i))
		}
		accounts[i] = toDomainAccount(acct)
	}

	transactions := make([]domain.Transaction, 0, len(raw.Transactions))
	for i, txn := range raw.Transactions {
		parsed, err := toDomainTransaction(txn)
		if err != nil {
			return nil, apperrors.NewParseError(filename, fmt.Errorf("transaction %d: %w", i, err))
		}
		transactions = append(transactions, parsed)
	}

	return &domain.TransactionExport{
		Filename:     filename,
		BusinessName: deriveBusinessName(filename, accounts),
		Accounts:     accounts,
		Transactions: transactions,
	}, nil
}

func toDomainAccount(acct rawAccount) domain.Account {
	account := domain.Account{
		AccountID: acct.AccountID,
		Name:      acct.Name,
		Type:      acct.Type,
		Subtype:   acct.Subtype,
	}
	if acct.Balances.Available != nil {
		account.Balances.Available = *acct.Balances.Available
	}
	if acct.Balances.Current != nil {
		account.Balances.Current = *acct.Balances.Current
	}
	return account
}

func toDomainTransaction(txn rawTransaction) (domain.Transaction, error) {
	switch {
	case txn.TransactionID == "":
		return domain.Transaction{}, fmt.Errorf("missing transaction_id")
	case txn.AccountID == "":
		return domain.Transaction{}, fmt.Errorf("missing account_id")
	case txn.Name == "":
		return domain.Transaction{}, fmt.Errorf("missing name")
	case txn.Amount == nil:
		return domain.Transaction{}, fmt.Errorf("missing amount")
	}

	date, err := time.ParseInLocation(time.DateOnly, txn.Date, time.UTC)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid date %q: %w", txn.Date, err)
	}

	return domain.Transaction{
		TransactionID:    txn.TransactionID,
		AccountID:        txn.AccountID,
		Date:             date,
		Description:      txn.Name,
		MerchantName:     txn.MerchantName,
		RawCategory:      txn.Category,
		DetailedCategory: txn.DetailedCategory,
		// Plaid reports outflows positive. Flip so inflows are positive.
		Amount: txn.Amount.Neg(),
	}, nil
}

// deriveBusinessName prefers the cleaned name of the export's first account,
// falling back to the filename when accounts carry no usable name.
func deriveBusinessName(filename string, accounts []domain.Account) string {
	for _, acct := range accounts {
		if name := bizname.FromAccountName(acct.Name); name != "" {
			return name
		}
	}
	return bizname.FromFilename(filename)
}
