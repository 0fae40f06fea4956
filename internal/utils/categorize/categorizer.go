package categorize

import (
	"strings"

	"github.com/fundline/mca_backend/internal/core/domain"
)

// RuleSet is an immutable ordered rule table. Build it once at startup and
// share it; Categorize is a pure function of the transaction and the table.
type RuleSet struct {
	rules []Rule
}

// DefaultRuleSet returns the standard rule table.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{rules: defaultRules()}
}

// NewRuleSet builds a rule set from a custom ordered rule list.
func NewRuleSet(rules []Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// Rules returns the table in precedence order.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// Categorize assigns exactly one label to a transaction. It never fails:
// missing or empty fields simply don't match, and a transaction no rule
// matches degrades to Uncategorised. Matching is case-insensitive.
func (rs *RuleSet) Categorize(txn domain.Transaction) domain.CategoryLabel {
	in := newMatchInput(txn)
	for _, rule := range rs.rules {
		if rule.Matches(in) {
			return rule.Label
		}
	}
	return domain.CategoryUncategorised
}

// CategorizeAll labels a transaction slice, attributing each to business.
func (rs *RuleSet) CategorizeAll(txns []domain.Transaction, business, filename string) []domain.CategorizedTransaction {
	out := make([]domain.CategorizedTransaction, len(txns))
	for i, txn := range txns {
		out[i] = domain.CategorizedTransaction{
			Transaction:  txn,
			Label:        rs.Categorize(txn),
			BusinessName: business,
			Filename:     filename,
		}
	}
	return out
}

func newMatchInput(txn domain.Transaction) MatchInput {
	parts := make([]string, 0, 2+len(txn.RawCategory))
	parts = append(parts, txn.Description, txn.MerchantName)
	parts = append(parts, txn.RawCategory...)

	detailed := strings.TrimSpace(strings.ToLower(txn.DetailedCategory))
	detailed = strings.ReplaceAll(detailed, " ", "_")

	return MatchInput{
		Text:             strings.ToLower(strings.Join(parts, " ")),
		DetailedCategory: detailed,
		IsCredit:         txn.IsInflow(),
		IsDebit:          txn.IsOutflow(),
	}
}
