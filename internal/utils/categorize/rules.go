// Package categorize assigns each transaction one label from a closed set of
// financial categories using an ordered table of pattern rules. Rule order is
// precedence: the first matching rule wins, so reordering rules changes
// behavior and is part of the contract.
package categorize

import (
	"regexp"
	"sort"

	"github.com/fundline/mca_backend/internal/core/domain"
)

// MatchInput is the normalized view of a transaction that rule predicates
// test against. Text is the lower-cased concatenation of description,
// merchant name and raw category entries; DetailedCategory is the lower-cased,
// underscore-joined detailed category from the feed.
type MatchInput struct {
	Text             string
	DetailedCategory string
	IsCredit         bool // money into the business
	IsDebit          bool // money out of the business
}

// Rule pairs a category label with a predicate. Rules are immutable once the
// set is built and hold no state, so a RuleSet is safe for concurrent use.
type Rule struct {
	Name    string
	Label   domain.CategoryLabel
	Matches func(MatchInput) bool
}

var (
	// Known card processors and payment platforms whose settlements are
	// treated as trading income.
	processorPattern = regexp.MustCompile(`\b(stripe|sumup|zettle|square|take\s*payments|shopify|card\s+settlement|daily\s+takings|payout` +
		`|paypal|go\s*cardless|klarna|worldpay|izettle|ubereats|just\s*eat|deliveroo|uber|bolt` +
		`|fresha|treatwell|taskrabbit|terminal|pos\s+deposit|revolut` +
		`|capital\s+on\s+tap|capital\s+one|evo\s*payments?|tink|teya(\s+solutions)?|talech` +
		`|barclaycard|elavon|adyen|payzone|verifone|ingenico` +
		`|nmi|trust\s+payments?|global\s+payments?|checkout\.com|epdq|santander|handepay` +
		`|dojo|valitor|paypoint|mypos|moneris` +
		`|merchant\s+services|payment\s+sense)\b`)

	// YouLend settles both card takings and funding advances under near
	// identical references; funding keywords decide which.
	youLendPattern = regexp.MustCompile(`(you\s?lend|yl\s?ii|yl\s?ltd|yl\s?limited|yl\s?a\s?limited)`)
	fundingPattern = regexp.MustCompile(`(fnd|fund|funding)`)

	// Known MCA and SME lenders.
	lenderPattern = regexp.MustCompile(`\biwoca\b|\bcapify\b|\bfundbox\b|\bgot[\s\-]?capital\b|\bfunding[\s\-]?circle\b|` +
		`\bfleximize\b|\bmarketfinance\b|\bliberis\b|\besme[\s\-]?loans\b|\bthincats\b|` +
		`\bwhite[\s\-]?oak\b|\bgrowth[\s\-]?street\b|\bnucleus[\s\-]?commercial[\s\-]?finance\b|` +
		`\bultimate[\s\-]?finance\b|\bjust[\s\-]?cash[\s\-]?flow\b|\bboost[\s\-]?capital\b|` +
		`\bmerchant[\s\-]?money\b|\bcapital[\s\-]?on[\s\-]?tap\b|\bkriya\b|\buncapped\b|` +
		`\blendingcrowd\b|\bfolk2folk\b|\bfunding[\s\-]?tree\b|\bstart[\s\-]?up[\s\-]?loans\b|` +
		`\bbcrs[\s\-]?business[\s\-]?loans\b|\bbusiness[\s\-]?enterprise[\s\-]?fund\b|` +
		`\bswig[\s\-]?finance\b|\benterprise[\s\-]?answers\b|\blet's[\s\-]?do[\s\-]?business[\s\-]?finance\b|` +
		`\bfinance[\s\-]?for[\s\-]?enterprise\b|\bdsl[\s\-]?business[\s\-]?finance\b|` +
		`\bbizcap[\s\-]?uk\b|\bsigma[\s\-]?lending\b|\bbizlend[\s\-]?ltd\b`)

	loanWordPattern      = regexp.MustCompile(`\bloans?\b`)
	repaymentPattern     = regexp.MustCompile(`\bloan[\s\-]?repayment\b|\bdebt[\s\-]?repayment\b|\binstal?ments?\b|\bpay[\s\-]+back\b|\brepay(ing|ment|ed)?\b`)
	saasExpensePattern   = regexp.MustCompile(`facebook|facebk|fb\.me|outlook|office365|microsoft|google\s+ads|linkedin|twitter|adobe|zoom|slack|shopify|wix|squarespace|mailchimp|hubspot`)
	loanPaymentHintWords = regexp.MustCompile(`loan|debt|repay|finance|lending|credit|iwoca|capify|fundbox`)
)

// detailedCategoryMap maps exact feed detailed-category keys to labels.
// Consulted only after the name-based rules above it in the rule order.
var detailedCategoryMap = map[string]domain.CategoryLabel{
	"income_wages":                                 domain.CategoryIncome,
	"income_other_income":                          domain.CategoryIncome,
	"income_dividends":                             domain.CategorySpecialInflow,
	"income_interest_earned":                       domain.CategorySpecialInflow,
	"income_retirement_pension":                    domain.CategorySpecialInflow,
	"income_unemployment":                          domain.CategorySpecialInflow,
	"transfer_in_cash_advances_and_loans":          domain.CategoryLoan,
	"transfer_in_investment_and_retirement_funds":  domain.CategorySpecialInflow,
	"transfer_in_savings":                          domain.CategorySpecialInflow,
	"transfer_in_account_transfer":                 domain.CategorySpecialInflow,
	"transfer_in_other_transfer_in":                domain.CategorySpecialInflow,
	"transfer_in_deposit":                          domain.CategorySpecialInflow,
	"transfer_out_investment_and_retirement_funds": domain.CategorySpecialOutflow,
	"transfer_out_savings":                         domain.CategorySpecialOutflow,
	"transfer_out_other_transfer_out":              domain.CategorySpecialOutflow,
	"transfer_out_withdrawal":                      domain.CategorySpecialOutflow,
	"transfer_out_account_transfer":                domain.CategorySpecialOutflow,
	"bank_fees_insufficient_funds":                 domain.CategoryFailedPayment,
	"bank_fees_late_payment":                       domain.CategoryFailedPayment,
}

// broadCategoryPrefixes are the feed's broad buckets that fall through to
// Expense when nothing more specific matched and money left the business.
var broadCategoryPrefixes = []string{
	"bank_fees_", "entertainment_", "food_and_drink_", "general_merchandise_",
	"general_services_", "government_and_non_profit_", "home_improvement_",
	"medical_", "personal_care_", "rent_and_utilities_", "transportation_", "travel_",
}

// defaultRules builds the ordered rule table. Earlier rules take precedence:
// a credit from a known lender that also looks like a transfer is a Loan,
// because the lender rule sits above the detailed-category rules.
func defaultRules() []Rule {
	rules := []Rule{
		{
			Name:  "processor_settlement",
			Label: domain.CategoryIncome,
			Matches: func(in MatchInput) bool {
				return in.IsCredit && processorPattern.MatchString(in.Text)
			},
		},
		{
			Name:  "youlend_funding",
			Label: domain.CategoryLoan,
			Matches: func(in MatchInput) bool {
				return in.IsCredit && youLendPattern.MatchString(in.Text) && fundingPattern.MatchString(in.Text)
			},
		},
		{
			Name:  "youlend_settlement",
			Label: domain.CategoryIncome,
			Matches: func(in MatchInput) bool {
				return in.IsCredit && youLendPattern.MatchString(in.Text)
			},
		},
		{
			Name:  "lender_advance",
			Label: domain.CategoryLoan,
			Matches: func(in MatchInput) bool {
				return in.IsCredit && (lenderPattern.MatchString(in.Text) || loanWordPattern.MatchString(in.Text))
			},
		},
		{
			Name:  "lender_repayment",
			Label: domain.CategoryDebtRepayment,
			Matches: func(in MatchInput) bool {
				return in.IsDebit && (lenderPattern.MatchString(in.Text) || repaymentPattern.MatchString(in.Text))
			},
		},
		{
			Name:  "business_saas_expense",
			Label: domain.CategoryExpense,
			Matches: func(in MatchInput) bool {
				return saasExpensePattern.MatchString(in.Text)
			},
		},
		{
			// The feed over-reports loan_payments_*; trust it only when the
			// transaction text itself mentions lending.
			Name:  "loan_payment_category",
			Label: domain.CategoryDebtRepayment,
			Matches: func(in MatchInput) bool {
				return hasPrefix(in.DetailedCategory, "loan_payments_") && loanPaymentHintWords.MatchString(in.Text)
			},
		},
	}

	// One rule per exact detailed-category key. The keys are disjoint, so
	// their relative order is irrelevant, but sorted construction keeps the
	// table deterministic.
	keys := make([]string, 0, len(detailedCategoryMap))
	for key := range detailedCategoryMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		key := key
		rules = append(rules, Rule{
			Name:  "detailed_category_" + key,
			Label: detailedCategoryMap[key],
			Matches: func(in MatchInput) bool {
				return in.DetailedCategory == key
			},
		})
	}

	rules = append(rules,
		Rule{
			Name:  "broad_category_expense",
			Label: domain.CategoryExpense,
			Matches: func(in MatchInput) bool {
				if !in.IsDebit {
					return false
				}
				for _, prefix := range broadCategoryPrefixes {
					if hasPrefix(in.DetailedCategory, prefix) {
						return true
					}
				}
				return false
			},
		},
		Rule{
			Name:  "outflow_fallback",
			Label: domain.CategoryExpense,
			Matches: func(in MatchInput) bool {
				return in.IsDebit
			},
		},
	)

	return rules
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
