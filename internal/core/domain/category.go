package domain

// CategoryLabel is the classification outcome assigned to a transaction.
// The set is closed: every transaction receives exactly one of these labels.
type CategoryLabel string

const (
	CategoryIncome         CategoryLabel = "Income"
	CategorySpecialInflow  CategoryLabel = "Special Inflow"
	CategoryLoan           CategoryLabel = "Loan"
	CategoryDebtRepayment  CategoryLabel = "Debt Repayment"
	CategoryExpense        CategoryLabel = "Expense"
	CategorySpecialOutflow CategoryLabel = "Special Outflow"
	CategoryFailedPayment  CategoryLabel = "Failed Payment"
	CategoryUncategorised  CategoryLabel = "Uncategorised"
)

// AllCategoryLabels lists every member of the closed enumeration.
var AllCategoryLabels = []CategoryLabel{
	CategoryIncome,
	CategorySpecialInflow,
	CategoryLoan,
	CategoryDebtRepayment,
	CategoryExpense,
	CategorySpecialOutflow,
	CategoryFailedPayment,
	CategoryUncategorised,
}

// Valid reports whether l is a member of the closed enumeration.
func (l CategoryLabel) Valid() bool {
	for _, label := range AllCategoryLabels {
		if l == label {
			return true
		}
	}
	return false
}

// IsRevenue reports whether amounts carrying this label count towards the
// financing-eligible income total.
func (l CategoryLabel) IsRevenue() bool {
	return l == CategoryIncome || l == CategorySpecialInflow
}
