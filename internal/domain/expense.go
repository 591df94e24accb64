package domain

import (
	"strings"
)

// ExpenseCategories is the fixed set offered when logging an expense
var ExpenseCategories = []string{
	"Office Rent",
	"Software Subscriptions",
	"Employee Salaries",
	"Marketing/Ads",
	"Freelancer Payouts",
	"Utilities (Internet/Power)",
	"Equipment",
	"Travel/Food",
	"Miscellaneous",
}

// IsExpenseCategory reports whether name is one of ExpenseCategories
func IsExpenseCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	return false
}

// MatchExpenseCategory resolves a case-insensitive category or unique prefix
func MatchExpenseCategory(input string) (string, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", false
	}
	var match string
	for _, c := range ExpenseCategories {
		lc := strings.ToLower(c)
		if lc == in {
			return c, true
		}
		if strings.HasPrefix(lc, in) {
			if match != "" {
				return "", false
			}
			match = c
		}
	}
	return match, match != ""
}

type Expense struct {
	ID       string  `json:"id"`
	Title    string  `json:"title" validate:"required"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Category string  `json:"category" validate:"expense_category"`
	Date     Date    `json:"date"`
	Notes    string  `json:"notes,omitempty"`
}

// NewExpense creates an expense dated today
func NewExpense(title string, amount float64, category string) *Expense {
	return &Expense{
		ID:       NewID(),
		Title:    strings.TrimSpace(title),
		Amount:   amount,
		Category: category,
		Date:     Today(),
	}
}

// Validate returns an error if the expense is invalid
func (e *Expense) Validate() error {
	return validateStruct("expense", e)
}
