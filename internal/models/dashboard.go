package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecentTransactionLimit bounds the recent-transactions slice on the dashboard
const RecentTransactionLimit = 5

// MonthTotals holds income, expenses and their net for one calendar month
type MonthTotals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// NecessitySplit partitions current-month expenses by the necessity flag
type NecessitySplit struct {
	Necessary   decimal.Decimal `json:"necessary"`
	Unnecessary decimal.Decimal `json:"unnecessary"`
}

// DashboardSummary combines the current and previous calendar months with
// comparison metrics. TotalBalance sums the independently maintained account
// balances; it is never derived from transactions.
type DashboardSummary struct {
	CurrentMonth       MonthTotals              `json:"current_month"`
	LastMonth          MonthTotals              `json:"last_month"`
	IncomeChange       float64                  `json:"income_change"`
	ExpenseChange      float64                  `json:"expense_change"`
	TotalBalance       decimal.Decimal          `json:"total_balance"`
	Accounts           []Account                `json:"accounts"`
	SpendingByCategory []CategoryBreakdownItem  `json:"spending_by_category"`
	SpendingByAccount  []AccountPerformanceItem `json:"spending_by_account"`
	NecessitySplit     NecessitySplit           `json:"necessity_split"`
	BudgetUtilization  []BudgetUtilization      `json:"budget_utilization"`
	RecentTransactions []Transaction            `json:"recent_transactions"`
	GeneratedAt        time.Time                `json:"generated_at"`
}
