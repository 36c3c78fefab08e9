package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsRateTarget is the savings-rate policy target, in percent
const SavingsRateTarget = 20

// MonthlyTrendPoint holds income and expense totals for one calendar month.
// Month is formatted "Jan 2006".
type MonthlyTrendPoint struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategoryBreakdownItem is one category's expense total
type CategoryBreakdownItem struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// AccountPerformanceItem aggregates income and expenses per account
type AccountPerformanceItem struct {
	Name     string          `json:"name"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// DailyPatternPoint is one day's expense total within the trailing window.
// Date uses the ISO day format so lexicographic order is chronological order,
// including across year boundaries.
type DailyPatternPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// SavingsRatePoint is the rounded savings rate for one month, in percent,
// alongside the policy target.
type SavingsRatePoint struct {
	Month  string `json:"month"`
	Rate   int64  `json:"rate"`
	Target int64  `json:"target"`
}

// CashFlowPoint is one month's totals plus a running balance accumulated in
// chronological order starting from zero. The balance is a relative cumulative
// net figure, not an account balance.
type CashFlowPoint struct {
	Date     string          `json:"date"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// BudgetUtilization pairs a budget with its current-month spending.
// Percentage is clamped to [0, 100] for display; RawRatio keeps the
// unclamped spent/limit ratio for over-budget alerting.
type BudgetUtilization struct {
	Budget     Budget          `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Percentage float64         `json:"percentage"`
	RawRatio   float64         `json:"raw_ratio"`
}

// IsOverBudget returns true when spending exceeded the monthly limit
func (bu *BudgetUtilization) IsOverBudget() bool {
	return bu.RawRatio > 1
}

// AnalyticsSummary holds the headline figures for the analytics period
type AnalyticsSummary struct {
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetSavings         decimal.Decimal `json:"net_savings"`
	SavingsPercent     float64         `json:"savings_percent"`
	AvgMonthlyIncome   decimal.Decimal `json:"avg_monthly_income"`
	AvgMonthlyExpenses decimal.Decimal `json:"avg_monthly_expenses"`
	IncomeChange       float64         `json:"income_change"`
	ExpenseChange      float64         `json:"expense_change"`
}

// AnalyticsReport is the full Aggregation Engine output for one user and
// date window
type AnalyticsReport struct {
	StartDate          time.Time                `json:"start_date"`
	EndDate            time.Time                `json:"end_date"`
	Summary            AnalyticsSummary         `json:"summary"`
	MonthlyTrend       []MonthlyTrendPoint      `json:"monthly_trend"`
	CategoryBreakdown  []CategoryBreakdownItem  `json:"category_breakdown"`
	AccountPerformance []AccountPerformanceItem `json:"account_performance"`
	DailyPattern       []DailyPatternPoint      `json:"daily_pattern"`
	SavingsRate        []SavingsRatePoint       `json:"savings_rate"`
	CashFlow           []CashFlowPoint          `json:"cash_flow"`
	BudgetUtilization  []BudgetUtilization      `json:"budget_utilization"`
	GeneratedAt        time.Time                `json:"generated_at"`
}
