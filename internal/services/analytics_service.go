package services

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// monthKeyLayout is the stable month-year key for all monthly series
	monthKeyLayout = "Jan 2006"

	// DailyPatternWindowDays is the trailing window for the daily series
	DailyPatternWindowDays = 30

	DefaultAnalyticsMonths = 6
	MaxAnalyticsMonths     = 12
)

type analyticsService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	budgetRepo      repositories.BudgetRepositoryInterface
	metrics         MetricsRecorderInterface
	now             func() time.Time
}

// NewAnalyticsService creates the aggregation engine service
func NewAnalyticsService(
	transactionRepo repositories.TransactionRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	metrics MetricsRecorderInterface,
) AnalyticsServiceInterface {
	return &analyticsService{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		metrics:         metrics,
		now:             time.Now,
	}
}

// GetAnalytics fetches one consistent snapshot of the user's transactions and
// budgets, then derives every series in memory. The repository returns
// transactions date-ascending, which the monthly series rely on.
func (s *analyticsService) GetAnalytics(userID uuid.UUID, months int) (*models.AnalyticsReport, error) {
	started := s.now()

	if months <= 0 {
		months = DefaultAnalyticsMonths
	}
	if months > MaxAnalyticsMonths {
		months = MaxAnalyticsMonths
	}

	now := s.now()
	endDate := endOfMonth(now)
	// step back from the first of the month; stepping from the current day
	// overshoots when an earlier month is shorter
	startDate := startOfMonth(now).AddDate(0, -(months - 1), 0)

	transactions, err := s.transactionRepo.GetByDateRange(userID, startDate, endDate)
	if err != nil {
		slog.Error("failed to fetch transactions for analytics",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	budgets, err := s.budgetRepo.GetByUserID(userID)
	if err != nil {
		slog.Error("failed to fetch budgets for analytics",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to fetch budgets: %w", err)
	}

	trend := monthlyTrend(transactions)

	report := &models.AnalyticsReport{
		StartDate:          startDate,
		EndDate:            endDate,
		Summary:            summarize(transactions, trend),
		MonthlyTrend:       trend,
		CategoryBreakdown:  categoryBreakdown(transactions),
		AccountPerformance: accountPerformance(transactions),
		DailyPattern:       dailyPattern(transactions, now, DailyPatternWindowDays),
		SavingsRate:        savingsRate(transactions),
		CashFlow:           cashFlow(transactions),
		BudgetUtilization:  budgetUtilization(budgets, transactions, now),
		GeneratedAt:        now,
	}

	if s.metrics != nil {
		s.metrics.RecordAnalyticsRequest("analytics", s.now().Sub(started))
	}

	slog.Info("analytics report generated",
		"user_id", userID,
		"months", months,
		"transaction_count", len(transactions))

	return report, nil
}

// monthlyTrend groups transactions by calendar month, summing income and
// expenses separately. Months appear in first-occurrence order, so callers
// must supply date-ascending input to get calendar order.
func monthlyTrend(transactions []models.Transaction) []models.MonthlyTrendPoint {
	totals := make(map[string]*models.MonthlyTrendPoint)
	order := make([]string, 0)

	for i := range transactions {
		t := &transactions[i]
		key := t.Date.Format(monthKeyLayout)

		point, exists := totals[key]
		if !exists {
			point = &models.MonthlyTrendPoint{Month: key}
			totals[key] = point
			order = append(order, key)
		}

		if t.IsIncome() {
			point.Income = point.Income.Add(t.Amount)
		} else if t.IsExpense() {
			point.Expenses = point.Expenses.Add(t.Amount)
		}
	}

	result := make([]models.MonthlyTrendPoint, 0, len(order))
	for _, key := range order {
		result = append(result, *totals[key])
	}
	return result
}

// categoryBreakdown sums expense amounts per category name, sorted descending
// by value. Ties keep first-encountered order.
func categoryBreakdown(transactions []models.Transaction) []models.CategoryBreakdownItem {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for i := range transactions {
		t := &transactions[i]
		if !t.IsExpense() {
			continue
		}

		name := t.CategoryName()
		if _, exists := totals[name]; !exists {
			order = append(order, name)
		}
		totals[name] = totals[name].Add(t.Amount)
	}

	result := make([]models.CategoryBreakdownItem, 0, len(order))
	for _, name := range order {
		result = append(result, models.CategoryBreakdownItem{Name: name, Value: totals[name]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Value.GreaterThan(result[j].Value)
	})
	return result
}

// accountPerformance sums income and expenses per account name; net is
// income minus expenses.
func accountPerformance(transactions []models.Transaction) []models.AccountPerformanceItem {
	totals := make(map[string]*models.AccountPerformanceItem)
	order := make([]string, 0)

	for i := range transactions {
		t := &transactions[i]
		name := t.AccountName()

		item, exists := totals[name]
		if !exists {
			item = &models.AccountPerformanceItem{Name: name}
			totals[name] = item
			order = append(order, name)
		}

		if t.IsIncome() {
			item.Income = item.Income.Add(t.Amount)
		} else if t.IsExpense() {
			item.Expenses = item.Expenses.Add(t.Amount)
		}
	}

	result := make([]models.AccountPerformanceItem, 0, len(order))
	for _, name := range order {
		item := *totals[name]
		item.Net = item.Income.Sub(item.Expenses)
		result = append(result, item)
	}
	return result
}

// dailyPattern sums expenses per calendar day within the trailing window,
// ordered by day. Days are keyed by the actual date, not a truncated display
// string, so ordering holds across month and year boundaries.
func dailyPattern(transactions []models.Transaction, now time.Time, windowDays int) []models.DailyPatternPoint {
	cutoff := models.TruncateToDay(now.AddDate(0, 0, -windowDays))
	totals := make(map[string]decimal.Decimal)

	for i := range transactions {
		t := &transactions[i]
		if !t.IsExpense() || t.Date.Before(cutoff) {
			continue
		}

		key := t.Date.Format(models.TransactionDateLayout)
		totals[key] = totals[key].Add(t.Amount)
	}

	result := make([]models.DailyPatternPoint, 0, len(totals))
	for key, amount := range totals {
		result = append(result, models.DailyPatternPoint{Date: key, Amount: amount})
	}

	// ISO day keys sort chronologically
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// savingsRate derives each month's rounded savings rate in percent. Months
// with no income report 0, never a division error.
func savingsRate(transactions []models.Transaction) []models.SavingsRatePoint {
	trend := monthlyTrend(transactions)

	result := make([]models.SavingsRatePoint, 0, len(trend))
	for _, point := range trend {
		var rate int64
		if point.Income.IsPositive() {
			rate = point.Income.Sub(point.Expenses).
				Div(point.Income).
				Mul(decimal.NewFromInt(100)).
				Round(0).IntPart()
		}
		result = append(result, models.SavingsRatePoint{
			Month:  point.Month,
			Rate:   rate,
			Target: models.SavingsRateTarget,
		})
	}
	return result
}

// cashFlow produces per-month totals plus a running balance accumulated in
// chronological iteration order starting from zero. The balance is a relative
// cumulative net figure; it is never reset to an account's stored balance.
func cashFlow(transactions []models.Transaction) []models.CashFlowPoint {
	trend := monthlyTrend(transactions)

	result := make([]models.CashFlowPoint, 0, len(trend))
	balance := decimal.Zero
	for _, point := range trend {
		balance = balance.Add(point.Income.Sub(point.Expenses))
		result = append(result, models.CashFlowPoint{
			Date:     point.Month,
			Income:   point.Income,
			Expenses: point.Expenses,
			Balance:  balance,
		})
	}
	return result
}

// budgetUtilization pairs each budget with its spending in the calendar month
// containing currentMonth. Percentage is clamped to [0, 100]; RawRatio keeps
// the unclamped ratio for over-budget alerts.
func budgetUtilization(budgets []models.Budget, transactions []models.Transaction, currentMonth time.Time) []models.BudgetUtilization {
	result := make([]models.BudgetUtilization, 0, len(budgets))

	for _, budget := range budgets {
		spent := decimal.Zero
		for i := range transactions {
			t := &transactions[i]
			if t.IsExpense() && t.CategoryID == budget.CategoryID && sameMonth(t.Date, currentMonth) {
				spent = spent.Add(t.Amount)
			}
		}

		var percentage, rawRatio float64
		if budget.MonthlyLimit.IsPositive() {
			rawRatio = spent.Div(budget.MonthlyLimit).InexactFloat64()
			percentage = rawRatio * 100
			if percentage > 100 {
				percentage = 100
			}
		}

		result = append(result, models.BudgetUtilization{
			Budget:     budget,
			Spent:      spent,
			Percentage: percentage,
			RawRatio:   rawRatio,
		})
	}
	return result
}

// sumByType totals transaction amounts partitioned by type
func sumByType(transactions []models.Transaction) (income, expenses decimal.Decimal) {
	for i := range transactions {
		t := &transactions[i]
		if t.IsIncome() {
			income = income.Add(t.Amount)
		} else if t.IsExpense() {
			expenses = expenses.Add(t.Amount)
		}
	}
	return income, expenses
}

// percentChange reports the percentage delta from previous to current.
// A non-positive previous value always yields 0, never a division error.
func percentChange(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	return current.Sub(previous).Div(previous).InexactFloat64() * 100
}

// summarize derives the headline figures for the analytics period
func summarize(transactions []models.Transaction, trend []models.MonthlyTrendPoint) models.AnalyticsSummary {
	income, expenses := sumByType(transactions)
	net := income.Sub(expenses)

	var savingsPercent float64
	if income.IsPositive() {
		savingsPercent = net.Div(income).InexactFloat64() * 100
	}

	monthCount := int64(len(trend))
	if monthCount == 0 {
		monthCount = 1
	}
	divisor := decimal.NewFromInt(monthCount)

	summary := models.AnalyticsSummary{
		TotalIncome:        income,
		TotalExpenses:      expenses,
		NetSavings:         net,
		SavingsPercent:     savingsPercent,
		AvgMonthlyIncome:   income.DivRound(divisor, 2),
		AvgMonthlyExpenses: expenses.DivRound(divisor, 2),
	}

	if len(trend) >= 2 {
		current := trend[len(trend)-1]
		previous := trend[len(trend)-2]
		summary.IncomeChange = percentChange(current.Income, previous.Income)
		summary.ExpenseChange = percentChange(current.Expenses, previous.Expenses)
	}

	return summary
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, -1)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
