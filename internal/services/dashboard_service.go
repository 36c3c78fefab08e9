package services

import (
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

type dashboardService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	budgetRepo      repositories.BudgetRepositoryInterface
	metrics         MetricsRecorderInterface
	now             func() time.Time
}

// NewDashboardService creates the dashboard summarizer service
func NewDashboardService(
	transactionRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	metrics MetricsRecorderInterface,
) DashboardServiceInterface {
	return &dashboardService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		budgetRepo:      budgetRepo,
		metrics:         metrics,
		now:             time.Now,
	}
}

// GetSummary assembles the dashboard for the current calendar month alongside
// the previous one. Current-month transactions arrive newest-first from the
// repository, so the recent slice is a plain prefix.
func (s *dashboardService) GetSummary(userID uuid.UUID) (*models.DashboardSummary, error) {
	started := s.now()
	now := s.now()
	// anchor to the first of the month so short months never shift the
	// previous period back into the current one
	lastMonth := startOfMonth(now).AddDate(0, -1, 0)

	currentTxns, err := s.transactionRepo.GetByMonth(userID, now)
	if err != nil {
		slog.Error("failed to fetch current month transactions",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to fetch current month transactions: %w", err)
	}

	lastTxns, err := s.transactionRepo.GetByMonth(userID, lastMonth)
	if err != nil {
		slog.Error("failed to fetch previous month transactions",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to fetch previous month transactions: %w", err)
	}

	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		slog.Error("failed to fetch accounts for dashboard",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	totalBalance, err := s.accountRepo.GetTotalBalanceByUserID(userID)
	if err != nil {
		slog.Error("failed to fetch total balance",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to fetch total balance: %w", err)
	}

	budgets, err := s.budgetRepo.GetByUserID(userID)
	if err != nil {
		slog.Error("failed to fetch budgets for dashboard",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to fetch budgets: %w", err)
	}

	current := monthTotals(currentTxns)
	previous := monthTotals(lastTxns)

	recent := currentTxns
	if len(recent) > models.RecentTransactionLimit {
		recent = recent[:models.RecentTransactionLimit]
	}

	summary := &models.DashboardSummary{
		CurrentMonth:       current,
		LastMonth:          previous,
		IncomeChange:       percentChange(current.Income, previous.Income),
		ExpenseChange:      percentChange(current.Expenses, previous.Expenses),
		TotalBalance:       totalBalance,
		Accounts:           accounts,
		SpendingByCategory: categoryBreakdown(currentTxns),
		SpendingByAccount:  accountPerformance(currentTxns),
		NecessitySplit:     necessitySplit(currentTxns),
		BudgetUtilization:  budgetUtilization(budgets, currentTxns, now),
		RecentTransactions: recent,
		GeneratedAt:        now,
	}

	if s.metrics != nil {
		s.metrics.RecordAnalyticsRequest("dashboard", s.now().Sub(started))
	}

	return summary, nil
}

// monthTotals reduces one month of transactions to income, expenses and net
func monthTotals(transactions []models.Transaction) models.MonthTotals {
	income, expenses := sumByType(transactions)
	return models.MonthTotals{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}
}

// necessitySplit partitions expense totals by the necessity flag
func necessitySplit(transactions []models.Transaction) models.NecessitySplit {
	var split models.NecessitySplit
	for i := range transactions {
		t := &transactions[i]
		if !t.IsExpense() {
			continue
		}
		if t.IsNecessary {
			split.Necessary = split.Necessary.Add(t.Amount)
		} else {
			split.Unnecessary = split.Unnecessary.Add(t.Amount)
		}
	}
	return split
}
