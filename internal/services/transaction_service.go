package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultTransactionPageSize = 20
	MaxTransactionPageSize     = 100
)

var (
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNegativeAmount         = errors.New("transaction amount must not be negative")
	ErrInvalidDate            = errors.New("invalid transaction date")
)

// TransactionService handles transaction business logic. Every write that
// changes a transaction's contribution also moves the owning account's
// balance by the same signed delta, in one database transaction, keeping
// the two in step.
type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// Create records a transaction and applies its signed amount to the account
// balance
func (s *TransactionService) Create(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	if err := s.checkAccountOwnership(userID, accountID); err != nil {
		return nil, err
	}
	if err := s.checkCategoryVisibility(userID, categoryID); err != nil {
		return nil, err
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	if !models.IsValidTransactionType(req.Type) {
		return nil, ErrInvalidTransactionType
	}

	date, err := time.Parse(models.TransactionDateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.Date)
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Amount:      amount,
		Type:        req.Type,
		Description: req.Description,
		Date:        date,
		IsNecessary: req.IsNecessary,
		Reason:      req.Reason,
	}

	if err := s.transactionRepo.CreateWithBalance(transaction); err != nil {
		s.logger.Error("failed to create transaction",
			"error", err,
			"user_id", userID,
			"account_id", accountID)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordTransactionCreated(transaction.Type)
	}

	s.logger.Info("transaction created",
		"transaction_id", transaction.ID,
		"user_id", userID,
		"type", transaction.Type,
		"amount", transaction.Amount)

	return s.reload(transaction.ID)
}

// GetByID returns a transaction owned by the given user
func (s *TransactionService) GetByID(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if transaction.UserID != userID {
		return nil, ErrTransactionNotFound
	}

	return transaction, nil
}

// List returns a filtered, paginated page of the user's transactions together
// with the total match count
func (s *TransactionService) List(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	filters.UserID = userID

	if filters.Limit <= 0 {
		filters.Limit = DefaultTransactionPageSize
	}
	if filters.Limit > MaxTransactionPageSize {
		filters.Limit = MaxTransactionPageSize
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	transactions, total, err := s.transactionRepo.GetWithFilters(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}

// Update modifies a transaction. The previous signed amount is reversed on
// the previous account before the new one is applied, so moving a
// transaction between accounts keeps both balances consistent.
func (s *TransactionService) Update(userID, transactionID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	transaction, err := s.GetByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	previousAccountID := transaction.AccountID
	previousSigned := transaction.SignedAmount()

	if req.AccountID != nil {
		accountID, err := uuid.Parse(*req.AccountID)
		if err != nil {
			return nil, ErrAccountNotFound
		}
		if err := s.checkAccountOwnership(userID, accountID); err != nil {
			return nil, err
		}
		transaction.AccountID = accountID
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		if err := s.checkCategoryVisibility(userID, categoryID); err != nil {
			return nil, err
		}
		transaction.CategoryID = categoryID
	}

	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			return nil, err
		}
		transaction.Amount = amount
	}

	if req.Type != nil {
		if !models.IsValidTransactionType(*req.Type) {
			return nil, ErrInvalidTransactionType
		}
		transaction.Type = *req.Type
	}

	if req.Description != nil {
		transaction.Description = *req.Description
	}

	if req.Date != nil {
		date, err := time.Parse(models.TransactionDateLayout, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDate, *req.Date)
		}
		transaction.Date = date
	}

	if req.IsNecessary != nil {
		transaction.IsNecessary = *req.IsNecessary
	}

	if req.Reason != nil {
		transaction.Reason = *req.Reason
	}

	if err := s.transactionRepo.UpdateWithBalance(transaction, previousAccountID, previousSigned); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return s.reload(transaction.ID)
}

// Delete removes a transaction and reverses its balance contribution
func (s *TransactionService) Delete(userID, transactionID uuid.UUID) error {
	transaction, err := s.GetByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteWithBalance(transaction); err != nil {
		s.logger.Error("failed to delete transaction",
			"error", err,
			"transaction_id", transactionID,
			"account_id", transaction.AccountID)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.logger.Info("transaction deleted",
		"transaction_id", transactionID,
		"user_id", userID)

	return nil
}

func (s *TransactionService) checkAccountOwnership(userID, accountID uuid.UUID) error {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to get account: %w", err)
	}
	if account.UserID != userID {
		return ErrAccountNotFound
	}
	return nil
}

func (s *TransactionService) checkCategoryVisibility(userID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to get category: %w", err)
	}
	if !category.IsDefault && !category.IsOwnedBy(userID) {
		return ErrCategoryNotFound
	}
	return nil
}

// reload re-reads a transaction with its account and category preloaded
func (s *TransactionService) reload(transactionID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload transaction: %w", err)
	}
	return transaction, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return amount, nil
}
