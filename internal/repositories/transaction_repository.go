package repositories

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionRepository handles database operations for transactions
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &TransactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// CreateWithBalance creates a transaction and applies its signed amount to the
// owning account balance inside a single database transaction, so a failed
// balance write rolls the row back
func (r *TransactionRepository) CreateWithBalance(transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return adjustAccountBalance(tx, transaction.AccountID, transaction.SignedAmount())
	})
}

// UpdateWithBalance saves a modified transaction, reverses its previous signed
// contribution on the previous account and applies the new one, all inside a
// single database transaction. Previous and new account may be the same.
func (r *TransactionRepository) UpdateWithBalance(transaction *models.Transaction, previousAccountID uuid.UUID, previousSigned decimal.Decimal) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(transaction).Error; err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		if err := adjustAccountBalance(tx, previousAccountID, previousSigned.Neg()); err != nil {
			return fmt.Errorf("failed to reverse previous balance: %w", err)
		}
		if err := adjustAccountBalance(tx, transaction.AccountID, transaction.SignedAmount()); err != nil {
			return fmt.Errorf("failed to apply new balance: %w", err)
		}
		return nil
	})
}

// DeleteWithBalance removes a transaction and reverses its balance
// contribution inside a single database transaction
func (r *TransactionRepository) DeleteWithBalance(transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Transaction{ID: transaction.ID})
		if result.Error != nil {
			return fmt.Errorf("failed to delete transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
		return adjustAccountBalance(tx, transaction.AccountID, transaction.SignedAmount().Neg())
	})
}

// GetByID retrieves a transaction by ID with its account and category joined
func (r *TransactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Preload("Account").Preload("Category").
		First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &transaction, nil
}

// GetWithFilters retrieves transactions matching the filters, newest first,
// with the total match count for pagination
func (r *TransactionRepository) GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", filters.UserID)

	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", models.TruncateToDay(*filters.DateFrom))
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", models.TruncateToDay(*filters.DateTo))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var transactions []models.Transaction
	if err := query.Preload("Account").Preload("Category").
		Order("date DESC, created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	return transactions, total, nil
}

// GetByDateRange retrieves a user's transactions within the inclusive day
// range, date ascending, with account and category joined. Ascending order is
// the contract the aggregation engine relies on.
func (r *TransactionRepository) GetByDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Preload("Account").Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?",
			userID, models.TruncateToDay(startDate), models.TruncateToDay(endDate)).
		Order("date ASC, created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}

	return transactions, nil
}

// GetByMonth retrieves a user's transactions for the calendar month containing
// the given time, date descending (newest first, for the dashboard).
func (r *TransactionRepository) GetByMonth(userID uuid.UUID, month time.Time) ([]models.Transaction, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var transactions []models.Transaction
	if err := r.db.Preload("Account").Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for month: %w", err)
	}

	return transactions, nil
}

// Update updates a transaction
func (r *TransactionRepository) Update(transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	if err := r.db.Save(transaction).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Transaction{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}
