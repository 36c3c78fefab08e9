package repositories

import (
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &AccountRepository{
		db: db,
	}
}

// Create creates a new account
func (r *AccountRepository) Create(account *models.Account) error {
	if account == nil {
		return errors.New("account cannot be nil")
	}

	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	account := &models.Account{ID: id}
	if err := r.db.First(account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// GetByUserID retrieves all accounts for a user, ordered by name
func (r *AccountRepository) GetByUserID(userID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for user: %w", err)
	}

	return accounts, nil
}

// Update updates an account
func (r *AccountRepository) Update(account *models.Account) error {
	if account == nil {
		return errors.New("account cannot be nil")
	}

	if err := r.db.Save(account).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	return nil
}

// Delete removes an account
func (r *AccountRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Account{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// adjustAccountBalance applies a signed delta to an account balance using the
// given handle, which may be a running transaction
func adjustAccountBalance(db *gorm.DB, accountID uuid.UUID, delta decimal.Decimal) error {
	result := db.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust account balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// GetTotalBalanceByUserID sums the stored balances of all accounts for a user.
// The stored balance column is the source of truth; this is never derived from
// transaction history.
func (r *AccountRepository) GetTotalBalanceByUserID(userID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Account{}).
		Select("COALESCE(SUM(balance), 0) as total").
		Where("user_id = ?", userID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account balances: %w", err)
	}

	return result.Total, nil
}

// CountTransactions counts transactions referencing an account
func (r *AccountRepository) CountTransactions(accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count account transactions: %w", err)
	}

	return count, nil
}
