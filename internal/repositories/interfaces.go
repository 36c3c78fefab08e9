package repositories

import (
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
	IncrementFailedLoginAttempts(id uuid.UUID) error
	ResetFailedLoginAttempts(id uuid.UUID) error
	LockUser(id uuid.UUID) error
	UpdateLastLogin(id uuid.UUID) error
	Count() (int64, error)
}

// RefreshTokenRepositoryInterface defines the contract for refresh token storage
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(tokenHash string) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() (int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for revoked access tokens
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByUserID(userID uuid.UUID) ([]models.Account, error)
	Update(account *models.Account) error
	Delete(id uuid.UUID) error
	GetTotalBalanceByUserID(userID uuid.UUID) (decimal.Decimal, error)
	CountTransactions(accountID uuid.UUID) (int64, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	CreateBatch(categories []models.Category) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetVisibleToUser(userID uuid.UUID) ([]models.Category, error)
	GetDefaults() ([]models.Category, error)
	CountForUser(userID uuid.UUID) (int64, error)
	Update(category *models.Category) error
	Delete(id uuid.UUID) error
	CountReferences(categoryID uuid.UUID) (int64, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	CreateWithBalance(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	GetByDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]models.Transaction, error)
	GetByMonth(userID uuid.UUID, month time.Time) ([]models.Transaction, error)
	Update(transaction *models.Transaction) error
	UpdateWithBalance(transaction *models.Transaction, previousAccountID uuid.UUID, previousSigned decimal.Decimal) error
	Delete(id uuid.UUID) error
	DeleteWithBalance(transaction *models.Transaction) error
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByID(id uuid.UUID) (*models.Budget, error)
	GetByUserID(userID uuid.UUID) ([]models.Budget, error)
	GetByUserAndCategory(userID, categoryID uuid.UUID) (*models.Budget, error)
	Update(budget *models.Budget) error
	Delete(id uuid.UUID) error
}
