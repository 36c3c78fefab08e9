package services

import (
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
)

// PasswordServiceInterface defines password hashing and validation operations
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
	ValidatePassword(password string) error
}

// TokenServiceInterface defines JWT token operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	HashToken(token string) string
}

// AuthServiceInterface defines authentication business logic
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*models.User, *dto.TokenResponse, error)
	RefreshTokens(refreshToken string) (*dto.TokenResponse, error)
	Logout(userID uuid.UUID, jti string, tokenExpiresAt time.Time) error
	GetProfile(userID uuid.UUID) (*models.User, error)
}

// AccountServiceInterface defines account management operations
type AccountServiceInterface interface {
	Create(userID uuid.UUID, req *dto.CreateAccountRequest) (*models.Account, error)
	GetByID(userID, accountID uuid.UUID) (*models.Account, error)
	ListForUser(userID uuid.UUID) ([]models.Account, error)
	Update(userID, accountID uuid.UUID, req *dto.UpdateAccountRequest) (*models.Account, error)
	Delete(userID, accountID uuid.UUID) error
}

// CategoryServiceInterface defines category management operations, including
// the idempotent default-category provisioning run at registration
type CategoryServiceInterface interface {
	Create(userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error)
	ListVisibleToUser(userID uuid.UUID) ([]models.Category, error)
	Update(userID uuid.UUID, isAdmin bool, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error)
	Delete(userID uuid.UUID, isAdmin bool, categoryID uuid.UUID) error
	EnsureDefaultCategories(userID uuid.UUID) error
}

// TransactionServiceInterface defines transaction management operations
type TransactionServiceInterface interface {
	Create(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	GetByID(userID, transactionID uuid.UUID) (*models.Transaction, error)
	List(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error)
	Update(userID, transactionID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
	Delete(userID, transactionID uuid.UUID) error
}

// BudgetServiceInterface defines budget management operations
type BudgetServiceInterface interface {
	Create(userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error)
	ListForUser(userID uuid.UUID) ([]models.Budget, error)
	Update(userID, budgetID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error)
	Delete(userID, budgetID uuid.UUID) error
}

// AnalyticsServiceInterface produces the aggregated series for a user and
// date window
type AnalyticsServiceInterface interface {
	GetAnalytics(userID uuid.UUID, months int) (*models.AnalyticsReport, error)
}

// DashboardServiceInterface produces the month-over-month dashboard summary
type DashboardServiceInterface interface {
	GetSummary(userID uuid.UUID) (*models.DashboardSummary, error)
}

// MetricsRecorderInterface records operational metrics
type MetricsRecorderInterface interface {
	RecordTransactionCreated(transactionType string)
	RecordAnalyticsRequest(kind string, duration time.Duration)
	RecordAuthEvent(event, result string)
	SetActiveUsers(count float64)
}
