package services

import (
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrAccountHasActivity = errors.New("account has recorded transactions")
	ErrInvalidAmount      = errors.New("invalid amount")
)

// AccountService handles account management business logic
type AccountService struct {
	accountRepo repositories.AccountRepositoryInterface
	logger      *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo repositories.AccountRepositoryInterface, logger *slog.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// Create creates a new account. An omitted initial balance starts at zero;
// negative opening balances are allowed for credit accounts.
func (s *AccountService) Create(userID uuid.UUID, req *dto.CreateAccountRequest) (*models.Account, error) {
	if !models.IsValidAccountType(req.Type) {
		return nil, ErrInvalidAccountType
	}

	balance := decimal.Zero
	if req.InitialBalance != "" {
		parsed, err := decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, req.InitialBalance)
		}
		balance = parsed
	}

	account := &models.Account{
		UserID:  userID,
		Name:    req.Name,
		Type:    req.Type,
		Balance: balance,
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		"account_id", account.ID,
		"user_id", userID,
		"type", account.Type)

	return account, nil
}

// GetByID returns an account owned by the given user. Accounts belonging to
// other users are reported as not found.
func (s *AccountService) GetByID(userID, accountID uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account.UserID != userID {
		return nil, ErrAccountNotFound
	}

	return account, nil
}

// ListForUser returns all of the user's accounts
func (s *AccountService) ListForUser(userID uuid.UUID) ([]models.Account, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Update changes an account's name or type. The balance is never updated
// directly; it moves only through transaction writes.
func (s *AccountService) Update(userID, accountID uuid.UUID, req *dto.UpdateAccountRequest) (*models.Account, error) {
	account, err := s.GetByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Type != nil {
		if !models.IsValidAccountType(*req.Type) {
			return nil, ErrInvalidAccountType
		}
		account.Type = *req.Type
	}

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// Delete removes an account that has no recorded transactions
func (s *AccountService) Delete(userID, accountID uuid.UUID) error {
	if _, err := s.GetByID(userID, accountID); err != nil {
		return err
	}

	count, err := s.accountRepo.CountTransactions(accountID)
	if err != nil {
		return fmt.Errorf("failed to count account transactions: %w", err)
	}
	if count > 0 {
		return ErrAccountHasActivity
	}

	if err := s.accountRepo.Delete(accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("account deleted",
		"account_id", accountID,
		"user_id", userID)

	return nil
}
