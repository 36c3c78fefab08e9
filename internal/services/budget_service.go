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
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrBudgetAlreadyExists = errors.New("a budget already exists for this category")
	ErrInvalidBudgetLimit  = errors.New("monthly limit must be positive")
)

// BudgetService handles budget business logic. Each user holds at most one
// budget per category, enforced both here and by a unique index.
type BudgetService struct {
	budgetRepo   repositories.BudgetRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	logger       *slog.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a monthly budget for a category visible to the user
func (s *BudgetService) Create(userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	if err := s.checkCategoryVisibility(userID, categoryID); err != nil {
		return nil, err
	}

	limit, err := parseBudgetLimit(req.MonthlyLimit)
	if err != nil {
		return nil, err
	}

	existing, err := s.budgetRepo.GetByUserAndCategory(userID, categoryID)
	if err != nil && !errors.Is(err, repositories.ErrBudgetNotFound) {
		return nil, fmt.Errorf("failed to check existing budget: %w", err)
	}
	if existing != nil {
		return nil, ErrBudgetAlreadyExists
	}

	budget := &models.Budget{
		UserID:       userID,
		CategoryID:   categoryID,
		MonthlyLimit: limit,
	}

	if err := s.budgetRepo.Create(budget); err != nil {
		if errors.Is(err, repositories.ErrBudgetAlreadyExists) {
			return nil, ErrBudgetAlreadyExists
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.logger.Info("budget created",
		"budget_id", budget.ID,
		"user_id", userID,
		"category_id", categoryID,
		"monthly_limit", limit)

	return budget, nil
}

// ListForUser returns all of the user's budgets
func (s *BudgetService) ListForUser(userID uuid.UUID) ([]models.Budget, error) {
	budgets, err := s.budgetRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// Update changes a budget's monthly limit
func (s *BudgetService) Update(userID, budgetID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
	budget, err := s.getOwned(userID, budgetID)
	if err != nil {
		return nil, err
	}

	limit, err := parseBudgetLimit(req.MonthlyLimit)
	if err != nil {
		return nil, err
	}

	budget.MonthlyLimit = limit
	if err := s.budgetRepo.Update(budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return budget, nil
}

// Delete removes a budget
func (s *BudgetService) Delete(userID, budgetID uuid.UUID) error {
	if _, err := s.getOwned(userID, budgetID); err != nil {
		return err
	}

	if err := s.budgetRepo.Delete(budgetID); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	s.logger.Info("budget deleted",
		"budget_id", budgetID,
		"user_id", userID)

	return nil
}

func (s *BudgetService) getOwned(userID, budgetID uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByID(budgetID)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	if budget.UserID != userID {
		return nil, ErrBudgetNotFound
	}

	return budget, nil
}

func (s *BudgetService) checkCategoryVisibility(userID, categoryID uuid.UUID) error {
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

func parseBudgetLimit(raw string) (decimal.Decimal, error) {
	limit, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, raw)
	}
	if !limit.IsPositive() {
		return decimal.Zero, ErrInvalidBudgetLimit
	}
	return limit, nil
}
