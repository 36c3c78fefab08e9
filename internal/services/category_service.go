package services

import (
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryReadOnly  = errors.New("default categories cannot be modified")
	ErrCategoryInUse     = errors.New("category is referenced by transactions or budgets")
	ErrInvalidColor      = errors.New("invalid category color")
	ErrInvalidCategoryID = errors.New("invalid category ID")
)

// CategoryService handles category management business logic
type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface, logger *slog.Logger) CategoryServiceInterface {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a personal category for the user
func (s *CategoryService) Create(userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		UserID: &userID,
		Name:   req.Name,
		Color:  req.Color,
	}

	if err := category.Validate(); err != nil {
		if errors.Is(err, models.ErrInvalidColor) {
			return nil, ErrInvalidColor
		}
		return nil, err
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created",
		"category_id", category.ID,
		"user_id", userID,
		"name", category.Name)

	return category, nil
}

// ListVisibleToUser returns the user's personal categories plus the shared
// defaults
func (s *CategoryService) ListVisibleToUser(userID uuid.UUID) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetVisibleToUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Update changes a category's name or color. Shared defaults are writable
// only by admins; personal categories only by their owner.
func (s *CategoryService) Update(userID uuid.UUID, isAdmin bool, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.getWritable(userID, isAdmin, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := category.Validate(); err != nil {
		if errors.Is(err, models.ErrInvalidColor) {
			return nil, ErrInvalidColor
		}
		return nil, err
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// Delete removes a category that no transaction or budget references
func (s *CategoryService) Delete(userID uuid.UUID, isAdmin bool, categoryID uuid.UUID) error {
	if _, err := s.getWritable(userID, isAdmin, categoryID); err != nil {
		return err
	}

	references, err := s.categoryRepo.CountReferences(categoryID)
	if err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}
	if references > 0 {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted",
		"category_id", categoryID,
		"user_id", userID)

	return nil
}

// EnsureDefaultCategories guarantees the shared default set exists. It runs at
// registration and at startup and is idempotent; concurrent callers may race
// but the check-then-insert only ever fills an empty set.
func (s *CategoryService) EnsureDefaultCategories(userID uuid.UUID) error {
	defaults, err := s.categoryRepo.GetDefaults()
	if err != nil {
		return fmt.Errorf("failed to check default categories: %w", err)
	}
	if len(defaults) > 0 {
		return nil
	}

	seeds := models.DefaultCategorySeeds()
	categories := make([]models.Category, 0, len(seeds))
	for _, seed := range seeds {
		categories = append(categories, models.Category{
			Name:      seed.Name,
			Color:     seed.Color,
			IsDefault: true,
		})
	}

	if err := s.categoryRepo.CreateBatch(categories); err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}

	s.logger.Info("default categories provisioned",
		"count", len(categories),
		"triggered_by", userID)

	return nil
}

// getWritable fetches a category and checks write access. Another user's
// personal category is reported as not found rather than forbidden.
func (s *CategoryService) getWritable(userID uuid.UUID, isAdmin bool, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if category.IsDefault {
		if !isAdmin {
			return nil, ErrCategoryReadOnly
		}
		return category, nil
	}

	if !category.IsOwnedBy(userID) {
		return nil, ErrCategoryNotFound
	}

	return category, nil
}
