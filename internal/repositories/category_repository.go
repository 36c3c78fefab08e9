package repositories

import (
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &CategoryRepository{
		db: db,
	}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// CreateBatch inserts several categories in one statement
func (r *CategoryRepository) CreateBatch(categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}

	if err := r.db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id uuid.UUID) (*models.Category, error) {
	category := &models.Category{ID: id}
	if err := r.db.First(category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// GetVisibleToUser retrieves the user's own categories plus shared defaults,
// ordered by name
func (r *CategoryRepository) GetVisibleToUser(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("user_id = ? OR user_id IS NULL", userID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories for user: %w", err)
	}

	return categories, nil
}

// GetDefaults retrieves the shared default categories
func (r *CategoryRepository) GetDefaults() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("user_id IS NULL AND is_default = ?", true).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get default categories: %w", err)
	}

	return categories, nil
}

// CountForUser counts categories owned by the user (excludes shared defaults)
func (r *CategoryRepository) CountForUser(userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories for user: %w", err)
	}

	return count, nil
}

// Update updates a category
func (r *CategoryRepository) Update(category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.Save(category).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Category{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// CountReferences counts transactions and budgets referencing a category
func (r *CategoryRepository) CountReferences(categoryID uuid.UUID) (int64, error) {
	var transactionCount int64
	if err := r.db.Model(&models.Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&transactionCount).Error; err != nil {
		return 0, fmt.Errorf("failed to count category transactions: %w", err)
	}

	var budgetCount int64
	if err := r.db.Model(&models.Budget{}).
		Where("category_id = ?", categoryID).
		Count(&budgetCount).Error; err != nil {
		return 0, fmt.Errorf("failed to count category budgets: %w", err)
	}

	return transactionCount + budgetCount, nil
}
