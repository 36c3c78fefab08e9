package dto

import "fintrack/internal/models"

// Category Request DTOs

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Color string `json:"color" validate:"required,hex_color"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Color *string `json:"color,omitempty" validate:"omitempty,hex_color"`
}

// Category Response DTOs

// CategoryResponse represents a single category in API responses
type CategoryResponse struct {
	*models.Category
}

// CategoryListResponse represents the categories visible to a user,
// defaults and personal ones combined
type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
}
