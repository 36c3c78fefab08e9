package dto

import "fintrack/internal/models"

// Budget Request DTOs

// CreateBudgetRequest represents the request payload for creating a budget
type CreateBudgetRequest struct {
	CategoryID   string `json:"categoryId" validate:"required,uuid"`
	MonthlyLimit string `json:"monthlyLimit" validate:"required,amount"`
}

// UpdateBudgetRequest represents the request payload for updating a budget
type UpdateBudgetRequest struct {
	MonthlyLimit string `json:"monthlyLimit" validate:"required,amount"`
}

// Budget Response DTOs

// BudgetResponse represents a single budget in API responses
type BudgetResponse struct {
	*models.Budget
}

// BudgetListResponse represents a user's budgets
type BudgetListResponse struct {
	Budgets []models.Budget `json:"budgets"`
}
