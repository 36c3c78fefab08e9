package dto

import (
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Account Request DTOs

// CreateAccountRequest represents the request payload for creating an account
type CreateAccountRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=100"`
	Type           string `json:"type" validate:"required,account_type"`
	InitialBalance string `json:"initialBalance,omitempty" validate:"omitempty,amount"`
}

// UpdateAccountRequest represents the request payload for updating an account.
// Pointer fields distinguish omitted from zero-valued inputs.
type UpdateAccountRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Type *string `json:"type,omitempty" validate:"omitempty,account_type"`
}

// Account Response DTOs

// AccountResponse represents a single account in API responses
type AccountResponse struct {
	*models.Account
}

// AccountListResponse represents a user's accounts with their combined balance
type AccountListResponse struct {
	Accounts     []models.Account `json:"accounts"`
	TotalBalance decimal.Decimal  `json:"totalBalance"`
}
