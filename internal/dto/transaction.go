package dto

import "fintrack/internal/models"

// Transaction Request DTOs

// CreateTransactionRequest represents the request payload for recording a
// transaction. Amount is a non-negative decimal string; the direction comes
// from Type alone. Date uses day granularity (2006-01-02).
type CreateTransactionRequest struct {
	AccountID   string `json:"accountId" validate:"required,uuid"`
	CategoryID  string `json:"categoryId" validate:"required,uuid"`
	Amount      string `json:"amount" validate:"required,amount"`
	Type        string `json:"type" validate:"required,transaction_type"`
	Description string `json:"description" validate:"required,min=1,max=255"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	IsNecessary bool   `json:"isNecessary"`
	Reason      string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Pointer fields distinguish omitted from zero-valued inputs.
type UpdateTransactionRequest struct {
	AccountID   *string `json:"accountId,omitempty" validate:"omitempty,uuid"`
	CategoryID  *string `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Amount      *string `json:"amount,omitempty" validate:"omitempty,amount"`
	Type        *string `json:"type,omitempty" validate:"omitempty,transaction_type"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsNecessary *bool   `json:"isNecessary,omitempty"`
	Reason      *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ListTransactionsParams contains the query parameters for listing transactions
type ListTransactionsParams struct {
	AccountID  string `query:"accountId"`
	CategoryID string `query:"categoryId"`
	Type       string `query:"type"`
	DateFrom   string `query:"dateFrom"`
	DateTo     string `query:"dateTo"`
	Offset     int    `query:"offset"`
	Limit      int    `query:"limit"`
}

// Transaction Response DTOs

// TransactionResponse represents a single transaction in API responses
type TransactionResponse struct {
	*models.Transaction
}

// TransactionListResponse represents a paginated list of transactions
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Offset       int                  `json:"offset"`
	Limit        int                  `json:"limit"`
}
