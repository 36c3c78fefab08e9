package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		budget  Budget
		wantErr error
		errMsg  string
	}{
		{
			name: "valid budget",
			budget: Budget{
				UserID:       uuid.New(),
				CategoryID:   uuid.New(),
				MonthlyLimit: decimal.NewFromInt(400),
			},
		},
		{
			name: "missing user",
			budget: Budget{
				CategoryID:   uuid.New(),
				MonthlyLimit: decimal.NewFromInt(400),
			},
			errMsg: "user ID is required",
		},
		{
			name: "missing category",
			budget: Budget{
				UserID:       uuid.New(),
				MonthlyLimit: decimal.NewFromInt(400),
			},
			errMsg: "category ID is required",
		},
		{
			name: "zero limit rejected",
			budget: Budget{
				UserID:     uuid.New(),
				CategoryID: uuid.New(),
			},
			wantErr: ErrInvalidMonthlyLimit,
		},
		{
			name: "negative limit rejected",
			budget: Budget{
				UserID:       uuid.New(),
				CategoryID:   uuid.New(),
				MonthlyLimit: decimal.NewFromInt(-100),
			},
			wantErr: ErrInvalidMonthlyLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.budget.Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestBudget_CategoryName(t *testing.T) {
	budget := Budget{UserID: uuid.New(), CategoryID: uuid.New(), MonthlyLimit: decimal.NewFromInt(400)}
	assert.Equal(t, FallbackCategoryName, budget.CategoryName())

	budget.Category = &Category{Name: "Groceries"}
	assert.Equal(t, "Groceries", budget.CategoryName())
}
