package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	// TransactionDateLayout is the day-granularity date format used on the wire
	TransactionDateLayout = "2006-01-02"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNegativeAmount         = errors.New("transaction amount must not be negative")
)

// Transaction records a single income or expense event. Amount is always
// non-negative; the sign of its contribution to any total is derived solely
// from Type, never from the stored amount. Date carries day granularity only.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type        string          `gorm:"type:varchar(10);not null" json:"type"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	IsNecessary bool            `gorm:"not null;default:false" json:"is_necessary"`
	Reason      string          `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`

	// Associations, preloaded for analytics and listing
	Account  *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	t.Date = TruncateToDay(t.Date)

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	t.Date = TruncateToDay(t.Date)
	t.UpdatedAt = time.Now()
	return t.Validate()
}

func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}
	if t.CategoryID == uuid.Nil {
		return errors.New("category ID is required")
	}
	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if t.Description == "" {
		return errors.New("transaction description is required")
	}
	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}
	return nil
}

// IsIncome returns true for income transactions
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense returns true for expense transactions
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// SignedAmount returns the transaction's contribution to a net total:
// positive for income, negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// CategoryName returns the joined category name, or a fallback label when the
// category was deleted or never loaded.
func (t *Transaction) CategoryName() string {
	if t.Category == nil || t.Category.Name == "" {
		return FallbackCategoryName
	}
	return t.Category.Name
}

// AccountName returns the joined account name, or a fallback label when the
// account was deleted or never loaded.
func (t *Transaction) AccountName() string {
	if t.Account == nil || t.Account.Name == "" {
		return "Unknown"
	}
	return t.Account.Name
}

// IsValidTransactionType checks whether the given type is income or expense
func IsValidTransactionType(transactionType string) bool {
	return transactionType == TransactionTypeIncome || transactionType == TransactionTypeExpense
}

// TruncateToDay strips the time component, keeping day granularity in UTC
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
