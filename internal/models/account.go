package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountTypeChecking   = "checking"
	AccountTypeSavings    = "savings"
	AccountTypeCreditCard = "credit_card"
	AccountTypeInvestment = "investment"
	AccountTypeOther      = "other"
)

var (
	ErrInvalidAccountType = errors.New("invalid account type")
)

// Account represents a financial account owned by a user. Balance is an
// independently maintained running total, not derived from transactions at
// read time; it may be negative, especially for credit cards.
type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Type      string          `gorm:"type:varchar(20);not null" json:"type"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"-"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	a.UpdatedAt = time.Now()
	return a.Validate()
}

func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if a.Name == "" {
		return errors.New("account name is required")
	}
	if !IsValidAccountType(a.Type) {
		return ErrInvalidAccountType
	}
	return nil
}

// IsValidAccountType checks whether the given type is a known account type
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard,
		AccountTypeInvestment, AccountTypeOther:
		return true
	}
	return false
}

// AllAccountTypes returns all valid account type constants
func AllAccountTypes() []string {
	return []string{
		AccountTypeChecking,
		AccountTypeSavings,
		AccountTypeCreditCard,
		AccountTypeInvestment,
		AccountTypeOther,
	}
}
