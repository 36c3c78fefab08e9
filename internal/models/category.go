package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

	ErrInvalidColor = errors.New("color must be a hex value like #6366f1")
)

// FallbackCategoryName labels transactions whose category was deleted or is
// otherwise unavailable. Aggregations degrade per-record instead of failing.
const FallbackCategoryName = "Uncategorized"

// Category groups transactions for budgeting and analytics. A nil UserID marks
// a shared default category visible to every user; registration guarantees the
// default set exists, and only admins may change it.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Color     string     `gorm:"type:varchar(7);not null" json:"color"`
	IsDefault bool       `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	c.UpdatedAt = time.Now()
	return c.Validate()
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.New("category name is required")
	}
	if !hexColorRegex.MatchString(c.Color) {
		return ErrInvalidColor
	}
	// Shared defaults are the only categories without an owner
	if c.UserID == nil && !c.IsDefault {
		return errors.New("non-default category must have an owner")
	}
	return nil
}

// IsOwnedBy returns true if the category belongs to the given user
func (c *Category) IsOwnedBy(userID uuid.UUID) bool {
	return c.UserID != nil && *c.UserID == userID
}

// DefaultCategorySeed describes one of the shared default categories
// provisioned at startup and re-checked at registration.
type DefaultCategorySeed struct {
	Name  string
	Color string
}

// DefaultCategorySeeds returns the shared default category set
func DefaultCategorySeeds() []DefaultCategorySeed {
	return []DefaultCategorySeed{
		{Name: "Groceries", Color: "#10b981"},
		{Name: "Dining", Color: "#f97316"},
		{Name: "Transportation", Color: "#06b6d4"},
		{Name: "Entertainment", Color: "#8b5cf6"},
		{Name: "Shopping", Color: "#ec4899"},
		{Name: "Bills & Utilities", Color: "#f43f5e"},
		{Name: "Healthcare", Color: "#14b8a6"},
		{Name: "Housing", Color: "#6366f1"},
		{Name: "Salary", Color: "#22c55e"},
		{Name: "Other", Color: "#6b7280"},
	}
}
