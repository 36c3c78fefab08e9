package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlacklistedToken records an access token revoked before its natural expiry,
// keyed by the token's JTI. Logout writes one of these; the auth middleware
// checks the blacklist on every authenticated request.
type BlacklistedToken struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	JTI           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"jti"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt     time.Time `gorm:"not null;index" json:"expires_at"`
	BlacklistedAt time.Time `gorm:"not null" json:"blacklisted_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (t *BlacklistedToken) TableName() string {
	return "blacklisted_tokens"
}

func (t *BlacklistedToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *BlacklistedToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// CanBeDeleted reports whether the entry no longer blocks anything. An entry
// is only removable once the token it blocks has expired on its own.
func (t *BlacklistedToken) CanBeDeleted() bool {
	return t.IsExpired()
}
