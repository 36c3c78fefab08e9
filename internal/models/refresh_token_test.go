package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_IsExpired(t *testing.T) {
	active := RefreshToken{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, active.IsExpired())

	expired := RefreshToken{ExpiresAt: time.Now().Add(-time.Hour)}
	assert.True(t, expired.IsExpired())
}

func TestRefreshToken_IsRevoked(t *testing.T) {
	token := RefreshToken{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, token.IsRevoked())

	now := time.Now()
	token.RevokedAt = &now
	assert.True(t, token.IsRevoked())
}

func TestRefreshToken_IsValid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token RefreshToken
		valid bool
	}{
		{
			name:  "active token",
			token: RefreshToken{ExpiresAt: now.Add(time.Hour)},
			valid: true,
		},
		{
			name:  "expired token",
			token: RefreshToken{ExpiresAt: now.Add(-time.Hour)},
			valid: false,
		},
		{
			name:  "revoked token",
			token: RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &now},
			valid: false,
		},
		{
			name:  "expired and revoked token",
			token: RefreshToken{ExpiresAt: now.Add(-time.Hour), RevokedAt: &now},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.token.IsValid())
		})
	}
}

func TestRefreshToken_Revoke(t *testing.T) {
	token := RefreshToken{ExpiresAt: time.Now().Add(time.Hour)}
	assert.True(t, token.IsValid())

	token.Revoke()

	assert.True(t, token.IsRevoked())
	assert.False(t, token.IsValid())
	assert.WithinDuration(t, time.Now(), *token.RevokedAt, time.Second)
}
