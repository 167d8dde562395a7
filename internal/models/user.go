package models

import (
	"time"

	"github.com/google/uuid"
)

// Auth providers. Accounts created through the local registration flow can
// change email and password; externally provisioned accounts cannot.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the display name shown in member lists and activity entries.
	Username string `json:"username"`

	// Email is the user's email address (unique, lowercased).
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the password. Empty for OAuth users.
	PasswordHash string `json:"-"`

	// AuthProvider is ProviderLocal or ProviderGoogle.
	AuthProvider string `json:"authProvider"`

	// GoogleID is the external provider id, set only for OAuth accounts.
	GoogleID string `json:"-"`

	// PersonalGroupID references the user's auto-created personal group.
	PersonalGroupID string `json:"personalGroup"`

	// ResetTokenHash holds the SHA-256 hash of an outstanding password reset
	// token. The raw token is never stored.
	ResetTokenHash string `json:"-"`

	// ResetTokenExpires is the Unix timestamp after which the reset token is
	// no longer valid. Zero when no reset is pending.
	ResetTokenExpires int64 `json:"-"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// NewUser creates a local-provider user with a fresh ID and timestamps.
func NewUser(email, username, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		AuthProvider: ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsLocal reports whether the account uses password authentication.
func (u *User) IsLocal() bool {
	return u.AuthProvider == ProviderLocal
}
