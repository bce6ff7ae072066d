package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff is an employee account allowed to operate the POS.
type Staff struct {
	// ID is the unique identifier for the staff member (UUID format).
	ID string

	// Email is the login name (unique).
	Email string

	// DisplayName is shown in logs and on the terminal.
	DisplayName string

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewStaff creates a staff record with a fresh ID and timestamps.
func NewStaff(email, displayName, passwordHash string) *Staff {
	now := time.Now().Unix()
	return &Staff{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
