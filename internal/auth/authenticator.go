// Package auth handles staff accounts: password checks and session tokens.
package auth

import (
	"context"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
)

// Authenticator verifies staff credentials.
// Implementations decide what a credential is; PasswordAuthenticator uses passwords.
type Authenticator interface {
	// Register creates a new staff account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.Staff, error)

	// Authenticate verifies the credentials and returns the matching staff account.
	Authenticate(ctx context.Context, email, credential string) (*models.Staff, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
