// Package auth provides password-based authentication and JWT session
// tokens for the HTTP API. Receipts are scoped to the account that created
// them; participants on a receipt never need accounts.
package auth

import (
	"context"

	"github.com/mmynk/quicksplit/internal/models"
)

// Authenticator defines the interface for authentication implementations,
// so the API layer does not care whether credentials are passwords, passkeys
// or OAuth tokens.
type Authenticator interface {
	// Register creates a new user account with the given email and
	// credential. Returns the created user or an error if registration
	// fails.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user
	// if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
