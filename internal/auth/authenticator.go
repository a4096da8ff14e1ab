package auth

import (
	"context"

	"github.com/mmynk/dentaldesk/internal/models"
)

// Authenticator signs staff members in to the dashboard.
// Password login is the only method today; the interface keeps the service layer
// independent of it.
type Authenticator interface {
	// Register creates a staff account. Returns ErrEmailExists for a taken email.
	Register(ctx context.Context, email, displayName, credential string) (*models.StaffUser, error)

	// Authenticate returns the account when the credential matches, ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, email, credential string) (*models.StaffUser, error)

	ValidateCredential(credential string) error
}
