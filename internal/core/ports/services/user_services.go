package services

import (
	"context"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines credential verification for user authentication.
type UserAuthSvc interface {
	// AuthenticateUser verifies email + password and returns the account.
	// Unknown email and wrong password both yield apperrors.ErrInvalidCredentials;
	// a federated account yields apperrors.ErrWrongProvider.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserRegistrationSvc defines the local registration and verification flow.
type UserRegistrationSvc interface {
	// RegisterUser creates an unverified local account and dispatches the
	// verification email without blocking.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// ConfirmEmail consumes a verification token exactly once, marking the
	// account verified.
	ConfirmEmail(ctx context.Context, email, token string) error
}

// UserPasswordSvc defines the password reset and change flows.
type UserPasswordSvc interface {
	// RequestPasswordReset issues and emails a reset token. It reports
	// success whether or not the email is registered, and silently skips
	// re-issuance inside the minimum re-request interval.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes a reset token exactly once and stores the new
	// password hash. Returns the account so callers can greet by name.
	ResetPassword(ctx context.Context, email, token, newPassword string) (*domain.User, error)

	// ChangePassword verifies the current password before storing a new hash.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// GoogleLinkerSvc matches, links or provisions an account from a verified
// Google identity assertion.
type GoogleLinkerSvc interface {
	// LinkOrCreateGoogleUser looks up by Google subject id, then by email.
	// An existing unlinked account gets linked (and verified); an unknown
	// identity is auto-provisioned and welcomed by email.
	LinkOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
	UserRegistrationSvc
	UserPasswordSvc
	GoogleLinkerSvc
}
