package repositories

import (
	"context"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by normalized email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByGoogleID retrieves a user by their federated Google subject id.
	FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email or Google id is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser atomically replaces the stored record with the given one,
	// keyed by UserID.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
