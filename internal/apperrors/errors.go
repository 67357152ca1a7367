package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing or invalid session credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to act.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials is returned on login when the email is unknown or the
// password does not match. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken covers bad signature, malformed payload, expiry and a
// mismatch against the stored single-use copy. Callers must not distinguish.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrWrongProvider is returned when a password login is attempted against an
// account that authenticates through a federated provider.
var ErrWrongProvider = errors.New("account uses federated login")

// ErrRateLimited indicates the caller exceeded a request quota.
var ErrRateLimited = errors.New("rate limited")

// AppError carries an HTTP status code alongside a user-facing message.
// Handlers use it to translate service failures at the boundary.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
