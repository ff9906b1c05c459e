package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAddressNotFound      = errors.New("address not found")
	ErrAddressNotOwned      = errors.New("address not found for this user")
	ErrCodeInvalidOrExpired = errors.New("invalid or expired verification code")
	ErrAlreadyVerified      = errors.New("user is already verified")
	ErrForbidden            = errors.New("access forbidden")
	ErrValidation           = errors.New("validation failed")
)

// NewValidationError wraps ErrValidation with a field-level message so callers
// can both match the kind (errors.Is) and surface the detail.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
