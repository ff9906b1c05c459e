package ports

import (
	"context"
	"time"
)

// Notifier delivers a verification code to an email address. The code travels
// only through this channel; services never return it to API callers.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// TokenRevoker records identities whose outstanding bearer tokens must no
// longer be honoured (account deletion).
type TokenRevoker interface {
	Revoke(ctx context.Context, userID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, userID string) (bool, error)
}
