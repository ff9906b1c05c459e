package ports

import (
	"context"
	"time"
)

// VerificationIssued is the metadata returned after issuing a code. The code
// itself is deliberately absent; it is only dispatched through the Notifier.
type VerificationIssued struct {
	ID        string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// VerificationService owns the email-verification lifecycle.
type VerificationService interface {
	// Issue supersedes any prior codes for the user, persists a fresh one and
	// dispatches it by mail.
	Issue(ctx context.Context, userID, email string) (*VerificationIssued, error)
	// Consume matches an unexpired (userID, code) pair and marks the user
	// verified, returning the updated profile.
	Consume(ctx context.Context, userID, code string) (*UserProfile, error)
	// Resend re-issues a code unless the user is already verified.
	Resend(ctx context.Context, userID string) (*VerificationIssued, error)
}
