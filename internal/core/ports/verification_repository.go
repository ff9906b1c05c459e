package ports

import (
	"context"
	"time"

	"github.com/mercatto/account-service/internal/core/domain"
)

// VerificationRepository defines persistence operations for verification
// records. Expiry is enforced at lookup time; the store may additionally
// garbage-collect expired records lazily (TTL index).
type VerificationRepository interface {
	Insert(ctx context.Context, v *domain.Verification) (*domain.Verification, error)
	// FindActive returns the record matching userID and code whose expiry is
	// strictly after now, or domain.ErrCodeInvalidOrExpired.
	FindActive(ctx context.Context, userID, code string, now time.Time) (*domain.Verification, error)
	Update(ctx context.Context, v *domain.Verification) error
	// DeleteByUserID removes every record for the user (supersede-on-issue).
	DeleteByUserID(ctx context.Context, userID string) error
}
