package ports

import (
	"context"

	"github.com/mercatto/account-service/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches the stored email case-sensitively.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update replaces the stored document wholesale (read-modify-write; no
	// optimistic concurrency token).
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
