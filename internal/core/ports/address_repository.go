package ports

import (
	"context"

	"github.com/mercatto/account-service/internal/core/domain"
)

// AddressRepository defines persistence operations for address records.
type AddressRepository interface {
	Insert(ctx context.Context, address *domain.Address) (*domain.Address, error)
	FindByID(ctx context.Context, id string) (*domain.Address, error)
	// FindByIDs returns the addresses for the given ids, preserving the input
	// order and skipping ids that no longer resolve.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Address, error)
	Update(ctx context.Context, address *domain.Address) (*domain.Address, error)
	Delete(ctx context.Context, id string) error
}
