package ports

import (
	"context"

	"github.com/mercatto/account-service/internal/core/domain"
)

// AddressService defines standalone address CRUD. It knows nothing about
// ownership; callers detach references before deleting.
type AddressService interface {
	Create(ctx context.Context, input AddressInput) (*domain.Address, error)
	Update(ctx context.Context, id string, input UpdateAddressInput) (*domain.Address, error)
	Delete(ctx context.Context, id string) error
}
