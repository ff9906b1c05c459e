package ports

import (
	"context"
	"time"

	"github.com/mercatto/account-service/internal/core/domain"
)

// AddressInput carries the four required address fields.
type AddressInput struct {
	CityName     string
	CountyName   string
	DistrictName string
	AddressText  string
}

// UpdateAddressInput carries a partial address update; nil fields are left
// untouched.
type UpdateAddressInput struct {
	CityName     *string
	CountyName   *string
	DistrictName *string
	AddressText  *string
}

// CreateUserInput carries the data needed to create an account together with
// its initial address.
type CreateUserInput struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Address      AddressInput
}

// UpdateUserInput carries a partial profile update. Address fields are never
// updatable through this path.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserProfile is the populated account view returned to the API layer: the
// owned address references are joined into full address records and the
// credential is never included.
type UserProfile struct {
	ID             string
	Email          string
	FirstName      string
	LastName       string
	IsVerified     bool
	IsSeller       bool
	Addresses      []domain.Address
	DefaultAddress *domain.Address
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserService defines account use-cases: user CRUD plus the address-set and
// default-address invariants.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*UserProfile, error)
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*UserProfile, error)
	Delete(ctx context.Context, id string) error
	UpdateSellerStatus(ctx context.Context, id string, isSeller bool) (*UserProfile, error)

	AddAddress(ctx context.Context, userID string, input AddressInput) (*UserProfile, error)
	UpdateAddress(ctx context.Context, userID, addressID string, input UpdateAddressInput) (*UserProfile, error)
	SetDefaultAddress(ctx context.Context, userID, addressID string) (*UserProfile, error)
	RemoveAddress(ctx context.Context, userID, addressID string) (*UserProfile, error)
}
