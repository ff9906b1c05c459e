package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

// revocationTTL mirrors the bearer token validity window; a deleted account's
// identity stays on the revocation list at least that long.
const revocationTTL = 30 * 24 * time.Hour

// UserService implements account CRUD and the address-set invariants.
type UserService struct {
	users       ports.UserRepository
	addresses   ports.AddressRepository
	addressSvc  ports.AddressService
	revocations ports.TokenRevoker
	logger      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	addresses ports.AddressRepository,
	addressSvc ports.AddressService,
	revocations ports.TokenRevoker,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:       users,
		addresses:   addresses,
		addressSvc:  addressSvc,
		revocations: revocations,
		logger:      logger,
	}
}

// Create registers a new account: the initial address is created first, then
// the user referencing it as sole member and default of the owned set.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*ports.UserProfile, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	address, err := s.addressSvc.Create(ctx, input.Address)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:            input.Email,
		PasswordHash:     input.PasswordHash,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		AddressIDs:       []string{address.ID},
		DefaultAddressID: address.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user created")

	return populateUser(ctx, s.addresses, created)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return populateUser(ctx, s.addresses, user)
}

// Update applies a partial profile update. Address references are never
// touched here; the dedicated address operations own that state.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email, err := requiredField("email", *input.Email)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	return populateUser(ctx, s.addresses, updated)
}

// Delete removes the account, cascading to every owned address (best-effort,
// no transaction) and revoking any outstanding bearer tokens.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	for _, addressID := range user.AddressIDs {
		if err := s.addressSvc.Delete(ctx, addressID); err != nil {
			s.logger.Warn().Err(err).Str("address_id", addressID).Msg("cascade address delete failed")
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if s.revocations != nil {
		if err := s.revocations.Revoke(ctx, id, revocationTTL); err != nil {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("token revocation failed")
		}
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) UpdateSellerStatus(ctx context.Context, id string, isSeller bool) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsSeller = isSeller
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	return populateUser(ctx, s.addresses, updated)
}

// AddAddress creates a new address and appends it to the user's owned set.
// The first address automatically becomes the default.
func (s *UserService) AddAddress(ctx context.Context, userID string, input ports.AddressInput) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	address, err := s.addressSvc.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	user.AppendAddress(address.ID)
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	return populateUser(ctx, s.addresses, updated)
}

// UpdateAddress verifies ownership before delegating the field update.
func (s *UserService) UpdateAddress(ctx context.Context, userID, addressID string, input ports.UpdateAddressInput) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.OwnsAddress(addressID) {
		return nil, domain.ErrAddressNotOwned
	}

	if _, err := s.addressSvc.Update(ctx, addressID, input); err != nil {
		return nil, err
	}
	return populateUser(ctx, s.addresses, user)
}

func (s *UserService) SetDefaultAddress(ctx context.Context, userID, addressID string) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.OwnsAddress(addressID) {
		return nil, domain.ErrAddressNotOwned
	}

	user.DefaultAddressID = addressID
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	return populateUser(ctx, s.addresses, updated)
}

// RemoveAddress detaches the address from the owned set, reassigns the
// default if needed, persists the user, and only then deletes the address
// record. The reference must be gone before the record is destroyed so a
// failed save cannot leave a default pointing at a deleted address.
func (s *UserService) RemoveAddress(ctx context.Context, userID, addressID string) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.RemoveAddress(addressID) {
		return nil, domain.ErrAddressNotOwned
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.addressSvc.Delete(ctx, addressID); err != nil {
		s.logger.Warn().Err(err).Str("address_id", addressID).Msg("detached address delete failed")
	}

	return populateUser(ctx, s.addresses, updated)
}
