package service

import (
	"context"
	"fmt"

	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

// populateUser joins the user's owned address references into full records and
// builds the credential-free profile view.
func populateUser(ctx context.Context, addresses ports.AddressRepository, user *domain.User) (*ports.UserProfile, error) {
	owned, err := addresses.FindByIDs(ctx, user.AddressIDs)
	if err != nil {
		return nil, fmt.Errorf("populate addresses: %w", err)
	}

	profile := &ports.UserProfile{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsVerified: user.IsVerified,
		IsSeller:   user.IsSeller,
		Addresses:  owned,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}

	if user.DefaultAddressID != "" {
		for i := range owned {
			if owned[i].ID == user.DefaultAddressID {
				profile.DefaultAddress = &owned[i]
				break
			}
		}
	}

	return profile, nil
}
