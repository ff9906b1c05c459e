package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

// AddressService implements standalone address CRUD with trim/required
// validation applied before persistence.
type AddressService struct {
	repo   ports.AddressRepository
	logger zerolog.Logger
}

func NewAddressService(repo ports.AddressRepository, logger zerolog.Logger) *AddressService {
	return &AddressService{repo: repo, logger: logger}
}

func (s *AddressService) Create(ctx context.Context, input ports.AddressInput) (*domain.Address, error) {
	city, err := requiredField("cityName", input.CityName)
	if err != nil {
		return nil, err
	}
	county, err := requiredField("countyName", input.CountyName)
	if err != nil {
		return nil, err
	}
	district, err := requiredField("districtName", input.DistrictName)
	if err != nil {
		return nil, err
	}
	text, err := requiredField("addressText", input.AddressText)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	address := &domain.Address{
		CityName:     city,
		CountyName:   county,
		DistrictName: district,
		AddressText:  text,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, address)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create address")
		return nil, err
	}
	return created, nil
}

// Update applies a partial field merge; validation is re-applied to changed
// fields only.
func (s *AddressService) Update(ctx context.Context, id string, input ports.UpdateAddressInput) (*domain.Address, error) {
	address, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CityName != nil {
		if address.CityName, err = requiredField("cityName", *input.CityName); err != nil {
			return nil, err
		}
	}
	if input.CountyName != nil {
		if address.CountyName, err = requiredField("countyName", *input.CountyName); err != nil {
			return nil, err
		}
	}
	if input.DistrictName != nil {
		if address.DistrictName, err = requiredField("districtName", *input.DistrictName); err != nil {
			return nil, err
		}
	}
	if input.AddressText != nil {
		if address.AddressText, err = requiredField("addressText", *input.AddressText); err != nil {
			return nil, err
		}
	}
	address.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, address)
}

func (s *AddressService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// requiredField trims the value and rejects it when nothing remains.
func requiredField(name, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", domain.NewValidationError("%s is required", name)
	}
	return trimmed, nil
}
