package service

import (
	"context"
	"testing"

	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

func TestAddressService_Create_TrimsFields(t *testing.T) {
	f := newFixture()

	address, err := f.addressSvc.Create(context.Background(), ports.AddressInput{
		CityName:     "  Istanbul  ",
		CountyName:   " Kadikoy",
		DistrictName: "Moda ",
		AddressText:  " Some street 5 ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if address.CityName != "Istanbul" || address.CountyName != "Kadikoy" {
		t.Fatalf("fields not trimmed: %+v", address)
	}
	if address.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestAddressService_Create_RejectsBlankField(t *testing.T) {
	f := newFixture()

	_, err := f.addressSvc.Create(context.Background(), ports.AddressInput{
		CityName:     "City",
		CountyName:   "   ",
		DistrictName: "District",
		AddressText:  "Text",
	})
	if !isValidation(err) {
		t.Fatalf("expected validation error for blank county, got %v", err)
	}
}

func TestAddressService_Update_PartialMerge(t *testing.T) {
	f := newFixture()
	address, err := f.addressSvc.Create(context.Background(), ports.AddressInput{
		CityName: "A", CountyName: "B", DistrictName: "C", AddressText: "D",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	city := " NewCity "
	updated, err := f.addressSvc.Update(context.Background(), address.ID, ports.UpdateAddressInput{CityName: &city})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.CityName != "NewCity" {
		t.Fatalf("city not updated/trimmed: %q", updated.CityName)
	}
	if updated.CountyName != "B" || updated.AddressText != "D" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	blank := "  "
	if _, err := f.addressSvc.Update(context.Background(), address.ID, ports.UpdateAddressInput{DistrictName: &blank}); !isValidation(err) {
		t.Fatalf("expected validation error for blank district, got %v", err)
	}
}

func TestAddressService_Update_NotFound(t *testing.T) {
	f := newFixture()
	city := "X"
	if _, err := f.addressSvc.Update(context.Background(), "addr-999", ports.UpdateAddressInput{CityName: &city}); err != domain.ErrAddressNotFound {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestAddressService_Delete_NotFound(t *testing.T) {
	f := newFixture()
	if err := f.addressSvc.Delete(context.Background(), "addr-999"); err != domain.ErrAddressNotFound {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}
