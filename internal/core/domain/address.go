package domain

import "time"

// Address is a free-form location record. It carries no owner back-reference;
// ownership lives on the User side.
type Address struct {
	ID           string    `json:"id"`
	CityName     string    `json:"cityName"`
	CountyName   string    `json:"countyName"`
	DistrictName string    `json:"districtName"`
	AddressText  string    `json:"addressText"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
