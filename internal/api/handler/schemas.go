package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

// successResponse is the envelope on every 2xx response.
type successResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// errorResponse is the envelope on every 4xx/5xx response.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// unverifiedResponse signals that credentials were valid but the account has
// not confirmed its email yet; it carries the user id (never a token) so the
// client can route to the verify/resend flow.
type unverifiedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, successResponse{Success: true, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Message: message})
}

// --- Request types ---

type addressRequest struct {
	CityName     string `json:"cityName"     validate:"required"`
	CountyName   string `json:"countyName"   validate:"required"`
	DistrictName string `json:"districtName" validate:"required"`
	AddressText  string `json:"addressText"  validate:"required"`
}

type registerRequest struct {
	Email     string         `json:"email"     validate:"required,email"`
	Password  string         `json:"password"  validate:"required,min=6"`
	FirstName string         `json:"firstName" validate:"required"`
	LastName  string         `json:"lastName"  validate:"required"`
	Address   addressRequest `json:"address"   validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type verifyEmailRequest struct {
	UserID           string `json:"userId"           validate:"required"`
	VerificationCode string `json:"verificationCode" validate:"required"`
}

type resendVerificationRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type updateUserRequest struct {
	Email     *string `json:"email"     validate:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type updateAddressRequest struct {
	CityName     *string `json:"cityName"`
	CountyName   *string `json:"countyName"`
	DistrictName *string `json:"districtName"`
	AddressText  *string `json:"addressText"`
}

// sellerStatusRequest uses a pointer so a missing flag is distinguishable
// from an explicit false; a non-boolean JSON value fails at bind time.
type sellerStatusRequest struct {
	IsSellerStatus *bool `json:"isSellerStatus" validate:"required"`
}

// --- Response types ---

// userResponse is the credential-free account view returned on every user
// endpoint, with owned addresses populated.
type userResponse struct {
	ID             string           `json:"id"`
	Email          string           `json:"email"`
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	IsVerified     bool             `json:"isVerified"`
	IsSeller       bool             `json:"isSeller"`
	Addresses      []domain.Address `json:"addresses"`
	DefaultAddress *domain.Address  `json:"defaultAddress"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type loginResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(p *ports.UserProfile) userResponse {
	addresses := p.Addresses
	if addresses == nil {
		addresses = []domain.Address{}
	}
	return userResponse{
		ID:             p.ID,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		IsVerified:     p.IsVerified,
		IsSeller:       p.IsSeller,
		Addresses:      addresses,
		DefaultAddress: p.DefaultAddress,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toAddressInput(req addressRequest) ports.AddressInput {
	return ports.AddressInput{
		CityName:     req.CityName,
		CountyName:   req.CountyName,
		DistrictName: req.DistrictName,
		AddressText:  req.AddressText,
	}
}
