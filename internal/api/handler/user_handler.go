package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

// UserHandler handles profile and address management for authenticated users.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// userError maps service errors on user routes: validation problems are the
// caller's fault, everything else (lookup misses included) is a 500 with the
// error message in the envelope.
func userError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrValidation) {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	return fail(c, http.StatusInternalServerError, err.Error())
}

// Profile returns the authenticated user's own account.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetByID(c.Request().Context(), userID)
	if err != nil {
		return userError(c, err)
	}
	return ok(c, http.StatusOK, toUserResponse(profile))
}

// GetByID returns any user by id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  successResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	profile, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return userError(c, err)
	}
	return ok(c, http.StatusOK, toUserResponse(profile))
}

// Update applies a partial profile update to the caller's own account.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  successResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	profile, err := h.userService.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return userError(c, err)
	}
	return ok(c, http.StatusOK, toUserResponse(profile))
}

// Delete removes the caller's own account and every owned address.
//
// @Summary      Delete own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "user deleted successfully"})
}

// UpdateSellerStatus toggles the seller flag on a user.
//
// @Summary      Update seller status
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User id"
// @Param        body  body      sellerStatusRequest  true  "Seller flag"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /users/{id}/seller-status [put]
func (h *UserHandler) UpdateSellerStatus(c echo.Context) error {
	var req sellerStatusRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "isSellerStatus must be a boolean value")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "isSellerStatus must be a boolean value")
	}

	profile, err := h.userService.UpdateSellerStatus(c.Request().Context(), c.Param("id"), *req.IsSellerStatus)
	if err != nil {
		return userError(c, err)
	}
	return ok(c, http.StatusOK, toUserResponse(profile))
}

// AddAddress creates an address and attaches it to the caller's account. The
// first address a user gets becomes the default.
//
// @Summary      Add an address
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "User id"
// @Param        body  body      addressRequest  true  "Address fields"
// @Success      201   {object}  successResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /users/{id}/addresses [post]
func (h *UserHandler) AddAddress(c echo.Context) error {
	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	profile, err := h.userService.AddAddress(c.Request().Context(), c.Param("id"), toAddressInput(req))
	if err != nil {
		return userError(c, err)
	}
	return ok(c, http.StatusCreated, toUserResponse(profile))
}

// UpdateAddress applies a partial update to an owned address.
//
// @Summary      Update an owned address
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string                true  "User id"
// @Param        addressId  path      string                true  "Address id"
// @Param        body       body      updateAddressRequest  true  "Fields to update"
// @Success      200        {object}  successResponse
// @Failure      403        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /users/{id}/addresses/{addressId} [put]
func (h *UserHandler) UpdateAddress(c echo.Context) error {
	var req updateAddressRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.userService.UpdateAddress(c.Request().Context(), c.Param("id"), c.Param("addressId"), ports.UpdateAddressInput{
		CityName:     req.CityName,
		CountyName:   req.CountyName,
		DistrictName: req.DistrictName,
		AddressText:  req.AddressText,
	})
	if err != nil {
		return userError(c, err)
	}
	return ok(c, http.StatusOK, toUserResponse(profile))
}

// SetDefaultAddress designates an owned address as the default.
//
// @Summary      Set the default address
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "User id"
// @Param        addressId  path      string  true  "Address id"
// @Success      200        {object}  successResponse
// @Failure      403        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /users/{id}/addresses/{addressId}/default [put]
func (h *UserHandler) SetDefaultAddress(c echo.Context) error {
	profile, err := h.userService.SetDefaultAddress(c.Request().Context(), c.Param("id"), c.Param("addressId"))
	if err != nil {
		return userError(c, err)
	}
	return ok(c, http.StatusOK, toUserResponse(profile))
}

// RemoveAddress detaches and deletes an owned address, reassigning the
// default when the removed address held it.
//
// @Summary      Remove an owned address
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "User id"
// @Param        addressId  path      string  true  "Address id"
// @Success      200        {object}  successResponse
// @Failure      403        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /users/{id}/addresses/{addressId} [delete]
func (h *UserHandler) RemoveAddress(c echo.Context) error {
	profile, err := h.userService.RemoveAddress(c.Request().Context(), c.Param("id"), c.Param("addressId"))
	if err != nil {
		return userError(c, err)
	}
	return ok(c, http.StatusOK, toUserResponse(profile))
}
