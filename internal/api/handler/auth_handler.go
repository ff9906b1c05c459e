package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/account-service/internal/api/metrics"
	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

// AuthHandler handles registration, login and the email verification flow.
type AuthHandler struct {
	authService         ports.AuthService
	verificationService ports.VerificationService
}

func NewAuthHandler(authService ports.AuthService, verificationService ports.VerificationService) *AuthHandler {
	return &AuthHandler{authService: authService, verificationService: verificationService}
}

// Register creates a new user account with its initial address and sends a
// verification code to the given email.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	profile, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   toAddressInput(req.Address),
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	metrics.RegistrationsTotal.Inc()

	return ok(c, http.StatusCreated, toUserResponse(profile))
}

// Login authenticates a user and returns a 30-day bearer token. Valid
// credentials on an unverified account return 403 with the user id instead of
// a token so the client can route to the verify/resend flow.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  unverifiedResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	token, profile, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return fail(c, http.StatusUnauthorized, "invalid credentials")
		}
		return fail(c, http.StatusInternalServerError, "internal error")
	}

	if !profile.IsVerified {
		metrics.LoginsTotal.WithLabelValues("unverified").Inc()
		return c.JSON(http.StatusForbidden, unverifiedResponse{
			Message: "email not verified",
			UserID:  profile.ID,
		})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return ok(c, http.StatusOK, loginResponse{
		User:  toUserResponse(profile),
		Token: token,
	})
}

// VerifyEmail consumes a verification code and marks the account verified.
//
// @Summary      Verify email with a code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyEmailRequest  true  "User id and code"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	profile, err := h.verificationService.Consume(c.Request().Context(), req.UserID, req.VerificationCode)
	if err != nil {
		metrics.VerificationsConsumedTotal.WithLabelValues("invalid").Inc()
		return fail(c, http.StatusBadRequest, err.Error())
	}

	metrics.VerificationsConsumedTotal.WithLabelValues("success").Inc()

	return ok(c, http.StatusOK, toUserResponse(profile))
}

// ResendVerification issues a fresh verification code, superseding prior ones.
//
// @Summary      Resend the verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resendVerificationRequest  true  "User id"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req resendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	if _, err := h.verificationService.Resend(c.Request().Context(), req.UserID); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "verification code sent"})
}
