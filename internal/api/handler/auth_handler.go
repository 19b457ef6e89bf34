package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donation-system/internal/api/metrics"
	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

// AuthHandler handles registration and the two-step login flow.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		Age:       u.Age,
		Contact:   u.Contact,
		BloodType: u.BloodType,
	}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Age:       req.Age,
		Contact:   req.Contact,
		BloodType: req.BloodType,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login checks credentials and emails a one-time code. No token is issued
// until the code is verified.
//
// @Summary      First login step: password check and code delivery
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.LoginStep1(c.Request().Context(), req.Username, req.Password); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues("login").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "verification code sent"})
}

// VerifyOTP completes the login and returns the bearer token.
//
// @Summary      Second login step: code verification and token issuance
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Username and one-time code"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.LoginStep2(c.Request().Context(), req.Username, req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			metrics.OTPFailuresTotal.Inc()
		}
		return err
	}

	metrics.LoginsTotal.Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:    result.Token,
		Username: result.Username,
		Role:     string(result.Role),
	})
}

// RequestPasswordReset emails a one-time code to the account's address.
//
// @Summary      Request a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      requestResetRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/request-reset [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req requestResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues("password_reset").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "reset code sent"})
}

// ResetPassword sets a new password after verifying the reset code.
//
// @Summary      Reset the password with a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email, code, and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.Code, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			metrics.OTPFailuresTotal.Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}
