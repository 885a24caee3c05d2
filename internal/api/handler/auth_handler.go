package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shoporbit/console-gateway/internal/api/metrics"
	"github.com/shoporbit/console-gateway/internal/api/middleware"
	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
	notifier ports.Notifier
}

func NewAuthHandler(sessions ports.SessionService, notifier ports.Notifier) *AuthHandler {
	return &AuthHandler{sessions: sessions, notifier: notifier}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin vendor csr customer"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token               string            `json:"token"`
	Principal           *domain.Principal `json:"principal"`
	PendingVerification bool              `json:"pending_verification"`
	RedirectTo          string            `json:"redirect_to"`
}

type verifyRequest struct {
	Code string `json:"code" validate:"required"`
}

type verifyResponse struct {
	Verified   bool   `json:"verified"`
	RedirectTo string `json:"redirect_to"`
}

type sessionResponse struct {
	Principal *domain.Principal `json:"principal"`
	Verified  bool              `json:"verified"`
}

// Register creates a new console account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	principal, err := h.sessions.Register(c.Request().Context(), req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, principal)
}

// Login authenticates credentials and establishes a pending session. The
// caller is expected to route to the two-factor step next; the response
// carries the target.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:               result.Token,
		Principal:           result.Principal,
		PendingVerification: true,
		RedirectTo:          domain.PathTwoFactor,
	})
}

// VerifyTwoFactor runs the pending -> verified transition for the current
// session. A rejected code is a 422 with the flag left untouched.
func (h *AuthHandler) VerifyTwoFactor(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sid := middleware.SessionID(c)
	ok, err := h.sessions.VerifyTwoFactor(c.Request().Context(), sid, req.Code)
	if err != nil {
		return err
	}
	if !ok {
		metrics.TwoFactorAttemptsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid verification code")
	}
	metrics.TwoFactorAttemptsTotal.WithLabelValues("accepted").Inc()
	h.notifier.Push("signed in successfully", domain.SeveritySuccess, "")

	// The principal can evaporate between verification and this read if the
	// session state is refreshed and the backing read fails. Fall back to
	// the landing page; the gate re-evaluates on the next navigation.
	redirectTo := domain.PathLanding
	if principal, ok := h.sessions.Principal(c.Request().Context(), sid); ok {
		redirectTo = domain.DashboardPath(principal.Role)
	}

	return c.JSON(http.StatusOK, verifyResponse{
		Verified:   true,
		RedirectTo: redirectTo,
	})
}

// Session returns the current principal and verification flag.
func (h *AuthHandler) Session(c echo.Context) error {
	sid := middleware.SessionID(c)
	principal, _ := h.sessions.Principal(c.Request().Context(), sid)
	return c.JSON(http.StatusOK, sessionResponse{
		Principal: principal,
		Verified:  h.sessions.Verified(c.Request().Context(), sid),
	})
}

// Logout clears the principal and the verification flag together.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
