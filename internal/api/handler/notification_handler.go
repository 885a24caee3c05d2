package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/core/ports"
)

type NotificationHandler struct {
	notifier ports.Notifier
}

func NewNotificationHandler(notifier ports.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

type pushRequest struct {
	Message  string `json:"message" validate:"required"`
	Severity string `json:"severity" validate:"required,oneof=success error info"`
	Title    string `json:"title"`
}

// Active lists the currently visible toasts in insertion order.
func (h *NotificationHandler) Active(c echo.Context) error {
	return c.JSON(http.StatusOK, h.notifier.Active())
}

// Push surfaces a transient result to the whole console.
func (h *NotificationHandler) Push(c echo.Context) error {
	var req pushRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	toast := h.notifier.Push(req.Message, domain.Severity(req.Severity), req.Title)
	return c.JSON(http.StatusCreated, toast)
}

// Dismiss removes a toast early. Dismissing an expired or unknown id is a
// no-op, not an error.
func (h *NotificationHandler) Dismiss(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid toast id")
	}
	h.notifier.Dismiss(id)
	return c.NoContent(http.StatusNoContent)
}
