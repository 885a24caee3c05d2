package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shoporbit/console-gateway/internal/core/domain"
)

type recordingNotifier struct {
	pushed []domain.Toast
}

func (n *recordingNotifier) Push(message string, severity domain.Severity, title string) domain.Toast {
	toast := domain.Toast{ID: int64(len(n.pushed) + 1), Message: message, Severity: severity, Title: title}
	n.pushed = append(n.pushed, toast)
	return toast
}

func (n *recordingNotifier) Dismiss(int64)          {}
func (n *recordingNotifier) Active() []domain.Toast { return nil }

func runErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, *recordingNotifier) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	notifier := &recordingNotifier{}
	NewHTTPErrorHandler(zerolog.Nop(), notifier)(err, c)
	return rec, notifier
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrPrincipalInactive, http.StatusForbidden},
		{domain.ErrPrincipalNotFound, http.StatusUnauthorized},
		{domain.ErrNoSession, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec, notifier := runErrorHandler(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}

		var body struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if want := domain.StatusMessage(tc.code); body.Error != want {
			t.Fatalf("%v: message %q, want fixed message %q", tc.err, body.Error, want)
		}

		if len(notifier.pushed) != 1 {
			t.Fatalf("%v: expected one toast, got %d", tc.err, len(notifier.pushed))
		}
		if notifier.pushed[0].Severity != domain.SeverityError {
			t.Fatalf("%v: toast severity %s", tc.err, notifier.pushed[0].Severity)
		}
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, _ := runErrorHandler(t, echo.NewHTTPError(http.StatusUnprocessableEntity, "email is required"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != domain.StatusMessage(http.StatusUnprocessableEntity) {
		t.Fatalf("message %q", body.Error)
	}
}

func TestErrorHandler_CancellationSuppressed(t *testing.T) {
	rec, notifier := runErrorHandler(t, context.Canceled)
	if len(notifier.pushed) != 0 {
		t.Fatalf("cancellation produced a toast")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("cancellation produced a response body: %s", rec.Body.String())
	}
}
