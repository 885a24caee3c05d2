package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/notify"
)

func TestNotificationHandler_PushListDismiss(t *testing.T) {
	center := notify.NewCenter(time.Minute, zerolog.Nop())
	defer center.Close()
	h := NewNotificationHandler(center)

	e := echo.New()
	e.Validator = NewValidator()

	// push
	req := httptest.NewRequest(http.MethodPost, "/notifications", strings.NewReader(`{"message":"order cancelled","severity":"info","title":"Orders"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	if err := h.Push(e.NewContext(req, rec)); err != nil {
		t.Fatalf("push handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var created domain.Toast
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode toast: %v", err)
	}

	// list
	req = httptest.NewRequest(http.MethodGet, "/notifications", nil)
	rec = httptest.NewRecorder()
	if err := h.Active(e.NewContext(req, rec)); err != nil {
		t.Fatalf("active handler error: %v", err)
	}
	var active []domain.Toast
	if err := json.Unmarshal(rec.Body.Bytes(), &active); err != nil {
		t.Fatalf("decode active set: %v", err)
	}
	if len(active) != 1 || active[0].ID != created.ID {
		t.Fatalf("unexpected active set: %+v", active)
	}

	// dismiss
	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9999999") // unknown id is a no-op
	if err := h.Dismiss(c); err != nil {
		t.Fatalf("dismiss unknown id: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	if got := center.Active(); len(got) != 1 {
		t.Fatalf("unknown-id dismiss removed a toast: %+v", got)
	}
}

func TestNotificationHandler_PushValidation(t *testing.T) {
	center := notify.NewCenter(time.Minute, zerolog.Nop())
	defer center.Close()
	h := NewNotificationHandler(center)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/notifications", strings.NewReader(`{"message":"x","severity":"fatal"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	err := h.Push(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad severity, got %v", err)
	}
}

func TestNotificationHandler_DismissBadID(t *testing.T) {
	center := notify.NewCenter(time.Minute, zerolog.Nop())
	defer center.Close()
	h := NewNotificationHandler(center)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-number")

	err := h.Dismiss(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
