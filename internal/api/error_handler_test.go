package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"process deleted", domain.ErrProcessDeleted, http.StatusConflict},
		{"process exists", domain.ErrProcessExists, http.StatusConflict},
		{"step exists", domain.ErrStepExists, http.StatusConflict},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"process not found", domain.ErrProcessNotFound, http.StatusNotFound},
		{"bad timestamp", domain.ErrBadTimestamp, http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"echo error passthrough", echo.NewHTTPError(http.StatusTeapot, "teapot"), http.StatusTeapot},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["error"] == "" {
				t.Fatalf("expected an error message in the envelope")
			}
		})
	}
}

func TestHTTPErrorHandler_UnknownErrorHidesCause(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("secret internal detail"), c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "internal server error" {
		t.Fatalf("internal cause leaked: %q", resp["error"])
	}
}
