package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

type stubUserRepo struct {
	insertFn func(ctx context.Context, username, password string) error
}

func (s *stubUserRepo) Insert(ctx context.Context, username, password string) error {
	return s.insertFn(ctx, username, password)
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) ListUsernames(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestUserHandler_Create_StoresRawPassword(t *testing.T) {
	e := newTestEcho()
	var gotPassword string
	users := &stubUserRepo{
		insertFn: func(ctx context.Context, username, password string) error {
			gotPassword = password
			return nil
		},
	}
	handler := NewUserHandler(users, nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/users", `{"username":"alice","password":"plaintext"}`), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotPassword != "plaintext" {
		t.Fatalf("password must pass through untouched, got %q", gotPassword)
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	e := newTestEcho()
	users := &stubUserRepo{
		insertFn: func(ctx context.Context, username, password string) error {
			return domain.ErrUserExists
		},
	}
	handler := NewUserHandler(users, nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/users", `{"username":"alice","password":"pw"}`), rec)

	if err := handler.Create(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists passthrough, got %v", err)
	}
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	e := newTestEcho()
	users := &stubUserRepo{
		insertFn: func(ctx context.Context, username, password string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewUserHandler(users, nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/users", `{"username":"alice"}`), rec)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	e := newTestEcho()
	query := &stubQueryService{
		listUsersFn: func(ctx context.Context) ([]string, error) {
			return []string{"alice", "bob"}, nil
		},
	}
	handler := NewUserHandler(nil, query)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var names []string
	if err := json.Unmarshal(rec.Body.Bytes(), &names); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}
}

func TestUserHandler_Get(t *testing.T) {
	e := newTestEcho()
	query := &stubQueryService{
		getUserFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username != "alice" {
				t.Fatalf("unexpected username %q", username)
			}
			return &domain.User{
				Username:  "alice",
				Processes: []domain.Process{{ID: "p1", Steps: []domain.Step{{ID: "s1"}}}},
			}, nil
		},
	}
	handler := NewUserHandler(nil, query)

	req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Username != "alice" || len(got.Processes) != 1 || len(got.Processes[0].Steps) != 1 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	query := &stubQueryService{
		getUserFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(nil, query)

	req := httptest.NewRequest(http.MethodGet, "/users/ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("ghost")

	if err := handler.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound passthrough, got %v", err)
	}
}
