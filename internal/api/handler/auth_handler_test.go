package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginStep1Fn func(ctx context.Context, username, password string) error
	loginStep2Fn func(ctx context.Context, username, code string) (*ports.LoginResult, error)
	requestFn    func(ctx context.Context, email string) error
	resetFn      func(ctx context.Context, email, code, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) LoginStep1(ctx context.Context, username, password string) error {
	return s.loginStep1Fn(ctx, username, password)
}

func (s *stubAuthService) LoginStep2(ctx context.Context, username, code string) (*ports.LoginResult, error) {
	return s.loginStep2Fn(ctx, username, code)
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.requestFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return s.resetFn(ctx, email, code, newPassword)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "alice" || in.Role != "DONOR" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Username: in.Username, Email: in.Email, Role: domain.RoleDonor}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cret","role":"DONOR"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["role"] != "DONOR" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	// Missing password.
	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com"}`)

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_DuplicatePropagates(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateIdentity
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"s3cret"}`)

	if err := handler.Register(c); !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestAuthHandler_Login_NoTokenBeforeOTP(t *testing.T) {
	stub := &stubAuthService{
		loginStep1Fn: func(ctx context.Context, username, password string) error {
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"s3cret"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "token") {
		t.Fatalf("first step must not return a token: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginStep1Fn: func(ctx context.Context, username, password string) error {
			return domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"wrong"}`)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_VerifyOTP_Success(t *testing.T) {
	stub := &stubAuthService{
		loginStep2Fn: func(ctx context.Context, username, code string) (*ports.LoginResult, error) {
			if username != "alice" || code != "123456" {
				t.Fatalf("unexpected args: %s %s", username, code)
			}
			return &ports.LoginResult{Token: "token123", Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/verify-otp",
		`{"username":"alice","code":"123456"}`)

	if err := handler.VerifyOTP(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token123" || resp.Username != "alice" || resp.Role != "ADMIN" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_VerifyOTP_BadCodeLength(t *testing.T) {
	stub := &stubAuthService{
		loginStep2Fn: func(ctx context.Context, username, code string) (*ports.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/verify-otp",
		`{"username":"alice","code":"123"}`)

	err := handler.VerifyOTP(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_ResetPassword_Success(t *testing.T) {
	stub := &stubAuthService{
		resetFn: func(ctx context.Context, email, code, newPassword string) error {
			if email != "alice@example.com" || code != "123456" || newPassword != "new-pass" {
				t.Fatalf("unexpected args: %s %s %s", email, code, newPassword)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/reset-password",
		`{"email":"alice@example.com","code":"123456","new_password":"new-pass"}`)

	if err := handler.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
