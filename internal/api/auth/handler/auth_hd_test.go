package authHandler_test

import (
	"CostTracker/internal/api/auth"
	authHandler "CostTracker/internal/api/auth/handler"
	"CostTracker/internal/config"
	"CostTracker/internal/middleware"
	"CostTracker/pkg/formatter"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeAuthService struct {
	loginFn func(ctx context.Context, req auth.LoginRequest) (auth.TokenEnvelope, error)
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenEnvelope, error) {
	return f.loginFn(ctx, req)
}

func newTestApp(t *testing.T, svc *fakeAuthService) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := authHandler.New(logger, config.NewValidator(), middleware.New(logger), svc)

	app := fiber.New()
	handler.Start(app)
	return app
}

func loginRequest(payload string) *http.Request {
	req := httptest.NewRequest(fiber.MethodPost, "/auth/login", strings.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

func TestLoginSuccess(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(_ context.Context, req auth.LoginRequest) (auth.TokenEnvelope, error) {
			if req.Username != "admin" || req.Password != "hunter2" {
				t.Errorf("credentials not passed through: %+v", req)
			}
			return auth.TokenEnvelope{
				AccessToken: "token-123",
				TokenType:   "Bearer",
				ExpiresAt:   1766620800,
			}, nil
		},
	}
	app := newTestApp(t, svc)

	resp, err := app.Test(loginRequest(`{"username":"admin","password":"hunter2"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var envelope auth.TokenEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.AccessToken != "token-123" || envelope.TokenType != "Bearer" {
		t.Errorf("envelope = %+v, want token-123/Bearer", envelope)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(_ context.Context, _ auth.LoginRequest) (auth.TokenEnvelope, error) {
			return auth.TokenEnvelope{}, auth.ErrInvalidCredentials
		},
	}
	app := newTestApp(t, svc)

	resp, err := app.Test(loginRequest(`{"username":"admin","password":"wrong"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	var envelope formatter.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != "UNAUTHORIZED" {
		t.Errorf("error code = %q, want UNAUTHORIZED", envelope.Error.Code)
	}
}

func TestLoginValidationNamesMissingFields(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(_ context.Context, _ auth.LoginRequest) (auth.TokenEnvelope, error) {
			t.Error("service must not be called on validation failure")
			return auth.TokenEnvelope{}, nil
		},
	}
	app := newTestApp(t, svc)

	resp, err := app.Test(loginRequest(`{"username":"admin"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}

	var envelope formatter.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(envelope.Error.Details) != 1 || envelope.Error.Details[0].Field != "password" {
		t.Errorf("details = %+v, want exactly one entry for password", envelope.Error.Details)
	}
}
