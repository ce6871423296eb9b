package authService

import (
	"CostTracker/internal/api/auth"
	"CostTracker/pkg/bcrypt"
	"context"
	"io"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

func newTestService(t *testing.T) IAuthService {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger, bcrypt.NewWithCost(4))
}

func TestLoginWithPlaintextPassword(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	svc := newTestService(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "admin", password: "hunter2"},
		{name: "wrong password", username: "admin", password: "wrong", wantErr: auth.ErrInvalidCredentials},
		{name: "unknown username", username: "intruder", password: "hunter2", wantErr: auth.ErrInvalidCredentials},
		{name: "both wrong", username: "intruder", password: "wrong", wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := svc.Login(context.Background(), auth.LoginRequest{
				Username: tt.username,
				Password: tt.password,
			})

			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			if envelope.AccessToken == "" {
				t.Fatal("access token is empty")
			}
			if envelope.TokenType != "Bearer" {
				t.Errorf("token type = %q, want Bearer", envelope.TokenType)
			}
			if envelope.ExpiresAt == 0 {
				t.Error("expires_at is zero")
			}
		})
	}
}

func TestLoginWithBcryptHash(t *testing.T) {
	hasher := bcrypt.NewWithCost(4)
	hash, err := hasher.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD_HASH", hash)
	t.Setenv("ADMIN_PASSWORD", "")

	svc := newTestService(t)

	if _, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "admin",
		Password: "hunter2",
	}); err != nil {
		t.Fatalf("valid login failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "admin",
		Password: "wrong",
	}); err != auth.ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginTokenCarriesUsernameClaim(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	svc := newTestService(t)

	envelope, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "admin",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	token, err := jwt.Parse(envelope.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if claims["username"] != "admin" || claims["sub"] != "admin" {
		t.Errorf("claims = %v, want username and sub set to admin", claims)
	}
}

func TestLoginWithoutAdminConfigured(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	svc := newTestService(t)

	if _, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "admin",
		Password: "hunter2",
	}); err != auth.ErrAdminNotConfigured {
		t.Fatalf("err = %v, want ErrAdminNotConfigured", err)
	}
}
