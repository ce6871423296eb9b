package authService

import (
	"CostTracker/internal/api/auth"
	contextPkg "CostTracker/pkg/context"
	jwtPkg "CostTracker/pkg/jwt"
	"crypto/subtle"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const defaultTokenLifetimeSeconds = 3600

// Login checks the submitted credentials against the single configured
// admin identity. Unknown username and wrong password fail identically so
// the response cannot be used to enumerate accounts.
func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenEnvelope, error) {
	requestID := contextPkg.GetRequestID(ctx)

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Error("ADMIN_USERNAME is not configured")
		return auth.TokenEnvelope{}, auth.ErrAdminNotConfigured
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(adminUsername)) == 1

	passwordMatch, err := s.passwordMatches(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Error("Admin password is not configured")
		return auth.TokenEnvelope{}, err
	}

	if !usernameMatch || !passwordMatch {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Login attempt with invalid credentials")
		return auth.TokenEnvelope{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"sub":      req.Username,
		"username": req.Username,
	}, s.tokenLifetime())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return auth.TokenEnvelope{}, err
	}

	return auth.TokenEnvelope{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// passwordMatches prefers a bcrypt hash; the plaintext variable is a
// development fallback.
func (s *authService) passwordMatches(password string) (bool, error) {
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		return s.bcryptUtils.ComparePassword(hash, password) == nil, nil
	}

	plain := os.Getenv("ADMIN_PASSWORD")
	if plain == "" {
		return false, auth.ErrAdminNotConfigured
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(plain)) == 1, nil
}

func (s *authService) tokenLifetime() time.Duration {
	seconds := defaultTokenLifetimeSeconds
	if raw := os.Getenv("JWT_EXP_SECONDS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			seconds = parsed
		}
	}
	return time.Duration(seconds) * time.Second
}
