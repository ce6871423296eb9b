package middleware

import (
	"CostTracker/internal/entity"
	"CostTracker/pkg/formatter"
	jwtPkg "CostTracker/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

// NewTokenMiddleware gates every /api route: a missing, malformed, expired,
// or otherwise invalid bearer token short-circuits before any repository
// call, with one uniform response body.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if authHeader == "" {
		m.log.WithFields(logrus.Fields{
			"path":   ctx.Path(),
			"method": ctx.Method(),
		}).Warn("Authorization header is missing")
		return m.unauthorized(ctx)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"path": ctx.Path(),
		}).Warn("Authorization header format is invalid")
		return m.unauthorized(ctx)
	}

	adminToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": err.Error(),
		}).Warn("Token verification failed")
		return m.unauthorized(ctx)
	}

	claims, ok := adminToken.Claims.(jwt.MapClaims)
	if !ok {
		m.log.WithFields(logrus.Fields{
			"path": ctx.Path(),
		}).Warn("Invalid token claims")
		return m.unauthorized(ctx)
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		m.log.WithFields(logrus.Fields{
			"path": ctx.Path(),
		}).Warn("Token claims are missing required fields")
		return m.unauthorized(ctx)
	}

	ctx.Locals("admin", entity.AdminLoginData{
		Username: username,
	})

	return ctx.Next()
}

func (m *middleware) unauthorized(ctx *fiber.Ctx) error {
	return formatter.Render(ctx, formatter.NegotiateOrDefault(ctx), fiber.StatusUnauthorized,
		formatter.NewErrorEnvelope("UNAUTHORIZED", "Unauthorized, access token invalid or expired", nil))
}
