package authHandler

import (
	authService "CostTracker/internal/api/auth/service"
	"CostTracker/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	authService authService.IAuthService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	authService authService.IAuthService,
) *AuthHandler {
	return &AuthHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		authService: authService,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	authGroup := srv.Group("/auth")

	// Uniform-failure login is still brute-forceable, so it sits behind
	// the per-IP limiter.
	authGroup.Post("/login", h.middleware.NewRateLimiter, h.Login)
}
