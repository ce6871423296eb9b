package config

import (
	"CostTracker/database/postgres"
	authHandler "CostTracker/internal/api/auth/handler"
	authService "CostTracker/internal/api/auth/service"
	expenseHandler "CostTracker/internal/api/expense/handler"
	expenseRepository "CostTracker/internal/api/expense/repository"
	expenseService "CostTracker/internal/api/expense/service"
	"CostTracker/internal/middleware"
	"CostTracker/pkg/bcrypt"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		if err := postgres.RunMigrations(db); err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to run migrations: %v", err)
			}
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		s.db = db
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authServices := authService.New(s.log, s.bcryptUtils)
	authHandlers := authHandler.New(s.log, s.validator, s.middleware, authServices)

	// Expense Domain
	expenseRepo := expenseRepository.New(s.db, s.log)
	expenseServices := expenseService.NewExpenseService(s.log, expenseRepo)
	expenseHandlers := expenseHandler.New(s.log, s.validator, s.middleware, expenseServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, expenseHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	router := s.engine.Group("")
	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	if s.db != nil {
		defer s.db.Close()
	}
	return s.engine.Shutdown()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status": "ok",
		})
	})
}
