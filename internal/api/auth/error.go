package auth

import "CostTracker/pkg/response"

var (
	// Uniform for unknown username and wrong password so the response
	// cannot be used for enumeration.
	ErrInvalidCredentials = response.NewError(401, "invalid credentials")
	ErrAdminNotConfigured = response.NewError(500, "admin identity not configured")
)
