package auth

import "encoding/xml"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenEnvelope struct {
	XMLName     xml.Name `json:"-" xml:"response"`
	AccessToken string   `json:"access_token" xml:"access_token"`
	TokenType   string   `json:"token_type" xml:"token_type"`
	ExpiresAt   int64    `json:"expires_at" xml:"expires_at"`
}
