package formatter

import (
	"CostTracker/pkg/response"
	"encoding/xml"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Output format for every list/detail/error payload, chosen by the
// `format` query parameter. Empty means JSON.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

var ErrUnsupportedFormat = response.NewError(fiber.StatusBadRequest, "unsupported format, expected json or xml")

func Negotiate(c *fiber.Ctx) (Format, error) {
	raw := strings.ToLower(strings.TrimSpace(c.Query("format")))

	switch raw {
	case "", "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	default:
		return FormatJSON, ErrUnsupportedFormat
	}
}

// NegotiateOrDefault is for paths that must always produce a body, error
// responses included. A bad format value falls back to JSON there.
func NegotiateOrDefault(c *fiber.Ctx) Format {
	format, err := Negotiate(c)
	if err != nil {
		return FormatJSON
	}
	return format
}

func Render(c *fiber.Ctx, format Format, status int, payload interface{}) error {
	if format == FormatXML {
		return c.Status(status).XML(payload)
	}
	return c.Status(status).JSON(payload)
}

type FieldError struct {
	Field   string `json:"field" xml:"field"`
	Message string `json:"message" xml:"message"`
}

type ErrorBody struct {
	Code    string       `json:"code,omitempty" xml:"code,omitempty"`
	Message string       `json:"message" xml:"message"`
	Details []FieldError `json:"details,omitempty" xml:"details>field_error,omitempty"`
}

type ErrorEnvelope struct {
	XMLName xml.Name  `json:"-" xml:"response"`
	Error   ErrorBody `json:"error" xml:"error"`
}

func NewErrorEnvelope(code string, message string, details []FieldError) ErrorEnvelope {
	return ErrorEnvelope{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
