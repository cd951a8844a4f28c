package middleware

import (
	"errors"

	"github.com/bilgisen/dashboard/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// NewErrorHandler returns a fiber ErrorHandler that answers with the error's
// message as plain text. Non-fiber errors become a bare 500.
func NewErrorHandler(log *zerolog.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Get()
	}

	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			msg = e.Message
		}

		log.Debug().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", code).
			Msg("HTTP error")

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(msg)
	}
}
