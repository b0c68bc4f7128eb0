package rest

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/anagrafe/internal/logging"
	"github.com/gofiber/fiber/v2"
)

const requestIDHeader = "X-Request-ID"

func requestLogger(logger logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		logger.Debug(c.UserContext(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"request_id", c.Get(requestIDHeader),
			"duration", time.Since(start),
		)
		return err
	}
}

// errorHandler renders every error as {"message": "..."}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Errore interno"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"message": msg})
}

func statusOnly(code int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(code)
	}
}
