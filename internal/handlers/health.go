package handlers

import "github.com/gofiber/fiber/v2"

// Health handles health check requests.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "dispatch-api",
	})
}

// Version handles version requests.
func (h *Handler) Version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": "0.1.0",
		"service": "dispatch-api",
	})
}
