package handlers

import "github.com/gofiber/fiber/v2"

// Reset handles POST /api/v1/reset: rewinds the engine to the loaded
// scenario's original farm inventory/weights and clears recorded
// history. Calling it repeatedly is a no-op past the first call.
func (h *Handler) Reset(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.engine.Reset(h.scenario, nil)

	if h.history != nil {
		if err := h.history.Truncate(c.Context()); err != nil {
			h.log.Warn("reset: history truncate failed", "error", err)
		}
	}

	return c.JSON(fiber.Map{"ok": true})
}
