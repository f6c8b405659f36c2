package handlers

import "github.com/gofiber/fiber/v2"

// historyResponse mirrors the store's parallel-array KPISeries shape.
type historyResponse struct {
	Labels        []int     `json:"labels"`
	Profit        []float64 `json:"profit"`
	Revenue       []float64 `json:"revenue"`
	Cost          []float64 `json:"cost"`
	PigsDelivered []int     `json:"pigs_delivered"`
}

// History handles GET /api/v1/history: returns every recorded day's
// KPIs as parallel arrays for charting. Returns empty arrays, not an
// error, when no history repository is configured or no days have
// been recorded yet.
func (h *Handler) History(c *fiber.Ctx) error {
	if h.history == nil {
		return c.JSON(historyResponse{})
	}

	series, err := h.history.Series(c.Context())
	if err != nil {
		h.log.Error("history: series failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load history"})
	}

	return c.JSON(historyResponse{
		Labels:        series.Labels,
		Profit:        series.Profit,
		Revenue:       series.Revenue,
		Cost:          series.Cost,
		PigsDelivered: series.PigsDelivered,
	})
}
