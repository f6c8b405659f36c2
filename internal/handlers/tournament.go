package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// tournamentResponse reports the winning fleet composition and its
// horizon outcome.
type tournamentResponse struct {
	SmallTrucks        int     `json:"small_trucks"`
	LargeTrucks        int     `json:"large_trucks"`
	NetProfit          float64 `json:"net_profit"`
	TotalTransportCost float64 `json:"total_transport_cost"`
	TotalPenalty       float64 `json:"total_penalty"`
}

// RunTournament handles POST /api/v1/tournament/run: replays the
// loaded scenario under every candidate fleet composition and returns
// the one that maximises net profit. This does not mutate the live
// engine; the tournament builds its own scratch engines per candidate.
func (h *Handler) RunTournament(c *fiber.Ctx) error {
	if h.tournament == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "tournament not configured"})
	}

	result := h.tournament.Run(c.Context(), h.scenario)

	resp := tournamentResponse{
		SmallTrucks: result.Composition.Small,
		LargeTrucks: result.Composition.Large,
		NetProfit:   result.NetProfit,
	}
	if result.Outcome != nil {
		resp.TotalTransportCost = result.Outcome.TotalTransportCost
		resp.TotalPenalty = result.Outcome.TotalPenalty
	}
	return c.JSON(resp)
}
