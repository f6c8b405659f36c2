package handlers

import (
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/economics"
	"github.com/farmhaul/dispatch/internal/planner"
)

// dayStepRequest is the day-step request body. GrowthRate overrides
// the growth distribution's mean; the HTTP layer's default (0.9)
// deliberately differs from the simulation driver's own default (0.8)
// since a human stepping day-by-day expects faster visible progress
// than an unattended multi-week run.
type dayStepRequest struct {
	GrowthRate *float64 `json:"growth_rate"`
}

type routeResponse struct {
	TruckType       string          `json:"truck_type"`
	Path            [][2]float64    `json:"path"`
	Stops           []string        `json:"stops"`
	PigsTransported int             `json:"pigs_transported"`
	Cost            float64         `json:"cost"`
}

type kpisResponse struct {
	DailyRevenue float64 `json:"daily_revenue"`
	DailyCost    float64 `json:"daily_cost"`
	TotalPigs    int     `json:"total_pigs"`
}

type farmUpdateResponse struct {
	ID            string            `json:"id"`
	NewWeight     float64           `json:"new_weight"`
	PigsRemaining int               `json:"pigs_remaining"`
	Status        domain.FarmStatus `json:"status"`
}

type logResponse struct {
	Type domain.LogLevel `json:"type"`
	Msg  string          `json:"msg"`
}

type dayStepResponse struct {
	DayIndex     int                  `json:"day_index"`
	Routes       []routeResponse      `json:"routes"`
	KPIs         kpisResponse         `json:"kpis"`
	FarmUpdates  []farmUpdateResponse `json:"farm_updates"`
	Logs         []logResponse        `json:"logs"`
}

// NextDay handles POST /api/v1/day/next: one HTTP call maps to exactly
// one planner invocation.
func (h *Handler) NextDay(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var req dayStepRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
		}
	}

	if len(h.engine.Trucks) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no trucks configured"})
	}
	anyInventory := false
	for _, id := range h.engine.FarmOrder {
		if h.engine.Farms[id].Inventory > 0 {
			anyInventory = true
			break
		}
	}
	if !anyInventory {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no farms with inventory"})
	}

	growthMu := domain.HTTPGrowthRateDef
	if req.GrowthRate != nil {
		growthMu = *req.GrowthRate
	}

	visitedToday := make(map[string]bool)

	dayIndex := h.engine.DayIndex
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	dl := h.planner.PlanDay(c.Context(), h.engine, dayIndex, planner.Options{
		UseAPI:   true,
		GrowthMu: growthMu,
		RNG:      rng,
	})
	h.engine.DayIndex++

	resp := dayStepResponse{DayIndex: h.engine.DayIndex}

	if dl != nil {
		if h.history != nil {
			if err := h.history.Append(c.Context(), *dl); err != nil {
				h.log.Warn("day-step: history append failed", "error", err)
			}
		}

		for _, trip := range dl.Trips {
			for _, id := range trip.FarmIDs {
				visitedToday[id] = true
			}
			path := make([][2]float64, 0, len(trip.Path))
			for _, p := range trip.Path {
				path = append(path, [2]float64{p.Lat, p.Lon})
			}
			resp.Routes = append(resp.Routes, routeResponse{
				TruckType:       trip.TruckType,
				Path:            path,
				Stops:           trip.FarmIDs,
				PigsTransported: trip.PigsDelivered,
				Cost:            trip.TransportCost,
			})
		}
		resp.KPIs = kpisResponse{
			DailyRevenue: dl.DailyRevenue,
			DailyCost:    dl.DailyCost,
			TotalPigs:    dl.TotalPigs,
		}
	}

	for _, id := range h.engine.FarmOrder {
		f := h.engine.Farms[id]
		status := domain.StatusGrowing
		switch {
		case f.Inventory == 0:
			status = domain.StatusEmpty
		case visitedToday[f.ID]:
			status = domain.StatusVisited
		}
		resp.FarmUpdates = append(resp.FarmUpdates, farmUpdateResponse{
			ID:            f.ID,
			NewWeight:     f.AvgWeight,
			PigsRemaining: f.Inventory,
			Status:        status,
		})
		if economics.PenaltyRatio(f.AvgWeight) > 0 {
			resp.Logs = append(resp.Logs, logResponse{
				Type: domain.LogWarning,
				Msg:  "farm " + f.ID + " carries an off-target weight penalty",
			})
		}
	}

	return c.JSON(resp)
}
