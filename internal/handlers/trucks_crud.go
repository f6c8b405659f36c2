package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/farmhaul/dispatch/internal/store"
)

var allowedTruckFields = map[string]bool{
	"capacity_kg": true, "class": true, "cost_per_km": true,
}

type truckPayload struct {
	CapacityKg float64 `json:"capacity_kg"`
	Class      string  `json:"class"`
	CostPerKm  float64 `json:"cost_per_km"`
}

// ListTrucks handles GET /api/v1/trucks.
func (h *Handler) ListTrucks(c *fiber.Ctx) error {
	if h.trucks == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	rows, err := h.trucks.List(c.Context(), skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// GetTruck handles GET /api/v1/trucks/:id.
func (h *Handler) GetTruck(c *fiber.Ctx) error {
	if h.trucks == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	row, err := h.trucks.Get(c.Context(), int64(id))
	if err != nil {
		return notFoundOrError(c, err)
	}
	return c.JSON(row)
}

// CreateTruck handles POST /api/v1/trucks. Trucks get a server-assigned
// id, unlike farms.
func (h *Handler) CreateTruck(c *fiber.Ctx) error {
	if h.trucks == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	var p truckPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	row, err := h.trucks.Create(c.Context(), store.TruckRow{
		CapacityKg: p.CapacityKg, Class: p.Class, CostPerKm: p.CostPerKm,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// UpdateTruck handles PATCH /api/v1/trucks/:id.
func (h *Handler) UpdateTruck(c *fiber.Ctx) error {
	if h.trucks == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	raw := map[string]json.RawMessage{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	for field := range raw {
		if !allowedTruckFields[field] {
			e := &store.ErrUnknownField{Field: field}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": e.Error()})
		}
	}

	var u store.TruckUpdate
	if v, ok := raw["capacity_kg"]; ok {
		var f float64
		_ = json.Unmarshal(v, &f)
		u.CapacityKg = &f
	}
	if v, ok := raw["class"]; ok {
		var s string
		_ = json.Unmarshal(v, &s)
		u.Class = &s
	}
	if v, ok := raw["cost_per_km"]; ok {
		var f float64
		_ = json.Unmarshal(v, &f)
		u.CostPerKm = &f
	}

	if err := h.trucks.Update(c.Context(), int64(id), u); err != nil {
		return notFoundOrError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// DeleteTruck handles DELETE /api/v1/trucks/:id.
func (h *Handler) DeleteTruck(c *fiber.Ctx) error {
	if h.trucks == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.trucks.Delete(c.Context(), int64(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}
