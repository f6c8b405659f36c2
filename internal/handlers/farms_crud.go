package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/farmhaul/dispatch/internal/store"
)

var allowedFarmFields = map[string]bool{
	"lat": true, "lon": true, "inventory": true,
	"avg_weight": true, "last_visit_day": true,
}

type farmPayload struct {
	ID           string  `json:"id"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Inventory    int     `json:"inventory"`
	AvgWeight    float64 `json:"avg_weight"`
	LastVisitDay int     `json:"last_visit_day"`
}

// ListFarms handles GET /api/v1/farms.
func (h *Handler) ListFarms(c *fiber.Ctx) error {
	if h.farms == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	rows, err := h.farms.List(c.Context(), skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// GetFarm handles GET /api/v1/farms/:id.
func (h *Handler) GetFarm(c *fiber.Ctx) error {
	if h.farms == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	row, err := h.farms.Get(c.Context(), c.Params("id"))
	if err != nil {
		return notFoundOrError(c, err)
	}
	return c.JSON(row)
}

// CreateFarm handles POST /api/v1/farms.
func (h *Handler) CreateFarm(c *fiber.Ctx) error {
	if h.farms == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	var p farmPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	if p.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id is required"})
	}
	row, err := h.farms.Create(c.Context(), store.FarmRow{
		ID: p.ID, Lat: p.Lat, Lon: p.Lon,
		Inventory: p.Inventory, AvgWeight: p.AvgWeight, LastVisitDay: p.LastVisitDay,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// UpdateFarm handles PATCH /api/v1/farms/:id. Unknown fields in the
// payload are rejected rather than silently ignored.
func (h *Handler) UpdateFarm(c *fiber.Ctx) error {
	if h.farms == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}

	raw := map[string]json.RawMessage{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	for field := range raw {
		if !allowedFarmFields[field] {
			err := &store.ErrUnknownField{Field: field}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	var u store.FarmUpdate
	if v, ok := raw["lat"]; ok {
		var f float64
		_ = json.Unmarshal(v, &f)
		u.Lat = &f
	}
	if v, ok := raw["lon"]; ok {
		var f float64
		_ = json.Unmarshal(v, &f)
		u.Lon = &f
	}
	if v, ok := raw["inventory"]; ok {
		var n int
		_ = json.Unmarshal(v, &n)
		u.Inventory = &n
	}
	if v, ok := raw["avg_weight"]; ok {
		var f float64
		_ = json.Unmarshal(v, &f)
		u.AvgWeight = &f
	}
	if v, ok := raw["last_visit_day"]; ok {
		var n int
		_ = json.Unmarshal(v, &n)
		u.LastVisitDay = &n
	}

	if err := h.farms.Update(c.Context(), c.Params("id"), u); err != nil {
		return notFoundOrError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// DeleteFarm handles DELETE /api/v1/farms/:id.
func (h *Handler) DeleteFarm(c *fiber.Ctx) error {
	if h.farms == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	if err := h.farms.Delete(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// notFoundOrError maps a store.ErrNotFound to 404, anything else to 500.
func notFoundOrError(c *fiber.Ctx, err error) error {
	var nf *store.ErrNotFound
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
