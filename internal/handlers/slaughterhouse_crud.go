package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/farmhaul/dispatch/internal/store"
)

var allowedHubFields = map[string]bool{
	"lat": true, "lon": true, "daily_capacity": true,
}

type hubPayload struct {
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	DailyCapacity int     `json:"daily_capacity"`
}

// ListSlaughterhouses handles GET /api/v1/slaughterhouses.
func (h *Handler) ListSlaughterhouses(c *fiber.Ctx) error {
	if h.hubs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	rows, err := h.hubs.List(c.Context(), skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// GetSlaughterhouse handles GET /api/v1/slaughterhouses/:id.
func (h *Handler) GetSlaughterhouse(c *fiber.Ctx) error {
	if h.hubs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	row, err := h.hubs.Get(c.Context(), int64(id))
	if err != nil {
		return notFoundOrError(c, err)
	}
	return c.JSON(row)
}

// CreateSlaughterhouse handles POST /api/v1/slaughterhouses.
func (h *Handler) CreateSlaughterhouse(c *fiber.Ctx) error {
	if h.hubs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	var p hubPayload
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}
	row, err := h.hubs.Create(c.Context(), store.SlaughterhouseRow{
		Lat: p.Lat, Lon: p.Lon, DailyCapacity: p.DailyCapacity,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// UpdateSlaughterhouse handles PATCH /api/v1/slaughterhouses/:id.
func (h *Handler) UpdateSlaughterhouse(c *fiber.Ctx) error {
	if h.hubs == nil {
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
		if !allowedHubFields[field] {
			e := &store.ErrUnknownField{Field: field}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": e.Error()})
		}
	}

	var u store.SlaughterhouseUpdate
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
	if v, ok := raw["daily_capacity"]; ok {
		var n int
		_ = json.Unmarshal(v, &n)
		u.DailyCapacity = &n
	}

	if err := h.hubs.Update(c.Context(), int64(id), u); err != nil {
		return notFoundOrError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// DeleteSlaughterhouse handles DELETE /api/v1/slaughterhouses/:id.
func (h *Handler) DeleteSlaughterhouse(c *fiber.Ctx) error {
	if h.hubs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage not configured"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.hubs.Delete(c.Context(), int64(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}
