package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts every API route under the supplied group.
// Storage-backed CRUD routes degrade to 503 gracefully when no store
// repositories were wired (see Dependencies); history then returns
// empty arrays.
func (h *Handler) RegisterRoutes(api fiber.Router) {
	api.Get("/health", h.Health)
	api.Get("/version", h.Version)

	api.Post("/day/next", h.NextDay)
	api.Post("/reset", h.Reset)
	api.Get("/history", h.History)

	api.Post("/tournament/run", h.RunTournament)

	farms := api.Group("/farms")
	farms.Get("/", h.ListFarms)
	farms.Get("/:id", h.GetFarm)
	farms.Post("/", h.CreateFarm)
	farms.Patch("/:id", h.UpdateFarm)
	farms.Delete("/:id", h.DeleteFarm)

	trucks := api.Group("/trucks")
	trucks.Get("/", h.ListTrucks)
	trucks.Get("/:id", h.GetTruck)
	trucks.Post("/", h.CreateTruck)
	trucks.Patch("/:id", h.UpdateTruck)
	trucks.Delete("/:id", h.DeleteTruck)

	hubs := api.Group("/slaughterhouses")
	hubs.Get("/", h.ListSlaughterhouses)
	hubs.Get("/:id", h.GetSlaughterhouse)
	hubs.Post("/", h.CreateSlaughterhouse)
	hubs.Patch("/:id", h.UpdateSlaughterhouse)
	hubs.Delete("/:id", h.DeleteSlaughterhouse)
}
