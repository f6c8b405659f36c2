package handlers

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/planner"
	"github.com/farmhaul/dispatch/internal/scenario"
	"github.com/farmhaul/dispatch/internal/state"
	"github.com/farmhaul/dispatch/internal/tournament"
)

type stubDistance struct{}

func (stubDistance) Distance(_ context.Context, p1, p2 domain.Point, _ bool) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLon := (p2.Lon - p1.Lon) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return domain.EarthRadiusKm * c * domain.StraightnessFactor
}

func testApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()
	sc := &scenario.Scenario{
		Trucks: []scenario.TruckSpec{
			{ID: "t1", CapacityTons: 10, Type: domain.TruckSmall},
		},
		Farms: []scenario.FarmSpec{
			{ID: "f1", Lat: 41.65, Lon: 2.01, Inventory: 200, AvgWeight: 110},
		},
		Slaughterhouse: domain.DefaultSlaughterhouse,
	}
	eng := state.New(sc, nil)
	p := planner.New(stubDistance{}, nil)

	h := New(Dependencies{
		Engine:     eng,
		Planner:    p,
		Tournament: tournament.New(nil),
		Scenario:   sc,
	})

	app := fiber.New()
	api := app.Group("/api/v1")
	h.RegisterRoutes(api)
	return app, h
}

func TestNextDayAdvancesDayIndex(t *testing.T) {
	app, h := testApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/day/next", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, h.engine.DayIndex)
}

func TestNextDayRejectsEmptyFleet(t *testing.T) {
	app, h := testApp(t)
	h.engine.Trucks = nil

	req := httptest.NewRequest(http.MethodPost, "/api/v1/day/next", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestResetRewindsEngine(t *testing.T) {
	app, h := testApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/day/next", nil)
	resp, _ := app.Test(req)
	_, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, 1, h.engine.DayIndex)

	resetReq := httptest.NewRequest(http.MethodPost, "/api/v1/reset", nil)
	resetResp, err := app.Test(resetReq)
	require.NoError(t, err)
	defer resetResp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resetResp.StatusCode)
	assert.Equal(t, 0, h.engine.DayIndex)
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := testApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
