// Package distance implements the engine's sole network-I/O boundary:
// a driving-distance estimate between two points, backed by a memoised
// cache, an external routing service, and a great-circle fallback.
package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/farmhaul/dispatch/internal/domain"
	"github.com/farmhaul/dispatch/internal/metrics"
	"github.com/farmhaul/dispatch/pkg/logger"
)

// cacheKey is a 4-decimal-rounded pair of endpoints. Rounding both
// endpoints the same way means p1->p2 and p2->p1 round to distinct
// keys, but each is independently stable across calls, which is all
// repeated lookups for the same leg need.
type cacheKey struct {
	lat1, lon1, lat2, lon2 float64
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

func newKey(p1, p2 domain.Point) cacheKey {
	return cacheKey{round4(p1.Lat), round4(p1.Lon), round4(p2.Lat), round4(p2.Lon)}
}

// Oracle resolves distances between two geographic points. It is the
// only component in the engine permitted to perform network I/O;
// every other package calls through here.
type Oracle struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	log        *logger.Logger

	mu    sync.RWMutex
	cache map[cacheKey]float64
}

// Config configures an Oracle's outbound routing-service call.
type Config struct {
	// BaseURL is the OSRM-style routing service base, e.g.
	// "http://router.project-osrm.org/route/v1".
	BaseURL string
	// RequestsPerSecond bounds the rate of outbound HTTP calls; a
	// planning pass can probe many candidate legs during backtracking,
	// so this protects the routing service from being hammered in a
	// tight loop.
	RequestsPerSecond float64
	Burst             int
}

// New creates an Oracle. log may be nil, in which case a no-op logger
// is used.
func New(cfg Config, log *logger.Logger) *Oracle {
	if log == nil {
		log = logger.NewNoop()
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 20.0
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 40
	}
	return &Oracle{
		httpClient: &http.Client{Timeout: domain.DistanceAPITimeout * time.Second},
		baseURL:    cfg.BaseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		log:        log,
		cache:      make(map[cacheKey]float64),
	}
}

// Distance returns the estimated driving distance in km between p1 and
// p2. It never raises to the caller: a routing failure degrades to the
// fallback rather than erroring.
func (o *Oracle) Distance(ctx context.Context, p1, p2 domain.Point, useAPI bool) float64 {
	key := newKey(p1, p2)

	o.mu.RLock()
	if v, ok := o.cache[key]; ok {
		o.mu.RUnlock()
		metrics.DistanceCacheHitsTotal.Inc()
		return v
	}
	o.mu.RUnlock()
	metrics.DistanceCacheMissesTotal.Inc()

	if !useAPI {
		v := fallback(p1, p2)
		o.store(key, v)
		return v
	}

	v, err := o.queryAPI(ctx, p1, p2)
	if err != nil {
		o.log.Warn("distance API failed, falling back", "error", err)
		metrics.DistanceAPIFailuresTotal.Inc()
		v = fallback(p1, p2)
	}
	o.store(key, v)
	return v
}

func (o *Oracle) store(key cacheKey, v float64) {
	o.mu.Lock()
	o.cache[key] = v
	o.mu.Unlock()
}

// fallback computes the great-circle distance on a sphere of radius
// EarthRadiusKm, scaled by the straightness factor.
func fallback(p1, p2 domain.Point) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLon := (p2.Lon - p1.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return domain.EarthRadiusKm * c * domain.StraightnessFactor
}

type osrmResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// queryAPI issues a single routing request with a hard 1-second
// timeout. Any failure (timeout, non-200, empty routes, parse error)
// is returned as an error so Distance can fall back and cache the
// fallback value, preventing retry storms.
func (o *Oracle) queryAPI(ctx context.Context, p1, p2 domain.Point) (float64, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("distance: rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, domain.DistanceAPITimeout*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/driving/%f,%f;%f,%f?overview=false",
		o.baseURL, p1.Lon, p1.Lat, p2.Lon, p2.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("distance: build request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("distance: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("distance: status %d", resp.StatusCode)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("distance: decode: %w", err)
	}
	if len(parsed.Routes) == 0 {
		return 0, fmt.Errorf("distance: empty routes")
	}

	return parsed.Routes[0].Distance / 1000.0, nil
}
