package distance

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmhaul/dispatch/internal/domain"
)

func TestDistanceFallbackIsSymmetricInMagnitude(t *testing.T) {
	o := New(Config{}, nil)
	p1 := domain.Point{Lat: 41.65, Lon: 2.01}
	p2 := domain.Point{Lat: 41.93, Lon: 2.25}

	d1 := o.Distance(context.Background(), p1, p2, false)
	d2 := o.Distance(context.Background(), p2, p1, false)

	assert.InDelta(t, d1, d2, 1e-9)
	assert.Greater(t, d1, 0.0)
}

func TestDistanceSamePointIsZero(t *testing.T) {
	o := New(Config{}, nil)
	p := domain.Point{Lat: 41.65, Lon: 2.01}
	assert.InDelta(t, 0.0, o.Distance(context.Background(), p, p, false), 1e-9)
}

func TestDistanceCachesRepeatedLookups(t *testing.T) {
	o := New(Config{}, nil)
	p1 := domain.Point{Lat: 41.65, Lon: 2.01}
	p2 := domain.Point{Lat: 41.93, Lon: 2.25}

	d1 := o.Distance(context.Background(), p1, p2, false)
	// a second call with the same coordinates must hit the same cache
	// entry and return the identical value.
	d2 := o.Distance(context.Background(), p1, p2, false)
	assert.Equal(t, d1, d2)
	assert.Len(t, o.cache, 1)
}

func TestDistanceUseAPIFalseNeverDialsNetwork(t *testing.T) {
	o := New(Config{BaseURL: "http://127.0.0.1:1"}, nil)
	p1 := domain.Point{Lat: 41.65, Lon: 2.01}
	p2 := domain.Point{Lat: 41.93, Lon: 2.25}

	d := o.Distance(context.Background(), p1, p2, false)
	assert.Greater(t, d, 0.0)
}

func TestDistanceFallsBackWhenAPIUnreachable(t *testing.T) {
	o := New(Config{BaseURL: "http://127.0.0.1:1"}, nil)
	p1 := domain.Point{Lat: 41.65, Lon: 2.01}
	p2 := domain.Point{Lat: 41.93, Lon: 2.25}

	d := o.Distance(context.Background(), p1, p2, true)
	assert.Greater(t, d, 0.0)
}

func TestPersistedWritesThroughToRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	o := New(Config{}, nil)
	rc := NewRedisCache(client)
	persisted := NewPersisted(o, rc)

	p1 := domain.Point{Lat: 41.65, Lon: 2.01}
	p2 := domain.Point{Lat: 41.93, Lon: 2.25}

	d1 := persisted.Distance(context.Background(), p1, p2, false)
	assert.Greater(t, d1, 0.0)

	// fresh Oracle, same Redis: should read from Redis rather than
	// recomputing.
	o2 := New(Config{}, nil)
	persisted2 := NewPersisted(o2, rc)
	d2 := persisted2.Distance(context.Background(), p1, p2, false)
	assert.Equal(t, d1, d2)
}
