package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceKm_SamePointIsZero(t *testing.T) {
	points := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 37.4220, Lon: -122.0840},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 89.9, Lon: 179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, HaversineDistanceKm(p.Lat, p.Lon, p.Lat, p.Lon))
	}
}

func TestHaversineDistanceKm_Symmetric(t *testing.T) {
	pairs := [][2]Point{
		{{Lat: 37.423, Lon: -122.084}, {Lat: 37.3352, Lon: -121.8811}},
		{{Lat: 55.75, Lon: 37.61}, {Lat: 59.93, Lon: 30.33}},
		{{Lat: -10, Lon: 170}, {Lat: 10, Lon: -170}},
	}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		assert.Equal(t, DistanceKm(a, b), DistanceKm(b, a))
		assert.Greater(t, DistanceKm(a, b), 0.0)
	}
}

func TestHaversineDistanceKm_KnownDistance(t *testing.T) {
	// Один градус меридиана ~111.19 км
	d := HaversineDistanceKm(0, 0, 1, 0)
	assert.InDelta(t, 111.19, d, 0.01)
}

func TestDestinationPoint_Cardinal(t *testing.T) {
	origin := Point{Lat: 37.4220, Lon: -122.0840}

	north := DestinationPoint(origin, 0, 1000)
	assert.Greater(t, north.Lat, origin.Lat)
	assert.InDelta(t, origin.Lon, north.Lon, 1e-9)

	south := DestinationPoint(origin, 180, 1000)
	assert.Less(t, south.Lat, origin.Lat)

	east := DestinationPoint(origin, 90, 1000)
	assert.Greater(t, east.Lon, origin.Lon)

	west := DestinationPoint(origin, 270, 1000)
	assert.Less(t, west.Lon, origin.Lon)

	// Пройденное расстояние совпадает с заданным
	assert.InDelta(t, 1.0, DistanceKm(origin, north), 1e-6)
	assert.InDelta(t, 1.0, DistanceKm(origin, east), 1e-6)
}

func TestDestinationPoint_ZeroDistance(t *testing.T) {
	origin := Point{Lat: 10, Lon: 20}
	p := DestinationPoint(origin, 45, 0)
	assert.InDelta(t, origin.Lat, p.Lat, 1e-12)
	assert.InDelta(t, origin.Lon, p.Lon, 1e-12)
}

func TestNormalizeLon(t *testing.T) {
	assert.Equal(t, 10.0, normalizeLon(10))
	assert.InDelta(t, -179.0, normalizeLon(181), 1e-9)
	assert.InDelta(t, 179.0, normalizeLon(-181), 1e-9)
}
