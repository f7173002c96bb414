// Package geo provides the geospatial enrichment stage: annulus coordinate
// sampling, the external geocoding/routing client, and the rate-limited
// enrichment loop over marked rows.
package geo

import (
	"math"
	"math/rand"
)

// EarthRadiusKM is the spherical Earth radius used by the projection.
const EarthRadiusKM = 6371.0

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Sampler draws random coordinates around a fixed base point. The distance is
// uniform in [MinKM, MaxKM] and the bearing uniform in [0, 2π); the draw is
// uniform in radius, not in area.
type Sampler struct {
	Base  Point
	MinKM float64
	MaxKM float64
	rng   *rand.Rand
}

// NewSampler creates a sampler using the given random source.
func NewSampler(base Point, minKM, maxKM float64, rng *rand.Rand) *Sampler {
	return &Sampler{Base: base, MinKM: minKM, MaxKM: maxKM, rng: rng}
}

// Sample projects a random distance/bearing from the base point onto the
// sphere using the spherical law of cosines.
func (s *Sampler) Sample() Point {
	distKM := s.MinKM + s.rng.Float64()*(s.MaxKM-s.MinKM)
	bearing := s.rng.Float64() * 2 * math.Pi

	lat1 := s.Base.Lat * math.Pi / 180
	lon1 := s.Base.Lon * math.Pi / 180
	ang := distKM / EarthRadiusKM

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(ang) +
		math.Cos(lat1)*math.Sin(ang)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(ang)*math.Cos(lat1),
		math.Cos(ang)-math.Sin(lat1)*math.Sin(lat2))

	return Point{Lat: lat2 * 180 / math.Pi, Lon: lon2 * 180 / math.Pi}
}

// DistanceKM returns the great-circle distance between two points
// (haversine). Used by tests to pin the sampler inside its annulus.
func DistanceKM(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
