package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const earthRadiusKm = 6371.0

type Point struct {
	Latitude  float64
	Longitude float64
}

// ParsePoint converts the client location string "lat,lon,accuracy" into a
// Point. The trailing accuracy term is accepted and discarded.
func ParsePoint(location string) (Point, error) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return Point{}, errors.New("location must be in the format \"lat,lon,accuracy\"")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, errors.New("invalid latitude")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, errors.New("invalid longitude")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Point{}, errors.New("coordinates out of range")
	}

	return Point{Latitude: lat, Longitude: lon}, nil
}

// CalculateDistance returns the great-circle distance between two points in
// kilometers, rounded to two decimals.
func CalculateDistance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(earthRadiusKm*c*100) / 100
}
