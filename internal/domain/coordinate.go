package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// ParseCoordinate reads a "lat,lon" pair. Only representability is checked.
func ParseCoordinate(raw string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q is not lat,lon", ErrInvalidCoordinate, raw)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinate, parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinate, parts[1])
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return Coordinate{}, fmt.Errorf("%w: %q is not finite", ErrInvalidCoordinate, raw)
	}

	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

// Target is a coordinate or none, as handed to the location view.
type Target struct {
	Coordinate Coordinate
	Set        bool
}

var NoTarget = Target{}

func TargetAt(c Coordinate) Target {
	return Target{Coordinate: c, Set: true}
}

func (t Target) Get() (Coordinate, bool) {
	return t.Coordinate, t.Set
}

func (t Target) String() string {
	if !t.Set {
		return "none"
	}
	return t.Coordinate.String()
}
