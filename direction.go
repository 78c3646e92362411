package trafficflow

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Direction identifies one approach of the intersection
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// canonicalOrder is the enumeration order used for every tie-break
var canonicalOrder = [...]Direction{North, East, South, West}

// Directions returns a fresh copy of the four approaches in canonical order
func Directions() []Direction {
	return slices.Clone(canonicalOrder[:])
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the four approaches
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// ParseDirection accepts full names or their first letter, case-insensitive
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return 0, NewUnknownDirectionError(s)
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// VehicleCounts holds one observed count per direction for a single run
type VehicleCounts map[Direction]int

// Validate checks that exactly the four directions are present with non-negative counts
func (c VehicleCounts) Validate() error {
	if len(c) != len(canonicalOrder) {
		return NewDirectionCountError(len(c))
	}
	for d, n := range c {
		if !d.Valid() {
			return NewUnknownDirectionError(d.String())
		}
		if n < 0 {
			return NewNegativeCountError(d.String(), n)
		}
	}
	return nil
}

// Total returns the number of vehicles across all directions
func (c VehicleCounts) Total() int {
	return lo.Sum(lo.Values(c))
}

// Share returns each direction's percentage of the total vehicle count
func (c VehicleCounts) Share() map[Direction]float64 {
	total := c.Total()
	share := make(map[Direction]float64, len(canonicalOrder))
	for _, d := range canonicalOrder {
		if total == 0 {
			share[d] = 0
			continue
		}
		share[d] = float64(c[d]) * 100 / float64(total)
	}
	return share
}

// Clone returns an independent copy of the counts
func (c VehicleCounts) Clone() VehicleCounts {
	out := make(VehicleCounts, len(c))
	for d, n := range c {
		out[d] = n
	}
	return out
}
