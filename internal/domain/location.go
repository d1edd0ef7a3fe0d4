package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinate is returned when a location string is not an A-M-L triple
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// PickingLevel is the level of every picking point
const PickingLevel = 0

// Coordinate is a warehouse position (aisle, module, level)
type Coordinate struct {
	Aisle  int
	Module int
	Level  int
}

// ParseCoordinate parses "A-M-L". Each token is trimmed and must be a non-negative integer.
func ParseCoordinate(s string) (Coordinate, error) {
	tokens := strings.Split(s, "-")
	if len(tokens) != 3 {
		return Coordinate{}, fmt.Errorf("%w: %q has %d parts", ErrInvalidCoordinate, s, len(tokens))
	}

	var values [3]int
	for i, token := range tokens {
		v, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || v < 0 {
			return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
		}
		values[i] = v
	}

	return Coordinate{Aisle: values[0], Module: values[1], Level: values[2]}, nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%d-%d-%d", c.Aisle, c.Module, c.Level)
}

// DistanceTo returns the Euclidean distance between two coordinates
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	da := float64(c.Aisle - other.Aisle)
	dm := float64(c.Module - other.Module)
	dl := float64(c.Level - other.Level)
	return math.Sqrt(da*da + dm*dm + dl*dl)
}

// Distance returns the Euclidean distance between two location strings.
// Empty or unparseable locations are infinitely far from everything.
func Distance(a, b string) float64 {
	if a == "" || b == "" {
		return math.Inf(1)
	}
	ca, err := ParseCoordinate(a)
	if err != nil {
		return math.Inf(1)
	}
	cb, err := ParseCoordinate(b)
	if err != nil {
		return math.Inf(1)
	}
	return ca.DistanceTo(cb)
}

// JoinLocation builds a location string from its three components
func JoinLocation(aisle, module, level string) string {
	return aisle + "-" + module + "-" + level
}

// PickingLocation returns the picking point of an aisle and module
func PickingLocation(aisle, module string) string {
	return JoinLocation(aisle, module, strconv.Itoa(PickingLevel))
}
