package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownDataType is returned when a data type name is not one of the nine supported types.
	ErrUnknownDataType = errors.New("unknown data type")

	// ErrInvalidSelection is returned when a menu choice is not a number between 1 and 9.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInvalidYearRange is returned when a range ends before it starts.
	ErrInvalidYearRange = errors.New("invalid year range")
)

// DataType names one of the synthetic Venus series.
type DataType string

const (
	Temperature            DataType = "temperature"
	AtmosphericPressure    DataType = "atmospheric_pressure"
	CloudCover             DataType = "cloud_cover"
	SurfaceConditions      DataType = "surface_conditions"
	VolcanicActivity       DataType = "volcanic_activity"
	SolarRadiation         DataType = "solar_radiation"
	AtmosphericComposition DataType = "atmospheric_composition"
	WindSpeeds             DataType = "wind_speeds"
	OrbitalDistance        DataType = "orbital_distance"
)

// dataTypes lists the types in menu order; menu number n selects dataTypes[n-1].
var dataTypes = []DataType{
	Temperature,
	AtmosphericPressure,
	CloudCover,
	SurfaceConditions,
	VolcanicActivity,
	SolarRadiation,
	AtmosphericComposition,
	WindSpeeds,
	OrbitalDistance,
}

// DataTypes returns all supported types in menu order.
func DataTypes() []DataType {
	out := make([]DataType, len(dataTypes))
	copy(out, dataTypes)
	return out
}

// Valid reports whether t is one of the supported types.
func (t DataType) Valid() bool {
	for _, dt := range dataTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// MenuNumber returns the 1-based menu position of t, or 0 if t is unknown.
func (t DataType) MenuNumber() int {
	for i, dt := range dataTypes {
		if dt == t {
			return i + 1
		}
	}
	return 0
}

// String returns the type name, e.g. "temperature".
func (t DataType) String() string { return string(t) }

// Selection maps a menu number (1-9) to its data type.
func Selection(n int) (DataType, error) {
	if n < 1 || n > len(dataTypes) {
		return "", fmt.Errorf("%w: %d is outside 1-%d", ErrInvalidSelection, n, len(dataTypes))
	}
	return dataTypes[n-1], nil
}

// ParseSelection parses raw menu input such as "3" or " 7\n".
func ParseSelection(input string) (DataType, error) {
	input = strings.TrimSpace(input)
	n, err := strconv.Atoi(input)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, input)
	}
	return Selection(n)
}

// ParseDataType accepts either a type name ("wind_speeds", case-insensitive,
// hyphens allowed) or a menu number ("8").
func ParseDataType(input string) (DataType, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownDataType)
	}
	if _, err := strconv.Atoi(input); err == nil {
		return ParseSelection(input)
	}
	t := DataType(strings.ReplaceAll(strings.ToLower(input), "-", "_"))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDataType, input)
	}
	return t, nil
}
