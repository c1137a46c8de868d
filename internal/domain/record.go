package domain

import (
	"fmt"
	"time"
)

// VenusDayYears is the length of a Venus solar day in Earth years.
const VenusDayYears = 0.62

// Default observation window.
const (
	DefaultStartYear = 1960
	DefaultEndYear   = 2025
)

// YearRange is an inclusive span of Earth years.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DefaultYearRange returns 1960-2025.
func DefaultYearRange() YearRange {
	return YearRange{Start: DefaultStartYear, End: DefaultEndYear}
}

// Validate reports ErrInvalidYearRange when the range ends before it starts.
func (r YearRange) Validate() error {
	if r.End < r.Start {
		return fmt.Errorf("%w: %d-%d", ErrInvalidYearRange, r.Start, r.End)
	}
	return nil
}

// Years returns the number of years in the range.
func (r YearRange) Years() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// VenusDays returns the number of Venus days the range spans.
func (r YearRange) VenusDays() float64 {
	return float64(r.End-r.Start) / VenusDayYears
}

func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Record is one Earth year of a synthetic series. The first five fields are
// the core columns; the rest are the extended columns.
type Record struct {
	EarthYear      int     `json:"earth_year"`
	VenusDay       float64 `json:"venus_day"`
	BaseValue      float64 `json:"base_value"`
	HostilityLevel float64 `json:"hostility_level"`
	VenusIndex     float64 `json:"venus_index"`

	SurfaceConditions  float64 `json:"surface_conditions"`
	AtmosphericEffects float64 `json:"atmospheric_effects"`
	SolarDayPhase      float64 `json:"solar_day_phase"`
	ClimateTrend       float64 `json:"climate_trend"`
	CloudVariations    float64 `json:"cloud_variations"`
	VolcanicInfluence  float64 `json:"volcanic_influence"`
	SmoothedValue      float64 `json:"smoothed_value"`
	DiurnalVariation   float64 `json:"diurnal_variation"`
	AnnualVariation    float64 `json:"annual_variation"`
	FuturePrediction   float64 `json:"future_prediction"`
}

// Dataset is a generated series plus the metadata of the run that produced it.
type Dataset struct {
	ID          string    `json:"id"`
	Type        DataType  `json:"data_type"`
	Profile     Profile   `json:"profile"`
	Range       YearRange `json:"range"`
	Seed        uint64    `json:"seed"`
	GeneratedAt time.Time `json:"generated_at"`
	Records     []Record  `json:"records"`
}

// Last returns the final record, or a zero Record for an empty dataset.
func (d Dataset) Last() Record {
	if len(d.Records) == 0 {
		return Record{}
	}
	return d.Records[len(d.Records)-1]
}
