// Package analysis summarizes generated series: describe tables, a short
// preview, and narrative insights.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/venus-data/internal/domain"
)

// Column names shared by the CSV writer, the describe table, and the chart.
const (
	ColEarthYear      = "Earth_Year"
	ColVenusDay       = "Venus_Day"
	ColBaseValue      = "Base_Value"
	ColHostilityLevel = "Hostility_Level"
	ColVenusIndex     = "Venus_Index"
)

// CoreColumns are the columns every output carries, in order.
var CoreColumns = []string{ColEarthYear, ColVenusDay, ColBaseValue, ColHostilityLevel, ColVenusIndex}

// ColumnStats mirrors a pandas describe() column.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// CoreValue extracts a core column from a record. Unknown columns yield NaN.
func CoreValue(r domain.Record, column string) float64 {
	switch column {
	case ColEarthYear:
		return float64(r.EarthYear)
	case ColVenusDay:
		return r.VenusDay
	case ColBaseValue:
		return r.BaseValue
	case ColHostilityLevel:
		return r.HostilityLevel
	case ColVenusIndex:
		return r.VenusIndex
	default:
		return math.NaN()
	}
}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max for every core column. An empty input yields zero counts with NaN
// statistics.
func Describe(records []domain.Record) []ColumnStats {
	out := make([]ColumnStats, 0, len(CoreColumns))
	for _, col := range CoreColumns {
		values := make([]float64, len(records))
		for i, r := range records {
			values[i] = CoreValue(r, col)
		}
		out = append(out, describeColumn(col, values))
	}
	return out
}

func describeColumn(name string, values []float64) ColumnStats {
	s := ColumnStats{Column: name, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	s.Std = math.NaN()
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P25 = quantile(sorted, 0.25)
	s.P50 = quantile(sorted, 0.50)
	s.P75 = quantile(sorted, 0.75)
	return s
}

// quantile linearly interpolates between the closest ranks of sorted
// (pandas' default, Hyndman-Fan type 7).
func quantile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Preview returns up to n leading records.
func Preview(records []domain.Record, n int) []domain.Record {
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}
