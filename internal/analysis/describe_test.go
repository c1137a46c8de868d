package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/venus-data/internal/domain"
)

func sampleRecords() []domain.Record {
	return []domain.Record{
		{EarthYear: 2000, VenusDay: 0, BaseValue: 4, HostilityLevel: 10, VenusIndex: 1, SurfaceConditions: 1.1},
		{EarthYear: 2001, VenusDay: 1, BaseValue: 2, HostilityLevel: 20, VenusIndex: 2, SurfaceConditions: 1.2},
		{EarthYear: 2002, VenusDay: 2, BaseValue: 8, HostilityLevel: 30, VenusIndex: 3, SurfaceConditions: 1.3},
		{EarthYear: 2003, VenusDay: 3, BaseValue: 6, HostilityLevel: 40, VenusIndex: 4, SurfaceConditions: 1.4},
	}
}

func TestDescribe(t *testing.T) {
	stats := Describe(sampleRecords())
	require.Len(t, stats, len(CoreColumns))

	for i, col := range CoreColumns {
		assert.Equal(t, col, stats[i].Column)
		assert.Equal(t, 4, stats[i].Count)
	}

	base := stats[2]
	assert.Equal(t, ColBaseValue, base.Column)
	assert.InDelta(t, 5.0, base.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(20.0/3.0), base.Std, 1e-12)
	assert.Equal(t, 2.0, base.Min)
	assert.Equal(t, 8.0, base.Max)
	assert.InDelta(t, 3.5, base.P25, 1e-12)
	assert.InDelta(t, 5.0, base.P50, 1e-12, "50% must be the median")
	assert.InDelta(t, 6.5, base.P75, 1e-12)

	year := stats[0]
	assert.InDelta(t, 2001.5, year.Mean, 1e-12)
}

func TestDescribe_QuartilesInterpolate(t *testing.T) {
	records, err := domain.Generate(domain.Temperature, domain.DefaultYearRange(), 1)
	require.NoError(t, err)

	year := Describe(records)[0]
	assert.InDelta(t, 1976.25, year.P25, 1e-9)
	assert.InDelta(t, 1992.5, year.P50, 1e-9)
	assert.InDelta(t, 2008.75, year.P75, 1e-9)
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"single", []float64{7}, 0.5, 7},
		{"odd median", []float64{1, 2, 3}, 0.5, 2},
		{"even median", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"lower quartile", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"max", []float64{1, 2, 3, 4}, 1, 4},
		{"min", []float64{1, 2, 3, 4}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, quantile(tt.sorted, tt.p), 1e-12)
		})
	}
}

func TestDescribe_Empty(t *testing.T) {
	stats := Describe(nil)
	require.Len(t, stats, len(CoreColumns))
	for _, s := range stats {
		assert.Zero(t, s.Count)
		assert.True(t, math.IsNaN(s.Mean))
		assert.True(t, math.IsNaN(s.Max))
	}
}

func TestDescribe_SingleRecordHasNaNStd(t *testing.T) {
	stats := Describe(sampleRecords()[:1])
	assert.Equal(t, 1, stats[2].Count)
	assert.Equal(t, 4.0, stats[2].Mean)
	assert.True(t, math.IsNaN(stats[2].Std))
}

func TestDescribe_DoesNotReorderInput(t *testing.T) {
	records := sampleRecords()
	Describe(records)
	assert.Equal(t, 4.0, records[0].BaseValue)
	assert.Equal(t, 2.0, records[1].BaseValue)
}

func TestCoreValue_UnknownColumn(t *testing.T) {
	assert.True(t, math.IsNaN(CoreValue(domain.Record{}, "Nope")))
}

func TestPreview(t *testing.T) {
	records := sampleRecords()
	assert.Len(t, Preview(records, 2), 2)
	assert.Len(t, Preview(records, 10), 4)
	assert.Empty(t, Preview(nil, 5))
}

func TestSummarize(t *testing.T) {
	ds := domain.Dataset{
		Type:    domain.Temperature,
		Profile: domain.Profile{Description: "Mean surface temperature", Unit: "°C"},
		Range:   domain.YearRange{Start: 2000, End: 2003},
		Records: sampleRecords(),
	}

	in := Summarize(ds)
	assert.Equal(t, "Mean surface temperature", in.Description)
	assert.Equal(t, "°C", in.Unit)
	assert.InDelta(t, 5.0, in.MeanValue, 1e-12)
	assert.Equal(t, 8.0, in.MaxValue)
	assert.Equal(t, 2.0, in.MinValue)
	assert.Equal(t, 6.0, in.Current)
	assert.Equal(t, 3.0, in.CurrentVenusDay)
	assert.Equal(t, 40.0, in.CurrentHostility)
	assert.Equal(t, 1.4, in.CurrentSurface)
	assert.InDelta(t, 3/0.62, in.CoverageDays, 1e-9)
	assert.Contains(t, in.Implications, "Understanding extreme greenhouse effects")
	assert.Contains(t, in.Implications, "Understanding planetary evolution")
}

func TestSummarize_GenericImplications(t *testing.T) {
	in := Summarize(domain.Dataset{Type: domain.CloudCover})
	assert.Equal(t, commonImplications, in.Implications)
	assert.Zero(t, in.Current)
}
