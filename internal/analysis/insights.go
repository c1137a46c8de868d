package analysis

import (
	"github.com/couchcryptid/venus-data/internal/domain"
)

// Insights is the narrative summary printed after a run.
type Insights struct {
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	MeanValue   float64 `json:"mean_value"`
	MaxValue    float64 `json:"max_value"`
	MinValue    float64 `json:"min_value"`
	Current     float64 `json:"current_value"`

	CurrentVenusDay  float64 `json:"current_venus_day"`
	CurrentHostility float64 `json:"current_hostility"`
	CurrentSurface   float64 `json:"current_surface_conditions"`
	CoverageDays     float64 `json:"coverage_venus_days"`

	Implications []string `json:"implications"`
}

// Missions lists the landmark missions in chronological order.
var Missions = []string{
	"1962: Mariner 2 - first successful flyby",
	"1967-69: Venera 4, 5, 6 - first atmospheric entries",
	"1970: Venera 7 - first successful landing",
	"1975: Venera 9 and 10 - first surface images",
	"1978: Pioneer Venus - atmospheric survey",
	"1982: Venera 13 and 14 - advanced landings",
	"1985: Vega 1 and 2 - atmospheric balloons",
	"1990: Magellan - full radar mapping",
	"2005: Venus Express - atmospheric study",
	"2010: Akatsuki - climate study",
}

// Phenomena lists atmospheric features unique to Venus.
var Phenomena = []string{
	"Super-rotation: winds of 300-400 km/h in the upper atmosphere",
	"Runaway greenhouse effect: +500°C over an airless surface",
	"Permanent clouds: complete sulfuric-acid cover",
	"Double cloud layer: at 48-58 km and 50-70 km altitude",
	"Stationary wave: a Y-shaped structure in the clouds",
}

// FutureMissions lists planned and proposed exploration.
var FutureMissions = []string{
	"2029: NASA VERITAS mission (planned)",
	"2031: NASA DAVINCI+ mission (planned)",
	"2030s: Russian Venera-D missions",
	"Advanced concepts: airships, floating stations",
	"Human exploration: extremely difficult but under study",
}

var commonImplications = []string{
	"Understanding planetary evolution",
	"Searching for past liquid water",
	"Preparing advanced robotic exploration",
}

var typeImplications = map[domain.DataType][]string{
	domain.Temperature: {
		"Understanding extreme greenhouse effects",
		"A model for Earth's climate evolution",
		"Probing the limits of habitability",
	},
	domain.VolcanicActivity: {
		"Understanding geological activity",
		"Comparison with terrestrial volcanism",
		"Implications for a geologically young surface",
	},
	domain.WindSpeeds: {
		"Studying atmospheric super-rotation",
		"Fluid dynamics under extreme conditions",
		"Implications for planetary meteorology",
	},
	domain.AtmosphericComposition: {
		"Remarkable stability of atmospheric composition",
		"Understanding outgassing processes",
		"Implications for planetary evolution",
	},
}

// Summarize derives the insights of a dataset.
func Summarize(ds domain.Dataset) Insights {
	in := Insights{
		Description:  ds.Profile.Description,
		Unit:         ds.Profile.Unit,
		CoverageDays: ds.Range.VenusDays(),
	}

	if len(ds.Records) > 0 {
		values := make([]float64, len(ds.Records))
		for i, r := range ds.Records {
			values[i] = r.BaseValue
		}
		base := describeColumn(ColBaseValue, values)
		in.MeanValue = base.Mean
		in.MaxValue = base.Max
		in.MinValue = base.Min

		last := ds.Last()
		in.Current = last.BaseValue
		in.CurrentVenusDay = last.VenusDay
		in.CurrentHostility = last.HostilityLevel
		in.CurrentSurface = last.SurfaceConditions
	}

	in.Implications = append(in.Implications, typeImplications[ds.Type]...)
	in.Implications = append(in.Implications, commonImplications...)
	return in
}
