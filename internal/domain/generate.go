package domain

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
)

// noiseClamp bounds every Gaussian draw to ±noiseClamp standard deviations.
const noiseClamp = 3.0

// predictionStartYear is the last year reported as history; later years get
// a widening prediction band.
const predictionStartYear = 2020

// mission is a landmark exploration event that adjusts one year.
type mission struct {
	hostility       float64
	surfaceFactor   float64 // 0 leaves surface conditions unchanged
	firstYear, last int
}

var missions = []mission{
	{firstYear: 1962, last: 1962, hostility: 10},                     // Mariner 2
	{firstYear: 1967, last: 1969, hostility: 30},                     // Venera 4-6
	{firstYear: 1970, last: 1970, hostility: 50, surfaceFactor: 1.05}, // Venera 7
	{firstYear: 1975, last: 1975, hostility: 70, surfaceFactor: 1.10}, // Venera 9/10
	{firstYear: 1978, last: 1978, hostility: 60},                     // Pioneer Venus
	{firstYear: 1982, last: 1982, hostility: 80, surfaceFactor: 1.15}, // Venera 13/14
	{firstYear: 1985, last: 1985, hostility: 65},                     // Vega 1/2
	{firstYear: 1990, last: 1990, hostility: 75},                     // Magellan
	{firstYear: 2005, last: 2005, hostility: 70},                     // Venus Express
	{firstYear: 2010, last: 2010, hostility: 72},                     // Akatsuki
}

func missionFor(year int) (mission, bool) {
	for _, m := range missions {
		if year >= m.firstYear && year <= m.last {
			return m, true
		}
	}
	return mission{}, false
}

// Generator produces series from a profile catalog.
type Generator struct {
	catalog *Catalog
}

// NewGenerator creates a Generator. A nil catalog uses the embedded defaults.
func NewGenerator(catalog *Catalog) *Generator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Generator{catalog: catalog}
}

// Catalog returns the profiles the generator draws from.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

var defaultGenerator = NewGenerator(nil)

// Generate produces one record per year of r for data type t using the
// embedded profiles. See [Generator.Generate].
func Generate(t DataType, r YearRange, seed uint64) ([]Record, error) {
	return defaultGenerator.Generate(t, r, seed)
}

// Generate produces one record per year of r for data type t. The output is
// a pure function of (profile, t, r, seed).
func (g *Generator) Generate(t DataType, r YearRange, seed uint64) ([]Record, error) {
	p, err := g.catalog.Profile(t)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	n := r.Years()
	records := make([]Record, n)

	for i := range records {
		year := r.Start + i
		dy := float64(year - r.Start)
		phase := math.Mod(dy, VenusDayYears) / VenusDayYears

		records[i] = Record{
			EarthYear:          year,
			VenusDay:           dy / VenusDayYears,
			BaseValue:          baseValue(p, dy, rng),
			SurfaceConditions:  eraSurfaceCondition(year),
			AtmosphericEffects: 500 * (1 + 0.01*math.Sin(2*math.Pi*math.Mod(dy, 11)/11)),
			SolarDayPhase:      phase,
			ClimateTrend:       1.0,
			CloudVariations:    1 + 0.1*math.Sin(2*math.Pi*phase),
			VolcanicInfluence:  1 + 0.3*math.Sin(2*math.Pi*math.Mod(dy, 8)/8),
			DiurnalVariation:   1 + 0.01*math.Sin(2*math.Pi*phase),
			AnnualVariation:    1 + 0.01*math.Sin(2*math.Pi*dy),
		}
	}

	for i := range records {
		rec := &records[i]
		rec.SmoothedValue = smoothed(records, i)
		rec.VenusIndex = rec.BaseValue*0.6 + rec.SurfaceConditions*20*0.3 + rec.CloudVariations*10*0.1
		rec.HostilityLevel = hostility(rec.SurfaceConditions)
		rec.FuturePrediction = prediction(rec.EarthYear, rec.BaseValue, rng)
	}

	for i := range records {
		rec := &records[i]
		m, ok := missionFor(rec.EarthYear)
		if !ok {
			continue
		}
		rec.HostilityLevel = m.hostility
		if m.surfaceFactor != 0 {
			rec.SurfaceConditions *= m.surfaceFactor
		}
	}

	return records, nil
}

// NewDataset generates a series and wraps it with a fresh ID and timestamp.
func (g *Generator) NewDataset(t DataType, r YearRange, seed uint64) (Dataset, error) {
	records, err := g.Generate(t, r, seed)
	if err != nil {
		return Dataset{}, err
	}
	p, _ := g.catalog.Profile(t)
	return Dataset{
		ID:          uuid.NewString(),
		Type:        t,
		Profile:     p,
		Range:       r,
		Seed:        seed,
		GeneratedAt: clock.Now().UTC(),
		Records:     records,
	}, nil
}

func baseValue(p Profile, dy float64, rng *rand.Rand) float64 {
	diurnal := math.Sin(2 * math.Pi * math.Mod(dy, p.CycleYears) / p.CycleYears)
	superRotation := math.Cos(2 * math.Pi * math.Mod(dy, VenusDayYears) / VenusDayYears)

	var v float64
	switch p.Trend {
	case TrendExtreme:
		v = p.BaseValue + p.Amplitude*diurnal
	case TrendSuperRotation:
		v = p.BaseValue + p.Amplitude*0.1*diurnal + p.Amplitude*0.9*superRotation
	case TrendCyclic:
		v = p.BaseValue + p.Amplitude*(0.7*diurnal+0.3*superRotation)
	default:
		v = p.BaseValue + p.Amplitude*0.2*diurnal
	}
	return v + boundedNormal(rng, p.noiseSigma())
}

// eraSurfaceCondition is the surface-condition factor of the exploration era
// containing year, before mission adjustments.
func eraSurfaceCondition(year int) float64 {
	switch {
	case year < 1970:
		return 0.9
	case year < 1980:
		return 1.0 + 0.01*float64(year-1970)
	case year < 1990:
		return 1.1 + 0.005*float64(year-1980)
	case year < 2000:
		return 1.15 + 0.003*float64(year-1990)
	case year < 2010:
		return 1.18 + 0.002*float64(year-2000)
	case year < 2020:
		return 1.20 + 0.001*float64(year-2010)
	default:
		return 1.21 + 0.0005*float64(year-2020)
	}
}

// hostility scales a surface condition to a whole percentage in [0, 100].
func hostility(condition float64) float64 {
	h := (condition - 0.9) * 333
	return math.Round(math.Max(0, math.Min(100, h)))
}

// smoothed is the centred 3-year mean of base values around i, truncated at
// the ends of the series.
func smoothed(records []Record, i int) float64 {
	lo := max(0, i-1)
	hi := min(len(records), i+2)
	var sum float64
	for _, r := range records[lo:hi] {
		sum += r.BaseValue
	}
	return sum / float64(hi-lo)
}

func prediction(year int, base float64, rng *rand.Rand) float64 {
	if year <= predictionStartYear {
		return base
	}
	sigma := 0.01 * float64(year-predictionStartYear)
	return base * (1 + boundedNormal(rng, sigma))
}

// boundedNormal draws from N(0, sigma) clamped to ±noiseClamp·sigma.
func boundedNormal(rng *rand.Rand, sigma float64) float64 {
	z := rng.NormFloat64()
	z = math.Max(-noiseClamp, math.Min(noiseClamp, z))
	return z * sigma
}
