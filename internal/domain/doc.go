// Package domain models synthetic Venus observation series.
//
// # Data Types
//
// Nine data types are offered, numbered in menu order:
//
//	1 temperature              462 °C surface mean
//	2 atmospheric_pressure     92 bars
//	3 cloud_cover              75 % sulfuric-acid cloud cover
//	4 surface_conditions       100 on the hostility index
//	5 volcanic_activity        25 on the volcanic index, 8-year cycle
//	6 solar_radiation          200 W/m², 11-year cycle
//	7 atmospheric_composition  96.5 % CO₂
//	8 wind_speeds              5 km/h at the surface, super-rotating aloft
//	9 orbital_distance         0.72 AU
//
// Each type maps to a [Profile] (baseline, cycle length, amplitude, trend,
// unit). Defaults are embedded as YAML and may be overridden per type by a
// profile file, see [LoadCatalog].
//
// # Time Base
//
// One record is produced per Earth year in an inclusive [YearRange]. A Venus
// solar day lasts 0.62 Earth years, so the Venus_Day column is the number of
// elapsed Venus days since the start of the range:
//
//	venus_day = (earth_year - start_year) / 0.62
//
// # Base Value
//
// The base value combines a diurnal sine over the profile cycle with a
// super-rotation cosine over the Venus day, weighted by trend:
//
//	extreme         base + A·sin
//	super-rotation  base + 0.1A·sin + 0.9A·cos
//	cyclique        base + A·(0.7·sin + 0.3·cos)
//	other           base + 0.2A·sin
//
// Gaussian noise with σ = 0.05A is added and clamped to ±3σ, so every value
// stays within [Profile.Bounds].
//
// # Hostility Level
//
// Surface conditions follow exploration eras (pre-1970 through the 2020s).
// Hostility is (condition - 0.9) × 333 clamped to 0–100 and rounded to a
// whole percentage; years with a landmark mission override it:
//
//	1962 Mariner 2 flyby             10
//	1967-69 Venera 4-6 entries       30
//	1970 Venera 7 landing            50
//	1975 Venera 9/10 surface images  70
//	1978 Pioneer Venus               60
//	1982 Venera 13/14 landings       80
//	1985 Vega 1/2 balloons           65
//	1990 Magellan radar mapping      75
//	2005 Venus Express               70
//	2010 Akatsuki                    72
//
// # Reproducibility
//
// [Generate] takes the random seed explicitly. Noise is drawn in a fixed
// order (every base value in year order, then every prediction), so equal
// (type, range, seed) inputs yield bit-identical records.
package domain
