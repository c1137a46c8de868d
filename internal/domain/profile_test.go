package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, 9, c.Len())

	p, err := c.Profile(Temperature)
	require.NoError(t, err)
	assert.Equal(t, 462.0, p.BaseValue)
	assert.Equal(t, 0.62, p.CycleYears)
	assert.Equal(t, 5.0, p.Amplitude)
	assert.Equal(t, TrendExtreme, p.Trend)
	assert.Equal(t, "°C", p.Unit)

	p, err = c.Profile(VolcanicActivity)
	require.NoError(t, err)
	assert.Equal(t, 8.0, p.CycleYears)
	assert.Equal(t, TrendCyclic, p.Trend)
}

func TestProfile_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		p      Profile
		lo, hi float64
	}{
		{"extreme", Profile{BaseValue: 462, Amplitude: 5, Trend: TrendExtreme}, 456.25, 467.75},
		{"stable", Profile{BaseValue: 92, Amplitude: 2, Trend: "stable"}, 91.3, 92.7},
		{"super-rotation", Profile{BaseValue: 5, Amplitude: 300, Trend: TrendSuperRotation}, -340, 350},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.p.Bounds()
			assert.InDelta(t, tt.lo, lo, 1e-9)
			assert.InDelta(t, tt.hi, hi, 1e-9)
		})
	}
}

func TestLoadCatalog_EmptyPathUsesDefaults(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, 9, c.Len())
}

func TestLoadCatalog_OverridesOneType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
temperature:
  base_value: 470
  cycle_years: 1.0
  amplitude: 2
  trend: stable
  unit: K
  description: Kelvin-ish temperature
`), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	p, err := c.Profile(Temperature)
	require.NoError(t, err)
	assert.Equal(t, 470.0, p.BaseValue)
	assert.Equal(t, "K", p.Unit)

	p, err = c.Profile(AtmosphericPressure)
	require.NoError(t, err)
	assert.Equal(t, 92.0, p.BaseValue)
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"unknown type", "lava_flow:\n  base_value: 1\n  cycle_years: 1\n  description: x\n", "unknown data type"},
		{"zero cycle", "temperature:\n  base_value: 1\n  cycle_years: 0\n  description: x\n", "cycle_years"},
		{"negative amplitude", "temperature:\n  base_value: 1\n  cycle_years: 1\n  amplitude: -1\n  description: x\n", "amplitude"},
		{"missing description", "temperature:\n  base_value: 1\n  cycle_years: 1\n", "description"},
		{"bad yaml", "temperature: [", "parse profiles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profiles.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := LoadCatalog(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read profiles")
}

func TestParseCatalog_RequiresEveryTypeWithoutBase(t *testing.T) {
	_, err := parseCatalog([]byte("temperature:\n  base_value: 1\n  cycle_years: 1\n  description: x\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing profile")
}

func TestGenerator_CustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
orbital_distance:
  base_value: 1
  cycle_years: 1
  amplitude: 0
  trend: stable
  unit: AU
  description: Flat orbit
`), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	records, err := NewGenerator(c).Generate(OrbitalDistance, DefaultYearRange(), testSeed)
	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, 1.0, r.BaseValue)
	}
}
