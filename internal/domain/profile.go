package domain

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfilesYAML []byte

// Trend selects how the diurnal and super-rotation terms are weighted.
type Trend string

const (
	TrendExtreme       Trend = "extreme"
	TrendSuperRotation Trend = "super-rotation"
	TrendCyclic        Trend = "cyclique"
)

// Profile holds the baseline parameters of one data type.
type Profile struct {
	BaseValue   float64 `yaml:"base_value" json:"base_value"`
	CycleYears  float64 `yaml:"cycle_years" json:"cycle_years"`
	Amplitude   float64 `yaml:"amplitude" json:"amplitude"`
	Trend       Trend   `yaml:"trend" json:"trend"`
	Unit        string  `yaml:"unit" json:"unit"`
	Description string  `yaml:"description" json:"description"`
}

// cycleWeight is the largest absolute contribution of the cyclic terms, in
// units of amplitude.
func (p Profile) cycleWeight() float64 {
	switch p.Trend {
	case TrendExtreme, TrendSuperRotation, TrendCyclic:
		return 1
	default:
		return 0.2
	}
}

// noiseSigma is the standard deviation of the base-value noise.
func (p Profile) noiseSigma() float64 {
	return p.Amplitude * 0.05
}

// Bounds returns the closed interval every generated base value falls in.
func (p Profile) Bounds() (lo, hi float64) {
	spread := p.Amplitude*p.cycleWeight() + noiseClamp*p.noiseSigma()
	return p.BaseValue - spread, p.BaseValue + spread
}

func (p Profile) validate() error {
	if p.CycleYears <= 0 {
		return fmt.Errorf("cycle_years must be positive, got %g", p.CycleYears)
	}
	if p.Amplitude < 0 {
		return fmt.Errorf("amplitude must not be negative, got %g", p.Amplitude)
	}
	if p.Description == "" {
		return errors.New("description is required")
	}
	return nil
}

// Catalog maps every data type to its profile.
type Catalog struct {
	profiles map[DataType]Profile
}

// DefaultCatalog returns the embedded profiles.
func DefaultCatalog() *Catalog {
	c, err := parseCatalog(defaultProfilesYAML, nil)
	if err != nil {
		panic(fmt.Sprintf("embedded profiles are invalid: %v", err))
	}
	return c
}

// LoadCatalog returns the embedded profiles with any types defined in the
// YAML file at path replacing their defaults. An empty path yields the
// defaults unchanged.
func LoadCatalog(path string) (*Catalog, error) {
	base := DefaultCatalog()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	return parseCatalog(data, base)
}

// parseCatalog decodes YAML profiles on top of base. With a nil base every
// data type must be present.
func parseCatalog(data []byte, base *Catalog) (*Catalog, error) {
	var raw map[string]Profile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	c := &Catalog{profiles: make(map[DataType]Profile, len(dataTypes))}
	if base != nil {
		for t, p := range base.profiles {
			c.profiles[t] = p
		}
	}

	for name, p := range raw {
		t := DataType(name)
		if !t.Valid() {
			return nil, fmt.Errorf("parse profiles: %w: %q", ErrUnknownDataType, name)
		}
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		c.profiles[t] = p
	}

	for _, t := range dataTypes {
		if _, ok := c.profiles[t]; !ok {
			return nil, fmt.Errorf("parse profiles: missing profile for %s", t)
		}
	}
	return c, nil
}

// Profile looks up the profile of t.
func (c *Catalog) Profile(t DataType) (Profile, error) {
	p, ok := c.profiles[t]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownDataType, string(t))
	}
	return p, nil
}

// Len returns the number of profiles in the catalog.
func (c *Catalog) Len() int {
	return len(c.profiles)
}
