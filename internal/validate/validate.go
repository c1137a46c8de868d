// Package validate checks a generated CSV file against the dataset
// invariants: schema, a contiguous year axis, whole-number hostility within
// 0-100, and base values inside the profile bounds.
package validate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/couchcryptid/venus-data/internal/adapter/csvfile"
	"github.com/couchcryptid/venus-data/internal/domain"
)

// maxErrorsPerPhase keeps reports readable on badly broken files.
const maxErrorsPerPhase = 20

// Phase is one named group of checks.
type Phase struct {
	Name   string
	Errors []string
}

func (p *Phase) errorf(format string, args ...any) {
	if len(p.Errors) < maxErrorsPerPhase {
		p.Errors = append(p.Errors, fmt.Sprintf(format, args...))
	}
}

// Passed reports whether the phase found no problems.
func (p *Phase) Passed() bool { return len(p.Errors) == 0 }

// Report is the outcome of validating one file.
type Report struct {
	Rows     int
	Extended bool
	Phases   []*Phase
}

// Passed reports whether every phase passed.
func (r Report) Passed() bool {
	for _, p := range r.Phases {
		if !p.Passed() {
			return false
		}
	}
	return true
}

type row struct {
	year      int
	venusDay  float64
	base      float64
	hostility float64
}

// CSV reads a generated file and runs every phase against profile p.
// Only unreadable input is returned as an error; invariant violations are
// reported in the phases.
func CSV(r io.Reader, p domain.Profile) (Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return Report{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Report{}, errors.New("empty file")
	}

	schema := &Phase{Name: "Schema"}
	header := records[0]
	rep := Report{Rows: len(records) - 1}
	switch {
	case slices.Equal(header, csvfile.Header(false)):
	case slices.Equal(header, csvfile.Header(true)):
		rep.Extended = true
	default:
		schema.errorf("unexpected header %v", header)
	}

	rows := make([]row, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		parsed, err := parseRow(rec)
		if err != nil {
			schema.errorf("line %d: %v", line, err)
			continue
		}
		rows = append(rows, parsed)
	}
	if len(rows) == 0 {
		schema.errorf("no data rows")
	}

	rep.Phases = []*Phase{
		schema,
		checkYears(rows),
		checkHostility(rows),
		checkBaseBounds(rows, p),
	}
	return rep, nil
}

func parseRow(rec []string) (row, error) {
	if len(rec) < 5 {
		return row{}, fmt.Errorf("%d fields, want at least 5", len(rec))
	}
	year, err := strconv.Atoi(rec[0])
	if err != nil {
		return row{}, fmt.Errorf("earth year %q: %w", rec[0], err)
	}
	vals := make([]float64, 3)
	for i, s := range []string{rec[1], rec[2], rec[3]} {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return row{}, fmt.Errorf("field %d %q: %w", i+2, s, err)
		}
		vals[i] = v
	}
	return row{year: year, venusDay: vals[0], base: vals[1], hostility: vals[2]}, nil
}

func checkYears(rows []row) *Phase {
	p := &Phase{Name: "Year axis"}
	if len(rows) == 0 {
		return p
	}
	start := rows[0].year
	for i, r := range rows {
		if r.year != start+i {
			p.errorf("row %d: year %d, want %d", i+1, r.year, start+i)
		}
		want := float64(r.year-start) / domain.VenusDayYears
		if math.Abs(r.venusDay-want) > 1e-9 {
			p.errorf("year %d: venus day %g, want %g", r.year, r.venusDay, want)
		}
	}
	return p
}

func checkHostility(rows []row) *Phase {
	p := &Phase{Name: "Hostility level"}
	for _, r := range rows {
		if r.hostility != math.Trunc(r.hostility) || r.hostility < 0 || r.hostility > 100 {
			p.errorf("year %d: hostility %g is not a whole number in 0-100", r.year, r.hostility)
		}
	}
	return p
}

func checkBaseBounds(rows []row, prof domain.Profile) *Phase {
	p := &Phase{Name: "Base value bounds"}
	lo, hi := prof.Bounds()
	for _, r := range rows {
		if r.base < lo || r.base > hi {
			p.errorf("year %d: base value %g outside [%g, %g]", r.year, r.base, lo, hi)
		}
	}
	return p
}
