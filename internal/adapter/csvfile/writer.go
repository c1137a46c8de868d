// Package csvfile writes generated series as comma-separated files.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/venus-data/internal/analysis"
	"github.com/couchcryptid/venus-data/internal/domain"
)

// ExtendedColumns follow the core columns when extended output is enabled.
var ExtendedColumns = []string{
	"Surface_Conditions",
	"Atmospheric_Effects",
	"Solar_Day_Phase",
	"Climate_Trend",
	"Cloud_Variations",
	"Volcanic_Influence",
	"Smoothed_Value",
	"Diurnal_Variation",
	"Annual_Variation",
	"Future_Prediction",
}

// FileName returns the deterministic output name for a type and range, e.g.
// "venus_temperature_data_1960_2025.csv".
func FileName(t domain.DataType, r domain.YearRange) string {
	return fmt.Sprintf("venus_%s_data_%d_%d.csv", t, r.Start, r.End)
}

// Header returns the column names written for the given mode.
func Header(extended bool) []string {
	cols := append([]string(nil), analysis.CoreColumns...)
	if extended {
		cols = append(cols, ExtendedColumns...)
	}
	return cols
}

// Encode writes a header row followed by one row per record.
func Encode(w io.Writer, records []domain.Record, extended bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(extended)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(row(r, extended)); err != nil {
			return fmt.Errorf("write year %d: %w", r.EarthYear, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(r domain.Record, extended bool) []string {
	out := []string{
		strconv.Itoa(r.EarthYear),
		formatFloat(r.VenusDay),
		formatFloat(r.BaseValue),
		formatFloat(r.HostilityLevel),
		formatFloat(r.VenusIndex),
	}
	if !extended {
		return out
	}
	return append(out,
		formatFloat(r.SurfaceConditions),
		formatFloat(r.AtmosphericEffects),
		formatFloat(r.SolarDayPhase),
		formatFloat(r.ClimateTrend),
		formatFloat(r.CloudVariations),
		formatFloat(r.VolcanicInfluence),
		formatFloat(r.SmoothedValue),
		formatFloat(r.DiurnalVariation),
		formatFloat(r.AnnualVariation),
		formatFloat(r.FuturePrediction),
	)
}

// formatFloat uses the shortest representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Writer saves datasets into a directory.
type Writer struct {
	dir      string
	extended bool
	logger   *slog.Logger
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string, extended bool, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, extended: extended, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "csv" }

// Load writes the dataset to its deterministic file name and returns the path.
func (w *Writer) Load(_ context.Context, ds domain.Dataset) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.dir, FileName(ds.Type, ds.Range))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, ds.Records, w.extended); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	w.logger.Info("dataset saved", "path", path, "records", len(ds.Records), "extended", w.extended)
	return path, nil
}
