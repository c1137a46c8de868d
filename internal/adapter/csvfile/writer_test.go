package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/venus-data/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func generated(t *testing.T, dt domain.DataType, seed uint64) domain.Dataset {
	t.Helper()
	ds, err := domain.NewGenerator(nil).NewDataset(dt, domain.DefaultYearRange(), seed)
	require.NoError(t, err)
	return ds
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "venus_temperature_data_1960_2025.csv", FileName(domain.Temperature, domain.DefaultYearRange()))
	assert.Equal(t, "venus_wind_speeds_data_1990_2000.csv", FileName(domain.WindSpeeds, domain.YearRange{Start: 1990, End: 2000}))
}

func TestWriter_Load(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	ds := generated(t, domain.Temperature, 7)

	path, err := NewWriter(dir, false, discardLogger()).Load(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "venus_temperature_data_1960_2025.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(ds.Records)+1)
	assert.Equal(t, []string{"Earth_Year", "Venus_Day", "Base_Value", "Hostility_Level", "Venus_Index"}, rows[0])
	assert.Equal(t, "1960", rows[1][0])
	assert.Equal(t, "2025", rows[len(rows)-1][0])

	base, err := strconv.ParseFloat(rows[1][2], 64)
	require.NoError(t, err)
	assert.Equal(t, ds.Records[0].BaseValue, base)
}

func TestWriter_LoadExtended(t *testing.T) {
	dir := t.TempDir()
	ds := generated(t, domain.CloudCover, 7)

	path, err := NewWriter(dir, true, discardLogger()).Load(context.Background(), ds)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows[0], 15)
	assert.Equal(t, "Surface_Conditions", rows[0][5])
	assert.Equal(t, "Future_Prediction", rows[0][14])
	for _, r := range rows {
		assert.Len(t, r, 15)
	}
}

func TestEncode_SameSeedIsByteIdentical(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Encode(&a, generated(t, domain.SolarRadiation, 99).Records, true))
	require.NoError(t, Encode(&b, generated(t, domain.SolarRadiation, 99).Records, true))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil, false))
	assert.Equal(t, "Earth_Year,Venus_Day,Base_Value,Hostility_Level,Venus_Index\n", buf.String())
}

func TestWriter_LoadFailsOnUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := NewWriter(file, false, discardLogger()).Load(context.Background(), generated(t, domain.Temperature, 1))
	require.Error(t, err)
}
