package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection(t *testing.T) {
	tests := []struct {
		n    int
		want DataType
	}{
		{1, Temperature},
		{2, AtmosphericPressure},
		{3, CloudCover},
		{4, SurfaceConditions},
		{5, VolcanicActivity},
		{6, SolarRadiation},
		{7, AtmosphericComposition},
		{8, WindSpeeds},
		{9, OrbitalDistance},
	}
	for _, tt := range tests {
		got, err := Selection(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.n, got.MenuNumber())
	}
}

func TestSelection_OutOfRange(t *testing.T) {
	for _, n := range []int{0, 10, -1, 99} {
		_, err := Selection(n)
		assert.ErrorIs(t, err, ErrInvalidSelection, "n=%d", n)
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DataType
		wantErr bool
	}{
		{"plain", "1", Temperature, false},
		{"whitespace", "  8\n", WindSpeeds, false},
		{"zero", "0", "", true},
		{"ten", "10", "", true},
		{"word", "temperature", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDataType(t *testing.T) {
	tests := []struct {
		input string
		want  DataType
	}{
		{"temperature", Temperature},
		{"Wind-Speeds", WindSpeeds},
		{"ORBITAL_DISTANCE", OrbitalDistance},
		{"5", VolcanicActivity},
	}
	for _, tt := range tests {
		got, err := ParseDataType(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseDataType_Errors(t *testing.T) {
	_, err := ParseDataType("magnetosphere")
	assert.ErrorIs(t, err, ErrUnknownDataType)

	_, err = ParseDataType("")
	assert.ErrorIs(t, err, ErrUnknownDataType)

	_, err = ParseDataType("12")
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestDataTypes_ReturnsCopy(t *testing.T) {
	types := DataTypes()
	require.Len(t, types, 9)
	types[0] = "mutated"
	assert.Equal(t, Temperature, DataTypes()[0])
}

func TestDataType_Unknown(t *testing.T) {
	dt := DataType("lava")
	assert.False(t, dt.Valid())
	assert.Zero(t, dt.MenuNumber())
}

func TestDataType_String(t *testing.T) {
	assert.Equal(t, "temperature", Temperature.String())
	assert.Equal(t, "wind_speeds", WindSpeeds.String())
}
