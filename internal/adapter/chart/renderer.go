// Package chart renders generated series as a PNG panel grid.
package chart

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/couchcryptid/venus-data/internal/domain"
)

// Palette of the panels, warm tones after Venus's clouds.
var (
	colorBase      = color.RGBA{R: 0xDA, G: 0xA5, B: 0x20, A: 0xFF} // goldenrod
	colorRaw       = color.RGBA{R: 0xFF, G: 0x63, B: 0x47, A: 0xFF} // tomato
	colorSmoothed  = color.RGBA{R: 0x00, G: 0x8B, B: 0x45, A: 0xFF} // green
	colorHostility = color.RGBA{R: 0xFF, G: 0x45, B: 0x00, A: 0xFF} // orange red
	colorIndex     = color.RGBA{R: 0xDA, G: 0x70, B: 0xD6, A: 0xFF} // orchid
	colorSurface   = color.RGBA{R: 0xB8, G: 0x86, B: 0x0B, A: 0xFF} // dark goldenrod
	colorDiurnal   = color.RGBA{R: 0x1E, G: 0x90, B: 0xFF, A: 0xFF} // dodger blue
	colorVolcanic  = color.RGBA{R: 0x8B, G: 0x45, B: 0x13, A: 0xFF} // saddle brown
	colorCloud     = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF} // grey
	colorForecast  = color.RGBA{R: 0x00, G: 0x8B, B: 0x8B, A: 0xFF} // dark cyan
	colorMarker    = color.RGBA{R: 0xFF, G: 0x8C, B: 0x00, A: 0xFF} // dark orange

	fillHostility = color.RGBA{R: 0xFF, G: 0x45, B: 0x00, A: 0x60}
	fillSurface   = color.RGBA{R: 0xDA, G: 0xA5, B: 0x20, A: 0x80}
	fillCloud     = color.RGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0x90}

	dashed = []vg.Length{vg.Points(5), vg.Points(3)}
	dotted = []vg.Length{vg.Points(1.5), vg.Points(2.5)}
)

const (
	gridRows     = 5
	gridCols     = 2
	canvasWidth  = 34 * vg.Centimeter
	canvasHeight = 48 * vg.Centimeter

	// venusDayStep spaces the Venus-day markers on the cycle panel.
	venusDayStep = 10
	// forecastStart is the first year drawn as a projection.
	forecastStart = 2020
)

// surfaceMissions annotates the surface-conditions panel.
var surfaceMissions = []struct {
	year  int
	label string
}{
	{1962, "Mariner 2"},
	{1970, "Venera 7"},
	{1975, "Venera 9/10"},
	{1982, "Venera 13/14"},
	{1990, "Magellan"},
	{2005, "Venus Express"},
	{2010, "Akatsuki"},
}

// FileName returns the chart file name for a data type, e.g.
// "venus_temperature_analysis.png".
func FileName(t domain.DataType) string {
	return fmt.Sprintf("venus_%s_analysis.png", t)
}

// Encode draws the 5x2 panel grid of ds as PNG into w.
func Encode(w io.Writer, ds domain.Dataset) error {
	if len(ds.Records) == 0 {
		return errors.New("no records to plot")
	}

	panels, err := buildPanels(ds)
	if err != nil {
		return err
	}

	img := vgimg.New(canvasWidth, canvasHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      gridRows,
		Cols:      gridCols,
		PadX:      vg.Centimeter,
		PadY:      vg.Centimeter,
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(12),
	}

	canvases := plot.Align(panels, tiles, dc)
	for row := range panels {
		for col := range panels[row] {
			panels[row][col].Draw(canvases[row][col])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// column maps one record field onto (Earth year, value) points.
func column(records []domain.Record, value func(domain.Record) float64) plotter.XYs {
	xys := make(plotter.XYs, len(records))
	for i, r := range records {
		xys[i] = plotter.XY{X: float64(r.EarthYear), Y: value(r)}
	}
	return xys
}

// buildPanels lays out the ten panels in reading order, two per row.
func buildPanels(ds domain.Dataset) ([][]*plot.Plot, error) {
	builders := []func(domain.Dataset) (*plot.Plot, error){
		cyclePanel,
		surfacePanel,
		diurnalPanel,
		atmosphericPanel,
		solarPhasePanel,
		smoothedPanel,
		hostilityPanel,
		cloudPanel,
		indexPanel,
		forecastPanel,
	}

	grid := make([][]*plot.Plot, gridRows)
	for i, build := range builders {
		p, err := build(ds)
		if err != nil {
			return nil, err
		}
		grid[i/gridCols] = append(grid[i/gridCols], p)
	}
	return grid, nil
}

func cyclePanel(ds domain.Dataset) (*plot.Plot, error) {
	base := column(ds.Records, func(r domain.Record) float64 { return r.BaseValue })
	p, err := newPanel(fmt.Sprintf("Main Venus cycle - %s", ds.Profile.Description), ds.Profile.Unit,
		series{name: "Base value", points: base, color: colorBase},
	)
	if err != nil {
		return nil, err
	}

	_, _, lo, hi := plotter.XYRange(base)
	years := venusDayYears(ds.Range)
	marks := make(plotter.XYs, len(years))
	names := make([]string, len(years))
	for i, year := range years {
		l, err := vline(year, lo, hi, colorMarker, dashed)
		if err != nil {
			return nil, err
		}
		p.Add(l)
		marks[i] = plotter.XY{X: year, Y: hi}
		names[i] = fmt.Sprintf("D%d", i*venusDayStep)
	}
	if err := addLabels(p, marks, names, colorMarker); err != nil {
		return nil, err
	}
	return p, nil
}

func surfacePanel(ds domain.Dataset) (*plot.Plot, error) {
	surface := column(ds.Records, func(r domain.Record) float64 { return r.SurfaceConditions })
	p, err := newPanel("Extreme surface conditions", "Condition factor",
		series{name: "Surface conditions", points: surface, color: colorSurface, fill: fillSurface},
	)
	if err != nil {
		return nil, err
	}

	marks, names := missionMarks(ds.Records)
	if err := addLabels(p, marks, names, colorMarker); err != nil {
		return nil, err
	}
	_, _, _, hi := plotter.XYRange(surface)
	p.Y.Min, p.Y.Max = 0, hi*1.15
	return p, nil
}

func diurnalPanel(ds domain.Dataset) (*plot.Plot, error) {
	return newPanel("Diurnal variations (very small)", "Variation factor",
		series{name: "Diurnal variation", points: column(ds.Records, func(r domain.Record) float64 { return r.DiurnalVariation }), color: colorDiurnal},
	)
}

func atmosphericPanel(ds domain.Dataset) (*plot.Plot, error) {
	return newPanel("Atmospheric and volcanic effects", "Relative intensity",
		series{name: "Greenhouse effect", points: column(ds.Records, func(r domain.Record) float64 { return r.AtmosphericEffects }), color: colorHostility},
		series{name: "Volcanic influence", points: column(ds.Records, func(r domain.Record) float64 { return r.VolcanicInfluence }), color: colorVolcanic},
	)
}

func solarPhasePanel(ds domain.Dataset) (*plot.Plot, error) {
	phase := column(ds.Records, func(r domain.Record) float64 { return r.SolarDayPhase })
	p, err := newPanel("Venus solar day phase (0-1)", "Day phase")
	if err != nil {
		return nil, err
	}

	cmap := moreland.Kindlmann()
	cmap.SetMin(0)
	cmap.SetMax(1)

	sc, err := plotter.NewScatter(phase)
	if err != nil {
		return nil, fmt.Errorf("solar day phase: %w", err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := cmap.At(phase[i].Y)
		if err != nil {
			c = colorMarker
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(2.5), Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)
	p.Y.Min, p.Y.Max = 0, 1
	return p, nil
}

func smoothedPanel(ds domain.Dataset) (*plot.Plot, error) {
	return newPanel("Raw vs smoothed data", ds.Profile.Unit,
		series{name: "Raw data", points: column(ds.Records, func(r domain.Record) float64 { return r.BaseValue }), color: colorRaw},
		series{name: "Smoothed (3 Earth years)", points: column(ds.Records, func(r domain.Record) float64 { return r.SmoothedValue }), color: colorSmoothed},
	)
}

func hostilityPanel(ds domain.Dataset) (*plot.Plot, error) {
	p, err := newPanel("Environmental hostility (0-100)", "Hostility level",
		series{name: "Hostility", points: column(ds.Records, func(r domain.Record) float64 { return r.HostilityLevel }), color: colorHostility, fill: fillHostility},
	)
	if err != nil {
		return nil, err
	}
	p.Y.Min, p.Y.Max = 0, 100
	return p, nil
}

func cloudPanel(ds domain.Dataset) (*plot.Plot, error) {
	p, err := newPanel("Cloud cover and variations", "Cover factor",
		series{name: "Cloud variations", points: column(ds.Records, func(r domain.Record) float64 { return r.CloudVariations }), color: colorCloud, fill: fillCloud},
	)
	if err != nil {
		return nil, err
	}
	p.Y.Min = 0
	return p, nil
}

func indexPanel(ds domain.Dataset) (*plot.Plot, error) {
	return newPanel("Composite Venus index", "Index value",
		series{name: "Venus index", points: column(ds.Records, func(r domain.Record) float64 { return r.VenusIndex }), color: colorIndex},
	)
}

func forecastPanel(ds domain.Dataset) (*plot.Plot, error) {
	history := column(ds.Records, func(r domain.Record) float64 { return r.BaseValue })
	forecast := column(ds.Records, func(r domain.Record) float64 { return r.FuturePrediction })
	p, err := newPanel("Historical data and projections", ds.Profile.Unit,
		series{name: "Historical data", points: history, color: colorRaw},
		series{name: "Projections", points: forecast, color: colorForecast, dashes: dashed},
	)
	if err != nil {
		return nil, err
	}

	if forecastStart >= ds.Range.Start && forecastStart <= ds.Range.End {
		_, _, lo1, hi1 := plotter.XYRange(history)
		_, _, lo2, hi2 := plotter.XYRange(forecast)
		l, err := vline(forecastStart, math.Min(lo1, lo2), math.Max(hi1, hi2), colorMarker, dotted)
		if err != nil {
			return nil, err
		}
		p.Add(l)
		p.Legend.Add("Start of projections", l)
	}
	return p, nil
}

// venusDayYears returns the Earth years at every tenth Venus day of r.
func venusDayYears(r domain.YearRange) []float64 {
	var years []float64
	for day := 0; ; day += venusDayStep {
		year := float64(r.Start) + float64(day)*domain.VenusDayYears
		if year > float64(r.End) {
			return years
		}
		years = append(years, year)
	}
}

// missionMarks places a label just above the surface condition of every
// annotated mission year present in records.
func missionMarks(records []domain.Record) (plotter.XYs, []string) {
	var marks plotter.XYs
	var names []string
	for _, m := range surfaceMissions {
		for _, r := range records {
			if r.EarthYear == m.year {
				marks = append(marks, plotter.XY{X: float64(m.year), Y: r.SurfaceConditions * 1.05})
				names = append(names, m.label)
				break
			}
		}
	}
	return marks, names
}

type series struct {
	name   string
	points plotter.XYs
	color  color.Color
	fill   color.Color // nil draws the line only
	dashes []vg.Length
}

func newPanel(title, yLabel string, lines ...series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Earth year"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	for _, s := range lines {
		l, err := plotter.NewLine(s.points)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		l.Color = s.color
		l.Width = vg.Points(1.5)
		l.Dashes = s.dashes
		l.FillColor = s.fill
		p.Add(l)
		p.Legend.Add(s.name, l)
	}
	p.Legend.Top = true
	return p, nil
}

func vline(x, lo, hi float64, c color.Color, dashes []vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x, Y: lo}, {X: x, Y: hi}})
	if err != nil {
		return nil, fmt.Errorf("marker at %g: %w", x, err)
	}
	l.Color = c
	l.Width = vg.Points(0.75)
	l.Dashes = dashes
	return l, nil
}

func addLabels(p *plot.Plot, at plotter.XYs, names []string, c color.Color) error {
	if len(at) == 0 {
		return nil
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: at, Labels: names})
	if err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = c
	}
	p.Add(labels)
	return nil
}

// Renderer saves charts into a directory.
type Renderer struct {
	dir    string
	logger *slog.Logger
}

// NewRenderer creates a Renderer rooted at dir.
func NewRenderer(dir string, logger *slog.Logger) *Renderer {
	return &Renderer{dir: dir, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (r *Renderer) Name() string { return "chart" }

// Load renders ds and returns the image path.
func (r *Renderer) Load(_ context.Context, ds domain.Dataset) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(r.dir, FileName(ds.Type))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, ds); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	r.logger.Info("chart rendered", "path", path)
	return path, nil
}
