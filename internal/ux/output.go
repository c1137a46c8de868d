// Package ux renders the interactive terminal output: menu, tables, and the
// post-run report.
package ux

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/couchcryptid/venus-data/internal/analysis"
	"github.com/couchcryptid/venus-data/internal/domain"
	"github.com/couchcryptid/venus-data/internal/pipeline"
)

// Venus palette - sulfuric golds and ambers.
var (
	ColorGold    = lipgloss.Color("#FFD700")
	ColorAmber   = lipgloss.Color("#F4A300")
	ColorOchre   = lipgloss.Color("#B8860B")
	ColorDust    = lipgloss.Color("#8A7F66")
	ColorSuccess = lipgloss.Color("#9ACD32")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

const ruleWidth = 70

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
}

// Printer writes styled output to w. Color is dropped automatically when w
// is not a terminal.
type Printer struct {
	w      io.Writer
	styles styles
}

// NewPrinter creates a Printer bound to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		styles: styles{
			title:   r.NewStyle().Bold(true).Foreground(ColorGold),
			section: r.NewStyle().Bold(true).Foreground(ColorAmber),
			muted:   r.NewStyle().Foreground(ColorDust),
			success: r.NewStyle().Foreground(ColorSuccess),
			warning: r.NewStyle().Foreground(ColorWarning),
			err:     r.NewStyle().Foreground(ColorError),
			header:  r.NewStyle().Bold(true).Foreground(ColorGold).Padding(0, 1),
			cell:    r.NewStyle().Padding(0, 1),
			border:  r.NewStyle().Foreground(ColorOchre),
		},
	}
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

// Banner prints the program title and a rule.
func (p *Printer) Banner(r domain.YearRange) {
	p.println(p.styles.title.Render(fmt.Sprintf("VENUS NUMERICAL DATA ANALYSIS (%s)", r)))
	p.println(p.styles.muted.Render(strings.Repeat("=", ruleWidth)))
}

// Menu lists the data types with their menu numbers.
func (p *Printer) Menu(c *domain.Catalog) {
	p.println("Available Venus data types:")
	for _, t := range domain.DataTypes() {
		desc := string(t)
		if prof, err := c.Profile(t); err == nil {
			desc = prof.Description
		}
		p.println(fmt.Sprintf("%d. %s", t.MenuNumber(), desc))
	}
}

// Prompt writes a blank line and then text, leaving the cursor on its line.
func (p *Printer) Prompt(text string) {
	fmt.Fprint(p.w, "\n"+p.styles.section.Render(text)+" ")
}

// Info prints a plain line.
func (p *Printer) Info(text string) {
	p.println(text)
}

// Success prints a confirmation line.
func (p *Printer) Success(text string) {
	p.println(p.styles.success.Render("✓ " + text))
}

// Warning prints a warning line.
func (p *Printer) Warning(text string) {
	p.println(p.styles.warning.Render("⚠ " + text))
}

// Error prints an error line.
func (p *Printer) Error(text string) {
	p.println(p.styles.err.Render("✗ " + text))
}

// Section prints a section heading preceded by a blank line.
func (p *Printer) Section(text string) {
	p.println("")
	p.println(p.styles.section.Render(text))
}

// Types prints the data-type catalog as a table.
func (p *Printer) Types(c *domain.Catalog) {
	rows := make([][]string, 0, len(domain.DataTypes()))
	for _, t := range domain.DataTypes() {
		prof, err := c.Profile(t)
		if err != nil {
			continue
		}
		rows = append(rows, []string{strconv.Itoa(t.MenuNumber()), string(t), prof.Description, prof.Unit})
	}
	p.println(p.table([]string{"#", "Name", "Description", "Unit"}, rows))
}

// Preview prints the first rows of the core columns.
func (p *Printer) Preview(records []domain.Record) {
	rows := make([][]string, 0, 5)
	for _, r := range analysis.Preview(records, 5) {
		row := make([]string, len(analysis.CoreColumns))
		for i, col := range analysis.CoreColumns {
			if col == analysis.ColEarthYear {
				row[i] = strconv.Itoa(r.EarthYear)
				continue
			}
			row[i] = strconv.FormatFloat(analysis.CoreValue(r, col), 'f', 6, 64)
		}
		rows = append(rows, row)
	}
	p.Section("Data preview:")
	p.println(p.table(analysis.CoreColumns, rows))
}

var statLabels = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Describe prints the per-column statistics, one column per core field.
func (p *Printer) Describe(stats []analysis.ColumnStats) {
	headers := append([]string{""}, make([]string, len(stats))...)
	for i, s := range stats {
		headers[i+1] = s.Column
	}
	rows := make([][]string, len(statLabels))
	for i, label := range statLabels {
		row := make([]string, len(stats)+1)
		row[0] = label
		for j, s := range stats {
			row[j+1] = statValue(s, i)
		}
		rows[i] = row
	}
	p.Section("Descriptive statistics:")
	p.println(p.table(headers, rows))
}

func statValue(s analysis.ColumnStats, i int) string {
	var v float64
	switch i {
	case 0:
		return strconv.Itoa(s.Count)
	case 1:
		v = s.Mean
	case 2:
		v = s.Std
	case 3:
		v = s.Min
	case 4:
		v = s.P25
	case 5:
		v = s.P50
	case 6:
		v = s.P75
	default:
		v = s.Max
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// Insights prints the narrative report for a dataset.
func (p *Printer) Insights(in analysis.Insights) {
	p.println("")
	p.println(p.styles.title.Render("ANALYTICAL INSIGHTS - " + in.Description))
	p.println(p.styles.muted.Render(strings.Repeat("=", ruleWidth)))

	p.Section("1. Core statistics")
	p.println(fmt.Sprintf("Mean value: %.2f %s", in.MeanValue, in.Unit))
	p.println(fmt.Sprintf("Maximum value: %.2f %s", in.MaxValue, in.Unit))
	p.println(fmt.Sprintf("Minimum value: %.2f %s", in.MinValue, in.Unit))
	p.println(fmt.Sprintf("Current value: %.2f %s", in.Current, in.Unit))

	p.Section("2. Unique characteristics of Venus")
	p.println(fmt.Sprintf("Current Venus day: %.1f", in.CurrentVenusDay))
	p.println(fmt.Sprintf("Solar day length: %g Earth years", domain.VenusDayYears))
	p.println("Retrograde rotation: yes")
	p.println("Axial tilt: 177.3° (nearly inverted)")

	p.Section("3. Extreme environmental conditions")
	p.println(fmt.Sprintf("Current hostility level: %.1f%%", in.CurrentHostility))
	p.println(fmt.Sprintf("Surface conditions: %.2fx Earth", in.CurrentSurface))
	p.println("Surface temperature: ~462°C (constant)")
	p.println("Surface pressure: ~92 bar (like 900 m under water)")
	p.println("Atmosphere: 96.5% CO₂, sulfuric-acid clouds")

	p.Section("4. Landmark missions")
	p.bullets(analysis.Missions)

	p.Section("5. Unique atmospheric phenomena")
	p.bullets(analysis.Phenomena)

	p.Section("6. Future projections and missions")
	p.bullets(analysis.FutureMissions)

	p.Section("7. Scientific implications")
	p.bullets(in.Implications)
}

func (p *Printer) bullets(items []string) {
	for _, it := range items {
		p.println("• " + it)
	}
}

// Artifacts lists where the run wrote its outputs.
func (p *Printer) Artifacts(arts []pipeline.Artifact) {
	for _, a := range arts {
		p.Success(fmt.Sprintf("%s: %s", a.Sink, a.Location))
	}
}

// Footer prints the completion summary.
func (p *Printer) Footer(in analysis.Insights, r domain.YearRange) {
	p.println("")
	p.Success(fmt.Sprintf("Analysis of %s complete", in.Description))
	p.println(fmt.Sprintf("Period: %s (Earth years)", r))
	p.println(fmt.Sprintf("Coverage: ~%.1f Venus days", in.CoverageDays))
}

func (p *Printer) table(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.styles.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.header
			}
			return p.styles.cell
		}).
		String()
}
