package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/venus-data/internal/config"
	"github.com/couchcryptid/venus-data/internal/domain"
	"github.com/couchcryptid/venus-data/internal/observability"
	"github.com/couchcryptid/venus-data/internal/ux"
)

// app carries what every command needs once flags and env are resolved.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *domain.Catalog
	printer *ux.Printer
	stdin   io.Reader
	stdout  io.Writer
}

type flagValues struct {
	seed     uint64
	start    int
	end      int
	outDir   string
	noChart  bool
	extended bool
}

func newApp(stdin io.Reader, stdout io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	return newApp(stdin, stdout).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	var flags flagValues

	root := &cobra.Command{
		Use:   "venus",
		Short: "Generate synthetic Venus planetary time series",
		Long: `venus synthesizes yearly Venus series (temperature, pressure, winds and more),
writes them to CSV, prints descriptive statistics, and renders a chart.
Without a subcommand it shows an interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInteractive(cmd)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)

	pf := root.PersistentFlags()
	pf.Uint64Var(&flags.seed, "seed", 0, "random seed (default: VENUS_SEED, else derived from the clock)")
	pf.IntVar(&flags.start, "start", domain.DefaultStartYear, "first Earth year")
	pf.IntVar(&flags.end, "end", domain.DefaultEndYear, "last Earth year")
	pf.StringVar(&flags.outDir, "out-dir", ".", "directory for CSV and chart output")
	pf.BoolVar(&flags.noChart, "no-chart", false, "skip chart rendering")
	pf.BoolVar(&flags.extended, "extended", false, "append the extended columns to the CSV")

	root.AddCommand(
		newRunCmd(a),
		newGenerateCmd(a),
		newTypesCmd(a),
		newServeCmd(a),
		newValidateCmd(a),
	)
	return root
}

// init loads env config, applies explicitly set flags over it, and builds
// the logger and profile catalog.
func (a *app) init(cmd *cobra.Command, flags flagValues) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fs := cmd.Flags()
	if fs.Changed("seed") {
		cfg.Seed, cfg.SeedSet = flags.seed, true
	}
	if fs.Changed("start") {
		cfg.StartYear = flags.start
	}
	if fs.Changed("end") {
		cfg.EndYear = flags.end
	}
	if fs.Changed("out-dir") {
		cfg.OutputDir = flags.outDir
	}
	if fs.Changed("no-chart") {
		cfg.ChartEnabled = !flags.noChart
	}
	if fs.Changed("extended") {
		cfg.ExtendedCSV = flags.extended
	}
	if err := cfg.YearRange().Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = observability.NewLogger(cfg)
	a.printer = ux.NewPrinter(a.stdout)

	if cfg.ProfilesFile != "" {
		a.catalog, err = domain.LoadCatalog(cfg.ProfilesFile)
		if err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}
		a.logger.Info("profiles loaded", "path", cfg.ProfilesFile)
	} else {
		a.catalog = domain.DefaultCatalog()
	}
	return nil
}

// errorLogger returns the configured logger, or the default one when
// configuration never loaded.
func (a *app) errorLogger() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}

// seed returns the configured seed or derives one from the clock.
func (a *app) seed() uint64 {
	if a.cfg.SeedSet {
		return a.cfg.Seed
	}
	s := domain.DefaultSeed()
	a.logger.Info("seed derived from clock", "seed", s)
	return s
}

// interactive reports whether stdin is a terminal a user can retype into.
func (a *app) interactive() bool {
	f, ok := a.stdin.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
