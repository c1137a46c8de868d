package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/venus-data/internal/adapter/chart"
	"github.com/couchcryptid/venus-data/internal/adapter/csvfile"
	"github.com/couchcryptid/venus-data/internal/adapter/influx"
	kafkaadapter "github.com/couchcryptid/venus-data/internal/adapter/kafka"
	"github.com/couchcryptid/venus-data/internal/domain"
	"github.com/couchcryptid/venus-data/internal/menu"
	"github.com/couchcryptid/venus-data/internal/observability"
	"github.com/couchcryptid/venus-data/internal/pipeline"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Choose a data type from the menu and run the full analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInteractive(cmd)
		},
	}
}

func newGenerateCmd(a *app) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one data type without prompting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := domain.ParseDataType(typ)
			if err != nil {
				return err
			}
			return a.execute(cmd.Context(), t)
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "data type name or menu number (1-9)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func (a *app) runInteractive(cmd *cobra.Command) error {
	a.printer.Banner(a.cfg.YearRange())
	t, fellBack := menu.New(a.stdin, a.printer, a.catalog, a.interactive(), a.logger).Choose()
	if fellBack {
		a.logger.Warn("invalid menu selection, using default", "data_type", t)
	}
	return a.execute(cmd.Context(), t)
}

// execute runs the generate-save-describe-chart sequence and prints the report.
func (a *app) execute(parent context.Context, t domain.DataType) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prof, err := a.catalog.Profile(t)
	if err != nil {
		return err
	}

	sinks, closeSinks := a.buildSinks()
	defer closeSinks()

	runner := pipeline.New(domain.NewGenerator(a.catalog), sinks, a.logger, observability.NewMetricsWith(nil))

	a.printer.Info(fmt.Sprintf("Generating Venus data for %s...", prof.Description))
	res, err := runner.Run(ctx, pipeline.Request{Type: t, Range: a.cfg.YearRange(), Seed: a.seed(), Seeded: a.cfg.SeedSet})
	a.printer.Artifacts(res.Artifacts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			a.printer.Warning("Interrupted")
		}
		return err
	}

	a.printer.Preview(res.Dataset.Records)
	a.printer.Describe(res.Stats)
	a.printer.Insights(res.Insights)
	a.printer.Footer(res.Insights, res.Dataset.Range)
	return nil
}

type closer interface{ Close() error }

// buildSinks wires the enabled sinks in order: CSV, chart, Kafka, InfluxDB.
func (a *app) buildSinks() ([]pipeline.Sink, func()) {
	cfg := a.cfg
	sinks := []pipeline.Sink{csvfile.NewWriter(cfg.OutputDir, cfg.ExtendedCSV, a.logger)}
	if cfg.ChartEnabled {
		sinks = append(sinks, chart.NewRenderer(cfg.OutputDir, a.logger))
	}

	var closers []closer
	if cfg.KafkaEnabled() {
		w := kafkaadapter.NewWriter(cfg, a.logger)
		sinks = append(sinks, w)
		closers = append(closers, w)
		a.logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	if cfg.InfluxEnabled() {
		w := influx.NewWriter(cfg, a.logger)
		sinks = append(sinks, w)
		closers = append(closers, w)
		a.logger.Info("influx sink enabled", "url", cfg.InfluxURL, "bucket", cfg.InfluxBucket)
	}

	return sinks, func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				a.logger.Error("sink close error", "error", err)
			}
		}
	}
}
