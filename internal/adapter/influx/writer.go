// Package influx stores generated series as InfluxDB points.
package influx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/couchcryptid/venus-data/internal/config"
	"github.com/couchcryptid/venus-data/internal/domain"
)

const measurement = "venus_series"

// pointWriter is the subset of api.WriteAPIBlocking the sink uses.
type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// Writer writes one point per record.
// It implements pipeline.Sink.
type Writer struct {
	client influxdb2.Client
	api    pointWriter
	bucket string
	logger *slog.Logger
}

// NewWriter connects a blocking write API for the configured org and bucket.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	client := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	return &Writer{
		client: client,
		api:    client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		bucket: cfg.InfluxBucket,
		logger: logger,
	}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "influx" }

// Load writes the dataset as a single batch of points.
func (w *Writer) Load(ctx context.Context, ds domain.Dataset) (string, error) {
	location := "influx://" + w.bucket + "/" + measurement
	if len(ds.Records) == 0 {
		return location, nil
	}
	points := make([]*write.Point, len(ds.Records))
	for i, r := range ds.Records {
		points[i] = toPoint(ds, r)
	}
	if err := w.api.WritePoint(ctx, points...); err != nil {
		return "", fmt.Errorf("write %s points: %w", ds.Type, err)
	}
	w.logger.Info("dataset written", "bucket", w.bucket, "data_type", ds.Type, "points", len(points))
	return location, nil
}

// Close releases the client's HTTP resources.
func (w *Writer) Close() error {
	if w.client != nil {
		w.client.Close()
	}
	return nil
}

// toPoint maps a record to a point stamped at January 1 of its Earth year.
func toPoint(ds domain.Dataset, r domain.Record) *write.Point {
	tags := map[string]string{
		"data_type":  string(ds.Type),
		"dataset_id": ds.ID,
	}
	fields := map[string]any{
		"venus_day":          r.VenusDay,
		"base_value":         r.BaseValue,
		"hostility_level":    r.HostilityLevel,
		"venus_index":        r.VenusIndex,
		"surface_conditions": r.SurfaceConditions,
		"smoothed_value":     r.SmoothedValue,
		"future_prediction":  r.FuturePrediction,
	}
	ts := time.Date(r.EarthYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	return influxdb2.NewPoint(measurement, tags, fields, ts)
}
