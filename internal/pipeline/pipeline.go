package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/venus-data/internal/analysis"
	"github.com/couchcryptid/venus-data/internal/domain"
	"github.com/couchcryptid/venus-data/internal/observability"
)

// Generator builds a dataset for one data type.
type Generator interface {
	NewDataset(t domain.DataType, r domain.YearRange, seed uint64) (domain.Dataset, error)
}

// Sink persists or publishes a generated dataset and reports where it went.
type Sink interface {
	Name() string
	Load(ctx context.Context, ds domain.Dataset) (string, error)
}

// Request selects what to generate.
type Request struct {
	Type  domain.DataType
	Range domain.YearRange
	Seed  uint64
	// Seeded marks a caller-chosen seed. Only seeded requests use the
	// dataset cache.
	Seeded bool
}

// Artifact is one successful sink write.
type Artifact struct {
	Sink     string
	Location string
}

// Result is everything a run produced.
type Result struct {
	Dataset   domain.Dataset
	Artifacts []Artifact
	Stats     []analysis.ColumnStats
	Insights  analysis.Insights
}

// Option configures a Runner.
type Option func(*Runner)

// WithSinkRetries sets how many times a failing sink is attempted and the
// initial backoff between attempts.
func WithSinkRetries(attempts int, initialBackoff time.Duration) Option {
	return func(r *Runner) {
		if attempts > 0 {
			r.sinkAttempts = attempts
		}
		r.initialBackoff = initialBackoff
	}
}

// WithDatasetCache keeps up to maxEntries seeded datasets in an LRU cache.
func WithDatasetCache(maxEntries int) Option {
	return func(r *Runner) {
		r.cache = NewCachedGenerator(r.generator, maxEntries)
	}
}

// Runner orchestrates the generate-describe-load sequence.
type Runner struct {
	generator Generator
	cache     *CachedGenerator
	sinks     []Sink
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool

	sinkAttempts   int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// New creates a Runner. Sinks run in the order given.
func New(g Generator, sinks []Sink, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Runner {
	r := &Runner{
		generator:      g,
		sinks:          sinks,
		logger:         logger,
		metrics:        metrics,
		sinkAttempts:   3,
		initialBackoff: 200 * time.Millisecond,
		maxBackoff:     5 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CheckReadiness returns nil once a dataset has been generated successfully.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no dataset generated yet")
	}
	return nil
}

// Warm generates every data type once over a short range so a bad profile
// catalog is caught before traffic arrives. It marks the runner ready.
func (r *Runner) Warm(ctx context.Context) error {
	rng := domain.YearRange{Start: domain.DefaultStartYear, End: domain.DefaultStartYear + 2}
	for _, t := range domain.DataTypes() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.generator.NewDataset(t, rng, 0); err != nil {
			return fmt.Errorf("warm %s: %w", t, err)
		}
	}
	r.ready.Store(true)
	r.logger.Info("generator warmed", "data_types", len(domain.DataTypes()))
	return nil
}

// Generate builds a dataset and records generation metrics. No sinks run.
func (r *Runner) Generate(_ context.Context, req Request) (domain.Dataset, error) {
	start := time.Now()
	var gen Generator = r.generator
	if req.Seeded && r.cache != nil {
		gen = r.cache
	}
	ds, err := gen.NewDataset(req.Type, req.Range, req.Seed)
	if err != nil {
		return domain.Dataset{}, err
	}
	r.metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	r.metrics.DatasetsGenerated.WithLabelValues(string(ds.Type)).Inc()
	r.metrics.RecordsGenerated.WithLabelValues(string(ds.Type)).Add(float64(len(ds.Records)))
	r.ready.Store(true)

	r.logger.Debug("dataset generated",
		"data_type", ds.Type,
		"dataset_id", ds.ID,
		"records", len(ds.Records),
		"seed", ds.Seed,
	)
	return ds, nil
}

// Run generates the requested dataset, summarizes it, and hands it to every
// sink. The first sink that fails after its retries aborts the run.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	ds, err := r.Generate(ctx, req)
	if err != nil {
		return Result{}, err
	}
	r.logger.Info("loading dataset", "data_type", ds.Type, "records", len(ds.Records), "range", ds.Range.String(), "seed", ds.Seed)

	res := Result{
		Dataset:  ds,
		Stats:    analysis.Describe(ds.Records),
		Insights: analysis.Summarize(ds),
	}

	for _, s := range r.sinks {
		loc, err := r.load(ctx, s, ds)
		if err != nil {
			return res, fmt.Errorf("%s: %w", s.Name(), err)
		}
		res.Artifacts = append(res.Artifacts, Artifact{Sink: s.Name(), Location: loc})
	}
	return res, nil
}

// load runs one sink with exponential backoff between attempts.
func (r *Runner) load(ctx context.Context, s Sink, ds domain.Dataset) (string, error) {
	backoff := r.initialBackoff
	var lastErr error
	for attempt := 1; attempt <= r.sinkAttempts; attempt++ {
		loc, err := s.Load(ctx, ds)
		if err == nil {
			r.metrics.SinkWrites.WithLabelValues(s.Name(), "success").Inc()
			return loc, nil
		}
		lastErr = err
		r.metrics.SinkWrites.WithLabelValues(s.Name(), "error").Inc()
		r.logger.Warn("sink write failed", "sink", s.Name(), "attempt", attempt, "error", err)

		if attempt == r.sinkAttempts || ctx.Err() != nil {
			break
		}
		if !sleepWithContext(ctx, backoff) {
			break
		}
		backoff = nextBackoff(backoff, r.maxBackoff)
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return "", lastErr
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
