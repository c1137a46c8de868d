package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/venus-data/internal/adapter/csvfile"
	"github.com/couchcryptid/venus-data/internal/analysis"
	"github.com/couchcryptid/venus-data/internal/domain"
	"github.com/couchcryptid/venus-data/internal/observability"
	"github.com/couchcryptid/venus-data/internal/pipeline"
)

// maxYears bounds the work a single request can ask for.
const maxYears = 2000

// DatasetService generates datasets on demand.
type DatasetService interface {
	Generate(ctx context.Context, req pipeline.Request) (domain.Dataset, error)
}

// DatasetAPI serves generated series over HTTP.
type DatasetAPI struct {
	svc      DatasetService
	catalog  *domain.Catalog
	defaults domain.YearRange
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewDatasetAPI creates the dataset handlers. Requests without start/end use defaults.
func NewDatasetAPI(svc DatasetService, catalog *domain.Catalog, defaults domain.YearRange, metrics *observability.Metrics, logger *slog.Logger) *DatasetAPI {
	return &DatasetAPI{svc: svc, catalog: catalog, defaults: defaults, metrics: metrics, logger: logger}
}

func (a *DatasetAPI) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /types", a.handleTypes)
	mux.HandleFunc("GET /datasets/{type}", a.handleDataset)
	mux.HandleFunc("GET /datasets/{type}/summary", a.handleSummary)
}

type typeInfo struct {
	Number      int             `json:"number"`
	Name        domain.DataType `json:"name"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
}

func (a *DatasetAPI) handleTypes(w http.ResponseWriter, _ *http.Request) {
	types := domain.DataTypes()
	out := make([]typeInfo, 0, len(types))
	for _, t := range types {
		p, err := a.catalog.Profile(t)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = append(out, typeInfo{Number: t.MenuNumber(), Name: t, Description: p.Description, Unit: p.Unit})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *DatasetAPI) handleDataset(w http.ResponseWriter, r *http.Request) {
	ds, extended, ok := a.generate(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvfile.FileName(ds.Type, ds.Range)))
	setDatasetHeaders(w, ds)
	w.WriteHeader(http.StatusOK)
	if err := csvfile.Encode(w, ds.Records, extended); err != nil {
		a.logger.Warn("stream dataset failed", "data_type", ds.Type, "error", err)
	}
}

type summaryResponse struct {
	DatasetID   string            `json:"dataset_id"`
	DataType    domain.DataType   `json:"data_type"`
	Seed        uint64            `json:"seed"`
	Range       domain.YearRange  `json:"range"`
	GeneratedAt time.Time         `json:"generated_at"`
	Records     int               `json:"records"`
	Stats       []columnSummary   `json:"stats"`
	Insights    analysis.Insights `json:"insights"`
}

// columnSummary is ColumnStats with NaN rendered as null.
type columnSummary struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	P25    *float64 `json:"p25"`
	P50    *float64 `json:"p50"`
	P75    *float64 `json:"p75"`
	Max    *float64 `json:"max"`
}

func (a *DatasetAPI) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds, _, ok := a.generate(w, r)
	if !ok {
		return
	}

	stats := analysis.Describe(ds.Records)
	cols := make([]columnSummary, len(stats))
	for i, s := range stats {
		cols[i] = columnSummary{
			Column: s.Column,
			Count:  s.Count,
			Mean:   finite(s.Mean),
			Std:    finite(s.Std),
			Min:    finite(s.Min),
			P25:    finite(s.P25),
			P50:    finite(s.P50),
			P75:    finite(s.P75),
			Max:    finite(s.Max),
		}
	}

	setDatasetHeaders(w, ds)
	writeJSON(w, http.StatusOK, summaryResponse{
		DatasetID:   ds.ID,
		DataType:    ds.Type,
		Seed:        ds.Seed,
		Range:       ds.Range,
		GeneratedAt: ds.GeneratedAt,
		Records:     len(ds.Records),
		Stats:       cols,
		Insights:    analysis.Summarize(ds),
	})
}

// generate parses the request, generates the dataset, and writes the error
// response itself when it returns false.
func (a *DatasetAPI) generate(w http.ResponseWriter, r *http.Request) (domain.Dataset, bool, bool) {
	t, err := domain.ParseDataType(r.PathValue("type"))
	if err != nil {
		a.metrics.HTTPDatasetRequests.WithLabelValues("not_found").Inc()
		writeError(w, http.StatusNotFound, err.Error())
		return domain.Dataset{}, false, false
	}

	req, extended, err := a.parseQuery(t, r.URL.Query())
	if err != nil {
		a.metrics.HTTPDatasetRequests.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return domain.Dataset{}, false, false
	}

	ds, err := a.svc.Generate(r.Context(), req)
	switch {
	case errors.Is(err, domain.ErrUnknownDataType):
		a.metrics.HTTPDatasetRequests.WithLabelValues("not_found").Inc()
		writeError(w, http.StatusNotFound, err.Error())
		return domain.Dataset{}, false, false
	case errors.Is(err, domain.ErrInvalidYearRange):
		a.metrics.HTTPDatasetRequests.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return domain.Dataset{}, false, false
	case err != nil:
		a.metrics.HTTPDatasetRequests.WithLabelValues("error").Inc()
		a.logger.Error("generate dataset failed", "data_type", t, "error", err)
		writeError(w, http.StatusInternalServerError, "generation failed")
		return domain.Dataset{}, false, false
	}

	a.metrics.HTTPDatasetRequests.WithLabelValues("success").Inc()
	return ds, extended, true
}

func (a *DatasetAPI) parseQuery(t domain.DataType, q url.Values) (pipeline.Request, bool, error) {
	req := pipeline.Request{Type: t, Range: a.defaults}

	if s := q.Get("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return req, false, fmt.Errorf("invalid seed %q", s)
		}
		req.Seed, req.Seeded = seed, true
	} else {
		req.Seed = domain.DefaultSeed()
	}

	for key, dst := range map[string]*int{"start": &req.Range.Start, "end": &req.Range.End} {
		s := q.Get(key)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return req, false, fmt.Errorf("invalid %s %q", key, s)
		}
		*dst = n
	}
	if err := req.Range.Validate(); err != nil {
		return req, false, err
	}
	if req.Range.Years() > maxYears {
		return req, false, fmt.Errorf("range %s exceeds %d years", req.Range, maxYears)
	}

	var extended bool
	if s := q.Get("extended"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return req, false, fmt.Errorf("invalid extended %q", s)
		}
		extended = b
	}
	return req, extended, nil
}

func setDatasetHeaders(w http.ResponseWriter, ds domain.Dataset) {
	w.Header().Set("X-Venus-Dataset-Id", ds.ID)
	w.Header().Set("X-Venus-Seed", strconv.FormatUint(ds.Seed, 10))
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
