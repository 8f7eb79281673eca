// Package report turns a remote prediction CSV into per-column summary
// statistics and renders the result as CSV, JSON or XLSX documents.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"predstats/internal/config"
	"predstats/internal/dataset"
	"predstats/internal/stats"
)

// Sentinel errors callers can test with errors.Is to tell an upstream outage
// apart from a request that filtered every row away.
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrNoMatchingRows    = errors.New("no rows match the requested filters")
)

// Fetcher is the subset of the fetch client the builder needs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Builder orchestrates the report workflow: fetch, parse, filter, derive,
// project to numeric columns, aggregate with each requested reducer.
type Builder struct {
	fetcher        Fetcher
	logger         *slog.Logger
	excludeColumns []string
}

// NewBuilder creates a report builder.
func NewBuilder(fetcher Fetcher, cfg config.ReportConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		fetcher:        fetcher,
		logger:         logger.With(slog.String("component", "report_builder")),
		excludeColumns: cfg.ExcludeColumns,
	}
}

// Request describes one report to build.
type Request struct {
	Source   string   `json:"source" validate:"required,url"`
	Team     string   `json:"team,omitempty"`
	Season   int      `json:"season,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Reducers []string `json:"reducers,omitempty" validate:"omitempty,dive,oneof=mean median stddev"`
}

// reducers returns the requested reducer names, defaulting to all shipped
// reducers in presentation order.
func (r Request) reducers() []string {
	if len(r.Reducers) == 0 {
		return stats.ReducerNames()
	}
	return r.Reducers
}

// ReducerResult pairs a reducer's wire name with its per-column results.
type ReducerResult struct {
	Reducer string        `json:"reducer"`
	Result  *stats.Result `json:"result"`
}

// Summary is the finished report document.
type Summary struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Team        string          `json:"team,omitempty"`
	Season      int             `json:"season,omitempty"`
	Rows        int             `json:"rows"`
	Columns     []string        `json:"columns"`
	Results     []ReducerResult `json:"results"`
	GeneratedAt time.Time       `json:"generated_at"`
	Duration    time.Duration   `json:"duration_ns"`
}

// Build fetches the request's source and produces its summary.
func (b *Builder) Build(ctx context.Context, req Request) (*Summary, error) {
	body, err := b.fetcher.Fetch(ctx, req.Source)
	if err != nil {
		return nil, fmt.Errorf("fetch source: %w: %v", ErrSourceUnavailable, err)
	}

	frame, err := dataset.ReadCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	return b.BuildFromFrame(ctx, frame, req)
}

// BuildFromFrame produces a summary from an already-parsed frame. The frame
// is filtered to the requested team and season, a margin column is derived
// when the score columns are present, and every numeric column outside the
// configured exclusions is aggregated with each requested reducer.
func (b *Builder) BuildFromFrame(ctx context.Context, frame *dataset.Frame, req Request) (*Summary, error) {
	start := time.Now()

	b.logger.InfoContext(ctx, "building report",
		slog.String("source", req.Source),
		slog.String("team", req.Team),
		slog.Int("season", req.Season),
		slog.Int("input_rows", frame.NumRows()))

	frame, err := b.shapeFrame(frame, req)
	if err != nil {
		return nil, err
	}

	ds, err := frame.NumericDataset(b.excludeColumns...)
	if err != nil {
		return nil, fmt.Errorf("project numeric columns: %w", err)
	}

	results := make([]ReducerResult, 0, len(req.reducers()))
	for _, name := range req.reducers() {
		reduce, ok := stats.ReducerByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown reducer %q", name)
		}
		result, err := stats.AggregateMap(ds, reduce)
		if err != nil {
			return nil, fmt.Errorf("aggregate with %s: %w", name, err)
		}
		results = append(results, ReducerResult{Reducer: name, Result: result})
	}

	summary := &Summary{
		ID:          uuid.New().String(),
		Source:      req.Source,
		Team:        req.Team,
		Season:      req.Season,
		Rows:        ds.NumRows(),
		Columns:     ds.Names(),
		Results:     results,
		GeneratedAt: time.Now().UTC(),
		Duration:    time.Since(start),
	}

	reportsGenerated.Inc()
	reportDuration.Observe(summary.Duration.Seconds())

	b.logger.InfoContext(ctx, "report built",
		slog.String("report_id", summary.ID),
		slog.Int("rows", summary.Rows),
		slog.Int("columns", len(summary.Columns)),
		slog.Duration("duration", summary.Duration))

	return summary, nil
}

// shapeFrame applies the row filters and the derived margin column.
func (b *Builder) shapeFrame(frame *dataset.Frame, req Request) (*dataset.Frame, error) {
	var err error

	if req.Team != "" {
		frame, err = frame.FilterEq("team", req.Team)
		if err != nil {
			return nil, fmt.Errorf("filter team: %w", err)
		}
	}
	if req.Season != 0 {
		frame, err = frame.FilterEq("season", req.Season)
		if err != nil {
			return nil, fmt.Errorf("filter season: %w", err)
		}
	}
	if frame.NumRows() == 0 {
		return nil, fmt.Errorf("%w: team=%q season=%d", ErrNoMatchingRows, req.Team, req.Season)
	}

	if frame.HasColumn("points_for") && frame.HasColumn("points_against") && !frame.HasColumn("margin") {
		frame, err = frame.Derive("margin", []string{"points_for", "points_against"}, func(v []float64) float64 {
			return v[0] - v[1]
		})
		if err != nil {
			return nil, fmt.Errorf("derive margin: %w", err)
		}
	}

	return frame, nil
}
