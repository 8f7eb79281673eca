package http

import (
	"context"

	"predstats/internal/report"
	"predstats/internal/store"
)

// ReportService builds summary reports. Implemented by report.Builder.
type ReportService interface {
	Build(ctx context.Context, req report.Request) (*report.Summary, error)
}

// RunStore persists and retrieves report runs. Implemented by store.Store.
type RunStore interface {
	SaveRun(ctx context.Context, run store.Run) error
	GetRun(ctx context.Context, id string) (*store.Run, error)
	ListRuns(ctx context.Context, limit int) ([]store.Run, error)
}
