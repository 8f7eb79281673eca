// Command report builds a one-shot summary report: fetch the source CSV,
// filter and derive, aggregate each numeric column with mean, median and
// standard deviation, then write the result as CSV, JSON and XLSX files and
// record the run in the local store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"predstats/internal/config"
	"predstats/internal/fetch"
	"predstats/internal/infrastructure"
	"predstats/internal/report"
	"predstats/internal/store"
)

func main() {
	source := flag.String("source", "", "CSV source URL (defaults to fetch.source_url from config)")
	team := flag.String("team", "", "filter rows to this team")
	season := flag.Int("season", 0, "filter rows to this season")
	outDir := flag.String("out", "", "output directory (defaults to report.output_dir from config)")
	formats := flag.String("formats", "csv,json,xlsx", "comma-separated output formats")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	if *source == "" {
		*source = cfg.Fetch.SourceURL
	}
	if *source == "" {
		logger.Error("no source URL: pass -source or set fetch.source_url")
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = cfg.Report.OutputDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Fetch.Timeout+time.Minute)
	defer cancel()

	if err := run(ctx, cfg, logger, *source, *team, *season, *outDir, strings.Split(*formats, ",")); err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, source, team string, season int, outDir string, formats []string) error {
	fetcher := fetch.NewClient(cfg.Fetch, logger)
	builder := report.NewBuilder(fetcher, cfg.Report, logger)

	runStore, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer runStore.Close()

	req := report.Request{Source: source, Team: team, Season: season}
	summary, err := builder.Build(ctx, req)
	if err != nil {
		saveErr := runStore.SaveRun(ctx, store.Run{
			ID:        fmt.Sprintf("failed-%d", time.Now().UnixNano()),
			Source:    source,
			Team:      team,
			Season:    season,
			Status:    store.StatusFailed,
			Error:     err.Error(),
			CreatedAt: time.Now().UTC(),
		})
		if saveErr != nil {
			logger.Error("failed to record failed run", "error", saveErr)
		}
		return fmt.Errorf("build report: %w", err)
	}

	if err := writeOutputs(summary, outDir, formats); err != nil {
		return err
	}

	if err := runStore.SaveRun(ctx, store.Run{
		ID:        summary.ID,
		Source:    summary.Source,
		Team:      summary.Team,
		Season:    summary.Season,
		Status:    store.StatusCompleted,
		Summary:   summary,
		CreatedAt: summary.GeneratedAt,
	}); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	logger.Info("report complete",
		slog.String("report_id", summary.ID),
		slog.Int("rows", summary.Rows),
		slog.Int("columns", len(summary.Columns)),
		slog.String("output_dir", outDir))
	return nil
}

func writeOutputs(summary *report.Summary, outDir string, formats []string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	base := filepath.Join(outDir, "summary-"+summary.ID)
	for _, format := range formats {
		switch strings.TrimSpace(strings.ToLower(format)) {
		case "csv":
			f, err := os.Create(base + ".csv")
			if err != nil {
				return fmt.Errorf("create csv: %w", err)
			}
			err = summary.WriteCSV(f, report.CSVOptions{BOMPrefix: true})
			f.Close()
			if err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		case "json":
			f, err := os.Create(base + ".json")
			if err != nil {
				return fmt.Errorf("create json: %w", err)
			}
			err = summary.WriteJSON(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("write json: %w", err)
			}
		case "xlsx":
			if err := summary.WriteXLSX(base + ".xlsx"); err != nil {
				return fmt.Errorf("write xlsx: %w", err)
			}
		case "":
		default:
			return fmt.Errorf("unknown format %q", format)
		}
	}
	return nil
}
