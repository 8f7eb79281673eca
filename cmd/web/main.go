// Command web runs the predstats HTTP service.
package main

import (
	"log/slog"
	"os"

	"predstats/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
