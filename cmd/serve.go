package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/viratco/klord/internal/server"
)

// serveCmd runs the dashboard HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve series and chart geometry over HTTP.",
	Long: `Start an HTTP server exposing the same pipelines as the CLI.

Endpoints:
  GET /healthz
  GET /api/series?mode=&window=
  GET /api/chart?mode=&kind=&series=&width=&height=&window=
  GET /api/records?mode=
  GET /api/status

Flags set the defaults; query parameters override them per request.
Unless --now is given, every request is aggregated against the current time.

Examples:
  # Serve on the default address
  klord serve --api-url https://api.example.com

  # Serve a local export on another port
  klord serve --source file --input leads.json --addr :9090`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		return server.New(cfg, recordSource, cacheManager, logger).Run(ctx, cfg.Addr)
	},
}
