// Package cli provides the command-line interface for the advisory application.
package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stock-advisor/internal/server"
)

// addServeCommands adds the API server command.
func addServeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newServeCmd(app))
}

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the advisory HTTP API server",
		Long: `Run the JSON HTTP API server.

The server exposes trade recording, position and profit/loss queries,
portfolio summaries, and the advisory engine. Recorded trades are
persisted to the local SQLite store. Prometheus metrics are served on
/metrics.

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  advisor serve
  advisor serve --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(addr, app.Portfolio, app.Advisor, app.Store, app.Logger)

			output.Info("Serving advisory API on %s", addr)
			if err := srv.ListenAndServe(ctx); err != nil {
				output.Error("Server error: %v", err)
				return err
			}

			output.Println("Server stopped.")
			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address (default from config)")

	return cmd
}
