package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start a JSON HTTP API in front of the assistant.

Endpoints:
  POST /api/v1/ask                {"question": "...", "threshold": 1.0}
  GET  /api/v1/status
  GET  /api/v1/samples
  POST /api/v1/corpus/normalize
  POST /api/v1/index/rebuild
  GET  /healthz

The server reloads the vector index when another process rebuilds it.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireRouter(); err != nil {
		return err
	}
	if statusService == nil {
		return errors.New("status service not configured")
	}

	ctx := cmd.Context()
	startIndexWatcher(ctx)

	cmd.Printf("HTTP API listening on %s\n", serveAddr)
	if err := httpapi.Serve(ctx, serveAddr, httpapi.NewRouter(routerService, statusService)); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
