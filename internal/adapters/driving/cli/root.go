// Package cli provides the kcc command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// skipServicesAnnotation marks commands that run without core services.
const skipServicesAnnotation = "kcc.skip-services"

var version = "dev"

var (
	verbose   bool
	configDir string
)

var (
	routerService   driving.QueryRouter
	statusService   driving.StatusService
	settingsService driving.SettingsService
	indexReloader   driving.Reloader
	indexPath       string
	startupWarnings []string
)

// Services holds the core services the commands drive.
type Services struct {
	Router   driving.QueryRouter
	Status   driving.StatusService
	Settings driving.SettingsService

	// Reloader and IndexPath enable index watching in long-running commands.
	Reloader  driving.Reloader
	IndexPath string

	// Warnings are printed once before a command that needs AI services runs.
	Warnings []string
}

// Bootstrap builds the services from the configuration directory.
// The returned cleanup func is called after the command finishes.
type Bootstrap func(ctx context.Context, configDir string) (*Services, func(), error)

var (
	bootstrap Bootstrap
	cleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "kcc",
	Short: "Answer farmers' questions from the Kisan Call Centre knowledge base",
	Long: `kcc answers agricultural questions from a local knowledge base built from
Kisan Call Centre transcripts. When nothing local is close enough it falls back
to live web search and says so.

Get started:
  kcc corpus normalize    # build the document collection from the CSV corpus
  kcc index rebuild       # embed the documents into the vector index
  kcc ask "how to control aphids in mustard"`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		runCleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.kcc)")
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects already built services.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	routerService = s.Router
	statusService = s.Status
	settingsService = s.Settings
	indexReloader = s.Reloader
	indexPath = s.IndexPath
	startupWarnings = s.Warnings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer runCleanup()
	return rootCmd.ExecuteContext(ctx)
}

func runCleanup() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

func setupServices(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if cmd.Annotations[skipServicesAnnotation] == "true" || bootstrap == nil {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	services, done, err := bootstrap(ctx, configDir)
	if err != nil {
		return fmt.Errorf("starting kcc: %w", err)
	}
	SetServices(services)
	cleanup = done

	for _, w := range startupWarnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	return nil
}

func requireRouter() error {
	if routerService == nil {
		return errors.New("query router not configured")
	}
	return nil
}
