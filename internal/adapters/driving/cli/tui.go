package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/tui"
	"github.com/custodia-labs/kcc-assistant/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface for asking questions.

Controls:
  Enter    - Ask
  1-9      - Ask a sample question (when the input is empty)
  ↑/k, ↓/j - Scroll the answer
  Tab      - Toggle retrieved context
  Esc      - Clear
  ?        - Toggle help
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(&tui.Ports{
		Router: routerService,
		Status: statusService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Log lines would corrupt the alternate screen.
	prev := logger.Writer()
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(prev)

	ctx := cmd.Context()
	app.WithContext(ctx)
	startIndexWatcher(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
