package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/presenter"
	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

var (
	askThreshold   float64
	askTopK        int
	askProviders   []string
	askJSON        bool
	askShowContext bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer an agricultural question",
	Long: `Answers a question from the local knowledge base when a close enough passage
exists, otherwise falls back to live web search.

The threshold is the largest accepted distance between the question and the
best passage. Lower values are stricter.

Examples:
  kcc ask how to control aphids in mustard
  kcc ask --threshold 0.8 "best time to sow wheat in punjab"
  kcc ask --provider duckduckgo "locust attack"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Float64VarP(&askThreshold, "threshold", "t", 0, "maximum accepted distance (0.5-2.0, default from settings)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "passages to retrieve (default from settings)")
	askCmd.Flags().StringSliceVarP(&askProviders, "provider", "p", nil, "web search providers to try, in order")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved context")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := requireRouter(); err != nil {
		return err
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	result, err := routerService.Answer(cmd.Context(), question, domain.AskOptions{
		Threshold: askThreshold,
		TopK:      askTopK,
		Providers: askProviders,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(presenter.NewResultView(result), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(presenter.FormatResult(result, askShowContext))
	return nil
}
