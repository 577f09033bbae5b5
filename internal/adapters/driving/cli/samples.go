package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

var samplesCmd = &cobra.Command{
	Use:         "samples",
	Short:       "List example questions",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipServicesAnnotation: "true"},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println("Try asking:")
		for i, q := range domain.SampleQueries() {
			cmd.Printf("  %d. %s\n", i+1, q)
		}
	},
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}
