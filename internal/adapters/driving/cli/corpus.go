package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the document collection",
}

var corpusNormalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Build the document collection from the CSV corpus",
	Long: `Reads the Kisan Call Centre CSV corpus, drops rows without a question or an
answer and replaces the stored document collection. Safe to run repeatedly.

Run 'kcc index rebuild' afterwards so answers use the new documents.`,
	Args: cobra.NoArgs,
	RunE: runCorpusNormalize,
}

func init() {
	corpusCmd.AddCommand(corpusNormalizeCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusNormalize(cmd *cobra.Command, _ []string) error {
	if err := requireRouter(); err != nil {
		return err
	}

	report, err := routerService.RebuildDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("normalize failed: %w", err)
	}

	cmd.Printf("Read %d rows, wrote %d documents", report.RowsRead, report.DocumentsWritten)
	if report.RowsDropped > 0 {
		cmd.Printf(" (dropped %d incomplete rows)", report.RowsDropped)
	}
	cmd.Println()
	return nil
}
