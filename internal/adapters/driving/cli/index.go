package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var indexWithDocuments bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the vector index",
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the vector index",
	Long: `Embeds every stored document with the configured embedding model and
replaces the vector index. Queries keep using the previous index until the new
one is in place.`,
	Args: cobra.NoArgs,
	RunE: runIndexRebuild,
}

func init() {
	indexRebuildCmd.Flags().BoolVar(&indexWithDocuments, "with-documents", false,
		"normalize the corpus before rebuilding")
	indexCmd.AddCommand(indexRebuildCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRebuild(cmd *cobra.Command, _ []string) error {
	if err := requireRouter(); err != nil {
		return err
	}

	if indexWithDocuments {
		if err := runCorpusNormalize(cmd, nil); err != nil {
			return err
		}
	}

	start := time.Now()
	meta, err := routerService.RebuildIndex(cmd.Context())
	if err != nil {
		return fmt.Errorf("index rebuild failed: %w", err)
	}

	cmd.Printf("Indexed %d documents with %s (%d dimensions) in %s\n",
		meta.DocumentCount, meta.EmbeddingModel, meta.Dimensions, time.Since(start).Round(time.Millisecond))
	cmd.Printf("Build: %s\n", meta.BuildID)
	return nil
}
