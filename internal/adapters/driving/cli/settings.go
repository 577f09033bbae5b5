package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// settingsInput is where interactive prompts read from.
var settingsInput io.Reader = os.Stdin

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure retrieval policy, AI services and web search providers.

Environment variables SERPAPI_API_KEY, GOOGLE_API_KEY, GOOGLE_CSE_ID and
OLLAMA_HOST override stored values for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsThresholdCmd = &cobra.Command{
	Use:   "threshold <value>",
	Short: "Set the default similarity threshold",
	Long: `Set the largest accepted distance between a question and the best local
passage. Must be between 0.5 and 2.0. Lower is stricter.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsThreshold,
}

var settingsTopKCmd = &cobra.Command{
	Use:   "topk <n>",
	Short: "Set the number of passages retrieved per question",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsTopK,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long: `Configure the embedding provider used to build and query the vector index.

Changing the model makes the existing index unusable until 'kcc index rebuild' runs.`,
	RunE: runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the answer generation model",
	Long:  `Configure the local Ollama model that phrases answers from retrieved passages.`,
	RunE:  runSettingsLLM,
}

var settingsProviderKeyCmd = &cobra.Command{
	Use:   "provider-key <serpapi|google>",
	Short: "Store a web search provider credential",
	Long: `Store the API key of a web search provider. The key is read without echo.

For google enter "<api-key>:<search-engine-id>".`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsProviderKey,
}

var settingsProvidersCmd = &cobra.Command{
	Use:   "providers <name>...",
	Short: "Set the web search provider order",
	Long: `Set the order in which web search providers are tried when the local
knowledge base has no close enough answer.

Example:
  kcc settings providers serpapi duckduckgo`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSettingsProviders,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsThresholdCmd)
	settingsCmd.AddCommand(settingsTopKCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsProviderKeyCmd)
	settingsCmd.AddCommand(settingsProvidersCmd)
	rootCmd.AddCommand(settingsCmd)
}

func requireSettings() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Threshold: %.2f\n", settings.Retrieval.Threshold)
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Printf("  Filter passages: %t\n", settings.Retrieval.FilterPassages)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	cmd.Printf("  Batch size: %d\n", settings.Embedding.BatchSize)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", keyOrUnset(settings.Embedding.APIKey))
	}
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	cmd.Printf("  Max concurrent: %d\n", settings.LLM.MaxConcurrent)
	cmd.Println()

	cmd.Println("[Web Search]")
	order := make([]string, 0, len(settings.WebSearch.Providers))
	for _, p := range settings.WebSearch.Providers {
		order = append(order, p.String())
	}
	cmd.Printf("  Order: %s\n", strings.Join(order, " > "))
	cmd.Printf("  SerpAPI key: %s\n", keyOrUnset(settings.WebSearch.SerpAPIKey))
	cmd.Printf("  Google key: %s\n", keyOrUnset(settings.WebSearch.GoogleAPIKey))
	if settings.WebSearch.GoogleCX != "" {
		cmd.Printf("  Google cx: %s\n", settings.WebSearch.GoogleCX)
	}
	if settings.WebSearch.RedisAddr != "" {
		cmd.Printf("  Cache: redis %s\n", settings.WebSearch.RedisAddr)
	}
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	cmd.Printf("  Corpus: %s\n", settings.Storage.CorpusPath)
	if settings.Storage.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Storage.DataDir)
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'kcc settings embedding' or 'kcc settings llm' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsThreshold(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	threshold, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: threshold must be a number", domain.ErrInvalidInput)
	}
	if err := settingsService.SetThreshold(threshold); err != nil {
		return fmt.Errorf("failed to set threshold: %w", err)
	}

	cmd.Printf("Threshold set to: %.2f\n", threshold)
	return nil
}

func runSettingsTopK(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	topK, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: top k must be a whole number", domain.ErrInvalidInput)
	}
	if err := settingsService.SetTopK(topK); err != nil {
		return fmt.Errorf("failed to set top k: %w", err)
	}

	cmd.Printf("Top K set to: %d\n", topK)
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	reader := bufio.NewReader(settingsInput)

	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selected := providers[idx-1]

	defaultModel := domain.DefaultEmbeddingModels()[selected]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selected.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readSecret(reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetEmbeddingProvider(selected, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Embedding provider configured: %s (%s)\n", selected.Description(), model)
	cmd.Println("Run 'kcc index rebuild' if the model changed.")
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(settingsInput)
	cmd.Printf("Enter Ollama model name [%s]: ", settings.LLM.Model)
	model := readLine(reader)
	if model == "" {
		model = settings.LLM.Model
	}

	if err := settingsService.SetLLMModel(model); err != nil {
		return fmt.Errorf("failed to configure LLM: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM configured: %s\n", model)
	return nil
}

func runSettingsProviderKey(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	provider := domain.SearchProviderName(strings.ToLower(args[0]))
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown search provider: %s", domain.ErrInvalidInput, args[0])
	}

	if provider == domain.ProviderGoogle {
		cmd.Print("Enter API key and search engine id as <api-key>:<cx>: ")
	} else {
		cmd.Printf("Enter %s API key: ", provider)
	}
	key := readSecret(bufio.NewReader(settingsInput))
	cmd.Println()

	if err := settingsService.SetProviderKey(provider, key); err != nil {
		return fmt.Errorf("failed to store %s key: %w", provider, err)
	}

	cmd.Printf("Stored %s credential: %s\n", provider, maskAPIKey(key))
	return nil
}

func runSettingsProviders(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	order := make([]domain.SearchProviderName, 0, len(args))
	for _, arg := range args {
		for _, name := range strings.Split(arg, ",") {
			if name = strings.TrimSpace(name); name != "" {
				order = append(order, domain.SearchProviderName(strings.ToLower(name)))
			}
		}
	}

	if err := settingsService.SetProviderOrder(order); err != nil {
		return fmt.Errorf("failed to set provider order: %w", err)
	}

	names := make([]string, len(order))
	for i, p := range order {
		names[i] = p.String()
	}
	cmd.Printf("Provider order set to: %s\n", strings.Join(names, " > "))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readSecret reads without echo when stdin is a terminal.
func readSecret(reader *bufio.Reader) string {
	if f, ok := settingsInput.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func keyOrUnset(key string) string {
	if key == "" {
		return "(not set)"
	}
	return maskAPIKey(key)
}
