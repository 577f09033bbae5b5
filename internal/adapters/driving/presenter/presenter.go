// Package presenter turns router results into the text and JSON shapes
// shared by the CLI, HTTP and MCP front-ends.
package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// User-facing notes attached to results.
const (
	// WebDisclaimer accompanies every live web result.
	WebDisclaimer = "These results come from a live web search and have not been verified " +
		"by agricultural experts. Consult your local Krishi Vigyan Kendra before acting on them."

	// OllamaHint accompanies a local answer that could not be generated.
	OllamaHint = "Make sure Ollama is running with the configured model (e.g. 'ollama serve' and 'ollama pull gemma:2b')."
)

// ResultView is the JSON shape of a RouterResult.
type ResultView struct {
	Kind             string                    `json:"kind"`
	Query            string                    `json:"query"`
	BestDistance     float64                   `json:"best_distance"`
	Quality          string                    `json:"quality"`
	LocalUnavailable bool                      `json:"local_unavailable,omitempty"`
	Answer           string                    `json:"answer,omitempty"`
	Context          string                    `json:"context,omitempty"`
	Error            string                    `json:"error,omitempty"`
	Hint             string                    `json:"hint,omitempty"`
	Provider         string                    `json:"provider,omitempty"`
	Items            []domain.SearchResultItem `json:"items,omitempty"`
	Reason           string                    `json:"reason,omitempty"`
	Disclaimer       string                    `json:"disclaimer,omitempty"`
}

// NewResultView converts a router result.
func NewResultView(r *domain.RouterResult) ResultView {
	v := ResultView{
		Kind:             r.Kind.String(),
		Query:            r.Query,
		BestDistance:     r.BestDistance,
		Quality:          string(r.Quality),
		LocalUnavailable: r.LocalUnavailable,
	}

	switch r.Kind {
	case domain.KindLocalAnswer:
		v.Answer = r.AnswerText
		v.Context = r.ContextText
	case domain.KindLocalRetrievalFailed:
		v.Context = r.ContextText
		if r.Err != nil {
			v.Error = r.Err.Error()
		}
		v.Hint = OllamaHint
	case domain.KindFallbackAnswer:
		v.Provider = r.Provider
		v.Items = r.Items
		v.Disclaimer = WebDisclaimer
	case domain.KindFallbackUnavailable:
		v.Reason = r.Reason
	}
	return v
}

// FormatResult renders a result as plain text.
// When showContext is false the retrieved advice is omitted from local answers.
func FormatResult(r *domain.RouterResult, showContext bool) string {
	var b strings.Builder

	switch r.Kind {
	case domain.KindLocalAnswer:
		fmt.Fprintf(&b, "Answer (local knowledge base, %s match, distance %.2f)\n\n", r.Quality, r.BestDistance)
		b.WriteString(r.AnswerText)
		b.WriteString("\n")
		if showContext {
			b.WriteString("\nRetrieved advice:\n")
			b.WriteString(r.ContextText)
			b.WriteString("\n")
		}

	case domain.KindLocalRetrievalFailed:
		fmt.Fprintf(&b, "Relevant advice was found (distance %.2f) but an answer could not be generated.\n", r.BestDistance)
		if r.Err != nil {
			fmt.Fprintf(&b, "Error: %v\n", r.Err)
		}
		b.WriteString(OllamaHint)
		b.WriteString("\n\nRetrieved advice:\n")
		b.WriteString(r.ContextText)
		b.WriteString("\n")

	case domain.KindFallbackAnswer:
		writeLocalMiss(&b, r)
		fmt.Fprintf(&b, "Live internet search results (via %s):\n\n", r.Provider)
		b.WriteString(FormatItems(r.Items))
		b.WriteString("\n\n")
		b.WriteString(WebDisclaimer)
		b.WriteString("\n")

	case domain.KindFallbackUnavailable:
		writeLocalMiss(&b, r)
		b.WriteString(r.Reason)
		b.WriteString("\n")
	}

	return b.String()
}

// writeLocalMiss explains why a fallback result has no local answer.
func writeLocalMiss(b *strings.Builder, r *domain.RouterResult) {
	if r.LocalUnavailable {
		b.WriteString("The local knowledge base is unavailable because the embedding service could not be reached.\n")
		return
	}
	fmt.Fprintf(b, "No close match in the local knowledge base (best distance %.2f).\n", r.BestDistance)
}

// FormatItems renders web results as numbered blocks.
func FormatItems(items []domain.SearchResultItem) string {
	blocks := make([]string, 0, len(items))
	for i, item := range items {
		block := fmt.Sprintf("Result %d: %s\n%s", i+1, item.Title, item.Snippet)
		if item.SourceURL != "" {
			block += "\nSource: " + item.SourceURL
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// StatusView is the JSON shape of a Status.
type StatusView struct {
	DocumentsReady bool     `json:"documents_ready"`
	DocumentCount  int      `json:"document_count"`
	IndexReady     bool     `json:"index_ready"`
	BuildID        string   `json:"build_id,omitempty"`
	IndexModel     string   `json:"index_model,omitempty"`
	Dimensions     int      `json:"dimensions,omitempty"`
	IndexedCount   int      `json:"indexed_count,omitempty"`
	BuiltAt        string   `json:"built_at,omitempty"`
	EmbeddingModel string   `json:"embedding_model"`
	ModelMatches   bool     `json:"model_matches"`
	Providers      []string `json:"providers"`
}

// NewStatusView converts a status report.
func NewStatusView(s *domain.Status) StatusView {
	v := StatusView{
		DocumentsReady: s.DocumentsReady,
		DocumentCount:  s.DocumentCount,
		IndexReady:     s.IndexReady,
		EmbeddingModel: s.EmbeddingModel,
		ModelMatches:   s.ModelMatches,
		Providers:      s.Providers,
	}
	if v.Providers == nil {
		v.Providers = []string{}
	}
	if s.Index != nil {
		v.BuildID = s.Index.BuildID
		v.IndexModel = s.Index.EmbeddingModel
		v.Dimensions = s.Index.Dimensions
		v.IndexedCount = s.Index.DocumentCount
		v.BuiltAt = s.Index.BuiltAt.UTC().Format(time.RFC3339)
	}
	return v
}

// FormatStatus renders a status report as plain text.
func FormatStatus(s *domain.Status) string {
	var b strings.Builder

	b.WriteString("Documents: ")
	if s.DocumentsReady {
		fmt.Fprintf(&b, "%d ready\n", s.DocumentCount)
	} else {
		b.WriteString("not built (run 'kcc corpus normalize')\n")
	}

	b.WriteString("Index:     ")
	if s.IndexReady && s.Index != nil {
		fmt.Fprintf(&b, "%d vectors, %s (%d dims), built %s\n",
			s.Index.DocumentCount, s.Index.EmbeddingModel, s.Index.Dimensions,
			s.Index.BuiltAt.Local().Format(time.DateTime))
	} else {
		b.WriteString("not built (run 'kcc index rebuild')\n")
	}

	fmt.Fprintf(&b, "Embedding: %s\n", valueOr(s.EmbeddingModel, "(unavailable)"))
	if s.IndexReady && !s.ModelMatches {
		b.WriteString("Warning:   the index was built with a different embedding model; rebuild it\n")
	}

	fmt.Fprintf(&b, "Web search: %s\n", valueOr(strings.Join(s.Providers, " > "), "(none configured)"))
	return b.String()
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
