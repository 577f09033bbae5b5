package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/presenter"
	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question  string   `json:"question" jsonschema:"the farmer's question"`
	Threshold float64  `json:"threshold,omitempty" jsonschema:"maximum accepted distance between 0.5 and 2.0 (default from settings)"`
	TopK      int      `json:"top_k,omitempty" jsonschema:"number of local passages to retrieve (default from settings)"`
	Providers []string `json:"providers,omitempty" jsonschema:"web search providers to fall back to, in order"`
}

// RebuildInput is the input schema for the rebuild tool.
type RebuildInput struct {
	Target string `json:"target,omitempty" jsonschema:"what to rebuild: documents, index or all (default all)"`
}

// RebuildOutput is the output schema for the rebuild tool.
type RebuildOutput struct {
	DocumentsWritten int    `json:"documents_written,omitempty"`
	RowsDropped      int    `json:"rows_dropped,omitempty"`
	BuildID          string `json:"build_id,omitempty"`
	IndexedCount     int    `json:"indexed_count,omitempty"`
	EmbeddingModel   string `json:"embedding_model,omitempty"`
}

// StatusInput is the empty input of the status tool.
type StatusInput struct{}

// Rebuild targets.
const (
	targetDocuments = "documents"
	targetIndex     = "index"
	targetAll       = "all"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "ask",
		Description: "Answer an agricultural question from the Kisan Call Centre knowledge base, " +
			"falling back to live web search when nothing local is close enough",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status",
		Description: "Report whether the document collection and vector index are ready",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rebuild",
		Description: "Re-normalise the corpus and/or rebuild the vector index",
	}, s.handleRebuild)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, presenter.ResultView, error) {
	result, err := s.ports.Router.Answer(ctx, input.Question, domain.AskOptions{
		Threshold: input.Threshold,
		TopK:      input.TopK,
		Providers: input.Providers,
	})
	if err != nil {
		return nil, presenter.ResultView{}, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: presenter.FormatResult(result, false)}},
	}, presenter.NewResultView(result), nil
}

func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, presenter.StatusView, error) {
	if s.ports.Status == nil {
		return nil, presenter.StatusView{}, errors.New("status service not configured")
	}
	st, err := s.ports.Status.Status(ctx)
	if err != nil {
		return nil, presenter.StatusView{}, err
	}
	return nil, presenter.NewStatusView(st), nil
}

func (s *Server) handleRebuild(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RebuildInput,
) (*mcp.CallToolResult, RebuildOutput, error) {
	target := input.Target
	if target == "" {
		target = targetAll
	}

	var out RebuildOutput
	switch target {
	case targetDocuments, targetIndex, targetAll:
	default:
		return nil, out, fmt.Errorf("%w: target must be documents, index or all", domain.ErrInvalidInput)
	}

	if target != targetIndex {
		report, err := s.ports.Router.RebuildDocuments(ctx)
		if err != nil {
			return nil, out, err
		}
		out.DocumentsWritten = report.DocumentsWritten
		out.RowsDropped = report.RowsDropped
	}

	if target != targetDocuments {
		meta, err := s.ports.Router.RebuildIndex(ctx)
		if err != nil {
			return nil, out, err
		}
		out.BuildID = meta.BuildID
		out.IndexedCount = meta.DocumentCount
		out.EmbeddingModel = meta.EmbeddingModel
	}

	return nil, out, nil
}
