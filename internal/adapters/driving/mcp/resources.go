package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/presenter"
	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// uriScheme is the URI scheme for assistant resources.
const uriScheme = "kcc://"

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Readiness of the document collection, vector index and web search chain",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "samples",
		Name:        "samples",
		Description: "Example questions covered by the knowledge base",
		MIMEType:    "application/json",
	}, s.handleSamplesResource)
}

func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	view := presenter.StatusView{Providers: []string{}}
	if s.ports.Status != nil {
		st, err := s.ports.Status.Status(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading status: %w", err)
		}
		view = presenter.NewStatusView(st)
	}
	return jsonResource(req.Params.URI, view)
}

func (s *Server) handleSamplesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, domain.SampleQueries())
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
