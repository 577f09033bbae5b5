package mcp

import (
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Router answers questions and runs rebuilds.
	Router driving.QueryRouter

	// Status reports readiness. Optional.
	Status driving.StatusService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Router == nil {
		return ErrMissingRouter
	}
	return nil
}
