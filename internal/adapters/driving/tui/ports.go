// Package tui provides an interactive terminal interface for asking the
// assistant questions. It is a driving adapter over the core ports.
package tui

import (
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Router answers questions. Required.
	Router driving.QueryRouter

	// Status feeds the readiness sidebar. Optional.
	Status driving.StatusService
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Router == nil {
		return ErrMissingRouter
	}
	return nil
}
