// Package driving defines interfaces that external actors (CLI, TUI, MCP,
// HTTP) use to interact with core services. These are the "driving" ports
// in hexagonal architecture terminology - they drive the application.
//
// QueryRouter is the only port front-ends need for answering questions;
// the others expose its stages for diagnostics and maintenance.
//
// Implementations of these interfaces live in internal/core/services.
package driving
