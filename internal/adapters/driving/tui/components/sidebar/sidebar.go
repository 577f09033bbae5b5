// Package sidebar renders the readiness panel beside the answer.
package sidebar

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
)

// DefaultWidth is the panel width including its border.
const DefaultWidth = 30

// Sidebar shows whether documents and the index are ready.
type Sidebar struct {
	styles *styles.Styles
	status *domain.Status
	err    error
	width  int
}

// New creates an empty sidebar.
func New(s *styles.Styles) *Sidebar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Sidebar{styles: s, width: DefaultWidth}
}

// SetStatus replaces the displayed report.
func (b *Sidebar) SetStatus(st *domain.Status, err error) {
	b.status = st
	b.err = err
}

// Status returns the displayed report.
func (b *Sidebar) Status() *domain.Status {
	return b.status
}

// Width returns the panel width.
func (b *Sidebar) Width() int {
	return b.width
}

// View renders the panel.
func (b *Sidebar) View() string {
	lines := []string{b.styles.Subtitle.Render("Knowledge base")}

	switch {
	case b.err != nil:
		lines = append(lines, b.styles.Error.Render("status unavailable"))
	case b.status == nil:
		lines = append(lines, b.styles.Muted.Render("loading..."))
	default:
		lines = append(lines, b.statusLines()...)
	}

	return b.styles.Sidebar.Width(b.width - 2).Render(strings.Join(lines, "\n"))
}

func (b *Sidebar) statusLines() []string {
	st := b.status
	lines := make([]string, 0, 8)

	if st.DocumentsReady {
		lines = append(lines, b.styles.Success.Render(fmt.Sprintf("✓ %d documents", st.DocumentCount)))
	} else {
		lines = append(lines, b.styles.Warning.Render("✗ documents not built"))
	}

	switch {
	case !st.IndexReady || st.Index == nil:
		lines = append(lines, b.styles.Warning.Render("✗ index not built"))
	case !st.ModelMatches:
		lines = append(lines, b.styles.Error.Render("✗ index model mismatch"))
	default:
		lines = append(lines, b.styles.Success.Render(fmt.Sprintf("✓ %d vectors", st.Index.DocumentCount)))
	}

	model := st.EmbeddingModel
	if model == "" {
		model = "unavailable"
	}
	lines = append(lines, "", b.styles.Muted.Render("Embedding"), b.styles.Normal.Render(model))

	lines = append(lines, "", b.styles.Muted.Render("Web fallback"))
	if len(st.Providers) == 0 {
		lines = append(lines, b.styles.Warning.Render("none configured"))
	} else {
		lines = append(lines, b.styles.Normal.Render(strings.Join(st.Providers, " > ")))
	}
	return lines
}
