// Package samples provides the numbered sample question list.
package samples

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/tui/styles"
)

// List shows sample questions the user can ask with a number key.
type List struct {
	questions []string
	styles    *styles.Styles
	width     int
}

// NewList creates a list over the given questions.
func NewList(s *styles.Styles, questions []string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &List{
		questions: questions,
		styles:    s,
		width:     80,
	}
}

// Question returns the question at a zero-based index.
func (l *List) Question(i int) (string, bool) {
	if i < 0 || i >= len(l.questions) {
		return "", false
	}
	return l.questions[i], true
}

// Count returns the number of questions.
func (l *List) Count() int {
	return len(l.questions)
}

// View renders the numbered list.
func (l *List) View() string {
	if len(l.questions) == 0 {
		return ""
	}

	lines := make([]string, 0, len(l.questions)+1)
	lines = append(lines, l.styles.Subtitle.Render("Try asking"))

	maxLen := l.width - 6
	if maxLen < 20 {
		maxLen = 20
	}
	for i, q := range l.questions {
		if len(q) > maxLen {
			q = q[:maxLen-3] + "..."
		}
		lines = append(lines,
			l.styles.Title.Render(fmt.Sprintf(" %d ", i+1))+l.styles.Normal.Render(q))
	}
	return strings.Join(lines, "\n")
}

// SetWidth sets the render width.
func (l *List) SetWidth(width int) {
	l.width = width
}
