// Package ask provides the question and answer view for the TUI.
package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/presenter"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/tui/components/samples"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/tui/components/sidebar"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driving"
)

// View is the question input, answer pane, samples and readiness sidebar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	samples   *samples.List
	sidebar   *sidebar.Sidebar
	statusbar *status.Bar
	spinner   spinner.Model
	answer    viewport.Model

	router driving.QueryRouter
	status driving.StatusService
	ctx    context.Context

	width       int
	height      int
	ready       bool
	asking      bool
	showContext bool
	question    string
	result      *domain.RouterResult
	err         error
}

// NewView creates the ask view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	router driving.QueryRouter,
	statusService driving.StatusService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQuestionInput(s),
		samples:   samples.NewList(s, domain.SampleQueries()),
		sidebar:   sidebar.New(s),
		statusbar: status.NewBar(s, km),
		spinner:   sp,
		answer:    viewport.New(40, 10),
		router:    router,
		status:    statusService,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor blink and loads the readiness report.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadStatus())
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AskRequested:
		return v, v.startAsk(msg.Question)

	case messages.AskCompleted:
		v.handleAskCompleted(msg)
		return v, nil

	case messages.StatusLoaded:
		v.sidebar.SetStatus(msg.Status, msg.Err)
		return v, nil

	case messages.ErrorOccurred:
		v.asking = false
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case spinner.TickMsg:
		if !v.asking {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if v.asking {
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Ask):
		return v, v.startAsk(v.input.Value())

	case keymap.Matches(keyStr, v.keymap.Clear):
		v.Reset()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.ToggleContext):
		if v.result != nil {
			v.showContext = !v.showContext
			v.renderAnswer()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.ScrollUp), keymap.Matches(keyStr, v.keymap.ScrollDown):
		var cmd tea.Cmd
		v.answer, cmd = v.answer.Update(msg)
		return v, cmd
	}

	if v.input.Value() == "" {
		if idx, ok := keymap.SampleIndex(keyStr); ok {
			if q, ok := v.samples.Question(idx); ok {
				v.input.SetValue(q)
				return v, v.startAsk(q)
			}
		}
		if keymap.Matches(keyStr, v.keymap.Help) {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewHelp}
			}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// startAsk marks the view busy and returns the command that answers.
func (v *View) startAsk(question string) tea.Cmd {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}

	v.asking = true
	v.question = question
	v.err = nil
	v.statusbar.SetState(status.StateAsking)
	v.statusbar.SetMessage("")
	return tea.Batch(v.spinner.Tick, v.performAsk(question))
}

func (v *View) performAsk(question string) tea.Cmd {
	router := v.router
	ctx := v.ctx
	return func() tea.Msg {
		if router == nil {
			return messages.ErrorOccurred{Err: ErrNoRouter}
		}
		result, err := router.Answer(ctx, question, domain.AskOptions{})
		return messages.AskCompleted{Result: result, Err: err}
	}
}

func (v *View) loadStatus() tea.Cmd {
	if v.status == nil {
		return nil
	}
	svc := v.status
	ctx := v.ctx
	return func() tea.Msg {
		st, err := svc.Status(ctx)
		return messages.StatusLoaded{Status: st, Err: err}
	}
}

func (v *View) handleAskCompleted(msg messages.AskCompleted) {
	v.asking = false
	if msg.Err != nil {
		v.err = msg.Err
		v.result = nil
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		v.answer.SetContent("")
		return
	}

	v.err = nil
	v.result = msg.Result
	v.showContext = false
	v.renderAnswer()

	detail := fmt.Sprintf("distance %.2f", msg.Result.BestDistance)
	if msg.Result.Provider != "" {
		detail += " · via " + msg.Result.Provider
	}
	v.statusbar.SetAnswered(msg.Result.Kind, detail)
}

func (v *View) renderAnswer() {
	if v.result == nil {
		v.answer.SetContent("")
		return
	}
	text := presenter.FormatResult(v.result, v.showContext)
	v.answer.SetContent(lipgloss.NewStyle().Width(v.answer.Width).Render(text))
	v.answer.GotoTop()
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	main := make([]string, 0, 8)
	main = append(main, v.styles.Title.Render("Kisan Call Centre Assistant"), "", v.input.View(), "")

	switch {
	case v.asking:
		main = append(main, v.spinner.View()+" "+v.styles.Muted.Render("Looking up: "+v.question))
	case v.err != nil:
		main = append(main, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.result != nil:
		main = append(main, v.styles.ForKind(v.result.Kind).Render(v.question), v.answer.View())
	default:
		main = append(main, v.samples.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(v.mainWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, main...)),
		v.sidebar.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, body, "", v.statusbar.View())
}

func (v *View) mainWidth() int {
	w := v.width - v.sidebar.Width() - 1
	if w < 30 {
		w = 30
	}
	return w
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	mw := v.mainWidth()
	v.input.SetWidth(mw)
	v.samples.SetWidth(mw)
	v.statusbar.SetWidth(width)

	// Reserve rows for title, input, question line and status bar.
	h := height - 10
	if h < 3 {
		h = 3
	}
	v.answer.Width = mw
	v.answer.Height = h
	v.renderAnswer()
}

// Reset clears the question and answer.
func (v *View) Reset() {
	v.input.Reset()
	v.input.Focus()
	v.result = nil
	v.err = nil
	v.question = ""
	v.showContext = false
	v.answer.SetContent("")
	v.statusbar.Clear()
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Asking returns whether a question is in flight.
func (v *View) Asking() bool {
	return v.asking
}

// Result returns the last answer, if any.
func (v *View) Result() *domain.RouterResult {
	return v.result
}

// Question returns the last asked question.
func (v *View) Question() string {
	return v.question
}

// Input returns the current input text.
func (v *View) Input() string {
	return v.input.Value()
}

// ShowContext reports whether retrieved advice is displayed.
func (v *View) ShowContext() bool {
	return v.showContext
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Status returns the readiness report shown in the sidebar.
func (v *View) Status() *domain.Status {
	return v.sidebar.Status()
}
