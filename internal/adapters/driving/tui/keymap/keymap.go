// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// maxSamples is the number of samples reachable with a digit key.
const maxSamples = 9

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Ask submits the question.
	Ask key.Binding

	// Clear resets the input and the answer.
	Clear key.Binding

	// ScrollUp and ScrollDown move through a long answer.
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// ToggleContext shows or hides the retrieved advice.
	ToggleContext key.Binding

	// Sample asks a sample question by number while the input is empty.
	Sample key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Ask: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ask"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "pgup"),
			key.WithHelp("↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "pgdown"),
			key.WithHelp("↓", "scroll down"),
		),
		ToggleContext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "context"),
		),
		Sample: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "sample"),
		),
	}
}

// ShortHelp returns the hints shown while typing.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Ask, k.Sample, k.Help, k.Quit}
}

// AnswerHelp returns the hints shown while an answer is displayed.
func (k *KeyMap) AnswerHelp() []key.Binding {
	return []key.Binding{k.ScrollDown, k.ToggleContext, k.Clear, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Ask, k.Sample, k.Clear},
		{k.ScrollUp, k.ScrollDown, k.ToggleContext},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}

// SampleIndex returns the zero-based sample index for a digit key.
func SampleIndex(keyStr string) (int, bool) {
	if len(keyStr) != 1 || keyStr[0] < '1' || keyStr[0] > '0'+maxSamples {
		return 0, false
	}
	return int(keyStr[0] - '1'), true
}
