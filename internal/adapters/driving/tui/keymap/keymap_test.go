package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Help.Keys(), "?")
	assert.Contains(t, km.Ask.Keys(), "enter")
	assert.Contains(t, km.Clear.Keys(), "esc")
	assert.Contains(t, km.ToggleContext.Keys(), "tab")
	assert.Len(t, km.Sample.Keys(), 9)
}

func TestKeyMap_QuitDoesNotStealTyping(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("q", km.Quit))
	assert.False(t, Matches("k", km.ScrollUp))
	assert.False(t, Matches("j", km.ScrollDown))
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 4)
	assert.Len(t, km.AnswerHelp(), 4)
	assert.Len(t, km.FullHelp(), 3)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("enter", km.Ask))
	assert.True(t, Matches("pgdown", km.ScrollDown))
	assert.False(t, Matches("x", km.Ask))
}

func TestSampleIndex(t *testing.T) {
	tests := []struct {
		key   string
		index int
		ok    bool
	}{
		{"1", 0, true},
		{"9", 8, true},
		{"0", 0, false},
		{"a", 0, false},
		{"12", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			index, ok := SampleIndex(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.index, index)
		})
	}
}
