package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestRenderEditCellPlacesCaret(t *testing.T) {
	assert.Equal(t, "ab█c", renderEditCell("abc", 2, 0))
	assert.Equal(t, "abc█", renderEditCell("abc", 3, 0))
	assert.Equal(t, "█abc", renderEditCell("abc", 0, 0))
	assert.Equal(t, "abc█", renderEditCell("abc", 10, 0))
}

func TestRenderEditCellScrollsToCaret(t *testing.T) {
	// Five columns leave room for four runes before the caret.
	assert.Equal(t, "efgh█", renderEditCell("abcdefgh", 8, 5))
	assert.Equal(t, "ab█cdefgh", renderEditCell("abcdefgh", 2, 5))
}

func TestCellEditorTyping(t *testing.T) {
	e := newCellEditor()
	e.Open("12")
	assert.True(t, e.Active)

	changed, _ := e.HandleKey(runeKey('3'))
	assert.True(t, changed)
	assert.Equal(t, "123", e.Value())

	changed, _ = e.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, changed)
	assert.Equal(t, "12", e.Value())

	changed, _ = e.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed)
	assert.Equal(t, "1█2", e.Render(0))

	e.Reset()
	assert.False(t, e.Active)
	assert.Equal(t, "", e.Value())
}
