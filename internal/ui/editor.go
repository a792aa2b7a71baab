package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// cellCursor marks the caret inside an edited cell.
const cellCursor = "█"

// CellEditor is the text buffer behind an in-place cell edit.
type CellEditor struct {
	Active bool
	input  textinput.Model
}

func newCellEditor() CellEditor {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	return CellEditor{input: ti}
}

// Open starts editing with text and the caret at the end.
func (e *CellEditor) Open(text string) {
	e.Active = true
	e.input.SetValue(text)
	e.input.CursorEnd()
	e.input.Focus()
}

func (e *CellEditor) Reset() {
	e.Active = false
	e.input.Blur()
	e.input.SetValue("")
}

func (e CellEditor) Value() string { return e.input.Value() }

// HandleKey feeds a key to the buffer and reports whether the text changed.
func (e *CellEditor) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	before := e.input.Value()
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e.input.Value() != before, cmd
}

// Render draws the buffer with the caret for a cell width columns wide. Text
// before the caret scrolls off the left so the caret stays visible.
func (e CellEditor) Render(width int) string {
	return renderEditCell(e.input.Value(), e.input.Position(), width)
}

func renderEditCell(value string, pos, width int) string {
	runes := []rune(value)
	if pos > len(runes) {
		pos = len(runes)
	}
	if pos < 0 {
		pos = 0
	}
	start := 0
	if width > 0 {
		caret := runewidth.StringWidth(cellCursor)
		for start < pos && runewidth.StringWidth(string(runes[start:pos]))+caret > width {
			start++
		}
	}
	return string(runes[start:pos]) + cellCursor + string(runes[pos:])
}
