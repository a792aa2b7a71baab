package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Key Constants ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

// --- Key Map ---

// keyMap is the browse-mode bindings. It doubles as the help.KeyMap for the
// help overlay.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	EditValue  key.Binding
	EditKey    key.Binding
	Search     key.Binding
	ToggleMode key.Binding
	Sort       key.Binding
	Undo       key.Binding
	Copy       key.Binding
	Add        key.Binding
	Delete     key.Binding
	Open       key.Binding
	OpenPath   key.Binding
	Save       key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap(vim bool) keyMap {
	up := []string{"up"}
	down := []string{"down"}
	upHelp, downHelp := "↑", "↓"
	if vim {
		up = append(up, "k")
		down = append(down, "j")
		upHelp, downHelp = "↑/k", "↓/j"
	}
	return keyMap{
		Up:         key.NewBinding(key.WithKeys(up...), key.WithHelp(upHelp, "up")),
		Down:       key.NewBinding(key.WithKeys(down...), key.WithHelp(downHelp, "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "first row")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last row")),
		EditValue:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit value")),
		EditKey:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename key")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ToggleMode: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "key/value search")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy value")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add entry")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open file")),
		OpenPath:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open path")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Reload:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.EditValue, k.Search, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.EditValue, k.EditKey, k.Add, k.Delete, k.Copy},
		{k.Search, k.ToggleMode, k.Sort, k.Undo},
		{k.Open, k.OpenPath, k.Save, k.Reload, k.Help, k.Quit},
	}
}
