package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"

	"github.com/gravitrone/jsonedit/internal/config"
	"github.com/gravitrone/jsonedit/internal/document"
	"github.com/gravitrone/jsonedit/internal/ui/components"
	"github.com/gravitrone/jsonedit/internal/workspace"
)

// --- Modes ---

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeEdit
	modeAddKey
	modeAddValue
	modeSaveChoice
	modeSavePath
	modeOpenPath
	modeOpenPicker
	modeConfirmDelete
	modeConfirmReload
	modeConfirmQuit
	modeHelp
)

const (
	defaultPageSize = 15
	bannerMinHeight = 40
	detailMinHeight = 30
	toastDuration   = 2500 * time.Millisecond
)

// --- Messages ---

type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model. All document changes go through the workspace
// on the Bubble Tea goroutine, one message at a time.
type App struct {
	ws     *workspace.Workspace
	config *config.Config
	log    logr.Logger
	keys   keyMap
	help   help.Model

	mode   mode
	rows   []document.DisplayEntry
	list   *components.List
	search textinput.Model
	prompt textinput.Model
	editor CellEditor
	picker filepicker.Model

	// resumeMode is where a cancelled quit confirmation returns to, so an
	// open edit, search or prompt picks up where it was.
	resumeMode mode
	pendingKey string
	width      int
	height     int
	err        string
	toast      *appToast

	copyValue  func(string) error
	saveConfig func(*config.Config) error
}

// NewApp creates the root model over ws. cfg may be nil.
func NewApp(ws *workspace.Workspace, cfg *config.Config, lgr logr.Logger) App {
	if cfg == nil {
		cfg = config.Default()
	}

	search := textinput.New()
	search.Prompt = "> "
	search.Placeholder = "type to filter"

	prompt := textinput.New()
	prompt.Prompt = "> "

	ws.SetSearch(document.SearchState{Mode: cfg.DefaultSearchMode(), Term: ws.Search().Term})

	a := App{
		ws:         ws,
		config:     cfg,
		log:        lgr,
		keys:       newKeyMap(cfg.VimKeys),
		help:       help.New(),
		list:       components.NewList(defaultPageSize),
		search:     search,
		prompt:     prompt,
		editor:     newCellEditor(),
		copyValue:  clipboard.WriteAll,
		saveConfig: (*config.Config).Save,
	}
	a.refreshRows()
	return a
}

// WithStartupError shows err until the first key press.
func (a App) WithStartupError(err error) App {
	if err != nil {
		a.err = err.Error()
	}
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.list.SetPageSize(a.pageSize())
		if a.mode == modeOpenPicker {
			a.picker.Height = a.pickerHeight()
		}
		return a, nil
	case clearToastMsg:
		a.toast = nil
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Non-key messages belong to whichever bubble is live: directory
	// listings for the picker, cursor blinks for text fields.
	var cmd tea.Cmd
	switch a.mode {
	case modeOpenPicker:
		a.picker, cmd = a.picker.Update(msg)
	case modeSearch:
		a.search, cmd = a.search.Update(msg)
	case modeAddKey, modeAddValue, modeSavePath, modeOpenPath:
		a.prompt, cmd = a.prompt.Update(msg)
	}
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.err = ""

	switch a.mode {
	case modeConfirmQuit:
		switch {
		case isKey(msg, "y", "ctrl+c"):
			return a, tea.Quit
		case isKey(msg, "n"), isBack(msg):
			a.mode = a.resumeMode
		}
		return a, nil
	case modeConfirmDelete:
		return a.handleConfirmDelete(msg)
	case modeConfirmReload:
		switch {
		case isKey(msg, "y"):
			return a, a.reload()
		case isKey(msg, "n"), isBack(msg):
			a.mode = modeBrowse
		}
		return a, nil
	case modeSaveChoice:
		return a.handleSaveChoice(msg)
	case modeHelp:
		if isBack(msg) || isKey(msg, "?", "q") {
			a.mode = modeBrowse
		}
		return a, nil
	}

	if isKey(msg, "ctrl+c") {
		return a, a.requestQuit()
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeEdit:
		return a.handleEditKey(msg)
	case modeAddKey, modeAddValue, modeSavePath, modeOpenPath:
		return a.handlePromptKey(msg)
	case modeOpenPicker:
		return a.handlePickerKey(msg)
	}
	return a.handleBrowseKey(msg)
}

// --- Browse ---

func (a App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.list.Up()
	case key.Matches(msg, a.keys.Down):
		a.list.Down()
	case key.Matches(msg, a.keys.PageUp):
		a.list.Select(a.list.Cursor - a.list.PageSize)
	case key.Matches(msg, a.keys.PageDown):
		a.list.Select(a.list.Cursor + a.list.PageSize)
	case key.Matches(msg, a.keys.Top):
		a.list.Select(0)
	case key.Matches(msg, a.keys.Bottom):
		a.list.Select(len(a.rows) - 1)

	case key.Matches(msg, a.keys.EditValue):
		return a.beginEdit(workspace.ValueField)
	case key.Matches(msg, a.keys.EditKey):
		return a.beginEdit(workspace.KeyField)

	case key.Matches(msg, a.keys.Search):
		a.mode = modeSearch
		a.search.SetValue(a.ws.Search().Term)
		a.search.CursorEnd()
		return a, a.search.Focus()
	case key.Matches(msg, a.keys.ToggleMode):
		a.toggleSearchMode()
	case isBack(msg):
		if a.ws.Search().Active() {
			a.clearSearch()
		}

	case key.Matches(msg, a.keys.Sort):
		selected := a.selectedKey()
		a.ws.Sort()
		a.refreshRows()
		a.selectKey(selected)
		return a, a.setToast("info", "Sorted by key")
	case key.Matches(msg, a.keys.Undo):
		if !a.ws.Undo() {
			return a, a.setToast("warning", "Nothing to undo")
		}
		a.refreshRows()
		return a, a.setToast("info", "Undone")
	case key.Matches(msg, a.keys.Copy):
		return a, a.copySelected()
	case key.Matches(msg, a.keys.Add):
		a.pendingKey = ""
		return a, a.openPrompt(modeAddKey, "")
	case key.Matches(msg, a.keys.Delete):
		if entry, ok := a.selected(); ok {
			a.pendingKey = entry.Key
			a.mode = modeConfirmDelete
		}

	case key.Matches(msg, a.keys.Open):
		return a, a.openPicker()
	case key.Matches(msg, a.keys.OpenPath):
		return a, a.openPrompt(modeOpenPath, a.ws.Path())
	case key.Matches(msg, a.keys.Save):
		a.mode = modeSaveChoice
	case key.Matches(msg, a.keys.Reload):
		if a.ws.Dirty() {
			a.mode = modeConfirmReload
			return a, nil
		}
		return a, a.reload()

	case key.Matches(msg, a.keys.Help):
		a.mode = modeHelp
	case key.Matches(msg, a.keys.Quit):
		return a, a.requestQuit()
	}
	return a, nil
}

// --- Editing ---

func (a App) beginEdit(field workspace.Field) (tea.Model, tea.Cmd) {
	entry, ok := a.selected()
	if !ok {
		return a, nil
	}
	s, err := a.ws.BeginEdit(entry.Key, field)
	if err != nil {
		a.err = err.Error()
		return a, nil
	}
	a.editor.Open(s.Input)
	a.mode = modeEdit
	return a, nil
}

func (a App) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isBack(msg):
		a.ws.DiscardEdit()
		a.editor.Reset()
		a.mode = modeBrowse
		return a, nil
	case isEnter(msg):
		a.commitEdit()
		return a, nil
	case isUp(msg), isDown(msg):
		s, _ := a.ws.Editing()
		before := a.list.Cursor
		if isUp(msg) {
			a.list.Up()
		} else {
			a.list.Down()
		}
		if a.list.Cursor == before {
			return a, nil
		}
		// The new edit replaces the old one, which is dropped unsaved.
		return a.beginEdit(s.Field)
	}

	changed, cmd := a.editor.HandleKey(msg)
	if changed {
		if err := a.ws.UpdateEdit(a.editor.Value()); err != nil {
			a.err = err.Error()
		}
	}
	return a, cmd
}

func (a *App) commitEdit() {
	res, err := a.ws.CommitEdit()
	a.editor.Reset()
	a.mode = modeBrowse
	a.refreshRows()
	if err != nil {
		a.err = err.Error()
		return
	}
	if res.Changed && res.Session.Field == workspace.KeyField {
		a.selectKey(res.Session.Input)
	}
}

// --- Search ---

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isBack(msg):
		a.clearSearch()
		a.search.Blur()
		a.mode = modeBrowse
		return a, nil
	case isEnter(msg):
		a.search.Blur()
		a.mode = modeBrowse
		return a, nil
	case key.Matches(msg, a.keys.ToggleMode):
		a.toggleSearchMode()
		return a, nil
	case isUp(msg):
		a.list.Up()
		return a, nil
	case isDown(msg):
		a.list.Down()
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if term := a.search.Value(); term != a.ws.Search().Term {
		a.setSearch(document.SearchState{Mode: a.ws.Search().Mode, Term: term})
	}
	return a, cmd
}

func (a *App) setSearch(s document.SearchState) {
	a.ws.SetSearch(s)
	a.refreshRows()
}

// toggleSearchMode flips Key/Value search and remembers the choice as the
// starting mode for the next run.
func (a *App) toggleSearchMode() {
	s := a.ws.Search()
	s.Mode = s.Mode.Toggle()
	a.setSearch(s)

	a.config.SearchMode = strings.ToLower(s.Mode.String())
	if err := a.saveConfig(a.config); err != nil {
		a.log.Error(err, "save search mode")
	}
}

func (a *App) clearSearch() {
	a.search.SetValue("")
	a.setSearch(document.SearchState{Mode: a.ws.Search().Mode})
}

// --- Prompts ---

func (a *App) openPrompt(m mode, initial string) tea.Cmd {
	a.mode = m
	a.prompt.Placeholder = promptPlaceholder(m)
	a.prompt.SetValue(initial)
	a.prompt.CursorEnd()
	return a.prompt.Focus()
}

func promptPlaceholder(m mode) string {
	switch m {
	case modeAddKey:
		return "key"
	case modeAddValue:
		return "value (numbers become int or float)"
	default:
		return "path/to/file.json"
	}
}

func (a App) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isBack(msg):
		m := a.mode
		a.closePrompt()
		if m == modeSavePath {
			// A dismissed save-as prompt is a save with no target.
			return a, a.save(workspace.SaveAs(""))
		}
		return a, nil
	case isEnter(msg):
		return a.submitPrompt()
	}

	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return a, cmd
}

func (a App) submitPrompt() (tea.Model, tea.Cmd) {
	value := a.prompt.Value()
	m := a.mode
	a.closePrompt()

	switch m {
	case modeAddKey:
		switch {
		case value == "":
			a.err = document.ErrEmptyKey.Error()
			return a, nil
		case a.ws.Document().Has(value):
			a.err = fmt.Sprintf("%q: %v", value, document.ErrKeyExists)
			return a, nil
		}
		a.pendingKey = value
		return a, a.openPrompt(modeAddValue, "")
	case modeAddValue:
		k := a.pendingKey
		a.pendingKey = ""
		if err := a.ws.Insert(k, value); err != nil {
			a.err = err.Error()
			return a, nil
		}
		a.refreshRows()
		a.selectKey(k)
		return a, a.setToast("success", "Added "+k)
	case modeSavePath:
		return a, a.save(workspace.SaveAs(value))
	case modeOpenPath:
		return a, a.open(value)
	}
	return a, nil
}

func (a *App) closePrompt() {
	a.prompt.Blur()
	a.prompt.SetValue("")
	a.mode = modeBrowse
}

// --- Dialogs ---

func (a App) handleConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		k := a.pendingKey
		a.pendingKey = ""
		a.mode = modeBrowse
		if err := a.ws.Delete(k); err != nil {
			a.err = err.Error()
			return a, nil
		}
		a.refreshRows()
		return a, a.setToast("info", "Deleted "+k)
	case isKey(msg, "n"), isBack(msg):
		a.pendingKey = ""
		a.mode = modeBrowse
	}
	return a, nil
}

func (a App) handleSaveChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		return a, a.save(workspace.Overwrite())
	case isKey(msg, "n"):
		return a, a.openPrompt(modeSavePath, a.ws.Path())
	case isBack(msg):
		return a, a.save(workspace.CancelSave())
	}
	return a, nil
}

func (a *App) save(d workspace.SaveDecision) tea.Cmd {
	a.mode = modeBrowse
	res, err := a.ws.Save(d)
	if err != nil {
		a.err = err.Error()
		return nil
	}
	if res.Skipped {
		return nil
	}
	return a.setToast("success", "Saved "+res.Path)
}

func (a *App) requestQuit() tea.Cmd {
	if a.ws.Dirty() && a.config.ShouldConfirmQuit() {
		a.resumeMode = a.mode
		a.mode = modeConfirmQuit
		return nil
	}
	return tea.Quit
}

// --- Files ---

func (a *App) open(path string) tea.Cmd {
	a.mode = modeBrowse
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := a.ws.Open(path); err != nil {
		a.err = err.Error()
		return nil
	}
	a.afterLoad()
	return a.setToast("success", "Opened "+a.ws.Path())
}

func (a *App) reload() tea.Cmd {
	a.mode = modeBrowse
	if err := a.ws.Reload(); err != nil {
		a.err = err.Error()
		return nil
	}
	a.afterLoad()
	return a.setToast("info", "Reloaded "+a.ws.Path())
}

func (a *App) afterLoad() {
	a.editor.Reset()
	a.search.SetValue("")
	a.refreshRows()
	a.list.Select(0)
}

func (a *App) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".json"}
	fp.ShowHidden = false
	fp.AutoHeight = false
	fp.Height = a.pickerHeight()
	fp.CurrentDirectory = a.pickerStartDir()
	a.picker = fp
	a.mode = modeOpenPicker
	return a.picker.Init()
}

func (a App) pickerStartDir() string {
	if p := a.ws.Path(); p != "" {
		return filepath.Dir(p)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (a App) pickerHeight() int {
	if a.height <= 0 {
		return 12
	}
	h := a.height - 16
	if h < 5 {
		h = 5
	}
	return h
}

func (a App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isKey(msg, "esc") {
		a.mode = modeBrowse
		return a, nil
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	if ok, path := a.picker.DidSelectFile(msg); ok {
		return a, tea.Batch(cmd, a.open(path))
	}
	if ok, path := a.picker.DidSelectDisabledFile(msg); ok {
		return a, tea.Batch(cmd, a.setToast("warning", "Not a JSON file: "+filepath.Base(path)))
	}
	return a, cmd
}

// --- Clipboard ---

func (a *App) copySelected() tea.Cmd {
	entry, ok := a.selected()
	if !ok {
		return nil
	}
	if err := a.copyValue(entry.Display); err != nil {
		a.log.Error(err, "clipboard write failed", "key", entry.Key)
		a.err = fmt.Sprintf("copy: %v", err)
		return nil
	}
	return a.setToast("info", "Copied value of "+entry.Key)
}

// --- Rows ---

func (a *App) refreshRows() {
	a.rows = a.ws.View()
	keys := make([]string, len(a.rows))
	for i, r := range a.rows {
		keys[i] = r.Key
	}
	a.list.ReplaceItems(keys)
}

func (a App) selected() (document.DisplayEntry, bool) {
	if len(a.rows) == 0 {
		return document.DisplayEntry{}, false
	}
	idx := a.list.Selected()
	if idx < 0 || idx >= len(a.rows) {
		return document.DisplayEntry{}, false
	}
	return a.rows[idx], true
}

func (a App) selectedKey() string {
	entry, _ := a.selected()
	return entry.Key
}

func (a *App) selectKey(k string) {
	for i, r := range a.rows {
		if r.Key == k {
			a.list.Select(i)
			return
		}
	}
}

func (a App) pageSize() int {
	if a.height <= 0 {
		return defaultPageSize
	}
	reserved := 22
	if a.height >= bannerMinHeight {
		reserved += 9
	}
	if a.height >= detailMinHeight {
		reserved += 7
	}
	if n := a.height - reserved; n > 3 {
		return n
	}
	return 3
}

// --- Toasts ---

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

// --- View ---

func (a App) View() string {
	sections := make([]string, 0, 4)
	if a.height == 0 || a.height >= bannerMinHeight {
		sections = append(sections, centerBlockUniform(RenderBanner(), a.width))
	}
	sections = append(sections, centerBlockUniform(a.renderInfoBar(), a.width))

	var content string
	switch a.mode {
	case modeConfirmQuit:
		content = components.Indent(components.ConfirmDialog("Quit", "You have unsaved changes. Quit anyway?"), 1)
	case modeConfirmDelete:
		content = components.Indent(components.ConfirmDialog("Delete", fmt.Sprintf("Delete entry %q?", a.pendingKey)), 1)
	case modeConfirmReload:
		content = components.Indent(components.ConfirmDialog("Reload", "Discard unsaved changes and reload from disk?"), 1)
	case modeSaveChoice:
		content = components.Indent(a.renderSaveChoice(), 1)
	case modeAddKey:
		content = components.Indent(components.InputDialog("New Key", a.prompt.View()), 1)
	case modeAddValue:
		content = components.Indent(components.InputDialog(fmt.Sprintf("Value for %q", a.pendingKey), a.prompt.View()), 1)
	case modeSavePath:
		content = components.Indent(components.InputDialog("Save As", a.prompt.View()), 1)
	case modeOpenPath:
		content = components.Indent(components.InputDialog("Open File", a.prompt.View()), 1)
	case modeOpenPicker:
		content = components.Indent(components.TitledBox("Open", a.picker.View(), a.width), 1)
	case modeHelp:
		content = a.renderHelp()
	default:
		content = a.renderEntries()
	}
	sections = append(sections, centerBlockUniform(content, a.width))

	hints := components.StatusBar(a.modeLabel(), a.statusHints(), a.width)

	feedback := ""
	if a.err != "" {
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Error", a.err, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return strings.Join(sections, "\n\n") + "\n\n" + hints + feedback
}

func (a App) renderInfoBar() string {
	path := a.ws.Path()
	if path == "" {
		path = "[no file]"
	}
	parts := []string{NormalStyle.Render(components.SanitizeOneLine(path))}

	total := a.ws.Document().Len()
	if a.ws.Search().Active() {
		parts = append(parts, MutedStyle.Render(fmt.Sprintf("%d of %d entries", len(a.rows), total)))
	} else {
		parts = append(parts, MutedStyle.Render(fmt.Sprintf("%d entries", total)))
	}

	if a.ws.Dirty() {
		parts = append(parts, WarningStyle.Render("● modified"))
	} else {
		parts = append(parts, SuccessStyle.Render("saved"))
	}

	parts = append(parts, a.renderSearchModes())
	return strings.Join(parts, MutedStyle.Render("  │  "))
}

func (a App) renderSearchModes() string {
	current := a.ws.Search().Mode
	segments := make([]string, 0, 2)
	for _, m := range []document.SearchMode{document.SearchKey, document.SearchValue} {
		if m == current {
			segments = append(segments, ModeActiveStyle.Render(m.String()))
		} else {
			segments = append(segments, ModeInactiveStyle.Render(m.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) renderEntries() string {
	var b strings.Builder

	if a.mode == modeSearch {
		b.WriteString(AccentStyle.Render("Search "+a.ws.Search().Mode.String()+" ") + a.search.View())
		b.WriteString("\n\n")
	} else if s := a.ws.Search(); s.Active() {
		b.WriteString(MutedStyle.Render(fmt.Sprintf("Filter %s: %q (esc clears)", s.Mode, s.Term)))
		b.WriteString("\n\n")
	}

	if len(a.rows) == 0 {
		switch {
		case a.ws.Search().Active():
			b.WriteString(MutedStyle.Render("No entries match."))
		case a.ws.Path() == "":
			b.WriteString(MutedStyle.Render("No file loaded. Press o to open one or a to add an entry."))
		default:
			b.WriteString(MutedStyle.Render("The document is empty. Press a to add an entry."))
		}
		return components.TitledBox("Entries", b.String(), a.width)
	}

	if s, ok := a.ws.Editing(); ok && a.mode == modeEdit {
		b.WriteString(TypeBadgeStyle.Render("EDIT "+strings.ToUpper(s.Field.String())) + " " + NormalStyle.Render(components.SanitizeOneLine(s.TargetKey)))
		b.WriteString("\n\n")
	}
	b.WriteString(a.renderGrid())
	if len(a.rows) > a.list.PageSize {
		first := a.list.Offset + 1
		last := a.list.Offset + len(a.list.Visible())
		b.WriteString("\n" + MutedStyle.Render(fmt.Sprintf("  rows %d-%d of %d", first, last, len(a.rows))))
	}

	out := components.TitledBox("Entries", b.String(), a.width)
	if a.mode == modeEdit {
		out = components.ActiveBox("Entries", b.String(), a.width)
	}
	if a.height == 0 || a.height >= detailMinHeight {
		if detail := a.renderDetail(); detail != "" {
			out += "\n" + detail
		}
	}
	return out
}

func gridColumns(width int) []components.GridColumn {
	return []components.GridColumn{
		{Header: "Key", Width: max(width/3, 8)},
		{Header: "Value", Width: 8, Flex: true},
		{Header: "Type", Width: 6},
	}
}

func (a App) renderGrid() string {
	width := components.BoxContentWidth(a.width)
	if width <= 0 {
		width = 72
	}
	grid := components.EntryGrid{
		Columns: gridColumns(width),
		Active:  a.list.Cursor - a.list.Offset,
	}
	widths := grid.ColumnWidths(width)

	session, editing := a.ws.Editing()
	visible := a.list.Visible()
	grid.Rows = make([]components.GridRow, 0, len(visible))
	for i := range visible {
		entry := a.rows[a.list.RelToAbs(i)]
		kind := entry.Value.Kind()
		row := components.GridRow{
			Cells: []string{entry.Key, entry.Display, kind.String()},
			Tint:  kindColor(kind),
		}
		if editing && session.TargetKey == entry.Key {
			grid.Editing = i == grid.Active
			field := 1
			if session.Field == workspace.KeyField {
				field = 0
			}
			row.Cells[field] = a.editor.Render(widths[field])
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid.Render(width)
}

func (a App) renderDetail() string {
	entry, ok := a.selected()
	if !ok {
		return ""
	}
	kind := entry.Value.Kind()
	rows := []components.TableRow{
		{Label: "Key", Value: entry.Key},
		{Label: "Type", Value: kind.String(), ValueColor: kindColor(kind)},
		{Label: "Value", Value: entry.Display},
	}
	return components.Table("Selected", rows, a.width)
}

func (a App) renderSaveChoice() string {
	msg := "This document has no file yet."
	if p := a.ws.Path(); p != "" {
		msg = fmt.Sprintf("Overwrite %s?", components.SanitizeOneLine(p))
	}
	return components.ChoiceDialog("Save", msg,
		components.Choice{Key: "y", Label: "overwrite"},
		components.Choice{Key: "n", Label: "save as"},
		components.Choice{Key: "esc", Label: "cancel"},
	)
}

func (a App) renderHelp() string {
	body := MutedStyle.Render("esc to close") + "\n\n" + a.help.FullHelpView(a.keys.FullHelp())
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

// --- Status Bar ---

func (a App) statusHints() []string {
	switch a.mode {
	case modeConfirmQuit, modeConfirmDelete, modeConfirmReload:
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	case modeSaveChoice:
		return []string{
			components.Hint("y", "Overwrite"),
			components.Hint("n", "Save As"),
			components.Hint("esc", "Cancel"),
		}
	case modeHelp:
		return []string{
			components.Hint("esc", "Back"),
		}
	case modeEdit:
		return []string{
			components.Hint("enter", "Commit"),
			components.Hint("esc", "Discard"),
			components.Hint("↑/↓", "Edit Neighbor"),
		}
	case modeSearch:
		return []string{
			components.Hint("ctrl+t", "Key/Value"),
			components.Hint("↑/↓", "Move"),
			components.Hint("enter", "Done"),
			components.Hint("esc", "Clear"),
		}
	case modeAddKey, modeAddValue, modeSavePath, modeOpenPath:
		return []string{
			components.Hint("enter", "Submit"),
			components.Hint("esc", "Cancel"),
		}
	case modeOpenPicker:
		return []string{
			components.Hint("↑/↓", "Move"),
			components.Hint("→/enter", "Open"),
			components.Hint("←", "Up"),
			components.Hint("esc", "Cancel"),
		}
	}
	hints := components.BindingHints(a.keys.ShortHelp()...)
	if a.ws.Document().CanUndo() {
		hints = append(hints, components.BindingHints(a.keys.Undo)...)
	}
	return hints
}

// modeLabel names the current mode for the status bar badge.
func (a App) modeLabel() string {
	switch a.mode {
	case modeSearch:
		return "SEARCH " + strings.ToUpper(a.ws.Search().Mode.String())
	case modeEdit:
		return "EDIT"
	case modeAddKey, modeAddValue:
		return "ADD"
	case modeSaveChoice, modeSavePath:
		return "SAVE"
	case modeOpenPath, modeOpenPicker:
		return "OPEN"
	case modeConfirmQuit, modeConfirmDelete, modeConfirmReload:
		return "CONFIRM"
	case modeHelp:
		return "HELP"
	}
	return "BROWSE"
}

// --- Layout ---

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
