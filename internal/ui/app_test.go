package ui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/jsonedit/internal/config"
	"github.com/gravitrone/jsonedit/internal/document"
	"github.com/gravitrone/jsonedit/internal/store"
	"github.com/gravitrone/jsonedit/internal/ui/components"
	"github.com/gravitrone/jsonedit/internal/workspace"
)

var (
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keyUp        = tea.KeyMsg{Type: tea.KeyUp}
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyCtrlS     = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlO     = tea.KeyMsg{Type: tea.KeyCtrlO}
	keyCtrlR     = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyCtrlT     = tea.KeyMsg{Type: tea.KeyCtrlT}
	keyCtrlU     = tea.KeyMsg{Type: tea.KeyCtrlU}
)

type appEnv struct {
	dir  string
	path string
	last *store.LastPath
}

func writeDoc(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestApp(t *testing.T, body string, cfg *config.Config) (App, appEnv) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	env := appEnv{dir: t.TempDir()}
	env.path = writeDoc(t, env.dir, "doc.json", body)
	env.last = store.NewLastPath(filepath.Join(t.TempDir(), store.LastPathFileName))

	ws := workspace.New(store.Files{}, env.last, logr.Discard())
	require.NoError(t, ws.Open(env.path))

	app := NewApp(ws, cfg, logr.Discard())
	app.copyValue = func(string) error { return nil }
	return app, env
}

func press(a App, msgs ...tea.Msg) App {
	for _, msg := range msgs {
		model, _ := a.Update(msg)
		a = model.(App)
	}
	return a
}

func pressCmd(a App, msg tea.Msg) (App, tea.Cmd) {
	model, cmd := a.Update(msg)
	return model.(App), cmd
}

func typeText(a App, s string) App {
	for _, r := range s {
		a = press(a, runeKey(r))
	}
	return a
}

func view(a App) string {
	return components.SanitizeText(a.View())
}

func rowKeys(a App) []string {
	out := make([]string, len(a.rows))
	for i, r := range a.rows {
		out[i] = r.Key
	}
	return out
}

func valueOf(t *testing.T, a App, k string) document.Value {
	t.Helper()
	v, ok := a.ws.Document().Get(k)
	require.True(t, ok, "missing key %q", k)
	return v
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// --- Browse ---

func TestAppShowsEntriesInDocumentOrder(t *testing.T) {
	app, env := newTestApp(t, `{"zeta": 1, "Alpha": "x", "mid": 2.5}`, nil)

	assert.Equal(t, []string{"zeta", "Alpha", "mid"}, rowKeys(app))
	out := view(app)
	assert.Contains(t, out, "zeta")
	assert.Contains(t, out, "2.5")
	assert.Contains(t, out, "float")
	assert.Contains(t, out, env.path)
	assert.Contains(t, out, "3 entries")
	assert.Contains(t, out, "saved")
}

func TestAppCursorMovement(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1, "b": 2, "c": 3}`, nil)

	app = press(app, keyDown, keyDown, keyDown)
	assert.Equal(t, 2, app.list.Cursor)
	app = press(app, keyUp)
	assert.Equal(t, "b", app.selectedKey())
	app = press(app, runeKey('g'))
	assert.Equal(t, 0, app.list.Cursor)
	app = press(app, runeKey('G'))
	assert.Equal(t, 2, app.list.Cursor)
}

func TestAppVimKeysFollowConfig(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1, "b": 2}`, &config.Config{VimKeys: true})
	app = press(app, runeKey('j'))
	assert.Equal(t, 1, app.list.Cursor)

	plain, _ := newTestApp(t, `{"a": 1, "b": 2}`, nil)
	plain = press(plain, runeKey('j'))
	assert.Equal(t, 0, plain.list.Cursor)
}

func TestAppWindowSizeAdjustsPageSize(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1}`, nil)
	app = press(app, tea.WindowSizeMsg{Width: 100, Height: 60})
	assert.Equal(t, 100, app.width)
	assert.Equal(t, 60-38, app.list.PageSize)

	app = press(app, tea.WindowSizeMsg{Width: 80, Height: 10})
	assert.Equal(t, 3, app.list.PageSize)
}

// --- Editing ---

func TestAppEditValueCommitsCoercedValue(t *testing.T) {
	app, _ := newTestApp(t, `{"n": "x", "s": "y"}`, nil)

	app = press(app, keyEnter)
	require.Equal(t, modeEdit, app.mode)
	assert.Contains(t, view(app), "x█")
	assert.Contains(t, view(app), "EDIT VALUE")

	app = press(app, keyBackspace)
	app = typeText(app, "42")
	session, ok := app.ws.Editing()
	require.True(t, ok)
	assert.Equal(t, "42", session.Input)

	app = press(app, keyEnter)
	assert.Equal(t, modeBrowse, app.mode)
	assert.True(t, document.Integer(42).Equal(valueOf(t, app, "n")))
	assert.True(t, app.ws.Dirty())
	assert.Contains(t, view(app), "modified")
}

func TestAppEditEscDiscards(t *testing.T) {
	app, _ := newTestApp(t, `{"n": "x"}`, nil)

	app = press(app, keyEnter)
	app = typeText(app, "yz")
	app = press(app, keyEsc)

	assert.Equal(t, modeBrowse, app.mode)
	assert.True(t, document.String("x").Equal(valueOf(t, app, "n")))
	assert.False(t, app.ws.Dirty())
	_, editing := app.ws.Editing()
	assert.False(t, editing)
}

func TestAppEditMovingToNeighborDropsPendingEdit(t *testing.T) {
	app, _ := newTestApp(t, `{"a": "one", "b": "two"}`, nil)

	app = press(app, keyEnter)
	app = typeText(app, "!!!")
	app = press(app, keyDown)

	require.Equal(t, modeEdit, app.mode)
	session, _ := app.ws.Editing()
	assert.Equal(t, "b", session.TargetKey)
	assert.Equal(t, "two", app.editor.Value())

	app = typeText(app, "?")
	app = press(app, keyEnter)
	assert.True(t, document.String("one").Equal(valueOf(t, app, "a")))
	assert.True(t, document.String("two?").Equal(valueOf(t, app, "b")))
}

func TestAppRenameKeyKeepsSelection(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1, "b": 2, "c": 3}`, nil)

	app = press(app, keyDown, runeKey('r'))
	require.Equal(t, modeEdit, app.mode)
	app = press(app, keyBackspace)
	app = typeText(app, "renamed")
	app = press(app, keyEnter)

	assert.Equal(t, []string{"a", "c", "renamed"}, rowKeys(app))
	assert.Equal(t, "renamed", app.selectedKey())
}

func TestAppCommitOutsideFilterDropsRow(t *testing.T) {
	app, _ := newTestApp(t, `{"name": "alpha", "title": "alphabet", "n": 1}`, nil)

	app = press(app, runeKey('/'), keyCtrlT)
	app = typeText(app, "alpha")
	app = press(app, keyEnter)
	require.Equal(t, []string{"name", "title"}, rowKeys(app))

	app = press(app, keyEnter, keyCtrlU)
	app = typeText(app, "beta")
	app = press(app, keyEnter)

	assert.Equal(t, []string{"title"}, rowKeys(app))
	assert.Contains(t, view(app), "1 of 3 entries")
}

// --- Search ---

func TestAppSearchModeToggleIsRemembered(t *testing.T) {
	app, _ := newTestApp(t, `{"a": "x"}`, nil)

	app = press(app, runeKey('/'), keyCtrlT)
	require.Equal(t, document.SearchValue, app.ws.Search().Mode)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "value", cfg.SearchMode)
	assert.Equal(t, document.SearchValue, cfg.DefaultSearchMode())

	app = press(app, keyCtrlT)
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, "key", cfg.SearchMode)
}

func TestAppSearchModeToggleSurvivesConfigWriteError(t *testing.T) {
	app, _ := newTestApp(t, `{"a": "x"}`, nil)
	app.saveConfig = func(*config.Config) error { return errors.New("read-only home") }

	app = press(app, runeKey('/'), keyCtrlT)
	assert.Equal(t, document.SearchValue, app.ws.Search().Mode)
	assert.Empty(t, app.err)
}

func TestAppSearchFiltersAsYouType(t *testing.T) {
	app, _ := newTestApp(t, `{"Alpha": 1, "beta": "Alpine", "Gamma": 3}`, nil)

	app = press(app, runeKey('/'))
	require.Equal(t, modeSearch, app.mode)
	app = typeText(app, "AL")
	assert.Equal(t, []string{"Alpha"}, rowKeys(app))

	app = press(app, keyCtrlT)
	assert.Equal(t, document.SearchValue, app.ws.Search().Mode)
	assert.Equal(t, []string{"beta"}, rowKeys(app))
	assert.Contains(t, view(app), "SEARCH VALUE")

	app = press(app, keyBackspace)
	assert.Equal(t, "A", app.ws.Search().Term)
	assert.Equal(t, []string{"beta"}, rowKeys(app))

	app = press(app, keyEsc)
	assert.Equal(t, modeBrowse, app.mode)
	assert.Equal(t, "", app.ws.Search().Term)
	assert.Len(t, app.rows, 3)
}

func TestAppSearchEnterKeepsFilterAndEscClears(t *testing.T) {
	app, _ := newTestApp(t, `{"Alpha": 1, "beta": 2}`, nil)

	app = press(app, runeKey('/'))
	app = typeText(app, "bet")
	app = press(app, keyEnter)
	assert.Equal(t, modeBrowse, app.mode)
	assert.Equal(t, []string{"beta"}, rowKeys(app))
	assert.Contains(t, view(app), `Filter Key: "bet"`)

	app = press(app, keyEsc)
	assert.Equal(t, []string{"Alpha", "beta"}, rowKeys(app))
}

func TestAppConfiguredSearchMode(t *testing.T) {
	app, _ := newTestApp(t, `{"a": "x"}`, &config.Config{SearchMode: "value"})
	assert.Equal(t, document.SearchValue, app.ws.Search().Mode)
}

func TestAppSearchWithNoMatches(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1}`, nil)
	app = press(app, runeKey('/'))
	app = typeText(app, "zzz")
	assert.Contains(t, view(app), "No entries match.")
}

// --- Whole-document actions ---

func TestAppSortAndUndo(t *testing.T) {
	app, _ := newTestApp(t, `{"b": 1, "C": 2, "a": 3}`, nil)

	assert.NotContains(t, view(app), "Undo")
	app = press(app, runeKey('s'))
	assert.Equal(t, []string{"a", "b", "C"}, rowKeys(app))
	assert.Contains(t, view(app), "Undo")
	assert.Equal(t, "b", app.selectedKey(), "selection follows the entry")
	require.NotNil(t, app.toast)

	app = press(app, runeKey('u'))
	assert.Equal(t, []string{"b", "C", "a"}, rowKeys(app))

	app = press(app, runeKey('u'))
	require.NotNil(t, app.toast)
	assert.Equal(t, "Nothing to undo", app.toast.text)
}

func TestAppAddEntry(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1}`, nil)

	app = press(app, runeKey('a'))
	require.Equal(t, modeAddKey, app.mode)
	app = typeText(app, "ratio")
	app = press(app, keyEnter)
	require.Equal(t, modeAddValue, app.mode)
	assert.Contains(t, view(app), `Value for "ratio"`)
	app = typeText(app, "3.5")
	app = press(app, keyEnter)

	assert.Equal(t, modeBrowse, app.mode)
	assert.Equal(t, []string{"a", "ratio"}, rowKeys(app))
	assert.True(t, document.Float(3.5).Equal(valueOf(t, app, "ratio")))
	assert.Equal(t, "ratio", app.selectedKey())
}

func TestAppAddRejectsExistingAndEmptyKeys(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1}`, nil)

	app = press(app, runeKey('a'))
	app = typeText(app, "a")
	app = press(app, keyEnter)
	assert.Equal(t, modeBrowse, app.mode)
	assert.Contains(t, view(app), "already exists")

	app = press(app, runeKey('a'), keyEnter)
	assert.Contains(t, app.err, "empty")
	assert.Equal(t, 1, app.ws.Document().Len())
}

func TestAppDeleteAsksFirst(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1, "b": 2}`, nil)

	app = press(app, runeKey('d'))
	require.Equal(t, modeConfirmDelete, app.mode)
	assert.Contains(t, view(app), `Delete entry "a"?`)
	app = press(app, runeKey('n'))
	assert.Equal(t, 2, app.ws.Document().Len())

	app = press(app, runeKey('d'), runeKey('y'))
	assert.Equal(t, []string{"b"}, rowKeys(app))
}

func TestAppCopySelectedValue(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1.0, "b": "text"}`, nil)
	var copied string
	app.copyValue = func(s string) error {
		copied = s
		return nil
	}

	app = press(app, runeKey('y'))
	assert.Equal(t, "1.0", copied)

	app.copyValue = func(string) error { return errors.New("no clipboard") }
	app = press(app, keyDown, runeKey('y'))
	assert.Contains(t, app.err, "no clipboard")
}

// --- Saving ---

func TestAppSaveOverwrite(t *testing.T) {
	app, env := newTestApp(t, `{"b":1,"a":2}`, nil)

	app = press(app, runeKey('s'), keyCtrlS)
	require.Equal(t, modeSaveChoice, app.mode)
	assert.Contains(t, view(app), "y: overwrite | n: save as | esc: cancel")

	app = press(app, runeKey('y'))
	assert.Equal(t, modeBrowse, app.mode)
	assert.False(t, app.ws.Dirty())
	require.NotNil(t, app.toast)
	assert.Equal(t, "success", app.toast.level)
	assert.Equal(t, "Saved "+env.path, app.toast.text)
	assert.Equal(t, "{\n    \"a\": 2,\n    \"b\": 1\n}\n", readFile(t, env.path))
}

func TestAppSaveAs(t *testing.T) {
	app, env := newTestApp(t, `{"a": 1}`, nil)
	target := filepath.Join(env.dir, "copy.json")

	app = press(app, runeKey('u'), keyCtrlS, runeKey('n'))
	require.Equal(t, modeSavePath, app.mode)
	assert.Equal(t, env.path, app.prompt.Value())

	app = press(app, keyCtrlU)
	app = typeText(app, target)
	app = press(app, keyEnter)

	assert.Equal(t, target, app.ws.Path())
	assert.Equal(t, "{\n    \"a\": 1\n}\n", readFile(t, target))
	recorded, err := env.last.Load()
	require.NoError(t, err)
	assert.Equal(t, target, recorded)
}

func TestAppSaveCancelAndDismissLeaveDocumentDirty(t *testing.T) {
	app, env := newTestApp(t, `{"a": 1}`, nil)
	app = press(app, runeKey('d'), runeKey('y'))
	require.True(t, app.ws.Dirty())

	app = press(app, keyCtrlS, keyEsc)
	assert.Equal(t, modeBrowse, app.mode)
	assert.True(t, app.ws.Dirty())

	app = press(app, keyCtrlS, runeKey('n'), keyEsc)
	assert.Equal(t, modeBrowse, app.mode)
	assert.True(t, app.ws.Dirty())
	assert.Equal(t, `{"a": 1}`, readFile(t, env.path))
}

func TestAppSaveErrorIsShown(t *testing.T) {
	app, env := newTestApp(t, `{"a": 1}`, nil)
	missingDir := filepath.Join(env.dir, "missing", "out.json")

	app = press(app, keyCtrlS, runeKey('n'), keyCtrlU)
	app = typeText(app, missingDir)
	app = press(app, keyEnter)

	assert.NotEmpty(t, app.err)
	assert.Contains(t, view(app), "Error")
	assert.Equal(t, env.path, app.ws.Path())
}

// --- Files ---

func TestAppOpenPath(t *testing.T) {
	app, env := newTestApp(t, `{"a": 1}`, nil)
	other := writeDoc(t, env.dir, "other.json", `{"x": "y"}`)

	app = press(app, keyCtrlO)
	require.Equal(t, modeOpenPath, app.mode)
	app = press(app, keyCtrlU)
	app = typeText(app, other)
	app = press(app, keyEnter)

	assert.Equal(t, other, app.ws.Path())
	assert.Equal(t, []string{"x"}, rowKeys(app))
}

func TestAppOpenInvalidFileKeepsDocument(t *testing.T) {
	app, env := newTestApp(t, `{"a": 1}`, nil)
	bad := writeDoc(t, env.dir, "bad.json", `{"a": [1]}`)

	app = press(app, keyCtrlO, keyCtrlU)
	app = typeText(app, bad)
	app = press(app, keyEnter)

	assert.Contains(t, app.err, "array")
	assert.Equal(t, env.path, app.ws.Path())
	assert.Equal(t, []string{"a"}, rowKeys(app))
}

func TestAppOpenPickerSelectsFile(t *testing.T) {
	app, env := newTestApp(t, `{"a": 1}`, nil)
	other := writeDoc(t, env.dir, "other.json", `{"picked": true}`)

	app, cmd := pressCmd(app, runeKey('o'))
	require.Equal(t, modeOpenPicker, app.mode)
	require.NotNil(t, cmd)
	app = press(app, cmd())

	app = press(app, keyDown, keyEnter)
	assert.Equal(t, modeBrowse, app.mode)
	assert.Equal(t, other, app.ws.Path())
	assert.True(t, app.ws.Document().Has("picked"))
}

func TestAppOpenPickerEscCancels(t *testing.T) {
	app, env := newTestApp(t, `{"a": 1}`, nil)
	app = press(app, runeKey('o'), keyEsc)
	assert.Equal(t, modeBrowse, app.mode)
	assert.Equal(t, env.path, app.ws.Path())
}

func TestAppReloadAsksWhenDirty(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1}`, nil)
	app = press(app, runeKey('d'), runeKey('y'))

	app = press(app, keyCtrlR)
	require.Equal(t, modeConfirmReload, app.mode)
	app = press(app, runeKey('y'))

	assert.False(t, app.ws.Dirty())
	assert.Equal(t, []string{"a"}, rowKeys(app))
}

// --- Quit and help ---

func TestAppQuitWhenClean(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1}`, nil)
	_, cmd := pressCmd(app, runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppQuitConfirmWhenDirty(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1}`, nil)
	app = press(app, runeKey('d'), runeKey('y'))

	app, cmd := pressCmd(app, runeKey('q'))
	assert.Nil(t, cmd)
	require.Equal(t, modeConfirmQuit, app.mode)
	assert.Contains(t, view(app), "unsaved changes")

	app = press(app, runeKey('n'))
	assert.Equal(t, modeBrowse, app.mode)

	app = press(app, runeKey('q'))
	_, cmd = pressCmd(app, runeKey('y'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppCancelledQuitResumesEdit(t *testing.T) {
	app, _ := newTestApp(t, `{"a": "x", "b": "y"}`, nil)
	app = press(app, runeKey('d'), runeKey('y'))
	require.Equal(t, []string{"b"}, rowKeys(app))

	app = press(app, keyEnter)
	app = typeText(app, "QQ")
	app = press(app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Equal(t, modeConfirmQuit, app.mode)

	app = press(app, runeKey('n'))
	require.Equal(t, modeEdit, app.mode)
	session, ok := app.ws.Editing()
	require.True(t, ok)
	assert.Equal(t, "yQQ", session.Input)

	app = press(app, keyEnter)
	assert.Equal(t, modeBrowse, app.mode)
	_, ok = app.ws.Editing()
	assert.False(t, ok)
	assert.True(t, document.String("yQQ").Equal(valueOf(t, app, "b")))
}

func TestAppCancelledQuitResumesPrompt(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1}`, nil)
	app = press(app, runeKey('d'), runeKey('y'))

	app = press(app, runeKey('a'))
	app = typeText(app, "new")
	app = press(app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Equal(t, modeConfirmQuit, app.mode)

	app = press(app, keyEsc)
	require.Equal(t, modeAddKey, app.mode)
	assert.Equal(t, "new", app.prompt.Value())
}

func TestAppQuitWithoutConfirmWhenDisabled(t *testing.T) {
	off := false
	app, _ := newTestApp(t, `{"a": 1}`, &config.Config{ConfirmQuit: &off})
	app = press(app, runeKey('d'), runeKey('y'))

	_, cmd := pressCmd(app, runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppHelpOverlay(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1}`, nil)

	app = press(app, runeKey('?'))
	require.Equal(t, modeHelp, app.mode)
	out := view(app)
	assert.Contains(t, out, "rename key")
	assert.Contains(t, out, "key/value search")

	app = press(app, keyEsc)
	assert.Equal(t, modeBrowse, app.mode)
}

func TestAppStartupErrorClearsOnKey(t *testing.T) {
	app, _ := newTestApp(t, `{}`, nil)
	app = app.WithStartupError(errors.New("read /gone.json: no such file"))
	assert.Contains(t, view(app), "no such file")

	app = press(app, keyDown)
	assert.Empty(t, app.err)
	assert.Contains(t, view(app), "The document is empty")
}

func TestAppToastClears(t *testing.T) {
	app, _ := newTestApp(t, `{"a": 1}`, nil)
	app, cmd := pressCmd(app, runeKey('s'))
	require.NotNil(t, cmd)
	require.NotNil(t, app.toast)

	app = press(app, clearToastMsg{})
	assert.Nil(t, app.toast)
}
