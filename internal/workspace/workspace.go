package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"

	"github.com/gravitrone/jsonedit/internal/document"
)

// ErrNoPath is returned when an operation needs the document's file but none
// is known yet.
var ErrNoPath = errors.New("document has no file path")

// Gateway moves raw bytes between the workspace and storage.
type Gateway interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// PathRecorder remembers the last loaded or saved path across runs.
type PathRecorder interface {
	Load() (string, error)
	Save(path string) error
}

// Workspace is the editor state: the authoritative document, the active
// search, the single edit session and where the document lives on disk.
// It is not safe for concurrent use; callers drive it from one event loop.
type Workspace struct {
	doc      *document.Document
	search   document.SearchState
	sessions SessionManager
	path     string
	files    Gateway
	last     PathRecorder
	log      logr.Logger
}

// New returns a workspace holding an empty document. last may be nil.
func New(files Gateway, last PathRecorder, lgr logr.Logger) *Workspace {
	return &Workspace{
		doc:   document.New(),
		files: files,
		last:  last,
		log:   lgr,
	}
}

func (w *Workspace) Document() *document.Document { return w.doc }
func (w *Workspace) Path() string                 { return w.path }
func (w *Workspace) Dirty() bool                  { return w.doc.Dirty() }
func (w *Workspace) Search() document.SearchState { return w.search }

func (w *Workspace) SetSearch(s document.SearchState) {
	w.search = s
}

// View projects the document through the current search.
func (w *Workspace) View() []document.DisplayEntry {
	return document.Project(w.doc, w.search)
}

// --- Loading ---

// Restore opens the path recorded by a previous run. It returns "" with no
// error when nothing was recorded.
func (w *Workspace) Restore() (string, error) {
	if w.last == nil {
		return "", nil
	}
	path, err := w.last.Load()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	if err := w.Open(path); err != nil {
		return path, err
	}
	return w.path, nil
}

// Open reads path and replaces the document with its contents.
func (w *Workspace) Open(path string) error {
	abs := absPath(path)
	raw, err := w.files.ReadFile(abs)
	if err != nil {
		return err
	}
	return w.LoadBytes(abs, raw)
}

// Reload re-reads the current file, dropping unsaved changes.
func (w *Workspace) Reload() error {
	if w.path == "" {
		return ErrNoPath
	}
	return w.Open(w.path)
}

// LoadBytes parses raw and, on success, replaces the whole document, drops
// any open edit and clears the search term. On failure nothing changes.
func (w *Workspace) LoadBytes(path string, raw []byte) error {
	doc, err := document.Parse(raw)
	if err != nil {
		w.log.Info("load rejected", "path", path, "error", err.Error())
		return fmt.Errorf("load %s: %w", path, err)
	}
	w.doc = doc
	w.sessions.Discard()
	w.search.Term = ""
	w.path = path
	w.log.V(1).Info("document loaded", "path", path, "entries", doc.Len())
	w.remember(path)
	return nil
}

// --- Editing ---

// BeginEdit opens an edit on key seeded with the cell's current text,
// dropping any edit that was open.
func (w *Workspace) BeginEdit(key string, field Field) (EditSession, error) {
	v, ok := w.doc.Get(key)
	if !ok {
		return EditSession{}, fmt.Errorf("edit %q: %w", key, document.ErrKeyNotFound)
	}
	current := v.String()
	if field == KeyField {
		current = key
	}
	if prev, open := w.sessions.Active(); open {
		w.log.V(1).Info("edit discarded", "key", prev.TargetKey, "field", prev.Field.String())
	}
	return w.sessions.Begin(key, field, current), nil
}

func (w *Workspace) UpdateEdit(text string) error {
	return w.sessions.SetInput(text)
}

func (w *Workspace) Editing() (EditSession, bool) {
	return w.sessions.Active()
}

func (w *Workspace) CommitEdit() (CommitResult, error) {
	res, err := w.sessions.Commit(w.doc)
	if err != nil {
		return res, err
	}
	if res.Changed {
		w.log.V(1).Info("edit committed", "key", res.Session.TargetKey, "field", res.Session.Field.String())
	}
	return res, nil
}

func (w *Workspace) DiscardEdit() bool {
	return w.sessions.Discard()
}

// --- Whole-document operations ---

func (w *Workspace) Sort() {
	w.doc.SortByKeyCaseInsensitive()
}

func (w *Workspace) Undo() bool {
	w.sessions.Discard()
	return w.doc.Undo()
}

func (w *Workspace) Insert(key, raw string) error {
	return w.doc.Insert(key, raw)
}

func (w *Workspace) Delete(key string) error {
	w.sessions.Discard()
	return w.doc.Delete(key)
}

func (w *Workspace) remember(path string) {
	if w.last == nil || path == "" {
		return
	}
	if err := w.last.Save(path); err != nil {
		w.log.Error(err, "record last path", "path", path)
	}
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
