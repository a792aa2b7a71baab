package workspace

import (
	"errors"

	"github.com/gravitrone/jsonedit/internal/document"
)

// ErrNoSession is returned when committing or updating while idle.
var ErrNoSession = errors.New("no edit in progress")

// Field is the cell column an edit targets.
type Field int

const (
	KeyField Field = iota
	ValueField
)

func (f Field) String() string {
	if f == KeyField {
		return "key"
	}
	return "value"
}

// EditSession is one in-progress cell edit.
type EditSession struct {
	TargetKey string
	Field     Field
	Input     string
}

// CommitResult describes what a commit did to the document.
type CommitResult struct {
	Session EditSession
	Changed bool
}

// SessionManager holds at most one EditSession. Begin, Commit and Discard are
// its only state transitions.
type SessionManager struct {
	active *EditSession
}

// Begin opens an edit on key, seeded with the cell's current text. An edit
// that was already open is dropped without touching the document.
func (m *SessionManager) Begin(key string, field Field, current string) EditSession {
	s := EditSession{TargetKey: key, Field: field, Input: current}
	m.active = &s
	return s
}

func (m *SessionManager) SetInput(text string) error {
	if m.active == nil {
		return ErrNoSession
	}
	m.active.Input = text
	return nil
}

func (m *SessionManager) Active() (EditSession, bool) {
	if m.active == nil {
		return EditSession{}, false
	}
	return *m.active, true
}

// Discard drops the open edit. It reports whether there was one.
func (m *SessionManager) Discard() bool {
	had := m.active != nil
	m.active = nil
	return had
}

// Commit applies the open edit to doc and returns to idle. The session ends
// even when the document rejects the change.
func (m *SessionManager) Commit(doc *document.Document) (CommitResult, error) {
	if m.active == nil {
		return CommitResult{}, ErrNoSession
	}
	s := *m.active
	m.active = nil

	res := CommitResult{Session: s}
	switch s.Field {
	case KeyField:
		before := doc.Revision()
		if err := doc.RenameKey(s.TargetKey, s.Input); err != nil {
			return res, err
		}
		res.Changed = doc.Revision() != before
	default:
		changed, err := doc.SetValue(s.TargetKey, s.Input)
		if err != nil {
			return res, err
		}
		res.Changed = changed
	}
	return res, nil
}
