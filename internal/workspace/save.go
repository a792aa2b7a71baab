package workspace

import (
	"fmt"
	"strings"

	"github.com/gravitrone/jsonedit/internal/document"
)

// SaveChoice is the user's answer to "overwrite the existing file?".
type SaveChoice int

const (
	ChoiceOverwrite SaveChoice = iota
	ChoiceSaveAs
	ChoiceCancel
)

// SaveDecision carries the choice and, for SaveAs, the chosen path. An empty
// SaveAs path means the path prompt was dismissed.
type SaveDecision struct {
	Choice SaveChoice
	Path   string
}

func Overwrite() SaveDecision         { return SaveDecision{Choice: ChoiceOverwrite} }
func SaveAs(path string) SaveDecision { return SaveDecision{Choice: ChoiceSaveAs, Path: path} }
func CancelSave() SaveDecision        { return SaveDecision{Choice: ChoiceCancel} }

// SaveResult reports where the document went. Skipped is set when nothing was
// written.
type SaveResult struct {
	Path    string
	Skipped bool
}

// Save writes the document according to d. Cancelling, dismissing the path
// prompt, or overwriting when no path is known all skip silently and leave
// the document dirty.
func (w *Workspace) Save(d SaveDecision) (SaveResult, error) {
	var target string
	switch d.Choice {
	case ChoiceCancel:
		return SaveResult{Skipped: true}, nil
	case ChoiceOverwrite:
		target = w.path
	case ChoiceSaveAs:
		target = strings.TrimSpace(d.Path)
	}
	if target == "" {
		w.log.V(1).Info("save skipped", "reason", "no target path")
		return SaveResult{Skipped: true}, nil
	}
	target = absPath(target)

	rev := w.doc.Revision()
	data, err := document.Serialize(w.doc)
	if err != nil {
		return SaveResult{}, err
	}
	if err := w.files.WriteFile(target, data); err != nil {
		return SaveResult{}, fmt.Errorf("save: %w", err)
	}

	w.path = target
	// Save runs on the event loop, so rev always matches here. The guard only
	// matters for a caller that writes off the loop.
	w.doc.MarkSaved(rev)
	w.log.V(1).Info("document saved", "path", target, "bytes", len(data))
	w.remember(target)
	return SaveResult{Path: target}, nil
}
