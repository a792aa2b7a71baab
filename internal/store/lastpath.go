package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LastPathFileName is the sidecar file holding the last loaded or saved path.
const LastPathFileName = "last_file_path.json"

// LastPath persists a single path as a JSON string.
type LastPath struct {
	file string
}

func NewLastPath(file string) *LastPath {
	return &LastPath{file: file}
}

// DefaultLastPathFile returns the sidecar location under the user config dir.
func DefaultLastPathFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "jsonedit", LastPathFileName), nil
}

// File returns where the record is stored.
func (l *LastPath) File() string { return l.file }

// Load returns the recorded path, or "" when nothing was recorded yet.
func (l *LastPath) Load() (string, error) {
	data, err := os.ReadFile(l.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read last path: %w", err)
	}
	var path string
	if err := json.Unmarshal(data, &path); err != nil {
		return "", fmt.Errorf("parse last path: %w", err)
	}
	return path, nil
}

func (l *LastPath) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(l.file), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.Marshal(path)
	if err != nil {
		return fmt.Errorf("marshal last path: %w", err)
	}
	return os.WriteFile(l.file, data, 0o600)
}
