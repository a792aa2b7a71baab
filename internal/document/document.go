package document

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Entry is one key/value pair in document order.
type Entry struct {
	Key   string
	Value Value
}

// Document is an insertion-ordered flat key/value mapping. It is the only
// authoritative copy of the data; projections are derived from it.
type Document struct {
	keys     []string
	values   map[string]Value
	dirty    bool
	revision uint64
	undo     *snapshot
}

// snapshot is the single undo slot: the document as it was before the last
// mutation.
type snapshot struct {
	keys   []string
	values map[string]Value
}

// New returns an empty document.
func New() *Document {
	return &Document{values: make(map[string]Value)}
}

func (d *Document) Len() int { return len(d.keys) }

// Keys returns a copy of the keys in document order.
func (d *Document) Keys() []string {
	return slices.Clone(d.keys)
}

func (d *Document) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Document) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Entries returns a copy of all pairs in document order.
func (d *Document) Entries() []Entry {
	out := make([]Entry, len(d.keys))
	for i, k := range d.keys {
		out[i] = Entry{Key: k, Value: d.values[k]}
	}
	return out
}

// Dirty reports whether the document changed since it was loaded or saved.
func (d *Document) Dirty() bool { return d.dirty }

// Revision increases by one on every mutation.
func (d *Document) Revision() uint64 { return d.revision }

// MarkSaved clears the dirty flag if no mutation happened after rev was read.
func (d *Document) MarkSaved(rev uint64) bool {
	if rev != d.revision {
		return false
	}
	d.dirty = false
	return true
}

func (d *Document) CanUndo() bool { return d.undo != nil }

// --- Mutations ---

// RenameKey moves the value stored at oldKey to newKey. An empty newKey or one
// equal to oldKey is a no-op. When newKey already exists its value is
// overwritten in place and oldKey disappears; otherwise newKey is appended.
func (d *Document) RenameKey(oldKey, newKey string) error {
	if newKey == "" || newKey == oldKey {
		return nil
	}
	v, ok := d.values[oldKey]
	if !ok {
		return fmt.Errorf("rename %q: %w", oldKey, ErrKeyNotFound)
	}
	d.checkpoint()
	d.remove(oldKey)
	d.put(newKey, v)
	d.touch()
	return nil
}

// SetValue coerces raw and stores it at key, keeping the key's position.
// It reports false without touching the document when the coerced value is
// equal to the current one.
func (d *Document) SetValue(key, raw string) (bool, error) {
	cur, ok := d.values[key]
	if !ok {
		return false, fmt.Errorf("set %q: %w", key, ErrKeyNotFound)
	}
	next := Coerce(raw)
	if next.Equal(cur) {
		return false, nil
	}
	d.checkpoint()
	d.values[key] = next
	d.touch()
	return true, nil
}

// Insert appends a new entry with the coerced raw value.
func (d *Document) Insert(key, raw string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if d.Has(key) {
		return fmt.Errorf("insert %q: %w", key, ErrKeyExists)
	}
	d.checkpoint()
	d.put(key, Coerce(raw))
	d.touch()
	return nil
}

func (d *Document) Delete(key string) error {
	if !d.Has(key) {
		return fmt.Errorf("delete %q: %w", key, ErrKeyNotFound)
	}
	d.checkpoint()
	d.remove(key)
	d.touch()
	return nil
}

// SortByKeyCaseInsensitive orders entries by lowercased key. Keys that compare
// equal keep their relative order.
func (d *Document) SortByKeyCaseInsensitive() {
	sorted := slices.Clone(d.keys)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i]) < strings.ToLower(sorted[j])
	})
	if slices.Equal(sorted, d.keys) {
		return
	}
	d.checkpoint()
	d.keys = sorted
	d.touch()
}

// Undo restores the document to its state before the last mutation. There is
// one slot: a second Undo without an intervening mutation does nothing.
func (d *Document) Undo() bool {
	if d.undo == nil {
		return false
	}
	d.keys = d.undo.keys
	d.values = d.undo.values
	d.undo = nil
	d.touch()
	return true
}

// --- Internals ---

// put inserts or overwrites without recording history. Existing keys keep
// their position.
func (d *Document) put(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

func (d *Document) remove(key string) {
	delete(d.values, key)
	if i := slices.Index(d.keys, key); i >= 0 {
		d.keys = slices.Delete(d.keys, i, i+1)
	}
}

func (d *Document) checkpoint() {
	values := make(map[string]Value, len(d.values))
	for k, v := range d.values {
		values[k] = v
	}
	d.undo = &snapshot{keys: slices.Clone(d.keys), values: values}
}

func (d *Document) touch() {
	d.dirty = true
	d.revision++
}
