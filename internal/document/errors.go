package document

import (
	"errors"
	"fmt"
)

var (
	// ErrParse marks every failure to turn raw text into a Document.
	ErrParse       = errors.New("parse document")
	ErrNestedValue = errors.New("nested values are not supported")
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyExists   = errors.New("key already exists")
	ErrEmptyKey    = errors.New("key must not be empty")
)

// ParseError reports malformed or non-object JSON. Offset is the byte
// position the decoder had reached, or -1 when unknown.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parse document at byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("parse document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets callers match any parse failure with errors.Is(err, ErrParse).
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
