package ir

import (
	"fmt"
)

// ErrorKind classifies compilation errors.
type ErrorKind uint8

const (
	// KindSyntax is a malformed directive, illegal nesting or bad comment.
	KindSyntax ErrorKind = iota
	// KindReference is a lookup of an unknown block, shader or program name.
	KindReference
	// KindSemantic is a duplicate name, invalid type or stage conflict.
	KindSemantic
	// KindConsistency is a cross-entity violation found during validation.
	KindConsistency
	// KindCycle is a cyclic code-block dependency.
	KindCycle
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindReference:
		return "reference"
	case KindSemantic:
		return "semantic"
	case KindConsistency:
		return "consistency"
	case KindCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// Error is a compilation error with source location information.
type Error struct {
	Kind    ErrorKind
	Message string
	Path    string
	Line    int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" && e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
}

// Errorf creates an Error with a formatted message.
func Errorf(kind ErrorKind, path string, line int, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
		Line:    line,
	}
}

// ErrorList collects errors that are reported together, such as the
// membership violations found during validation.
type ErrorList []*Error

// Error implements the error interface.
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	if len(el) == 1 {
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
}

// Add adds an error to the list.
func (el *ErrorList) Add(err *Error) {
	*el = append(*el, err)
}

// HasErrors returns true if there are any errors.
func (el ErrorList) HasErrors() bool {
	return len(el) > 0
}
