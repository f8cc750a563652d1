package parser

import (
	"fmt"

	"github.com/weftml/weft/syntax"
)

// ErrorKind describes the type of parse error.
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrUnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrUnexpectedEOF:
		return "unexpected end of file"
	default:
		return "error"
	}
}

// Error is a parse error carrying the source position it was raised at.
type Error struct {
	Kind   ErrorKind
	Detail string
	Name   string // source file name, if known
	Span   syntax.Span
}

func (e *Error) Error() string {
	name := e.Name
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", name, e.Span.StartLine, e.Span.StartCol, e.Detail)
}

// WithName attaches the source file name to the error.
func (e *Error) WithName(name string) *Error {
	e.Name = name
	return e
}
