package compiler

import (
	"fmt"

	"github.com/weftml/weft/syntax"
)

// Error is a compile error carrying the .weft source position it refers
// to. Positions point into the template source, never into the generated
// Go file.
type Error struct {
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

func errorAt(name string, sp syntax.Span, format string, args ...any) *Error {
	return &Error{Detail: fmt.Sprintf(format, args...), Name: name, Span: sp}
}
