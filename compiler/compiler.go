// Package compiler lowers parsed .weft templates to Go source files.
//
// Every component declaration becomes a Go function returning a
// weft.Component. Template control flow (if, for, match, let) lowers to
// native Go control flow; embedded Go expressions are spliced verbatim
// after a well-formedness check with go/parser, so the Go compiler
// type-checks them in the generated file. Markup operations lower to calls
// against the weft runtime formatter.
package compiler

import (
	"bytes"
	"fmt"
	"go/format"
	goparser "go/parser"
	"go/scanner"
	"os"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/weftml/weft"
	"github.com/weftml/weft/ast"
	"github.com/weftml/weft/parser"
	"github.com/weftml/weft/syntax"
)

// weftImportPath is the runtime package every generated file imports.
const weftImportPath = "github.com/weftml/weft"

// Extension is the template file extension and GeneratedSuffix the suffix
// of the Go files the compiler writes next to them.
const (
	Extension       = ".weft"
	GeneratedSuffix = "_weft.go"
)

// OutputPath returns the generated-file path for a .weft source path.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, Extension) + GeneratedSuffix
}

// Compile parses and lowers .weft source to formatted Go source. The name
// identifies the template in diagnostics.
func Compile(src []byte, name string) ([]byte, error) {
	file, err := parser.Parse(string(src), name)
	if err != nil {
		return nil, err
	}
	e := &emitter{buf: new(bytes.Buffer), file: file, name: name}
	if err := e.emitFile(); err != nil {
		return nil, err
	}
	out, err := format.Source(e.buf.Bytes())
	if err != nil {
		// A format failure means a verbatim header or binding spliced
		// something that is not valid Go at its position.
		return nil, fmt.Errorf("%s: generated code does not parse: %w", name, err)
	}
	return out, nil
}

// CompileFile compiles one .weft file and returns the generated Go source.
func CompileFile(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(src, path)
}

// WriteFile compiles path and atomically writes the generated Go file next
// to it, returning the output path.
func WriteFile(path string) (string, error) {
	if !strings.HasSuffix(path, Extension) {
		return "", fmt.Errorf("%s: not a %s file", path, Extension)
	}
	code, err := CompileFile(path)
	if err != nil {
		return "", err
	}
	out := OutputPath(path)
	if err := atomic.WriteFile(out, bytes.NewReader(code)); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	return out, nil
}

type emitter struct {
	buf  *bytes.Buffer
	file *ast.File
	name string
}

func (e *emitter) printf(format string, args ...any) {
	fmt.Fprintf(e.buf, format, args...)
}

func (e *emitter) line(s string) {
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

func (e *emitter) errf(sp syntax.Span, format string, args ...any) *Error {
	return errorAt(e.name, sp, format, args...)
}

// checkExpr validates an opaque Go expression captured by the parser. The
// diagnostic carries the .weft span of the node the expression came from.
func (e *emitter) checkExpr(code string, sp syntax.Span) error {
	if _, err := goparser.ParseExpr(code); err != nil {
		return e.errf(sp, "invalid Go expression %q: %s", code, exprDiag(err))
	}
	return nil
}

// exprDiag strips go/parser's synthetic position prefix, which points into
// the isolated expression rather than the template.
func exprDiag(err error) string {
	var list scanner.ErrorList
	if ok := errorsAs(err, &list); ok && len(list) > 0 {
		return list[0].Msg
	}
	return err.Error()
}

func errorsAs(err error, target *scanner.ErrorList) bool {
	if list, ok := err.(scanner.ErrorList); ok {
		*target = list
		return true
	}
	return false
}

func (e *emitter) emitFile() error {
	e.line("// Code generated by weft; DO NOT EDIT.")
	e.line("")
	e.printf("package %s\n\n", e.file.Package)
	e.line("import (")
	e.printf("\t%s\n", strconv.Quote(weftImportPath))
	for _, imp := range e.file.Imports {
		if imp.Path == weftImportPath {
			continue
		}
		if imp.Alias != "" {
			e.printf("\t%s %s\n", imp.Alias, strconv.Quote(imp.Path))
		} else {
			e.printf("\t%s\n", strconv.Quote(imp.Path))
		}
	}
	e.line(")")
	e.line("")
	for _, c := range e.file.Components {
		if err := e.emitComponent(c); err != nil {
			return err
		}
		e.line("")
	}
	return nil
}

func (e *emitter) emitComponent(c *ast.Component) error {
	if c.Params != "" {
		if _, err := goparser.ParseExpr("func(" + c.Params + ") {}"); err != nil {
			return e.errf(c.Span(), "invalid parameter list %q: %s", c.Params, exprDiag(err))
		}
	}
	e.printf("func %s(%s) weft.Component {\n", c.Name, c.Params)
	e.line("return weft.ComponentFunc(func(f *weft.Formatter, attrs, children weft.RenderFunc) error {")
	if err := e.emitNodes(c.Body); err != nil {
		return err
	}
	e.line("return nil")
	e.line("})")
	e.line("}")
	return nil
}

func (e *emitter) emitNodes(nodes []ast.Node) error {
	for _, n := range nodes {
		if err := e.emitNode(n); err != nil {
			return err
		}
	}
	return nil
}

// checked wraps a fallible runtime call in the generated error check.
func (e *emitter) checked(call string) {
	e.printf("if err := %s; err != nil {\nreturn err\n}\n", call)
}

func (e *emitter) emitNode(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Text:
		// Static text is escaped once at compile time.
		e.checked(fmt.Sprintf("f.WriteContent(%s, weft.ModeRaw)", strconv.Quote(weft.EscapeHTML(n.Value))))
		return nil
	case *ast.Expr:
		if err := e.checkExpr(n.Code, n.Span()); err != nil {
			return err
		}
		e.checked(fmt.Sprintf("f.WriteContent(%s, %s)", n.Code, modeExpr(n.Mode)))
		return nil
	case *ast.RawExpr:
		if err := e.checkExpr(n.Code, n.Span()); err != nil {
			return err
		}
		e.checked(fmt.Sprintf("f.WriteContent(%s, weft.ModeRaw)", n.Code))
		return nil
	case *ast.Fragment:
		if err := e.checkExpr(n.Expr, n.Span()); err != nil {
			return err
		}
		e.checked(fmt.Sprintf("f.WriteFragment(%s)", n.Expr))
		return nil
	case *ast.Doctype:
		e.checked("f.WriteContent(weft.Doctype, weft.ModeRaw)")
		return nil
	case *ast.Children:
		e.checked("children(f)")
		return nil
	case *ast.Element:
		return e.emitElement(n)
	case *ast.Block:
		e.line("{")
		if err := e.emitNodes(n.Body); err != nil {
			return err
		}
		e.line("}")
		return nil
	case *ast.Let:
		return e.emitLet(n)
	case *ast.If:
		return e.emitIf(n)
	case *ast.For:
		return e.emitFor(n)
	case *ast.Match:
		return e.emitMatch(n)
	case *ast.ComponentCall:
		return e.emitComponentCall(n)
	default:
		return e.errf(n.Span(), "unsupported node %T", n)
	}
}

func (e *emitter) emitElement(n *ast.Element) error {
	e.printf("f.StartElement(%s)\n", strconv.Quote(n.Name))
	for _, a := range n.Attrs {
		if err := e.emitAttr(a); err != nil {
			return err
		}
	}
	if err := e.emitNodes(n.Body); err != nil {
		return err
	}
	e.checked("f.EndElement()")
	return nil
}

func (e *emitter) emitAttr(a ast.Attr) error {
	switch a := a.(type) {
	case *ast.StaticAttr:
		if !a.HasValue {
			e.checked(fmt.Sprintf("f.WriteBooleanAttribute(%s, true)", strconv.Quote(a.Name)))
			return nil
		}
		// Literal values still pass through the runtime so URL attributes
		// get the allow-list treatment.
		e.checked(fmt.Sprintf("f.WriteAttribute(%s, %s, weft.ModeDefault)",
			strconv.Quote(a.Name), strconv.Quote(a.Value)))
		return nil
	case *ast.ExprAttr:
		if err := e.checkExpr(a.Code, a.Span()); err != nil {
			return err
		}
		op := "WriteAttribute"
		if a.Optional {
			op = "WriteOptionalAttribute"
		}
		e.checked(fmt.Sprintf("f.%s(%s, %s, %s)", op, strconv.Quote(a.Name), a.Code, modeExpr(a.Mode)))
		return nil
	case *ast.BoolAttr:
		if err := e.checkExpr(a.Code, a.Span()); err != nil {
			return err
		}
		e.checked(fmt.Sprintf("f.WriteBooleanAttribute(%s, %s)", strconv.Quote(a.Name), a.Code))
		return nil
	case *ast.SpreadAttr:
		if err := e.checkExpr(a.Code, a.Span()); err != nil {
			return err
		}
		e.checked(fmt.Sprintf("f.SpreadAttributes(%s)", a.Code))
		return nil
	case *ast.AttrsProjection:
		e.checked("attrs(f)")
		return nil
	default:
		return e.errf(a.Span(), "unsupported attribute %T", a)
	}
}

func (e *emitter) emitLet(n *ast.Let) error {
	if n.Value == "" {
		e.printf("var %s\n", n.Binding)
		return nil
	}
	if err := e.checkExpr(n.Value, n.Span()); err != nil {
		return err
	}
	e.printf("%s := %s\n", n.Binding, n.Value)
	return nil
}

func (e *emitter) emitIf(n *ast.If) error {
	e.printf("if %s {\n", n.Cond)
	if err := e.emitNodes(n.Then); err != nil {
		return err
	}
	for _, ei := range n.ElseIfs {
		e.printf("} else if %s {\n", ei.Cond)
		if err := e.emitNodes(ei.Body); err != nil {
			return err
		}
	}
	if n.Else != nil {
		e.line("} else {")
		if err := e.emitNodes(n.Else); err != nil {
			return err
		}
	}
	e.line("}")
	return nil
}

func (e *emitter) emitFor(n *ast.For) error {
	if n.Header != "" {
		e.printf("for %s {\n", n.Header)
	} else {
		if err := e.checkExpr(n.Over, n.Span()); err != nil {
			return err
		}
		if strings.Contains(n.Pattern, ",") {
			e.printf("for %s := range %s {\n", n.Pattern, n.Over)
		} else {
			e.printf("for _, %s := range %s {\n", n.Pattern, n.Over)
		}
	}
	if err := e.emitNodes(n.Body); err != nil {
		return err
	}
	e.line("}")
	return nil
}

func (e *emitter) emitMatch(n *ast.Match) error {
	// A tagged Go switch picks `default` last regardless of position, so
	// it only preserves first-match-wins order when guards are absent and
	// any wildcard arm comes last.
	for i, a := range n.Arms {
		if a.Guard != "" || (a.Wildcard && i < len(n.Arms)-1) {
			return e.emitOrderedSwitch(n)
		}
	}
	return e.emitTagSwitch(n)
}

// emitTagSwitch lowers a match to a tagged Go switch. An arm whose
// alternatives include `_` matches everything, so it lowers to `default`
// whatever else it lists.
func (e *emitter) emitTagSwitch(n *ast.Match) error {
	if err := e.checkExpr(n.Expr, n.Span()); err != nil {
		return err
	}
	e.printf("switch %s {\n", n.Expr)
	for _, a := range n.Arms {
		if a.Wildcard {
			e.line("default:")
		} else {
			for _, pat := range a.Patterns {
				if err := e.checkExpr(pat, a.Span()); err != nil {
					return err
				}
			}
			e.printf("case %s:\n", strings.Join(a.Patterns, ", "))
		}
		if err := e.emitNodes(a.Body); err != nil {
			return err
		}
	}
	e.line("}")
	return nil
}

// emitOrderedSwitch lowers a match to a bool switch over a captured
// scrutinee. Cases in a `switch {}` are tried in source order, which keeps
// first-match-wins even for guards and for wildcard arms that are not
// last; an unguarded wildcard in the middle lowers to `case true` so the
// arms after it stay unreachable.
func (e *emitter) emitOrderedSwitch(n *ast.Match) error {
	if err := e.checkExpr(n.Expr, n.Span()); err != nil {
		return err
	}
	e.line("{")
	e.printf("__weftV := %s\n", n.Expr)
	e.line("_ = __weftV")
	e.line("switch {")
	last := len(n.Arms) - 1
	for i, a := range n.Arms {
		if a.Guard != "" {
			if err := e.checkExpr(a.Guard, a.Span()); err != nil {
				return err
			}
		}
		switch {
		case a.Wildcard && a.Guard == "" && i == last:
			e.line("default:")
		case a.Wildcard && a.Guard == "":
			e.line("case true:")
		case a.Wildcard:
			e.printf("case %s:\n", a.Guard)
		default:
			var alts []string
			for _, pat := range a.Patterns {
				if err := e.checkExpr(pat, a.Span()); err != nil {
					return err
				}
				alts = append(alts, fmt.Sprintf("__weftV == (%s)", pat))
			}
			cond := strings.Join(alts, " || ")
			if a.Guard != "" {
				cond = "(" + cond + ") && (" + a.Guard + ")"
			}
			e.printf("case %s:\n", cond)
		}
		if err := e.emitNodes(a.Body); err != nil {
			return err
		}
	}
	e.line("}")
	e.line("}")
	return nil
}

func (e *emitter) emitComponentCall(n *ast.ComponentCall) error {
	call := fmt.Sprintf("(%s)(%s)", n.Target, n.Args)
	if err := e.checkExpr(call, n.Span()); err != nil {
		return err
	}
	attrsArg := "nil"
	if len(n.Attrs) > 0 {
		closure, err := e.closure(func() error {
			for _, a := range n.Attrs {
				if err := e.emitAttr(a); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		attrsArg = closure
	}
	childrenArg := "nil"
	if len(n.Body) > 0 {
		closure, err := e.closure(func() error {
			return e.emitNodes(n.Body)
		})
		if err != nil {
			return err
		}
		childrenArg = closure
	}
	e.checked(fmt.Sprintf("weft.RenderComponent(f, %s(%s), %s, %s)",
		n.Target, n.Args, attrsArg, childrenArg))
	return nil
}

// closure emits body into a fresh buffer wrapped as a render callback and
// returns it as an expression string.
func (e *emitter) closure(body func() error) (string, error) {
	prev := e.buf
	e.buf = new(bytes.Buffer)
	defer func() { e.buf = prev }()
	e.line("func(f *weft.Formatter) error {")
	if err := body(); err != nil {
		return "", err
	}
	e.line("return nil")
	e.buf.WriteString("}")
	return e.buf.String(), nil
}

func modeExpr(m weft.EscapeMode) string {
	switch m {
	case weft.ModeHTML:
		return "weft.ModeHTML"
	case weft.ModeRaw:
		return "weft.ModeRaw"
	case weft.ModeURL:
		return "weft.ModeURL"
	default:
		return "weft.ModeDefault"
	}
}
