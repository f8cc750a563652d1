// Package parser turns .weft template source into a syntax tree.
//
// The .weft grammar mixes a small structural language (elements, control
// forms, component calls) with opaque Go expressions. The parser captures
// the Go parts verbatim: it tracks bracket depth and skips string, rune,
// and comment syntax, but leaves validating the captured code to the
// compiler. Positions are tracked per byte so every node and diagnostic
// carries an accurate syntax.Span.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/weftml/weft"
	"github.com/weftml/weft/ast"
	"github.com/weftml/weft/syntax"
)

// maxDepth bounds template nesting to keep recursion in check.
const maxDepth = 150

// Parse parses .weft source into a File. The name identifies the source
// in error messages.
func Parse(source, name string) (*ast.File, error) {
	p := &parser{source: source, name: name, line: 1}
	return p.parseFile()
}

type parser struct {
	source string
	name   string
	pos    int
	line   uint16 // current line (1-indexed)
	col    uint16 // current column (0-indexed at line start)
	depth  int
}

// mark is a saved cursor position.
type mark struct {
	pos  int
	line uint16
	col  uint16
}

func (p *parser) mark() mark {
	return mark{pos: p.pos, line: p.line, col: p.col}
}

func (p *parser) resetTo(m mark) {
	p.pos, p.line, p.col = m.pos, m.line, m.col
}

func (p *parser) spanFrom(m mark) syntax.Span {
	return syntax.Span{
		StartLine:   m.line,
		StartCol:    m.col,
		StartOffset: uint32(m.pos),
		EndLine:     p.line,
		EndCol:      p.col,
		EndOffset:   uint32(p.pos),
	}
}

func (p *parser) here() syntax.Span {
	return p.spanFrom(p.mark())
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.source)
}

func (p *parser) rest() string {
	if p.pos >= len(p.source) {
		return ""
	}
	return p.source[p.pos:]
}

func (p *parser) peek() byte {
	if p.pos >= len(p.source) {
		return 0
	}
	return p.source[p.pos]
}

func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.source) {
		return 0
	}
	return p.source[p.pos+n]
}

func (p *parser) advance(n int) {
	end := p.pos + n
	if end > len(p.source) {
		end = len(p.source)
	}
	for _, c := range p.source[p.pos:end] {
		if c == '\n' {
			p.line++
			p.col = 0
		} else if p.col < 65535 {
			p.col++
		}
	}
	p.pos = end
}

func (p *parser) eat(tok string) bool {
	if strings.HasPrefix(p.rest(), tok) {
		p.advance(len(tok))
		return true
	}
	return false
}

func (p *parser) peekKeyword(kw string) bool {
	rest := p.rest()
	if !strings.HasPrefix(rest, kw) {
		return false
	}
	return len(rest) == len(kw) || !isIdentPart(rest[len(kw)])
}

func (p *parser) eatKeyword(kw string) bool {
	if p.peekKeyword(kw) {
		p.advance(len(kw))
		return true
	}
	return false
}

// ident consumes an identifier. The caller checks isIdentStart first.
func (p *parser) ident() string {
	start := p.pos
	for !p.atEnd() && isIdentPart(p.source[p.pos]) {
		p.advance(1)
	}
	return p.source[start:p.pos]
}

// skipTrivia skips whitespace and line and block comments.
func (p *parser) skipTrivia() {
	for !p.atEnd() {
		switch c := p.peek(); {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.advance(1)
		case c == '/' && (p.peekAt(1) == '/' || p.peekAt(1) == '*'):
			p.skipComment()
		default:
			return
		}
	}
}

// skipComment skips one line or block comment. The caller checks the
// two-byte comment opener.
func (p *parser) skipComment() {
	if p.peekAt(1) == '/' {
		if idx := strings.IndexByte(p.rest(), '\n'); idx >= 0 {
			p.advance(idx)
		} else {
			p.advance(len(p.rest()))
		}
		return
	}
	p.advance(2)
	for !p.atEnd() && !strings.HasPrefix(p.rest(), "*/") {
		p.advance(1)
	}
	p.advance(2)
}

func (p *parser) syntaxError(msg string) error {
	return &Error{Kind: ErrSyntax, Detail: msg, Name: p.name, Span: p.here()}
}

func (p *parser) errorAt(sp syntax.Span, msg string) error {
	return &Error{Kind: ErrSyntax, Detail: msg, Name: p.name, Span: sp}
}

func (p *parser) unexpectedEOF(expected string) error {
	return &Error{
		Kind:   ErrUnexpectedEOF,
		Detail: fmt.Sprintf("unexpected end of file, expected %s", expected),
		Name:   p.name,
		Span:   p.here(),
	}
}

// stringLit parses a Go string literal, interpreted or raw, and returns
// its decoded value.
func (p *parser) stringLit() (string, error) {
	m := p.mark()
	switch p.peek() {
	case '"':
		p.advance(1)
		for !p.atEnd() {
			switch p.peek() {
			case '\\':
				p.advance(2)
			case '"':
				p.advance(1)
				v, err := strconv.Unquote(p.source[m.pos:p.pos])
				if err != nil {
					return "", p.errorAt(p.spanFrom(m), "invalid string literal")
				}
				return v, nil
			case '\n':
				return "", p.errorAt(p.spanFrom(m), "newline in string literal")
			default:
				p.advance(1)
			}
		}
		return "", p.unexpectedEOF(`closing '"'`)
	case '`':
		p.advance(1)
		for !p.atEnd() {
			if p.peek() == '`' {
				p.advance(1)
				v, err := strconv.Unquote(p.source[m.pos:p.pos])
				if err != nil {
					return "", p.errorAt(p.spanFrom(m), "invalid string literal")
				}
				return v, nil
			}
			p.advance(1)
		}
		return "", p.unexpectedEOF("closing '`'")
	}
	return "", p.syntaxError("expected string literal")
}

// captureRaw scans an opaque Go fragment until one of the stop tokens
// appears at bracket depth zero, leaving the cursor on the stop. String,
// rune, and comment syntax is skipped so stop characters inside them do
// not end the capture; comments are dropped from the captured text so
// they cannot swallow the code the compiler emits around it. Returns the
// captured text trimmed of surrounding space along with the stop that
// ended it.
func (p *parser) captureRaw(stops ...string) (string, string, error) {
	var sb strings.Builder
	depth := 0
	for !p.atEnd() {
		if depth == 0 {
			for _, stop := range stops {
				if strings.HasPrefix(p.rest(), stop) {
					return strings.TrimSpace(sb.String()), stop, nil
				}
			}
		}
		unitStart := p.pos
		switch p.peek() {
		case '(', '[', '{':
			depth++
			p.advance(1)
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return "", "", p.syntaxError("unbalanced brackets in expression")
			}
			p.advance(1)
		case '"':
			if err := p.skipInterpretedString(); err != nil {
				return "", "", err
			}
		case '`':
			if err := p.skipRawString(); err != nil {
				return "", "", err
			}
		case '\'':
			if err := p.skipRuneLit(); err != nil {
				return "", "", err
			}
		case '/':
			if c := p.peekAt(1); c == '/' || c == '*' {
				p.skipComment()
				sb.WriteByte(' ')
				continue
			}
			p.advance(1)
		default:
			p.advance(1)
		}
		sb.WriteString(p.source[unitStart:p.pos])
	}
	return "", "", p.unexpectedEOF(describeStops(stops))
}

func (p *parser) skipInterpretedString() error {
	p.advance(1)
	for !p.atEnd() {
		switch p.peek() {
		case '\\':
			p.advance(2)
		case '"':
			p.advance(1)
			return nil
		case '\n':
			return p.syntaxError("newline in string literal")
		default:
			p.advance(1)
		}
	}
	return p.unexpectedEOF(`closing '"'`)
}

func (p *parser) skipRawString() error {
	p.advance(1)
	for !p.atEnd() {
		if p.peek() == '`' {
			p.advance(1)
			return nil
		}
		p.advance(1)
	}
	return p.unexpectedEOF("closing '`'")
}

func (p *parser) skipRuneLit() error {
	p.advance(1)
	for !p.atEnd() {
		switch p.peek() {
		case '\\':
			p.advance(2)
		case '\'':
			p.advance(1)
			return nil
		case '\n':
			return p.syntaxError("newline in rune literal")
		default:
			p.advance(1)
		}
	}
	return p.unexpectedEOF(`closing "'"`)
}

func describeStops(stops []string) string {
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = "'" + s + "'"
	}
	return strings.Join(parts, " or ")
}

func (p *parser) parseFile() (*ast.File, error) {
	fileMark := p.mark()

	p.skipTrivia()
	if !p.eatKeyword("package") {
		return nil, p.syntaxError("expected package clause")
	}
	p.skipTrivia()
	if !isIdentStart(p.peek()) {
		return nil, p.syntaxError("expected package name")
	}
	file := &ast.File{Package: p.ident()}

	for {
		p.skipTrivia()
		if p.atEnd() {
			break
		}
		m := p.mark()
		switch {
		case p.eatKeyword("import"):
			imports, err := p.parseImports()
			if err != nil {
				return nil, err
			}
			file.Imports = append(file.Imports, imports...)
		case p.eatKeyword("component"):
			c, err := p.parseComponent(m)
			if err != nil {
				return nil, err
			}
			file.Components = append(file.Components, c)
		default:
			return nil, p.syntaxError("expected component declaration")
		}
	}

	file.Pos = p.spanFrom(fileMark)
	return file, nil
}

func (p *parser) parseImports() ([]ast.Import, error) {
	p.skipTrivia()
	if !p.eat("(") {
		spec, err := p.parseImportSpec()
		if err != nil {
			return nil, err
		}
		return []ast.Import{spec}, nil
	}
	var specs []ast.Import
	for {
		p.skipTrivia()
		if p.atEnd() {
			return nil, p.unexpectedEOF("')' to close import group")
		}
		if p.eat(")") {
			return specs, nil
		}
		spec, err := p.parseImportSpec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
		p.skipTrivia()
		p.eat(";")
	}
}

func (p *parser) parseImportSpec() (ast.Import, error) {
	m := p.mark()
	var alias string
	switch c := p.peek(); {
	case c == '.':
		p.advance(1)
		alias = "."
	case isIdentStart(c):
		alias = p.ident()
	}
	p.skipTrivia()
	if c := p.peek(); c != '"' && c != '`' {
		return ast.Import{}, p.syntaxError("expected import path")
	}
	path, err := p.stringLit()
	if err != nil {
		return ast.Import{}, err
	}
	return ast.Import{Alias: alias, Path: path, Pos: p.spanFrom(m)}, nil
}

func (p *parser) parseComponent(m mark) (*ast.Component, error) {
	p.skipTrivia()
	if !isIdentStart(p.peek()) {
		return nil, p.syntaxError("expected component name")
	}
	name := p.ident()
	if name[0] < 'A' || name[0] > 'Z' {
		return nil, p.syntaxError("component name must start with an uppercase letter")
	}
	p.skipTrivia()
	if !p.eat("(") {
		return nil, p.syntaxError("expected '(' after component name")
	}
	params, _, err := p.captureRaw(")")
	if err != nil {
		return nil, err
	}
	p.advance(1)
	p.skipTrivia()
	if !p.eat("{") {
		return nil, p.syntaxError("expected a body of the component enclosed in `{}`")
	}
	body, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	return &ast.Component{Name: name, Params: params, Body: body, Pos: p.spanFrom(m)}, nil
}

// parseNodes parses body nodes up to and including the closing brace.
func (p *parser) parseNodes() ([]ast.Node, error) {
	var nodes []ast.Node
	for {
		p.skipTrivia()
		if p.atEnd() {
			return nil, p.unexpectedEOF("'}'")
		}
		if p.eat("}") {
			return nodes, nil
		}
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

func (p *parser) parseNode() (ast.Node, error) {
	p.depth++
	if p.depth > maxDepth {
		return nil, p.syntaxError("template too deeply nested")
	}
	defer func() { p.depth-- }()

	if p.atEnd() {
		return nil, p.unexpectedEOF("a template node")
	}

	m := p.mark()
	switch c := p.peek(); {
	case c == '"' || c == '`':
		v, err := p.stringLit()
		if err != nil {
			return nil, err
		}
		return &ast.Text{Value: v, Pos: p.spanFrom(m)}, nil
	case c == '(':
		return p.parseExprNode(m)
	case c == '#':
		return p.parseHashNode(m)
	case c == '@':
		return p.parseAtNode(m)
	case c == '{':
		p.advance(1)
		body, err := p.parseNodes()
		if err != nil {
			return nil, err
		}
		return &ast.Block{Body: body, Pos: p.spanFrom(m)}, nil
	case isIdentStart(c):
		switch {
		case p.peekKeyword("let"):
			return p.parseLet(m)
		case p.peekKeyword("if"):
			return p.parseIf(m)
		case p.peekKeyword("for"):
			return p.parseFor(m)
		case p.peekKeyword("match"):
			return p.parseMatch(m)
		}
		return p.parseElement(m)
	default:
		return nil, p.syntaxError(fmt.Sprintf("unexpected character %q", c))
	}
}

func (p *parser) parseExprNode(m mark) (ast.Node, error) {
	p.advance(1) // (
	code, mode, err := p.captureValueExpr(m, ")")
	if err != nil {
		return nil, err
	}
	return &ast.Expr{Code: code, Mode: mode, Pos: p.spanFrom(m)}, nil
}

func (p *parser) parseHashNode(m mark) (ast.Node, error) {
	p.advance(1) // #
	if p.eat("(") {
		code, _, err := p.captureRaw(")")
		if err != nil {
			return nil, err
		}
		p.advance(1)
		if code == "" {
			return nil, p.errorAt(p.spanFrom(m), "expected expression")
		}
		return &ast.RawExpr{Code: code, Pos: p.spanFrom(m)}, nil
	}
	if !isIdentStart(p.peek()) {
		return nil, p.syntaxError("expected directive name or '(expression)' after '#'")
	}
	switch word := p.ident(); word {
	case "doctype":
		return &ast.Doctype{Pos: p.spanFrom(m)}, nil
	case "children":
		return &ast.Children{Pos: p.spanFrom(m)}, nil
	default:
		return nil, p.errorAt(p.spanFrom(m), fmt.Sprintf("unknown directive #%s", word))
	}
}

func (p *parser) parseAtNode(m mark) (ast.Node, error) {
	p.advance(1) // @
	p.skipTrivia()
	if p.eat("(") {
		code, _, err := p.captureRaw(")")
		if err != nil {
			return nil, err
		}
		p.advance(1)
		if code == "" {
			return nil, p.errorAt(p.spanFrom(m), "expected expression")
		}
		return &ast.Fragment{Expr: code, Pos: p.spanFrom(m)}, nil
	}
	if !isIdentStart(p.peek()) {
		return nil, p.syntaxError("expected component name or '(expression)' after '@'")
	}

	target := p.ident()
	for p.peek() == '.' && isIdentStart(p.peekAt(1)) {
		p.advance(1)
		target += "." + p.ident()
	}

	call := &ast.ComponentCall{Target: target}
	p.skipTrivia()
	if p.eat("(") {
		args, stop, err := p.captureRaw(";", ")")
		if err != nil {
			return nil, err
		}
		call.Args = args
		p.advance(1)
		if stop == ";" {
			attrs, err := p.parseAttrList()
			if err != nil {
				return nil, err
			}
			call.Attrs = attrs
		}
		p.skipTrivia()
	}
	if !p.eat("{") {
		return nil, p.syntaxError("expected a body of the component call enclosed in `{}`")
	}
	body, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	call.Body = body
	call.Pos = p.spanFrom(m)
	return call, nil
}

func (p *parser) parseLet(m mark) (ast.Node, error) {
	p.eatKeyword("let")
	p.skipTrivia()
	binding, stop, err := p.captureRaw("=", ";")
	if err != nil {
		return nil, err
	}
	if binding == "" {
		return nil, p.syntaxError("expected binding after 'let'")
	}
	n := &ast.Let{Binding: binding}
	if stop == "=" {
		p.advance(1)
		value, _, err := p.captureRaw(";")
		if err != nil {
			return nil, err
		}
		if value == "" {
			return nil, p.syntaxError("expected expression after '='")
		}
		n.Value = value
	}
	p.advance(1) // ;
	n.Pos = p.spanFrom(m)
	return n, nil
}

func (p *parser) parseIf(m mark) (ast.Node, error) {
	p.eatKeyword("if")
	cond, err := p.captureHeader("expected condition after 'if'")
	if err != nil {
		return nil, err
	}
	then, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	n := &ast.If{Cond: cond, Then: then}

	for {
		save := p.mark()
		p.skipTrivia()
		em := p.mark()
		if !p.eatKeyword("else") {
			p.resetTo(save)
			break
		}
		p.skipTrivia()
		if p.eatKeyword("if") {
			cond, err := p.captureHeader("expected condition after 'if'")
			if err != nil {
				return nil, err
			}
			body, err := p.parseNodes()
			if err != nil {
				return nil, err
			}
			n.ElseIfs = append(n.ElseIfs, ast.ElseIf{Cond: cond, Body: body, Pos: p.spanFrom(em)})
			continue
		}
		if !p.eat("{") {
			return nil, p.syntaxError("expected '{' or 'if' after 'else'")
		}
		body, err := p.parseNodes()
		if err != nil {
			return nil, err
		}
		n.Else = body
		break
	}

	n.Pos = p.spanFrom(m)
	return n, nil
}

func (p *parser) parseFor(m mark) (ast.Node, error) {
	p.eatKeyword("for")
	header, err := p.captureHeader("expected loop header after 'for'")
	if err != nil {
		return nil, err
	}
	body, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	n := &ast.For{Body: body}
	if pat, over, ok := splitForHeader(header); ok {
		n.Pattern, n.Over = pat, over
	} else {
		n.Header = header
	}
	n.Pos = p.spanFrom(m)
	return n, nil
}

func (p *parser) parseMatch(m mark) (ast.Node, error) {
	p.eatKeyword("match")
	scrutinee, err := p.captureHeader("expected expression after 'match'")
	if err != nil {
		return nil, err
	}
	n := &ast.Match{Expr: scrutinee}
	for {
		p.skipTrivia()
		if p.atEnd() {
			return nil, p.unexpectedEOF("'}'")
		}
		if p.eat("}") {
			break
		}
		arm, err := p.parseMatchArm()
		if err != nil {
			return nil, err
		}
		n.Arms = append(n.Arms, arm)
		p.skipTrivia()
		p.eat(",")
	}
	n.Pos = p.spanFrom(m)
	return n, nil
}

func (p *parser) parseMatchArm() (ast.MatchArm, error) {
	am := p.mark()
	header, stop, err := p.captureRaw("=>", "}")
	if err != nil {
		return ast.MatchArm{}, err
	}
	if stop == "}" {
		return ast.MatchArm{}, p.errorAt(p.spanFrom(am), "expected '=>' in match arm")
	}
	p.advance(2)

	pats, guard := splitArmHeader(header)
	arm := ast.MatchArm{Guard: guard}
	for _, pat := range pats {
		if pat == "_" {
			arm.Wildcard = true
			continue
		}
		arm.Patterns = append(arm.Patterns, pat)
	}
	if len(arm.Patterns) == 0 && !arm.Wildcard {
		return ast.MatchArm{}, p.errorAt(p.spanFrom(am), "expected pattern in match arm")
	}

	p.skipTrivia()
	if p.eat("{") {
		body, err := p.parseNodes()
		if err != nil {
			return ast.MatchArm{}, err
		}
		arm.Body = body
	} else {
		node, err := p.parseNode()
		if err != nil {
			return ast.MatchArm{}, err
		}
		arm.Body = []ast.Node{node}
	}
	arm.Pos = p.spanFrom(am)
	return arm, nil
}

// captureHeader captures a control-form header up to its opening brace
// and consumes the brace.
func (p *parser) captureHeader(missing string) (string, error) {
	p.skipTrivia()
	header, _, err := p.captureRaw("{")
	if err != nil {
		return "", err
	}
	if header == "" {
		return "", p.syntaxError(missing)
	}
	p.advance(1)
	return header, nil
}

func (p *parser) parseElement(m mark) (ast.Node, error) {
	name, err := p.elementName()
	if err != nil {
		return nil, err
	}
	nameSpan := p.spanFrom(m)

	el := &ast.Element{Name: name, Void: weft.IsVoidElement(name)}
	p.skipTrivia()
	if p.eat("(") {
		attrs, err := p.parseAttrList()
		if err != nil {
			return nil, err
		}
		el.Attrs = attrs
		p.skipTrivia()
	}

	switch {
	case p.eat(";"):
		el.SelfClosed = true
	case el.Void:
		return nil, p.errorAt(nameSpan, "expected a `;` after a void element")
	case p.eat("{"):
		body, err := p.parseNodes()
		if err != nil {
			return nil, err
		}
		el.Body = body
	default:
		return nil, p.errorAt(nameSpan, "expected a body of the element enclosed in `{}`")
	}

	el.Pos = p.spanFrom(m)
	return el, nil
}

// elementName parses one or more identifier segments joined by '-'. The
// result is lowercased and underscores become hyphens, so custom_element
// and custom-element name the same tag.
func (p *parser) elementName() (string, error) {
	var sb strings.Builder
	sb.WriteString(p.ident())
	for p.peek() == '-' {
		if !isIdentStart(p.peekAt(1)) {
			return "", p.syntaxError("element name cannot end with hyphen")
		}
		p.advance(1)
		sb.WriteByte('-')
		sb.WriteString(p.ident())
	}
	name := strings.ToLower(strings.ReplaceAll(sb.String(), "_", "-"))
	name = strings.Trim(name, "-")
	if name == "" {
		return "", p.syntaxError("expected element name")
	}
	return name, nil
}

// parseAttrList parses a comma-separated attribute list up to and
// including the closing parenthesis.
func (p *parser) parseAttrList() ([]ast.Attr, error) {
	var attrs []ast.Attr
	for {
		p.skipTrivia()
		if p.atEnd() {
			return nil, p.unexpectedEOF("')'")
		}
		if p.eat(")") {
			return attrs, nil
		}
		a, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
		p.skipTrivia()
		if p.eat(",") {
			continue
		}
		if p.eat(")") {
			return attrs, nil
		}
		return nil, p.syntaxError("expected ',' or ')' after an attribute")
	}
}

func (p *parser) parseAttr() (ast.Attr, error) {
	m := p.mark()
	c := p.peek()

	if c == '.' && p.peekAt(1) == '.' {
		p.advance(2)
		if !p.eat("(") {
			return nil, p.syntaxError("expected '(expression)' after '..'")
		}
		code, _, err := p.captureRaw(")")
		if err != nil {
			return nil, err
		}
		p.advance(1)
		if code == "" {
			return nil, p.errorAt(p.spanFrom(m), "expected expression")
		}
		return &ast.SpreadAttr{Code: code, Pos: p.spanFrom(m)}, nil
	}

	if c == '"' || c == '`' {
		name, err := p.stringLit()
		if err != nil {
			return nil, err
		}
		p.skipTrivia()
		if !p.eat(":") {
			return nil, p.syntaxError("expected ':' after quoted attribute name")
		}
		return p.parseAttrValue(m, name)
	}

	name, err := p.attrName()
	if err != nil {
		return nil, err
	}
	if name == "#attrs" {
		return &ast.AttrsProjection{Pos: p.spanFrom(m)}, nil
	}

	p.skipTrivia()
	switch {
	case p.eat("?"):
		p.skipTrivia()
		if !p.eat(":") {
			return nil, p.syntaxError("expected ':' after '?' in attribute")
		}
		p.skipTrivia()
		code, _, err := p.captureRaw(",", ")")
		if err != nil {
			return nil, err
		}
		if code == "" {
			return nil, p.errorAt(p.spanFrom(m), "expected expression after '?:'")
		}
		return &ast.BoolAttr{Name: name, Code: code, Pos: p.spanFrom(m)}, nil
	case p.eat(":"):
		return p.parseAttrValue(m, name)
	}
	return &ast.StaticAttr{Name: name, Pos: p.spanFrom(m)}, nil
}

func (p *parser) parseAttrValue(m mark, name string) (ast.Attr, error) {
	p.skipTrivia()
	switch c := p.peek(); {
	case c == '"' || c == '`':
		v, err := p.stringLit()
		if err != nil {
			return nil, err
		}
		return &ast.StaticAttr{Name: name, Value: v, HasValue: true, Pos: p.spanFrom(m)}, nil
	case p.eat("("):
		code, mode, err := p.captureValueExpr(m, ")")
		if err != nil {
			return nil, err
		}
		return &ast.ExprAttr{Name: name, Code: code, Mode: mode, Pos: p.spanFrom(m)}, nil
	case p.eat("["):
		code, mode, err := p.captureValueExpr(m, "]")
		if err != nil {
			return nil, err
		}
		return &ast.ExprAttr{Name: name, Code: code, Mode: mode, Optional: true, Pos: p.spanFrom(m)}, nil
	}
	return nil, p.syntaxError("expected string literal, (expression), or [expression] after ':'")
}

// attrName parses an attribute name: an optional @, $, :, or # prefix,
// then identifier segments joined by '-', ':', or '.'. A separator binds
// only when the next character starts an identifier, so `name: "x"` ends
// the name before the value colon while `xlink:href` stays one name.
// Underscores are kept verbatim.
func (p *parser) attrName() (string, error) {
	if p.atEnd() {
		return "", p.syntaxError("expected attribute name")
	}

	var sb strings.Builder
	switch c := p.peek(); c {
	case '@', '$', ':', '#':
		p.advance(1)
		sb.WriteByte(c)
		if !isIdentStart(p.peek()) {
			return "", p.syntaxError(fmt.Sprintf("expected identifier after '%c'", c))
		}
	default:
		if !isIdentStart(c) {
			return "", p.syntaxError("attribute name must start with a letter, '_', '@', '$', ':', or '#'")
		}
	}
	sb.WriteString(p.ident())

	for !p.atEnd() {
		sep := p.peek()
		if sep != '-' && sep != ':' && sep != '.' {
			break
		}
		next := p.peekAt(1)
		if !isIdentStart(next) {
			if sep == '-' {
				return "", p.syntaxError("expected identifier after '-' in attribute name")
			}
			if sep == '.' && next != '.' {
				return "", p.syntaxError("expected identifier after '.' in attribute name")
			}
			break
		}
		p.advance(1)
		sb.WriteByte(sep)
		sb.WriteString(p.ident())
	}
	return sb.String(), nil
}

// captureValueExpr captures a parenthesized or bracketed expression after
// its opening delimiter and splits off a trailing escape mode.
func (p *parser) captureValueExpr(m mark, close string) (string, weft.EscapeMode, error) {
	code, _, err := p.captureRaw(close)
	if err != nil {
		return "", weft.ModeDefault, err
	}
	p.advance(1)
	expr, modeName, hasMode := splitEscapeModeSuffix(code)
	sp := p.spanFrom(m)
	if expr == "" {
		return "", weft.ModeDefault, p.errorAt(sp, "expected expression")
	}
	if !hasMode {
		return expr, weft.ModeDefault, nil
	}
	mode, ok := escapeModeNamed(modeName)
	if !ok {
		return "", weft.ModeDefault, p.errorAt(sp, "invalid escape mode")
	}
	return expr, mode, nil
}

func escapeModeNamed(name string) (weft.EscapeMode, bool) {
	switch name {
	case "raw":
		return weft.ModeRaw, true
	case "html":
		return weft.ModeHTML, true
	case "url":
		return weft.ModeURL, true
	}
	return weft.ModeDefault, false
}

// splitEscapeModeSuffix splits a trailing ": mode" off a captured
// expression. A colon at bracket depth zero cannot occur in a Go
// expression, so its presence always marks a mode suffix.
func splitEscapeModeSuffix(code string) (expr, mode string, found bool) {
	depth := 0
	for i := 0; i < len(code); {
		if depth == 0 && code[i] == ':' {
			return strings.TrimSpace(code[:i]), strings.TrimSpace(code[i+1:]), true
		}
		i = rawSkip(code, i, &depth)
	}
	return code, "", false
}

// splitArmHeader splits a match arm header into its pattern alternatives
// and optional guard. The guard starts at the first depth-zero `if`
// keyword; alternatives split on single depth-zero pipes, so `||` inside
// a pattern needs parentheses.
func splitArmHeader(header string) (pats []string, guard string) {
	patPart := header
	depth := 0
	for i := 0; i < len(header); {
		if depth == 0 && header[i] == 'i' && strings.HasPrefix(header[i:], "if") &&
			(i == 0 || !isIdentPart(header[i-1])) &&
			(i+2 >= len(header) || !isIdentPart(header[i+2])) {
			patPart = header[:i]
			guard = strings.TrimSpace(header[i+2:])
			break
		}
		i = rawSkip(header, i, &depth)
	}

	depth = 0
	start := 0
	for i := 0; i < len(patPart); {
		if depth == 0 && patPart[i] == '|' &&
			(i == 0 || patPart[i-1] != '|') &&
			(i+1 >= len(patPart) || patPart[i+1] != '|') {
			if seg := strings.TrimSpace(patPart[start:i]); seg != "" {
				pats = append(pats, seg)
			}
			i++
			start = i
			continue
		}
		i = rawSkip(patPart, i, &depth)
	}
	if seg := strings.TrimSpace(patPart[start:]); seg != "" {
		pats = append(pats, seg)
	}
	return pats, guard
}

// splitForHeader recognizes "PAT in EXPR" loop headers. The pattern side
// must be a plain identifier list; any other shape falls back to a
// verbatim Go header.
func splitForHeader(header string) (pat, over string, ok bool) {
	depth := 0
	for i := 0; i < len(header); {
		if depth == 0 && header[i] == 'i' && strings.HasPrefix(header[i:], "in") &&
			(i == 0 || !isIdentPart(header[i-1])) &&
			(i+2 >= len(header) || !isIdentPart(header[i+2])) {
			lhs := strings.TrimSpace(header[:i])
			rhs := strings.TrimSpace(header[i+2:])
			if lhs != "" && rhs != "" && isIdentList(lhs) {
				return lhs, rhs, true
			}
		}
		i = rawSkip(header, i, &depth)
	}
	return "", "", false
}

func isIdentList(s string) bool {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || !isIdentString(part) {
			return false
		}
	}
	return true
}

func isIdentString(s string) bool {
	if !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}

// rawSkip returns the index just past the syntactic unit starting at i in
// a Go source fragment: a string, rune, or comment runs to its end, a
// bracket adjusts *depth, anything else is a single byte.
func rawSkip(s string, i int, depth *int) int {
	switch s[i] {
	case '(', '[', '{':
		*depth++
		return i + 1
	case ')', ']', '}':
		*depth--
		return i + 1
	case '"':
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case '"':
				return j + 1
			}
		}
		return len(s)
	case '`':
		if j := strings.IndexByte(s[i+1:], '`'); j >= 0 {
			return i + 2 + j
		}
		return len(s)
	case '\'':
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case '\'':
				return j + 1
			}
		}
		return len(s)
	case '/':
		if i+1 < len(s) {
			switch s[i+1] {
			case '/':
				if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
					return i + j + 1
				}
				return len(s)
			case '*':
				if j := strings.Index(s[i+2:], "*/"); j >= 0 {
					return i + 4 + j
				}
				return len(s)
			}
		}
	}
	return i + 1
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
