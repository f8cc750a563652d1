package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/weftml/weft"
	"github.com/weftml/weft/ast"
)

func parseBody(t *testing.T, body string) []ast.Node {
	t.Helper()
	file, err := Parse("package views\ncomponent C() {\n"+body+"\n}", "test.weft")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(file.Components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(file.Components))
	}
	return file.Components[0].Body
}

func parseErr(t *testing.T, body string) error {
	t.Helper()
	_, err := Parse("package views\ncomponent C() {\n"+body+"\n}", "test.weft")
	if err == nil {
		t.Fatal("expected parse error, got none")
	}
	return err
}

func TestParseFile(t *testing.T) {
	src := `package views

import "strings"

import (
	"fmt"
	str "strings"
	. "math"
	_ "embed"
)

component Hello(name string) {
	span { (name) }
}

component Goodbye() {
	"bye"
}
`
	file, err := Parse(src, "views.weft")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if file.Package != "views" {
		t.Errorf("expected package %q, got %q", "views", file.Package)
	}
	if len(file.Imports) != 5 {
		t.Fatalf("expected 5 imports, got %d", len(file.Imports))
	}
	wantImports := []ast.Import{
		{Path: "strings"},
		{Path: "fmt"},
		{Alias: "str", Path: "strings"},
		{Alias: ".", Path: "math"},
		{Alias: "_", Path: "embed"},
	}
	for i, want := range wantImports {
		got := file.Imports[i]
		if got.Alias != want.Alias || got.Path != want.Path {
			t.Errorf("import %d: expected %q %q, got %q %q", i, want.Alias, want.Path, got.Alias, got.Path)
		}
	}
	if len(file.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(file.Components))
	}
	if file.Components[0].Name != "Hello" {
		t.Errorf("expected component Hello, got %q", file.Components[0].Name)
	}
	if file.Components[0].Params != "name string" {
		t.Errorf("expected params %q, got %q", "name string", file.Components[0].Params)
	}
	if file.Components[1].Name != "Goodbye" || file.Components[1].Params != "" {
		t.Errorf("unexpected second component %q(%q)", file.Components[1].Name, file.Components[1].Params)
	}
	if file.Components[0].Pos.StartLine != 12 {
		t.Errorf("expected component at line 12, got %d", file.Components[0].Pos.StartLine)
	}
}

func TestParseFileErrors(t *testing.T) {
	for _, tt := range []struct {
		src  string
		want string
	}{
		{"component C() {}", "expected package clause"},
		{"package 1", "expected package name"},
		{"package p\nfunc f() {}", "expected component declaration"},
		{"package p\ncomponent c() {}", "component name must start with an uppercase letter"},
		{"package p\ncomponent C {}", "expected '(' after component name"},
		{"package p\ncomponent C()", "expected a body of the component enclosed in `{}`"},
		{"package p\nimport 7", "expected import path"},
	} {
		_, err := Parse(tt.src, "test.weft")
		if err == nil {
			t.Errorf("%q: expected error", tt.src)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%q: expected error containing %q, got %q", tt.src, tt.want, err.Error())
		}
	}
}

func TestParseText(t *testing.T) {
	body := parseBody(t, "\"Hello, <world> & friends\"\n`raw \"text\"`\n\"tab\\there\"")
	if len(body) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(body))
	}
	want := []string{"Hello, <world> & friends", `raw "text"`, "tab\there"}
	for i, w := range want {
		txt, ok := body[i].(*ast.Text)
		if !ok {
			t.Fatalf("node %d: expected *ast.Text, got %T", i, body[i])
		}
		if txt.Value != w {
			t.Errorf("node %d: expected %q, got %q", i, w, txt.Value)
		}
	}
}

func TestParseExpr(t *testing.T) {
	body := parseBody(t, "(name)\n(content: raw)\n(s: html)\n(link: url)")
	if len(body) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(body))
	}
	want := []struct {
		code string
		mode weft.EscapeMode
	}{
		{"name", weft.ModeDefault},
		{"content", weft.ModeRaw},
		{"s", weft.ModeHTML},
		{"link", weft.ModeURL},
	}
	for i, w := range want {
		e, ok := body[i].(*ast.Expr)
		if !ok {
			t.Fatalf("node %d: expected *ast.Expr, got %T", i, body[i])
		}
		if e.Code != w.code || e.Mode != w.mode {
			t.Errorf("node %d: expected (%q, %v), got (%q, %v)", i, w.code, w.mode, e.Code, e.Mode)
		}
	}
}

func TestParseExprErrors(t *testing.T) {
	if err := parseErr(t, "(x: xml)"); !strings.Contains(err.Error(), "invalid escape mode") {
		t.Errorf("expected invalid escape mode error, got %q", err.Error())
	}
	if err := parseErr(t, "()"); !strings.Contains(err.Error(), "expected expression") {
		t.Errorf("expected expression error, got %q", err.Error())
	}
}

func TestParseHashDirectives(t *testing.T) {
	body := parseBody(t, "#doctype\n#children\n#(trusted)")
	if len(body) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(body))
	}
	if _, ok := body[0].(*ast.Doctype); !ok {
		t.Errorf("expected *ast.Doctype, got %T", body[0])
	}
	if _, ok := body[1].(*ast.Children); !ok {
		t.Errorf("expected *ast.Children, got %T", body[1])
	}
	raw, ok := body[2].(*ast.RawExpr)
	if !ok {
		t.Fatalf("expected *ast.RawExpr, got %T", body[2])
	}
	if raw.Code != "trusted" {
		t.Errorf("expected code %q, got %q", "trusted", raw.Code)
	}

	if err := parseErr(t, "#frag"); !strings.Contains(err.Error(), "unknown directive #frag") {
		t.Errorf("expected unknown directive error, got %q", err.Error())
	}
}

func TestParseFragment(t *testing.T) {
	body := parseBody(t, "@(view)")
	if len(body) != 1 {
		t.Fatalf("expected 1 node, got %d", len(body))
	}
	frag, ok := body[0].(*ast.Fragment)
	if !ok {
		t.Fatalf("expected *ast.Fragment, got %T", body[0])
	}
	if frag.Expr != "view" {
		t.Errorf("expected expr %q, got %q", "view", frag.Expr)
	}
}

func TestParseElement(t *testing.T) {
	body := parseBody(t, `div(id: "main") {
		span { "hi" }
		p;
	}`)
	if len(body) != 1 {
		t.Fatalf("expected 1 node, got %d", len(body))
	}
	div, ok := body[0].(*ast.Element)
	if !ok {
		t.Fatalf("expected *ast.Element, got %T", body[0])
	}
	if div.Name != "div" || div.Void || div.SelfClosed {
		t.Errorf("unexpected element %+v", div)
	}
	if len(div.Attrs) != 1 || len(div.Body) != 2 {
		t.Fatalf("expected 1 attr and 2 children, got %d and %d", len(div.Attrs), len(div.Body))
	}
	span := div.Body[0].(*ast.Element)
	if span.Name != "span" || len(span.Body) != 1 {
		t.Errorf("unexpected span %+v", span)
	}
	para := div.Body[1].(*ast.Element)
	if para.Name != "p" || !para.SelfClosed || para.Void {
		t.Errorf("unexpected p %+v", para)
	}
}

func TestParseVoidElements(t *testing.T) {
	body := parseBody(t, `br;
img(src: "cat.png", alt: "A cat");`)
	if len(body) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(body))
	}
	br := body[0].(*ast.Element)
	if br.Name != "br" || !br.Void || !br.SelfClosed {
		t.Errorf("unexpected br %+v", br)
	}
	img := body[1].(*ast.Element)
	if img.Name != "img" || !img.Void || len(img.Attrs) != 2 {
		t.Errorf("unexpected img %+v", img)
	}

	if err := parseErr(t, `br { "x" }`); !strings.Contains(err.Error(), "expected a `;` after a void element") {
		t.Errorf("expected void element error, got %q", err.Error())
	}
	if err := parseErr(t, "div"); !strings.Contains(err.Error(), "expected a body of the element enclosed in `{}`") {
		t.Errorf("expected element body error, got %q", err.Error())
	}
}

func TestParseElementNames(t *testing.T) {
	for _, tt := range []struct {
		src  string
		want string
	}{
		{"custom_element;", "custom-element"},
		{"custom-element;", "custom-element"},
		{"nav-bar;", "nav-bar"},
		{"MyWidget;", "mywidget"},
		{"h1;", "h1"},
	} {
		body := parseBody(t, tt.src)
		el := body[0].(*ast.Element)
		if el.Name != tt.want {
			t.Errorf("%q: expected name %q, got %q", tt.src, tt.want, el.Name)
		}
	}

	if err := parseErr(t, "nav- ;"); !strings.Contains(err.Error(), "element name cannot end with hyphen") {
		t.Errorf("expected hyphen error, got %q", err.Error())
	}
}

func TestParseBlock(t *testing.T) {
	body := parseBody(t, `{
		let x = 1;
		(x)
	}`)
	block, ok := body[0].(*ast.Block)
	if !ok {
		t.Fatalf("expected *ast.Block, got %T", body[0])
	}
	if len(block.Body) != 2 {
		t.Fatalf("expected 2 nodes in block, got %d", len(block.Body))
	}
	if _, ok := block.Body[0].(*ast.Let); !ok {
		t.Errorf("expected *ast.Let, got %T", block.Body[0])
	}
}

func TestParseAttributes(t *testing.T) {
	body := parseBody(t, `form(
		id: "main",
		class: (cls),
		alt: [maybeAlt],
		checked?: isOn,
		data-count: (n: raw),
		href: (u: url),
		disabled,
		..(extra),
		#attrs,
		"data-json": (payload),
	) {}`)
	form := body[0].(*ast.Element)
	if len(form.Attrs) != 10 {
		t.Fatalf("expected 10 attributes, got %d", len(form.Attrs))
	}

	id := form.Attrs[0].(*ast.StaticAttr)
	if id.Name != "id" || id.Value != "main" || !id.HasValue {
		t.Errorf("unexpected id attr %+v", id)
	}

	class := form.Attrs[1].(*ast.ExprAttr)
	if class.Name != "class" || class.Code != "cls" || class.Mode != weft.ModeDefault || class.Optional {
		t.Errorf("unexpected class attr %+v", class)
	}

	alt := form.Attrs[2].(*ast.ExprAttr)
	if alt.Name != "alt" || alt.Code != "maybeAlt" || !alt.Optional {
		t.Errorf("unexpected alt attr %+v", alt)
	}

	checked := form.Attrs[3].(*ast.BoolAttr)
	if checked.Name != "checked" || checked.Code != "isOn" {
		t.Errorf("unexpected checked attr %+v", checked)
	}

	count := form.Attrs[4].(*ast.ExprAttr)
	if count.Name != "data-count" || count.Code != "n" || count.Mode != weft.ModeRaw {
		t.Errorf("unexpected data-count attr %+v", count)
	}

	href := form.Attrs[5].(*ast.ExprAttr)
	if href.Name != "href" || href.Mode != weft.ModeURL {
		t.Errorf("unexpected href attr %+v", href)
	}

	disabled := form.Attrs[6].(*ast.StaticAttr)
	if disabled.Name != "disabled" || disabled.HasValue {
		t.Errorf("unexpected disabled attr %+v", disabled)
	}

	spread := form.Attrs[7].(*ast.SpreadAttr)
	if spread.Code != "extra" {
		t.Errorf("unexpected spread attr %+v", spread)
	}

	if _, ok := form.Attrs[8].(*ast.AttrsProjection); !ok {
		t.Errorf("expected *ast.AttrsProjection, got %T", form.Attrs[8])
	}

	quoted := form.Attrs[9].(*ast.ExprAttr)
	if quoted.Name != "data-json" || quoted.Code != "payload" {
		t.Errorf("unexpected quoted attr %+v", quoted)
	}
}

func TestParseAttributeNames(t *testing.T) {
	body := parseBody(t, `div(
		@click: "go()",
		$scope,
		:bound: (x),
		#ref: "top",
		xlink:href: "#icon",
		hx-on:click: "handle()",
		data.deep.path: "v",
		hx_target: "#out",
	) {}`)
	div := body[0].(*ast.Element)
	wantNames := []string{"@click", "$scope", ":bound", "#ref", "xlink:href", "hx-on:click", "data.deep.path", "hx_target"}
	if len(div.Attrs) != len(wantNames) {
		t.Fatalf("expected %d attributes, got %d", len(wantNames), len(div.Attrs))
	}
	for i, want := range wantNames {
		var got string
		switch a := div.Attrs[i].(type) {
		case *ast.StaticAttr:
			got = a.Name
		case *ast.ExprAttr:
			got = a.Name
		default:
			t.Fatalf("attr %d: unexpected type %T", i, div.Attrs[i])
		}
		if got != want {
			t.Errorf("attr %d: expected name %q, got %q", i, want, got)
		}
	}
}

func TestParseAttributeErrors(t *testing.T) {
	for _, tt := range []struct {
		src  string
		want string
	}{
		{`div(1up) {}`, "attribute name must start with a letter, '_', '@', '$', ':', or '#'"},
		{`div(@) {}`, "expected identifier after '@'"},
		{`div($) {}`, "expected identifier after '$'"},
		{`div(data- : "x") {}`, "expected identifier after '-' in attribute name"},
		{`div(data.: "x") {}`, "expected identifier after '.' in attribute name"},
		{`div(..attrs) {}`, "expected '(expression)' after '..'"},
		{`div(href: ) {}`, "expected string literal, (expression), or [expression] after ':'"},
		{`div(src: (u: xml)) {}`, "invalid escape mode"},
		{`div(a: "x" b: "y") {}`, "expected ',' or ')' after an attribute"},
		{`div(checked?) {}`, "expected ':' after '?' in attribute"},
		{`div(checked?: ) {}`, "expected expression after '?:'"},
		{`div("data-x") {}`, "expected ':' after quoted attribute name"},
	} {
		err := parseErr(t, tt.src)
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%q: expected error containing %q, got %q", tt.src, tt.want, err.Error())
		}
	}
}

func TestParseLet(t *testing.T) {
	body := parseBody(t, `let total = price * count;
let buf strings.Builder;`)
	if len(body) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(body))
	}
	first := body[0].(*ast.Let)
	if first.Binding != "total" || first.Value != "price * count" {
		t.Errorf("unexpected let %+v", first)
	}
	second := body[1].(*ast.Let)
	if second.Binding != "buf strings.Builder" || second.Value != "" {
		t.Errorf("unexpected let %+v", second)
	}
}

func TestParseIf(t *testing.T) {
	body := parseBody(t, `if count > 0 {
		"some"
	} else if count == 0 {
		"none"
	} else if count == -1 {
		"invalid"
	} else {
		"negative"
	}`)
	n, ok := body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", body[0])
	}
	if n.Cond != "count > 0" {
		t.Errorf("expected cond %q, got %q", "count > 0", n.Cond)
	}
	if len(n.ElseIfs) != 2 {
		t.Fatalf("expected 2 else-ifs, got %d", len(n.ElseIfs))
	}
	if n.ElseIfs[0].Cond != "count == 0" || n.ElseIfs[1].Cond != "count == -1" {
		t.Errorf("unexpected else-if conds %q, %q", n.ElseIfs[0].Cond, n.ElseIfs[1].Cond)
	}
	if len(n.Else) != 1 {
		t.Fatalf("expected else body, got %d nodes", len(n.Else))
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	body := parseBody(t, `if ok { "yes" }
"after"`)
	if len(body) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(body))
	}
	n := body[0].(*ast.If)
	if n.ElseIfs != nil || n.Else != nil {
		t.Errorf("expected bare if, got %+v", n)
	}
	if _, ok := body[1].(*ast.Text); !ok {
		t.Errorf("expected trailing text node, got %T", body[1])
	}
}

func TestParseFor(t *testing.T) {
	body := parseBody(t, `for item in items { (item) }
for i, item in items { (i) }
for i := 0; i < 3; i++ { "x" }
for in := 0; in < 3; in++ { "y" }`)
	if len(body) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(body))
	}

	first := body[0].(*ast.For)
	if first.Pattern != "item" || first.Over != "items" || first.Header != "" {
		t.Errorf("unexpected for %+v", first)
	}

	second := body[1].(*ast.For)
	if second.Pattern != "i, item" || second.Over != "items" {
		t.Errorf("unexpected for %+v", second)
	}

	third := body[2].(*ast.For)
	if third.Header != "i := 0; i < 3; i++" || third.Pattern != "" {
		t.Errorf("unexpected for %+v", third)
	}

	// `in` used as an identifier does not trigger the pattern form.
	fourth := body[3].(*ast.For)
	if fourth.Header == "" || fourth.Pattern != "" {
		t.Errorf("unexpected for %+v", fourth)
	}
}

func TestParseMatch(t *testing.T) {
	body := parseBody(t, `match status {
		"active" | "new" => span { "ok" },
		code if code > 400 => { "error" }
		| 1 | 2 => "num",
		_ => "other",
	}`)
	m, ok := body[0].(*ast.Match)
	if !ok {
		t.Fatalf("expected *ast.Match, got %T", body[0])
	}
	if m.Expr != "status" {
		t.Errorf("expected scrutinee %q, got %q", "status", m.Expr)
	}
	if len(m.Arms) != 4 {
		t.Fatalf("expected 4 arms, got %d", len(m.Arms))
	}

	first := m.Arms[0]
	if len(first.Patterns) != 2 || first.Patterns[0] != `"active"` || first.Patterns[1] != `"new"` {
		t.Errorf("unexpected patterns %q", first.Patterns)
	}
	if first.Guard != "" || first.Wildcard {
		t.Errorf("unexpected arm %+v", first)
	}
	if len(first.Body) != 1 {
		t.Fatalf("expected 1 body node, got %d", len(first.Body))
	}
	if el := first.Body[0].(*ast.Element); el.Name != "span" {
		t.Errorf("expected span body, got %q", el.Name)
	}

	second := m.Arms[1]
	if len(second.Patterns) != 1 || second.Patterns[0] != "code" || second.Guard != "code > 400" {
		t.Errorf("unexpected arm %+v", second)
	}

	third := m.Arms[2]
	if len(third.Patterns) != 2 || third.Patterns[0] != "1" || third.Patterns[1] != "2" {
		t.Errorf("unexpected leading-pipe arm %+v", third)
	}

	fourth := m.Arms[3]
	if !fourth.Wildcard || len(fourth.Patterns) != 0 {
		t.Errorf("unexpected wildcard arm %+v", fourth)
	}
	if txt := fourth.Body[0].(*ast.Text); txt.Value != "other" {
		t.Errorf("expected text %q, got %q", "other", txt.Value)
	}
}

func TestParseMatchErrors(t *testing.T) {
	if err := parseErr(t, "match x { 1 }"); !strings.Contains(err.Error(), "expected '=>' in match arm") {
		t.Errorf("expected arrow error, got %q", err.Error())
	}
	if err := parseErr(t, `match x { if y => "z" }`); !strings.Contains(err.Error(), "expected pattern in match arm") {
		t.Errorf("expected pattern error, got %q", err.Error())
	}
}

func TestParseComponentCall(t *testing.T) {
	body := parseBody(t, `@Button("Save", 1; class: "wide", disabled) { "go" }
@ui.Button(; id: "b") {}
@Card {}
@Card() { "inner" }`)
	if len(body) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(body))
	}

	first := body[0].(*ast.ComponentCall)
	if first.Target != "Button" || first.Args != `"Save", 1` {
		t.Errorf("unexpected call %+v", first)
	}
	if len(first.Attrs) != 2 || len(first.Body) != 1 {
		t.Errorf("expected 2 attrs and 1 child, got %d and %d", len(first.Attrs), len(first.Body))
	}

	second := body[1].(*ast.ComponentCall)
	if second.Target != "ui.Button" || second.Args != "" || len(second.Attrs) != 1 {
		t.Errorf("unexpected call %+v", second)
	}

	third := body[2].(*ast.ComponentCall)
	if third.Target != "Card" || third.Args != "" || third.Attrs != nil || third.Body != nil {
		t.Errorf("unexpected call %+v", third)
	}

	fourth := body[3].(*ast.ComponentCall)
	if fourth.Target != "Card" || len(fourth.Body) != 1 {
		t.Errorf("unexpected call %+v", fourth)
	}

	if err := parseErr(t, "@Card"); !strings.Contains(err.Error(), "expected a body of the component call enclosed in `{}`") {
		t.Errorf("expected call body error, got %q", err.Error())
	}
}

func TestParseOpaqueExpressions(t *testing.T) {
	body := parseBody(t, "(strings.Join(items, \", \") : html)\n"+
		"(f(\"x)\", 'y'))\n"+
		"(len(`a}b`))\n"+
		"(a /* c) */ + b)")
	want := []struct {
		code string
		mode weft.EscapeMode
	}{
		{`strings.Join(items, ", ")`, weft.ModeHTML},
		{`f("x)", 'y')`, weft.ModeDefault},
		{"len(`a}b`)", weft.ModeDefault},
		{"a   + b", weft.ModeDefault},
	}
	if len(body) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(body))
	}
	for i, w := range want {
		e := body[i].(*ast.Expr)
		if e.Code != w.code || e.Mode != w.mode {
			t.Errorf("node %d: expected (%q, %v), got (%q, %v)", i, w.code, w.mode, e.Code, e.Mode)
		}
	}
}

func TestParseComments(t *testing.T) {
	body := parseBody(t, `// leading comment
div( /* attrs */ id: "x") { // trailing
	/* block
	   comment */
	"text"
}`)
	div := body[0].(*ast.Element)
	if len(div.Attrs) != 1 || len(div.Body) != 1 {
		t.Fatalf("expected 1 attr and 1 child, got %d and %d", len(div.Attrs), len(div.Body))
	}
	if txt := div.Body[0].(*ast.Text); txt.Value != "text" {
		t.Errorf("expected %q, got %q", "text", txt.Value)
	}
}

func TestParseCommentInHeader(t *testing.T) {
	body := parseBody(t, "if x > 0 // check\n{ \"y\" }")
	n := body[0].(*ast.If)
	if n.Cond != "x > 0" {
		t.Errorf("expected cond %q, got %q", "x > 0", n.Cond)
	}
}

func TestParseErrorFormat(t *testing.T) {
	_, err := Parse("package p\ncomponent c() {}", "views/home.weft")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.HasPrefix(err.Error(), "views/home.weft:2:") {
		t.Errorf("expected name:line:col prefix, got %q", err.Error())
	}

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.Error, got %T", err)
	}
	if perr.Kind != ErrSyntax {
		t.Errorf("expected ErrSyntax, got %v", perr.Kind)
	}
	if perr.Span.StartLine != 2 {
		t.Errorf("expected error on line 2, got %d", perr.Span.StartLine)
	}
}

func TestParseUnexpectedEOF(t *testing.T) {
	_, err := Parse("package p\ncomponent C() {\ndiv {", "test.weft")
	if err == nil {
		t.Fatal("expected parse error")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.Error, got %T", err)
	}
	if perr.Kind != ErrUnexpectedEOF {
		t.Errorf("expected ErrUnexpectedEOF, got %v", perr.Kind)
	}
}

func TestParseMaxDepth(t *testing.T) {
	body := strings.Repeat("{", 200) + strings.Repeat("}", 200)
	err := parseErr(t, body)
	if !strings.Contains(err.Error(), "template too deeply nested") {
		t.Errorf("expected nesting error, got %q", err.Error())
	}
}

func TestParseSpans(t *testing.T) {
	file, err := Parse("package p\ncomponent C() {\n\tdiv { \"x\" }\n}", "test.weft")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	div := file.Components[0].Body[0].(*ast.Element)
	sp := div.Span()
	if sp.StartLine != 3 {
		t.Errorf("expected div on line 3, got %d", sp.StartLine)
	}
	if sp.StartCol != 1 {
		t.Errorf("expected div at col 1, got %d", sp.StartCol)
	}
	if sp.EndOffset <= sp.StartOffset {
		t.Errorf("expected non-empty span, got %+v", sp)
	}
}
