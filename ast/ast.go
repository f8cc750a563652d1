// Package ast defines the syntax tree produced by parsing .weft template
// files. Go expressions embedded in templates are kept as verbatim source
// strings; the compiler validates them when it lowers the tree to Go.
package ast

import (
	"github.com/weftml/weft"
	"github.com/weftml/weft/syntax"
)

// Node is implemented by every node that can appear in a component body.
type Node interface {
	node()
	Span() syntax.Span
}

// Attr is implemented by every attribute form of an element or component
// call.
type Attr interface {
	attr()
	Span() syntax.Span
}

// File is a parsed .weft source file.
type File struct {
	Package    string
	Imports    []Import
	Components []*Component
	Pos        syntax.Span
}

// Span returns the source range of the file.
func (f *File) Span() syntax.Span { return f.Pos }

// Import is a single import spec. Alias is "", ".", "_", or an identifier.
type Import struct {
	Alias string
	Path  string
	Pos   syntax.Span
}

// Span returns the source range of the import spec.
func (i Import) Span() syntax.Span { return i.Pos }

// Component is a component declaration. Params holds the verbatim Go
// parameter list between the parentheses of the declaration.
type Component struct {
	Name   string
	Params string
	Body   []Node
	Pos    syntax.Span
}

// Span returns the source range of the declaration.
func (c *Component) Span() syntax.Span { return c.Pos }

// Text is a string literal rendered as pre-escaped static content. Value
// holds the decoded literal.
type Text struct {
	Value string
	Pos   syntax.Span
}

// Expr is a `(expr)` or `(expr: mode)` splice. Code is the verbatim Go
// expression. Mode is ModeDefault unless the splice names one.
type Expr struct {
	Code string
	Mode weft.EscapeMode
	Pos  syntax.Span
}

// RawExpr is a `#(expr)` splice rendered without escaping.
type RawExpr struct {
	Code string
	Pos  syntax.Span
}

// Fragment is an `@(expr)` splice embedding a value that renders itself.
type Fragment struct {
	Expr string
	Pos  syntax.Span
}

// Doctype is the `#doctype` directive.
type Doctype struct {
	Pos syntax.Span
}

// Children is the `#children` directive, the insertion point for a
// component call's body.
type Children struct {
	Pos syntax.Span
}

// Element is an HTML element. Void elements and self-closed elements have
// no body; SelfClosed records a trailing `;`.
type Element struct {
	Name       string
	Void       bool
	Attrs      []Attr
	Body       []Node
	SelfClosed bool
	Pos        syntax.Span
}

// Block is a bare `{ ... }` grouping. It scopes let bindings without
// emitting any markup.
type Block struct {
	Body []Node
	Pos  syntax.Span
}

// Let is a `let BINDING = EXPR;` statement. Value is empty for the
// declaration-only form `let x T;`.
type Let struct {
	Binding string
	Value   string
	Pos     syntax.Span
}

// If is an if/else-if/else chain. Conditions are verbatim Go.
type If struct {
	Cond    string
	Then    []Node
	ElseIfs []ElseIf
	Else    []Node
	Pos     syntax.Span
}

// ElseIf is one `else if` link of an If chain.
type ElseIf struct {
	Cond string
	Body []Node
	Pos  syntax.Span
}

// Span returns the source range of the else-if link.
func (e ElseIf) Span() syntax.Span { return e.Pos }

// For is a loop. Either Pattern and Over are set (`for x in xs`) or Header
// holds a verbatim Go loop header.
type For struct {
	Pattern string
	Over    string
	Header  string
	Body    []Node
	Pos     syntax.Span
}

// Match is a `match EXPR { ... }` form.
type Match struct {
	Expr string
	Arms []MatchArm
	Pos  syntax.Span
}

// MatchArm is one arm of a Match. Patterns holds the `|`-separated
// alternatives; Wildcard records a `_` alternative. Guard is the optional
// `if` expression.
type MatchArm struct {
	Patterns []string
	Guard    string
	Body     []Node
	Wildcard bool
	Pos      syntax.Span
}

// Span returns the source range of the arm.
func (a MatchArm) Span() syntax.Span { return a.Pos }

// ComponentCall is an `@Target(Args; Attrs) { Body }` invocation. Target
// is a possibly qualified identifier path and Args the verbatim Go
// argument list.
type ComponentCall struct {
	Target string
	Args   string
	Attrs  []Attr
	Body   []Node
	Pos    syntax.Span
}

func (*Text) node()          {}
func (*Expr) node()          {}
func (*RawExpr) node()       {}
func (*Fragment) node()      {}
func (*Doctype) node()       {}
func (*Children) node()      {}
func (*Element) node()       {}
func (*Block) node()         {}
func (*Let) node()           {}
func (*If) node()            {}
func (*For) node()           {}
func (*Match) node()         {}
func (*ComponentCall) node() {}

// Span returns the source range of the node.
func (n *Text) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *Expr) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *RawExpr) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *Fragment) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *Doctype) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *Children) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *Element) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *Block) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *Let) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *If) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *For) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *Match) Span() syntax.Span { return n.Pos }

// Span returns the source range of the node.
func (n *ComponentCall) Span() syntax.Span { return n.Pos }

// StaticAttr is a literal-valued attribute `name: "value"` or a bare
// boolean attribute `name` (HasValue false).
type StaticAttr struct {
	Name     string
	Value    string
	HasValue bool
	Pos      syntax.Span
}

// ExprAttr is a dynamic attribute `name: (expr)` or, with Optional set,
// `name: [expr]` which renders only when the value is a non-nil pointer.
type ExprAttr struct {
	Name     string
	Code     string
	Mode     weft.EscapeMode
	Optional bool
	Pos      syntax.Span
}

// BoolAttr is a conditional boolean attribute `name?: expr`.
type BoolAttr struct {
	Name string
	Code string
	Pos  syntax.Span
}

// SpreadAttr is a `..(expr)` spread merging an attribute collection.
type SpreadAttr struct {
	Code string
	Pos  syntax.Span
}

// AttrsProjection is the `#attrs` marker forwarding a component's
// received attributes.
type AttrsProjection struct {
	Pos syntax.Span
}

func (*StaticAttr) attr()      {}
func (*ExprAttr) attr()        {}
func (*BoolAttr) attr()        {}
func (*SpreadAttr) attr()      {}
func (*AttrsProjection) attr() {}

// Span returns the source range of the attribute.
func (a *StaticAttr) Span() syntax.Span { return a.Pos }

// Span returns the source range of the attribute.
func (a *ExprAttr) Span() syntax.Span { return a.Pos }

// Span returns the source range of the attribute.
func (a *BoolAttr) Span() syntax.Span { return a.Pos }

// Span returns the source range of the attribute.
func (a *SpreadAttr) Span() syntax.Span { return a.Pos }

// Span returns the source range of the attribute.
func (a *AttrsProjection) Span() syntax.Span { return a.Pos }
