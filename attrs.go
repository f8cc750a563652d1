package weft

import "strings"

type attrKind int

const (
	attrPlain attrKind = iota
	attrOptional
	attrBool
)

type attrEntry struct {
	name  string
	value any
	mode  EscapeMode
	kind  attrKind
}

// Attrs is an ordered collection of attribute writes, built up front and
// replayed into a Formatter by SpreadAttributes. It is the value type
// behind the `..(expr)` spread syntax.
//
// Attrs records writes without merging them; class union and
// last-write-wins are applied by the formatter when the entries are
// spread, so they compose with attributes written directly on the
// element.
type Attrs struct {
	entries []attrEntry
}

// NewAttrs returns an empty collection.
func NewAttrs() *Attrs {
	return &Attrs{}
}

// Add records an attribute write with the default escape mode.
func (a *Attrs) Add(name string, value any) *Attrs {
	return a.AddMode(name, value, ModeDefault)
}

// AddMode records an attribute write with an explicit escape mode.
func (a *Attrs) AddMode(name string, value any, mode EscapeMode) *Attrs {
	a.entries = append(a.entries, attrEntry{name: name, value: value, mode: mode})
	return a
}

// AddOptional records an attribute that is skipped when the value is nil.
func (a *Attrs) AddOptional(name string, value any) *Attrs {
	a.entries = append(a.entries, attrEntry{name: name, value: value, mode: ModeDefault, kind: attrOptional})
	return a
}

// AddBool records a name-only attribute that renders when value is true.
func (a *Attrs) AddBool(name string, value bool) *Attrs {
	a.entries = append(a.entries, attrEntry{name: name, value: value, kind: attrBool})
	return a
}

// Merge appends the entries of another collection. A nil other is a no-op.
func (a *Attrs) Merge(other *Attrs) *Attrs {
	if other == nil {
		return a
	}
	a.entries = append(a.entries, other.entries...)
	return a
}

// Len returns the number of recorded writes.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

// Classes joins the non-empty parts with single spaces. Handy for building
// a class value from conditional pieces:
//
//	weft.Classes("btn", size, onlyIf(active, "active"))
func Classes(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String()
}
