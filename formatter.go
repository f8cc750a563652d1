package weft

import (
	"errors"
	"reflect"
	"strings"
)

// Errors reported by the Formatter when operations arrive in a state that
// cannot accept them. Generated code propagates these; reaching one by hand
// means the call sequence does not describe a well-formed document.
var (
	ErrAttributeOutsideTag  = errors.New("weft: attempted to write an attribute outside of a tag")
	ErrNoElementToClose     = errors.New("weft: attempted to close an element when no element is open")
	ErrContentInVoidElement = errors.New("weft: attempted to write content to a void element")
)

// Void elements cannot have content or closing tags.
var voidElements = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"param":  {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

// IsVoidElement reports whether name is one of the fourteen HTML void
// elements. The check is ASCII case-insensitive.
func IsVoidElement(name string) bool {
	_, ok := voidElements[strings.ToLower(name)]
	return ok
}

// formatterState tracks where in a tag the formatter currently is.
type formatterState int

const (
	// stateIdle: no element is being written. Ready to start a new
	// element or write top-level content.
	stateIdle formatterState = iota
	// stateTagOpened: an opening tag is started (`<div`) and attributes
	// may still arrive. The `>` is not written yet.
	stateTagOpened
	// stateInContent: the opening tag is closed and content or child
	// elements can be written.
	stateInContent
)

type openElement struct {
	name string
	void bool
}

// pendingAttr is a buffered attribute of the tag being opened. The value is
// rendered at write time and escaped at flush time.
type pendingAttr struct {
	name     string
	value    string
	mode     EscapeMode
	nameOnly bool
}

type classToken struct {
	text string
	mode EscapeMode
}

// Formatter streams HTML into an internal buffer under a strict state
// machine. Elements open with StartElement, collect attributes while the
// tag is open, and close with EndElement; the formatter tracks nesting so
// that closing tags, void elements, and attribute placement come out right.
//
// Attributes are buffered per open tag rather than written immediately.
// Repeated writes to class merge into one token list; other names keep the
// last written value at the position of their first write. The buffer is
// flushed when the tag closes, which happens implicitly on the next
// content, child, or end operation.
//
// The zero value is ready to use.
type Formatter struct {
	buf     []byte
	state   formatterState
	stack   []openElement
	attrs   []pendingAttr
	classes []classToken
}

// NewFormatter returns an empty Formatter in the idle state.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// closePendingTag flushes buffered attributes and writes the `>` of the
// tag currently being opened, if any.
func (f *Formatter) closePendingTag() {
	if f.state != stateTagOpened {
		return
	}
	f.flushAttributes()
	f.buf = append(f.buf, '>')
	f.state = stateInContent
}

// flushAttributes renders the buffered attributes: the merged class list
// first, then the rest in first-write order.
func (f *Formatter) flushAttributes() {
	if len(f.classes) > 0 {
		f.buf = append(f.buf, ` class="`...)
		for i, c := range f.classes {
			if i > 0 {
				f.buf = append(f.buf, ' ')
			}
			f.buf = appendEscaped(f.buf, c.text, c.mode)
		}
		f.buf = append(f.buf, '"')
		f.classes = f.classes[:0]
	}
	for _, a := range f.attrs {
		f.buf = append(f.buf, ' ')
		f.buf = append(f.buf, a.name...)
		if !a.nameOnly {
			f.buf = append(f.buf, '=', '"')
			f.buf = appendEscaped(f.buf, a.value, a.mode)
			f.buf = append(f.buf, '"')
		}
	}
	f.attrs = f.attrs[:0]
}

// StartElement opens a new element. A still-pending tag is closed first.
func (f *Formatter) StartElement(name string) {
	f.closePendingTag()

	f.buf = append(f.buf, '<')
	f.buf = append(f.buf, name...)

	f.stack = append(f.stack, openElement{
		name: name,
		void: IsVoidElement(name),
	})
	f.state = stateTagOpened
}

// WriteAttribute buffers an attribute for the tag being opened. ModeDefault
// resolves to ModeURL for URL attributes and ModeHTML otherwise. Returns
// ErrAttributeOutsideTag when no tag is open for attributes.
func (f *Formatter) WriteAttribute(name string, value any, mode EscapeMode) error {
	if f.state != stateTagOpened {
		return ErrAttributeOutsideTag
	}
	f.bufferAttribute(name, value, mode)
	return nil
}

// WriteOptionalAttribute is WriteAttribute for values that may be absent: a
// nil value or nil pointer writes nothing, a non-nil pointer is
// dereferenced first. The state requirement holds even when the value
// turns out to be nil.
func (f *Formatter) WriteOptionalAttribute(name string, value any, mode EscapeMode) error {
	if f.state != stateTagOpened {
		return ErrAttributeOutsideTag
	}
	if value == nil {
		return nil
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		value = rv.Elem().Interface()
	}
	f.bufferAttribute(name, value, mode)
	return nil
}

// WriteBooleanAttribute buffers a name-only attribute (`disabled`,
// `checked`) when value is true and does nothing when it is false. A
// name-only class carries no tokens, so a boolean class write is dropped
// rather than rendered next to the merged class list.
func (f *Formatter) WriteBooleanAttribute(name string, value bool) error {
	if f.state != stateTagOpened {
		return ErrAttributeOutsideTag
	}
	if value && name != "class" {
		f.upsertAttribute(name, "", ModeRaw, true)
	}
	return nil
}

// SpreadAttributes replays the entries of an Attrs collection into the
// pending buffer, so class merging and overwrites compose with attributes
// written directly on the element. A nil collection writes nothing.
func (f *Formatter) SpreadAttributes(attrs *Attrs) error {
	if f.state != stateTagOpened {
		return ErrAttributeOutsideTag
	}
	if attrs == nil {
		return nil
	}
	for _, e := range attrs.entries {
		var err error
		switch e.kind {
		case attrOptional:
			err = f.WriteOptionalAttribute(e.name, e.value, e.mode)
		case attrBool:
			on, _ := e.value.(bool)
			err = f.WriteBooleanAttribute(e.name, on)
		default:
			err = f.WriteAttribute(e.name, e.value, e.mode)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) bufferAttribute(name string, value any, mode EscapeMode) {
	if mode == ModeDefault {
		if IsURLAttribute(name) {
			mode = ModeURL
		} else {
			mode = ModeHTML
		}
	}
	text, safe := renderValue(value)
	if safe {
		mode = ModeRaw
	}
	if name == "class" {
		f.addClassTokens(text, mode)
		return
	}
	f.upsertAttribute(name, text, mode, false)
}

// addClassTokens merges the whitespace-split tokens of a class value into
// the class list, dropping tokens already present. First occurrence wins.
func (f *Formatter) addClassTokens(value string, mode EscapeMode) {
	for _, tok := range strings.Fields(value) {
		if f.hasClassToken(tok) {
			continue
		}
		f.classes = append(f.classes, classToken{text: tok, mode: mode})
	}
}

func (f *Formatter) hasClassToken(text string) bool {
	for _, c := range f.classes {
		if c.text == text {
			return true
		}
	}
	return false
}

// upsertAttribute records an attribute write: the value of a repeated name
// is overwritten in place, keeping the position of the first write.
func (f *Formatter) upsertAttribute(name, value string, mode EscapeMode, nameOnly bool) {
	for i := range f.attrs {
		if f.attrs[i].name == name {
			f.attrs[i].value = value
			f.attrs[i].mode = mode
			f.attrs[i].nameOnly = nameOnly
			return
		}
	}
	f.attrs = append(f.attrs, pendingAttr{name: name, value: value, mode: mode, nameOnly: nameOnly})
}

// WriteContent writes a value inside the current element, closing a
// pending tag first. ModeDefault resolves to ModeHTML. Writing content
// into a void element whose tag is still open returns
// ErrContentInVoidElement.
func (f *Formatter) WriteContent(value any, mode EscapeMode) error {
	if n := len(f.stack); n > 0 && f.stack[n-1].void && f.state == stateTagOpened {
		return ErrContentInVoidElement
	}
	f.closePendingTag()

	if mode == ModeDefault {
		mode = ModeHTML
	}
	text, safe := renderValue(value)
	if safe {
		mode = ModeRaw
	}
	f.buf = appendEscaped(f.buf, text, mode)
	return nil
}

// WriteFragment closes a pending tag and lets r stream itself into the
// formatter. A nil Renderer writes nothing.
func (f *Formatter) WriteFragment(r Renderer) error {
	f.closePendingTag()
	if r == nil {
		return nil
	}
	return r.RenderHTML(f)
}

// EndElement closes the innermost open element. Void elements get their
// pending tag closed with `>` and no closing tag; other elements get
// `</name>`. Returns ErrNoElementToClose when nothing is open.
func (f *Formatter) EndElement() error {
	n := len(f.stack)
	if n == 0 {
		return ErrNoElementToClose
	}
	entry := f.stack[n-1]
	f.stack = f.stack[:n-1]

	f.closePendingTag()
	if !entry.void {
		f.buf = append(f.buf, '<', '/')
		f.buf = append(f.buf, entry.name...)
		f.buf = append(f.buf, '>')
	}

	if len(f.stack) == 0 {
		f.state = stateIdle
	} else {
		f.state = stateInContent
	}
	return nil
}

// HTML returns the rendered output as a safe fragment.
func (f *Formatter) HTML() HTML {
	return HTML(f.buf)
}

// String returns the rendered output.
func (f *Formatter) String() string {
	return string(f.buf)
}

// Reset clears the output and all formatter state, keeping the allocated
// buffers for reuse.
func (f *Formatter) Reset() {
	f.buf = f.buf[:0]
	f.state = stateIdle
	f.stack = f.stack[:0]
	f.attrs = f.attrs[:0]
	f.classes = f.classes[:0]
}
