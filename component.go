package weft

// Renderer is anything that can stream itself into a Formatter.
type Renderer interface {
	RenderHTML(f *Formatter) error
}

// RenderFunc adapts a plain function to the Renderer interface.
type RenderFunc func(f *Formatter) error

// RenderHTML calls fn(f).
func (fn RenderFunc) RenderHTML(f *Formatter) error {
	return fn(f)
}

// Component is a parameterized markup fragment. The attrs callback writes
// attributes forwarded by the caller and is invoked while the receiving
// tag is still open, so forwarded writes land in the same pending buffer
// as the element's own attributes. The children callback writes forwarded
// child content.
//
// Both callbacks are closures and may be invoked zero or multiple times;
// a layout is free to render the same children twice.
type Component interface {
	RenderHTML(f *Formatter, attrs, children RenderFunc) error
}

// ComponentFunc adapts a plain function to the Component interface.
// Generated component constructors return these.
type ComponentFunc func(f *Formatter, attrs, children RenderFunc) error

// RenderHTML calls fn(f, attrs, children).
func (fn ComponentFunc) RenderHTML(f *Formatter, attrs, children RenderFunc) error {
	return fn(f, attrs, children)
}

// RenderComponent renders c into f, substituting no-op callbacks for nil
// attrs and children so component bodies never need nil checks.
func RenderComponent(f *Formatter, c Component, attrs, children RenderFunc) error {
	if attrs == nil {
		attrs = noopRender
	}
	if children == nil {
		children = noopRender
	}
	return c.RenderHTML(f, attrs, children)
}

func noopRender(*Formatter) error {
	return nil
}

// Plain adapts a component that takes no forwarded attributes or children
// into a Renderer.
func Plain(c Component) RenderFunc {
	return func(f *Formatter) error {
		return RenderComponent(f, c, nil, nil)
	}
}

// Render renders r into a fresh formatter and returns the output.
func Render(r Renderer) (HTML, error) {
	f := NewFormatter()
	if err := r.RenderHTML(f); err != nil {
		return "", err
	}
	return f.HTML(), nil
}

// RenderString is Render returning a plain string.
func RenderString(r Renderer) (string, error) {
	h, err := Render(r)
	return string(h), err
}
