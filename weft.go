// Package weft is the runtime for the weft templating engine.
//
// Components written in the weft markup language (.weft files) are compiled
// to Go source by the weft CLI; the generated code streams HTML through a
// Formatter from this package. The runtime takes care of context-sensitive
// escaping, attribute buffering and class merging, void elements, and URL
// scheme validation. It has no template interpreter: every expression in a
// .weft file is ordinary Go, type-checked by the Go compiler.
//
// # Quick Start
//
// Given a component file greeting.weft:
//
//	package main
//
//	component Greeting(name string) {
//	    div(class: "greeting") {
//	        "Hello, " (name) "!"
//	    }
//	}
//
// running `weft generate` produces greeting_weft.go in the same package,
// and the component renders like this:
//
//	html, err := weft.Render(weft.Plain(Greeting("World")))
//	fmt.Println(html) // Output: <div class="greeting">Hello, World!</div>
//
// # Escaping
//
// Values written as content or attribute values are escaped according to an
// EscapeMode. The default mode escapes HTML in content positions and applies
// URL validation to the attributes that carry URLs (href, src, action and
// friends). Values of type HTML bypass escaping entirely; wrap a string in
// HTML only when it is known to be safe markup.
package weft

// HTML is a fragment of markup that is already safe to emit. The runtime
// writes HTML values verbatim, skipping every escape mode. Constructing an
// HTML from untrusted input defeats the injection protection, so do it only
// for markup you control.
type HTML string

// Doctype is the HTML5 doctype preamble, emitted by the #doctype keyword.
const Doctype HTML = "<!DOCTYPE html>"

// String returns the markup as a plain string.
func (h HTML) String() string {
	return string(h)
}
